package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/breathesafe/breathesafe/internal/api/models"
	"github.com/breathesafe/breathesafe/internal/api/response"
	"github.com/breathesafe/breathesafe/internal/auth"
	"github.com/breathesafe/breathesafe/internal/user"
)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 8

// AuthHandler handles signup and login endpoints.
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles POST /v1/auth/signup - register a new account.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	var fieldErrors []models.FieldError
	if strings.TrimSpace(input.FullName) == "" {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "fullName", Message: "must not be empty"})
	}
	if !strings.Contains(input.Email, "@") {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(input.Password) < minPasswordLength {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "password", Message: "must be at least 8 characters"})
	}
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid signup request", fieldErrors)
		return
	}

	u, pair, err := h.authService.Signup(r.Context(), input.FullName, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			response.Conflict(w, r, "an account with this email already exists")
			return
		}
		response.InternalError(w, r, "failed to create account")
		return
	}

	response.Created(w, r, "/v1/me", models.AuthResponse{
		User:        models.NewMe(u),
		AccessToken: pair.AccessToken,
		ExpiresAt:   models.Timestamp(pair.ExpiresAt),
	})
}

// Login handles POST /v1/auth/login - exchange credentials for a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	u, pair, err := h.authService.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Unauthorized(w, r, "invalid email or password")
			return
		}
		response.InternalError(w, r, "failed to log in")
		return
	}

	response.JSON(w, r, http.StatusOK, models.AuthResponse{
		User:        models.NewMe(u),
		AccessToken: pair.AccessToken,
		ExpiresAt:   models.Timestamp(pair.ExpiresAt),
	})
}
