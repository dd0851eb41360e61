package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/breathesafe/breathesafe/internal/api/models"
	"github.com/breathesafe/breathesafe/internal/api/response"
	"github.com/breathesafe/breathesafe/internal/user"
)

// MeHandler handles user account endpoints.
type MeHandler struct {
	userService *user.Service
}

// NewMeHandler creates a new MeHandler.
func NewMeHandler(userService *user.Service) *MeHandler {
	return &MeHandler{userService: userService}
}

// GetMe handles GET /v1/me - get current user account.
func (h *MeHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	u, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(w, r, "account not found")
			return
		}
		response.InternalError(w, r, "failed to load account")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewMe(u))
}

// UpdateMe handles PATCH /v1/me - partial account update. Clearing phone
// or location opts the user out of SMS alerts.
func (h *MeHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	var input models.MeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	u, err := h.userService.Update(r.Context(), userID, user.UpdateInput{
		FullName: input.FullName,
		Phone:    input.Phone,
		Location: input.Location,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(w, r, "account not found")
			return
		}
		response.InternalError(w, r, "failed to update account")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewMe(u))
}

// DeleteMe handles DELETE /v1/me - delete the account and all data.
func (h *MeHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	if err := h.userService.Delete(r.Context(), userID); err != nil {
		response.InternalError(w, r, "failed to delete account")
		return
	}

	response.NoContent(w, r)
}
