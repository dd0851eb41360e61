package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/breathesafe/breathesafe/internal/api/models"
	"github.com/breathesafe/breathesafe/internal/api/response"
	"github.com/breathesafe/breathesafe/internal/health"
)

// AssessmentHandler handles health assessment endpoints.
type AssessmentHandler struct {
	healthService *health.Service
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(healthService *health.Service) *AssessmentHandler {
	return &AssessmentHandler{healthService: healthService}
}

// SubmitAssessment handles POST /v1/me/assessments - file a new snapshot.
func (h *AssessmentHandler) SubmitAssessment(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	var input models.AssessmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if input.Age < 0 || input.Age > 120 {
		response.BadRequest(w, r, "invalid assessment", []models.FieldError{
			{Field: "age", Message: "must be between 0 and 120"},
		})
		return
	}

	a, err := h.healthService.Submit(r.Context(), userID, health.SubmitInput{
		Age:        input.Age,
		Conditions: input.DomainConditions(),
		Symptoms:   input.Symptoms,
		Other:      input.Other,
	})
	if err != nil {
		response.InternalError(w, r, "failed to store assessment")
		return
	}

	response.Created(w, r, "/v1/me/assessments/latest", models.NewAssessment(a))
}

// GetLatestAssessment handles GET /v1/me/assessments/latest.
func (h *AssessmentHandler) GetLatestAssessment(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	a, err := h.healthService.Latest(r.Context(), userID)
	if err != nil {
		if errors.Is(err, health.ErrAssessmentNotFound) {
			response.NotFound(w, r, "no assessment on file")
			return
		}
		response.InternalError(w, r, "failed to load assessment")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewAssessment(a))
}

// ListAssessments handles GET /v1/me/assessments - full history, newest
// first.
func (h *AssessmentHandler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	assessments, err := h.healthService.List(r.Context(), userID)
	if err != nil {
		response.InternalError(w, r, "failed to list assessments")
		return
	}

	items := make([]models.Assessment, len(assessments))
	for i, a := range assessments {
		items[i] = models.NewAssessment(a)
	}
	response.JSON(w, r, http.StatusOK, models.AssessmentList{Items: items})
}
