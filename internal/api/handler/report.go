package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/breathesafe/breathesafe/internal/api/models"
	"github.com/breathesafe/breathesafe/internal/api/response"
	"github.com/breathesafe/breathesafe/internal/report"
)

// ReportHandler handles AI health report endpoints.
type ReportHandler struct {
	reportService *report.Service
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *report.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GenerateReport handles POST /v1/reports - generate a personalized
// report against a caller-supplied AQI snapshot.
func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	var input models.ReportGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	var fieldErrors []models.FieldError
	if strings.TrimSpace(input.Location) == "" {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "location", Message: "must not be empty"})
	}
	if input.AQI < 0 || input.AQI > 500 {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "aqi", Message: "must be between 0 and 500"})
	}
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid report request", fieldErrors)
		return
	}

	rep, err := h.reportService.Generate(r.Context(), userID, input.Location, input.AQI)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrAssessmentRequired):
			response.Conflict(w, r, "a health assessment is required before generating a report")
		case errors.Is(err, report.ErrAssessmentStale):
			response.Conflict(w, r, "your health assessment is older than 30 days; please submit a new one")
		case errors.Is(err, report.ErrGenerationFailed):
			response.ServiceUnavailable(w, r, "report generation is temporarily unavailable")
		default:
			response.InternalError(w, r, "failed to generate report")
		}
		return
	}

	response.Created(w, r, "/v1/reports/"+rep.ID, models.NewReport(rep))
}

// GetReport handles GET /v1/reports/{reportId} - owner-scoped lookup.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	reportID := chi.URLParam(r, "reportId")

	rep, err := h.reportService.Get(r.Context(), userID, reportID)
	if err != nil {
		if errors.Is(err, report.ErrReportNotFound) {
			response.NotFound(w, r, "report not found")
			return
		}
		response.InternalError(w, r, "failed to load report")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewReport(rep))
}

// ListReports handles GET /v1/reports - the caller's reports, newest
// first.
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	reports, err := h.reportService.ListByUser(r.Context(), userID, parseLimit(r, 20))
	if err != nil {
		response.InternalError(w, r, "failed to list reports")
		return
	}

	items := make([]models.Report, len(reports))
	for i, rep := range reports {
		items[i] = models.NewReport(rep)
	}
	response.JSON(w, r, http.StatusOK, models.ReportList{Items: items})
}
