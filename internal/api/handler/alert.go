package handler

import (
	"net/http"
	"strconv"

	"github.com/breathesafe/breathesafe/internal/alert"
	"github.com/breathesafe/breathesafe/internal/api/models"
	"github.com/breathesafe/breathesafe/internal/api/response"
)

// AlertHandler handles alert history endpoints.
type AlertHandler struct {
	alerts alert.Repository
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alerts alert.Repository) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// ListAlerts handles GET /v1/me/alerts - the caller's SMS alert history,
// newest forecast hour first.
func (h *AlertHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	alerts, err := h.alerts.ListByUser(r.Context(), userID, parseLimit(r, 50))
	if err != nil {
		response.InternalError(w, r, "failed to list alerts")
		return
	}

	items := make([]models.Alert, len(alerts))
	for i, a := range alerts {
		items[i] = models.NewAlert(a)
	}
	response.JSON(w, r, http.StatusOK, models.AlertList{Items: items})
}

// parseLimit reads the limit query parameter, falling back to def for
// missing or invalid values. Capped at 200.
func parseLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return def
	}
	if limit > 200 {
		return 200
	}
	return limit
}
