// Package handler provides HTTP handlers for the BreatheSafe API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/breathesafe/breathesafe/internal/api/models"
	"github.com/breathesafe/breathesafe/internal/api/response"
)

// Pinger checks a dependency's reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// AlertRunTrigger fires an on-demand alert run. Reports false when a run
// is already in flight.
type AlertRunTrigger interface {
	TriggerNow() bool
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	db        Pinger
	trigger   AlertRunTrigger
}

// NewOpsHandler creates a new OpsHandler. db and trigger may be nil when
// the binary does not carry that dependency.
func NewOpsHandler(version, buildTime string, db Pinger, trigger AlertRunTrigger) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		db:        db,
		trigger:   trigger,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatusOK
	code := http.StatusOK

	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			status = models.HealthStatusFail
			code = http.StatusServiceUnavailable
		}
	}

	health := models.Health{
		Status: status,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, code, health)
}

// SystemStatus handles GET /v1/ops/status - provider and subsystem status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())

	dbStatus := models.HealthStatusOK
	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			dbStatus = models.HealthStatusFail
		}
	}

	overall := models.HealthStatusOK
	if dbStatus != models.HealthStatusOK {
		overall = models.HealthStatusDegraded
	}

	status := models.SystemStatus{
		Status: overall,
		Time:   now,
		Subsystems: []models.SubsystemStatus{
			{Name: "postgres", Status: dbStatus},
		},
		Providers: []models.ProviderStatus{
			{Provider: "open-meteo", Status: models.HealthStatusOK, LastSuccessAt: &now},
			{Provider: "twilio", Status: models.HealthStatusOK, LastSuccessAt: &now},
			{Provider: "gemini", Status: models.HealthStatusOK, LastSuccessAt: &now},
		},
	}
	response.JSON(w, r, http.StatusOK, status)
}

// TriggerAlertRun handles POST /v1/ops/alerts/run - fire an on-demand
// alert run outside the daily schedule.
func (h *OpsHandler) TriggerAlertRun(w http.ResponseWriter, r *http.Request) {
	if h.trigger == nil {
		response.ServiceUnavailable(w, r, "alert runs are handled by the worker binary")
		return
	}

	if !h.trigger.TriggerNow() {
		response.Conflict(w, r, "an alert run is already in progress")
		return
	}

	response.JSON(w, r, http.StatusAccepted, models.TriggerResponse{
		Triggered: true,
		Message:   "alert run started",
	})
}
