// Package api provides the HTTP API for BreatheSafe.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/breathesafe/breathesafe/internal/alert"
	"github.com/breathesafe/breathesafe/internal/api/handler"
	"github.com/breathesafe/breathesafe/internal/api/middleware"
	"github.com/breathesafe/breathesafe/internal/auth"
	"github.com/breathesafe/breathesafe/internal/health"
	"github.com/breathesafe/breathesafe/internal/report"
	"github.com/breathesafe/breathesafe/internal/user"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version       string
	BuildTime     string
	Logger        zerolog.Logger
	ServiceName   string
	Metrics       *middleware.Metrics
	JWTService    *auth.JWTService
	AuthService   *auth.Service
	UserService   *user.Service
	HealthService *health.Service
	ReportService *report.Service
	AlertRepo     alert.Repository

	// DB reports database reachability for readiness checks. Optional.
	DB handler.Pinger

	// AlertTrigger fires on-demand alert runs. Nil in binaries that do
	// not host the dispatcher.
	AlertTrigger handler.AlertRunTrigger
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "breathesafe-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB, cfg.AlertTrigger)
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	meHandler := handler.NewMeHandler(cfg.UserService)
	assessmentHandler := handler.NewAssessmentHandler(cfg.HealthService)
	reportHandler := handler.NewReportHandler(cfg.ReportService)
	alertHandler := handler.NewAlertHandler(cfg.AlertRepo)

	// Create auth middleware
	authMiddleware := middleware.Auth(cfg.JWTService)

	// Create rate limit middleware for different endpoint categories
	authRateLimit := middleware.RateLimitByIP(middleware.AuthRateLimit)
	expensiveRateLimit := middleware.RateLimitByUser(middleware.ExpensiveRateLimit)
	standardRateLimit := middleware.RateLimitByUser(middleware.StandardRateLimit)

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Auth endpoints (public) - strict rate limiting
		r.Route("/auth", func(r chi.Router) {
			r.Use(authRateLimit) // 10 requests per minute per IP
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
		})

		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status and manual runs require authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
			r.With(authMiddleware).Post("/alerts/run", opsHandler.TriggerAlertRun)
		})

		// Me endpoints (authenticated) - user-based rate limiting
		r.Route("/me", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(standardRateLimit) // 100 req/min per user
			r.Get("/", meHandler.GetMe)
			r.Patch("/", meHandler.UpdateMe)
			r.Delete("/", meHandler.DeleteMe)

			// Health assessments
			r.Route("/assessments", func(r chi.Router) {
				r.Get("/", assessmentHandler.ListAssessments)
				r.Post("/", assessmentHandler.SubmitAssessment)
				r.Get("/latest", assessmentHandler.GetLatestAssessment)
			})

			// SMS alert history
			r.Get("/alerts", alertHandler.ListAlerts)
		})

		// Report endpoints (authenticated) - generation hits the model,
		// so creation gets the expensive limit
		r.Route("/reports", func(r chi.Router) {
			r.Use(authMiddleware)
			r.With(expensiveRateLimit).Post("/", reportHandler.GenerateReport)
			r.With(standardRateLimit).Get("/", reportHandler.ListReports)
			r.With(standardRateLimit).Get("/{reportId}", reportHandler.GetReport)
		})
	})

	return r
}
