package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/breathesafe/breathesafe/internal/health"
	"github.com/breathesafe/breathesafe/internal/risk"
)

// AssessmentSource returns a user's latest health assessment.
type AssessmentSource interface {
	LatestByUser(ctx context.Context, userID string) (*health.Assessment, error)
}

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ServiceConfig holds configuration for the report service.
type ServiceConfig struct {
	Assessments AssessmentSource
	Generator   Generator
	Repo        Repository
	Logger      zerolog.Logger

	// Now overrides the clock for tests.
	Now func() time.Time
}

// Service generates and retrieves health reports.
type Service struct {
	assessments AssessmentSource
	generator   Generator
	repo        Repository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewService creates a report service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		assessments: cfg.Assessments,
		generator:   cfg.Generator,
		repo:        cfg.Repo,
		logger:      cfg.Logger,
		now:         now,
	}
}

// Generate produces a report for the user's current location and AQI.
// The user must have an assessment newer than AssessmentMaxAge: stale
// health data produces misleading medication guidance, so generation
// refuses rather than degrades.
func (s *Service) Generate(ctx context.Context, userID, location string, aqi float64) (*Report, error) {
	assessment, err := s.assessments.LatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, health.ErrAssessmentNotFound) {
			return nil, ErrAssessmentRequired
		}
		return nil, err
	}

	now := s.now()
	if assessment.AssessedAt.Before(now.Add(-AssessmentMaxAge)) {
		return nil, ErrAssessmentStale
	}

	aqiLabel := risk.CategoryLabel(aqi)
	prompt := buildPrompt(assessment, location, aqi, aqiLabel, now)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	content, err := parseContent(raw)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("model returned unusable report")
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	r := &Report{
		ID:        NewID(),
		UserID:    userID,
		Location:  location,
		AQI:       aqi,
		AQILabel:  aqiLabel,
		Content:   *content,
		CreatedAt: now,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("report_id", r.ID).
		Str("user_id", userID).
		Float64("aqi", aqi).
		Msg("health report generated")
	return r, nil
}

// Get retrieves a report by ID, scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, reportID string) (*Report, error) {
	r, err := s.repo.Get(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, ErrReportNotFound
	}
	return r, nil
}

// ListByUser returns a user's reports, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string, limit int) ([]*Report, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}

// rawContent mirrors the JSON schema the prompt demands.
type rawContent struct {
	UserProfile UserProfile `json:"userProfile"`
	AgeSpecific struct {
		DailyActivities       string `json:"dailyActivities"`
		Precautions           string `json:"precautions"`
		SpecialConsiderations string `json:"specialConsiderations"`
	} `json:"ageSpecificRecommendations"`
	HealthSpecific []struct {
		Issue            string `json:"issue"`
		Effect           string `json:"effect"`
		SafetyMeasures   string `json:"safetyMeasures"`
		ExtraCare        string `json:"extraCare"`
		MedicationAdvice string `json:"medicationAdvice"`
	} `json:"healthSpecificRecommendations"`
	General struct {
		IndoorAirQuality      string `json:"indoorAirQuality"`
		ActivityModifications string `json:"activityModifications"`
		PreventiveMeasures    string `json:"preventiveMeasures"`
		EmergencyProtocols    string `json:"emergencyProtocols"`
	} `json:"generalRecommendations"`
	Medication struct {
		CurrentMedications   string `json:"currentMedications"`
		OverTheCounter       string `json:"overTheCounter"`
		WhenToSeekHelp       string `json:"whenToSeekHelp"`
		EmergencyMedications string `json:"emergencyMedications"`
	} `json:"medicationGuidance"`
	OutdoorActivity OutdoorActivity `json:"outdoorActivitySafety"`
	MaskAdvice      MaskAdvice      `json:"maskRecommendations"`
}

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// coerceJSON cleans common model slop around a JSON object: markdown
// code fences, leading/trailing prose, and trailing commas.
func coerceJSON(text string) (string, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return "", errors.New("no JSON object in model output")
	}
	cleaned = cleaned[start : end+1]

	return trailingCommaRe.ReplaceAllString(cleaned, "$1"), nil
}

// parseContent coerces and normalizes model output into Content.
func parseContent(text string) (*Content, error) {
	cleaned, err := coerceJSON(text)
	if err != nil {
		return nil, err
	}

	var raw rawContent
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("decoding model output: %w", err)
	}

	if len(raw.HealthSpecific) == 0 {
		return nil, errors.New("missing health-specific recommendations")
	}

	content := &Content{
		UserProfile:     raw.UserProfile,
		OutdoorActivity: raw.OutdoorActivity,
		MaskAdvice:      raw.MaskAdvice,
	}

	for _, rec := range raw.HealthSpecific {
		line := strings.TrimSpace(fmt.Sprintf("%s: %s %s %s %s",
			rec.Issue, rec.Effect, rec.SafetyMeasures, rec.ExtraCare, rec.MedicationAdvice))
		content.HealthRecommendations = append(content.HealthRecommendations, line)
	}

	content.AgeRecommendations = []string{
		"Daily Activities: " + raw.AgeSpecific.DailyActivities,
		"Precautions: " + raw.AgeSpecific.Precautions,
		"Special Considerations: " + raw.AgeSpecific.SpecialConsiderations,
	}
	content.GeneralRecommendations = []string{
		"Indoor Air Quality: " + raw.General.IndoorAirQuality,
		"Activity Modifications: " + raw.General.ActivityModifications,
		"Preventive Measures: " + raw.General.PreventiveMeasures,
		"Emergency Protocols: " + raw.General.EmergencyProtocols,
	}
	content.MedicationGuidance = []string{
		"Current Medications: " + raw.Medication.CurrentMedications,
		"Over The Counter: " + raw.Medication.OverTheCounter,
		"When To Seek Help: " + raw.Medication.WhenToSeekHelp,
		"Emergency Medications: " + raw.Medication.EmergencyMedications,
	}

	return content, nil
}
