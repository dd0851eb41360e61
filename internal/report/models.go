// Package report generates personalized air-quality health reports from
// the user's latest assessment and current AQI, using a generative
// language model coerced into a fixed JSON shape.
package report

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Service errors.
var (
	// ErrAssessmentRequired means the user has never filed an assessment.
	ErrAssessmentRequired = errors.New("health assessment required")

	// ErrAssessmentStale means the latest assessment is older than the
	// freshness window.
	ErrAssessmentStale = errors.New("health assessment older than 30 days")

	// ErrGenerationFailed means the model returned something that could
	// not be coerced into a report.
	ErrGenerationFailed = errors.New("report generation failed")

	// ErrReportNotFound is returned for unknown report IDs.
	ErrReportNotFound = errors.New("report not found")
)

// AssessmentMaxAge is how recent an assessment must be to drive a report.
const AssessmentMaxAge = 30 * 24 * time.Hour

// UserProfile summarizes who the report is for.
type UserProfile struct {
	Age       int    `json:"age"`
	AgeGroup  string `json:"ageGroup"`
	RiskLevel string `json:"riskLevel"`
}

// OutdoorActivity is the report's outdoor-activity verdict.
type OutdoorActivity struct {
	IsSafe         bool   `json:"isSafe"`
	Recommendation string `json:"recommendation"`
}

// MaskAdvice is the report's mask guidance.
type MaskAdvice struct {
	IsRecommended bool   `json:"isRecommended"`
	Type          string `json:"type"`
	Usage         string `json:"usage"`
}

// Content is the normalized report body. Model output arrives as nested
// objects; normalization flattens the recommendation sections into
// plain string lists so clients render them uniformly.
type Content struct {
	UserProfile            UserProfile     `json:"userProfile"`
	AgeRecommendations     []string        `json:"ageSpecificRecommendations"`
	HealthRecommendations  []string        `json:"healthSpecificRecommendations"`
	GeneralRecommendations []string        `json:"generalRecommendations"`
	MedicationGuidance     []string        `json:"medicationGuidance"`
	OutdoorActivity        OutdoorActivity `json:"outdoorActivitySafety"`
	MaskAdvice             MaskAdvice      `json:"maskRecommendations"`
}

// Report is one generated health report.
type Report struct {
	// ID is the unique report identifier (format: rpt_XXXX).
	ID string

	// UserID is the owning user.
	UserID string

	// Location is the place the AQI reading describes.
	Location string

	// AQI is the reading the report was generated against.
	AQI float64

	// AQILabel is the category label for that reading.
	AQILabel string

	// Content is the normalized report body.
	Content Content

	// CreatedAt is when the report was generated.
	CreatedAt time.Time
}

// NewID returns a fresh report identifier.
func NewID() string {
	return "rpt_" + uuid.New().String()[:22]
}
