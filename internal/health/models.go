// Package health manages self-reported health assessments.
//
// Assessments are append-only: each submission is a new record and the
// most recent one drives alert personalization and report generation.
// Medical history is sensitive, so nothing here is ever sent off-host
// except as input to the user's own reports and alerts.
package health

import (
	"time"

	"github.com/google/uuid"
)

// Severity grades a chronic condition.
type Severity string

const (
	SeverityMild     Severity = "Mild"
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
)

// Valid reports whether the severity is one of the known grades.
func (s Severity) Valid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

// Condition is a self-reported chronic condition.
type Condition struct {
	// Name is free text ("Asthma", "COPD stage 2").
	Name string

	// Severity defaults to Moderate when the user does not grade it.
	Severity Severity

	// DiagnosisYear is optional, zero when unknown.
	DiagnosisYear int

	// Medications the user takes for this condition.
	Medications []string

	// Notes is optional free text.
	Notes string
}

// Assessment is one self-reported health snapshot.
type Assessment struct {
	// ID is the unique assessment identifier (format: has_XXXX).
	ID string

	// UserID is the owning user.
	UserID string

	// Age in years at assessment time.
	Age int

	// Conditions are the reported chronic conditions.
	Conditions []Condition

	// Symptoms are current symptoms as free text.
	Symptoms []string

	// Other is free-text context that fits no structured field.
	Other string

	// AssessedAt is when the user filled in the assessment.
	AssessedAt time.Time

	// CreatedAt is when the record was stored.
	CreatedAt time.Time
}

// DefaultAge is assumed when a user has never filed an assessment.
const DefaultAge = 30

// NewID returns a fresh assessment identifier.
func NewID() string {
	return "has_" + uuid.New().String()[:22]
}

// ConditionNames returns just the condition names, for the risk engine.
func (a *Assessment) ConditionNames() []string {
	if len(a.Conditions) == 0 {
		return nil
	}
	names := make([]string, len(a.Conditions))
	for i, c := range a.Conditions {
		names[i] = c.Name
	}
	return names
}

// RiskProfile is the slice of an assessment the risk engine consumes.
type RiskProfile struct {
	Age        int
	Symptoms   []string
	Conditions []string
}

// DefaultRiskProfile is used for users with no assessment on file.
func DefaultRiskProfile() RiskProfile {
	return RiskProfile{Age: DefaultAge}
}

// Profile projects the assessment onto the risk engine's inputs.
func (a *Assessment) Profile() RiskProfile {
	age := a.Age
	if age <= 0 {
		age = DefaultAge
	}
	return RiskProfile{
		Age:        age,
		Symptoms:   a.Symptoms,
		Conditions: a.ConditionNames(),
	}
}
