package models

import "github.com/breathesafe/breathesafe/internal/health"

// ConditionInput is one chronic condition in an assessment submission.
type ConditionInput struct {
	Name          string   `json:"name"`
	Severity      string   `json:"severity,omitempty"`
	DiagnosisYear int      `json:"diagnosisYear,omitempty"`
	Medications   []string `json:"medications,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// AssessmentInput is the request body for POST /v1/me/assessments.
type AssessmentInput struct {
	Age        int              `json:"age"`
	Conditions []ConditionInput `json:"conditions,omitempty"`
	Symptoms   []string         `json:"symptoms,omitempty"`
	Other      string           `json:"other,omitempty"`
}

// Condition is one chronic condition in an assessment response.
type Condition struct {
	Name          string   `json:"name"`
	Severity      string   `json:"severity"`
	DiagnosisYear int      `json:"diagnosisYear,omitempty"`
	Medications   []string `json:"medications,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// Assessment is one health assessment snapshot.
type Assessment struct {
	AssessmentID string      `json:"assessmentId"`
	Age          int         `json:"age"`
	Conditions   []Condition `json:"conditions"`
	Symptoms     []string    `json:"symptoms"`
	Other        string      `json:"other,omitempty"`
	AssessedAt   Timestamp   `json:"assessedAt"`
}

// AssessmentList is the response body for GET /v1/me/assessments.
type AssessmentList struct {
	Items []Assessment `json:"items"`
}

// NewAssessment converts a domain assessment into the API representation.
func NewAssessment(a *health.Assessment) Assessment {
	conditions := make([]Condition, len(a.Conditions))
	for i, c := range a.Conditions {
		conditions[i] = Condition{
			Name:          c.Name,
			Severity:      string(c.Severity),
			DiagnosisYear: c.DiagnosisYear,
			Medications:   c.Medications,
			Notes:         c.Notes,
		}
	}
	return Assessment{
		AssessmentID: a.ID,
		Age:          a.Age,
		Conditions:   conditions,
		Symptoms:     a.Symptoms,
		Other:        a.Other,
		AssessedAt:   Timestamp(a.AssessedAt),
	}
}

// DomainConditions converts submitted conditions into domain conditions.
func (in AssessmentInput) DomainConditions() []health.Condition {
	if len(in.Conditions) == 0 {
		return nil
	}
	conditions := make([]health.Condition, len(in.Conditions))
	for i, c := range in.Conditions {
		conditions[i] = health.Condition{
			Name:          c.Name,
			Severity:      health.Severity(c.Severity),
			DiagnosisYear: c.DiagnosisYear,
			Medications:   c.Medications,
			Notes:         c.Notes,
		}
	}
	return conditions
}
