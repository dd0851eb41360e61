package health

import (
	"context"
	"errors"
	"time"
)

// Service provides assessment operations.
type Service struct {
	repo Repository
}

// NewService creates a new health service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SubmitInput carries a new assessment submission.
type SubmitInput struct {
	Age        int
	Conditions []Condition
	Symptoms   []string
	Other      string
}

// Submit stores a new assessment for the user. Ungraded conditions
// default to moderate severity.
func (s *Service) Submit(ctx context.Context, userID string, input SubmitInput) (*Assessment, error) {
	now := time.Now()

	conditions := make([]Condition, len(input.Conditions))
	for i, c := range input.Conditions {
		if !c.Severity.Valid() {
			c.Severity = SeverityModerate
		}
		conditions[i] = c
	}

	a := &Assessment{
		ID:         NewID(),
		UserID:     userID,
		Age:        input.Age,
		Conditions: conditions,
		Symptoms:   input.Symptoms,
		Other:      input.Other,
		AssessedAt: now,
		CreatedAt:  now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Latest returns the user's most recent assessment.
func (s *Service) Latest(ctx context.Context, userID string) (*Assessment, error) {
	return s.repo.LatestByUser(ctx, userID)
}

// List returns all of a user's assessments, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]*Assessment, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ProfileFor returns the risk profile for a user. A missing assessment
// is not an error: it yields the default profile (age 30, no reported
// symptoms or conditions) so alerting never blocks on health data.
func (s *Service) ProfileFor(ctx context.Context, userID string) (RiskProfile, error) {
	a, err := s.repo.LatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrAssessmentNotFound) {
			return DefaultRiskProfile(), nil
		}
		return RiskProfile{}, err
	}
	return a.Profile(), nil
}
