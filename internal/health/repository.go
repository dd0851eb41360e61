package health

import (
	"context"
	"errors"
	"sync"
)

// Repository errors.
var (
	ErrAssessmentNotFound = errors.New("assessment not found")
)

// Repository defines the interface for assessment persistence.
type Repository interface {
	// Create stores a new assessment.
	Create(ctx context.Context, a *Assessment) error

	// LatestByUser returns the user's most recent assessment by
	// AssessedAt, or ErrAssessmentNotFound if none exists.
	LatestByUser(ctx context.Context, userID string) (*Assessment, error)

	// ListByUser returns all of a user's assessments, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Assessment, error)
}

// InMemoryRepository is an in-memory implementation of Repository.
type InMemoryRepository struct {
	mu     sync.RWMutex
	byUser map[string][]*Assessment
}

// NewInMemoryRepository creates a new in-memory assessment repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byUser: make(map[string][]*Assessment),
	}
}

// Create stores a new assessment.
func (r *InMemoryRepository) Create(_ context.Context, a *Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byUser[a.UserID] = append(r.byUser[a.UserID], copyAssessment(a))
	return nil
}

// LatestByUser returns the user's most recent assessment.
func (r *InMemoryRepository) LatestByUser(_ context.Context, userID string) (*Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.byUser[userID]
	if len(list) == 0 {
		return nil, ErrAssessmentNotFound
	}

	latest := list[0]
	for _, a := range list[1:] {
		if a.AssessedAt.After(latest.AssessedAt) {
			latest = a
		}
	}
	return copyAssessment(latest), nil
}

// ListByUser returns all of a user's assessments, newest first.
func (r *InMemoryRepository) ListByUser(_ context.Context, userID string) ([]*Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.byUser[userID]
	out := make([]*Assessment, len(list))
	for i, a := range list {
		out[i] = copyAssessment(a)
	}

	// Insertion order is oldest first, reverse it.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// copyAssessment creates a deep copy of an assessment.
func copyAssessment(a *Assessment) *Assessment {
	if a == nil {
		return nil
	}

	assessmentCopy := *a
	assessmentCopy.Symptoms = append([]string(nil), a.Symptoms...)
	assessmentCopy.Conditions = make([]Condition, len(a.Conditions))
	for i, c := range a.Conditions {
		assessmentCopy.Conditions[i] = c
		assessmentCopy.Conditions[i].Medications = append([]string(nil), c.Medications...)
	}
	return &assessmentCopy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
