package alert

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// Repository errors.
var (
	ErrAlertNotFound = errors.New("alert not found")
)

// Repository defines the interface for alert persistence.
type Repository interface {
	// Create stores a new alert record, initially unsent.
	Create(ctx context.Context, a *Alert) error

	// MarkSent flips the alert for (userID, forecastAt) to sent and
	// stamps the delivery time.
	MarkSent(ctx context.Context, userID string, forecastAt time.Time, sentAt time.Time) error

	// ListByUser returns a user's alerts, newest forecast hour first.
	ListByUser(ctx context.Context, userID string, limit int) ([]*Alert, error)
}

// InMemoryRepository is an in-memory implementation of Repository.
type InMemoryRepository struct {
	mu     sync.RWMutex
	alerts []*Alert
}

// NewInMemoryRepository creates a new in-memory alert repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Create stores a new alert record.
func (r *InMemoryRepository) Create(_ context.Context, a *Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	alertCopy := *a
	r.alerts = append(r.alerts, &alertCopy)
	return nil
}

// MarkSent flips the alert for (userID, forecastAt) to sent.
func (r *InMemoryRepository) MarkSent(_ context.Context, userID string, forecastAt time.Time, sentAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.alerts {
		if a.UserID == userID && a.ForecastAt.Equal(forecastAt) {
			a.SMSSent = true
			sentCopy := sentAt
			a.SMSSentAt = &sentCopy
			return nil
		}
	}
	return ErrAlertNotFound
}

// ListByUser returns a user's alerts, newest forecast hour first.
func (r *InMemoryRepository) ListByUser(_ context.Context, userID string, limit int) ([]*Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Alert
	for _, a := range r.alerts {
		if a.UserID == userID {
			alertCopy := *a
			out = append(out, &alertCopy)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ForecastAt.After(out[j].ForecastAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
