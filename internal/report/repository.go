package report

import (
	"context"
	"sort"
	"sync"
)

// Repository defines the interface for report persistence.
type Repository interface {
	// Create stores a new report.
	Create(ctx context.Context, r *Report) error

	// Get retrieves a report by ID.
	Get(ctx context.Context, id string) (*Report, error)

	// ListByUser returns a user's reports, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]*Report, error)
}

// InMemoryRepository is an in-memory implementation of Repository.
type InMemoryRepository struct {
	mu      sync.RWMutex
	reports map[string]*Report
}

// NewInMemoryRepository creates a new in-memory report repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		reports: make(map[string]*Report),
	}
}

// Create stores a new report.
func (r *InMemoryRepository) Create(_ context.Context, rep *Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reportCopy := *rep
	r.reports[rep.ID] = &reportCopy
	return nil
}

// Get retrieves a report by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rep, ok := r.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	reportCopy := *rep
	return &reportCopy, nil
}

// ListByUser returns a user's reports, newest first.
func (r *InMemoryRepository) ListByUser(_ context.Context, userID string, limit int) ([]*Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Report
	for _, rep := range r.reports {
		if rep.UserID == userID {
			reportCopy := *rep
			out = append(out, &reportCopy)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
