package user

import (
	"context"
	"errors"
	"sync"
)

// Repository errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// Repository defines the interface for user data persistence.
type Repository interface {
	// Get retrieves a user by ID.
	Get(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create creates a new user.
	Create(ctx context.Context, user *User) error

	// Update updates an existing user.
	Update(ctx context.Context, user *User) error

	// Delete deletes a user and all associated data.
	Delete(ctx context.Context, id string) error

	// ListAlertable returns every user with both a phone number and a
	// monitored location set. Order is unspecified.
	ListAlertable(ctx context.Context) ([]*User, error)
}

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for development and testing. Production uses the
// database-backed implementation.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewInMemoryRepository creates a new in-memory user repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users: make(map[string]*User),
	}
}

// Get retrieves a user by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	// Return a copy to prevent mutation
	return copyUser(u), nil
}

// GetByEmail retrieves a user by email.
func (r *InMemoryRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, ErrUserNotFound
}

// Create creates a new user.
func (r *InMemoryRepository) Create(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrEmailTaken
		}
	}

	r.users[user.ID] = copyUser(user)
	return nil
}

// Update updates an existing user.
func (r *InMemoryRepository) Update(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return ErrUserNotFound
	}

	r.users[user.ID] = copyUser(user)
	return nil
}

// Delete deletes a user.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

// ListAlertable returns every user eligible for SMS alerts.
func (r *InMemoryRepository) ListAlertable(_ context.Context) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*User
	for _, u := range r.users {
		if u.Alertable() {
			out = append(out, copyUser(u))
		}
	}
	return out, nil
}

// copyUser creates a copy of a user.
func copyUser(u *User) *User {
	if u == nil {
		return nil
	}
	userCopy := *u
	return &userCopy
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
