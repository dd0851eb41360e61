package user

import (
	"context"
	"time"
)

// Service provides user account operations.
type Service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpdateInput carries partial account updates. Nil fields are untouched;
// an empty string clears the field (opting out of SMS alerts when phone
// or location is cleared).
type UpdateInput struct {
	FullName *string
	Phone    *string
	Location *string
}

// Register creates a new account. Email must be unique.
func (s *Service) Register(ctx context.Context, fullName, email string) (*User, error) {
	u := NewUser(fullName, email)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Get retrieves a user by ID.
func (s *Service) Get(ctx context.Context, userID string) (*User, error) {
	return s.repo.Get(ctx, userID)
}

// Update applies partial updates to an account.
func (s *Service) Update(ctx context.Context, userID string, input UpdateInput) (*User, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		u.FullName = *input.FullName
	}
	if input.Phone != nil {
		u.Phone = *input.Phone
	}
	if input.Location != nil {
		u.Location = *input.Location
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes a user and all associated data.
func (s *Service) Delete(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}

// ListAlertable returns every user eligible for SMS alerts.
func (s *Service) ListAlertable(ctx context.Context) ([]*User, error) {
	return s.repo.ListAlertable(ctx)
}
