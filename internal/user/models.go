// Package user provides user account and contact management.
//
// # PII Considerations
//
// This package stores the minimum contact data the alert pipeline needs:
//
// Data Stored:
//   - UserID: Internal identifier (not PII, randomly generated)
//   - FullName, Email: Account identity
//   - Phone: SMS delivery target, E.164 format
//   - Location: Free-text place the user wants monitored (e.g.
//     "Mangalagiri, Guntur, Andhra Pradesh")
//
// Data NOT Stored:
//   - Location history (forecasts are fetched on demand, never persisted
//     as a trail)
//   - Message bodies (alerts store numeric readings, not SMS text)
//
// Health assessment data lives in the health package with its own
// retention rules.
package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
type User struct {
	// ID is the unique user identifier (format: usr_XXXX).
	ID string

	// FullName is the user's display name.
	FullName string

	// Email is the unique login identifier.
	Email string

	// PasswordHash is the bcrypt hash of the login password. Never
	// serialized to API responses.
	PasswordHash string

	// Phone is the SMS delivery number in E.164 format.
	// Empty means the user has not opted into SMS alerts.
	Phone string

	// Location is the free-text place to monitor. Empty means the user
	// has not picked a location yet.
	Location string

	// CreatedAt is when the user was created.
	CreatedAt time.Time

	// UpdatedAt is when the user was last updated.
	UpdatedAt time.Time
}

// NewID returns a fresh user identifier.
func NewID() string {
	return "usr_" + uuid.New().String()[:22]
}

// Alertable reports whether the user can receive SMS alerts: both a
// phone number and a monitored location are required.
func (u *User) Alertable() bool {
	return strings.TrimSpace(u.Phone) != "" && strings.TrimSpace(u.Location) != ""
}

// NewUser returns a user with a fresh ID and creation timestamps.
func NewUser(fullName, email string) *User {
	now := time.Now()
	return &User{
		ID:        NewID(),
		FullName:  fullName,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
