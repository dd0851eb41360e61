package models

import "github.com/breathesafe/breathesafe/internal/user"

// Me represents the authenticated user's account summary.
type Me struct {
	UserID    string    `json:"userId"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Location  string    `json:"location,omitempty"`
	Alertable bool      `json:"alertable"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// MeInput is the request body for updating account settings. Nil fields
// are left untouched; empty strings clear the field.
type MeInput struct {
	FullName *string `json:"fullName,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
}

// NewMe converts a domain user into the API representation. The password
// hash never crosses this boundary.
func NewMe(u *user.User) Me {
	return Me{
		UserID:    u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		Location:  u.Location,
		Alertable: u.Alertable(),
		CreatedAt: Timestamp(u.CreatedAt),
		UpdatedAt: Timestamp(u.UpdatedAt),
	}
}
