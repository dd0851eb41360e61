package models

// SignupRequest is the request body for POST /v1/auth/signup.
type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned on successful signup or login.
type AuthResponse struct {
	User        Me        `json:"user"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   Timestamp `json:"expiresAt"`
}
