package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/breathesafe/breathesafe/internal/user"
)

// bcryptCost trades hashing latency for resistance to offline cracking.
const bcryptCost = 12

// Service errors.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Service handles signup and login.
type Service struct {
	users user.Repository
	jwt   *JWTService
}

// NewService creates an auth service.
func NewService(users user.Repository, jwt *JWTService) *Service {
	return &Service{users: users, jwt: jwt}
}

// TokenPair is an issued access token and its expiry.
type TokenPair struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Signup registers a new account and issues a token.
func (s *Service) Signup(ctx context.Context, fullName, email, password string) (*user.User, *TokenPair, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	u := user.NewUser(fullName, email)
	u.PasswordHash = string(hash)

	if err := s.users.Create(ctx, u); err != nil {
		return nil, nil, err
	}

	pair, err := s.issue(u.ID)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// Login verifies credentials and issues a token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, *TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issue(u.ID)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

func (s *Service) issue(userID string) (*TokenPair, error) {
	token, expiresAt, err := s.jwt.GenerateAccessToken(userID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: token, ExpiresAt: expiresAt}, nil
}
