package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/breathesafe/breathesafe/internal/user"
)

func newTestService() (*Service, *user.InMemoryRepository) {
	repo := user.NewInMemoryRepository()
	return NewService(repo, newTestJWTService()), repo
}

func TestSignup(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	u, pair, err := svc.Signup(ctx, "Priya Sharma", "priya@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotNil(t, pair)

	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, "priya@example.com", u.Email)
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)

	stored, err := repo.GetByEmail(ctx, "priya@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "Priya Sharma", "priya@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, "Other Priya", "priya@example.com", "other-pass")
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	signed, _, err := svc.Signup(ctx, "Priya Sharma", "priya@example.com", "s3cret-pass")
	require.NoError(t, err)

	u, pair, err := svc.Login(ctx, "priya@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, signed.ID, u.ID)
	assert.NotEmpty(t, pair.AccessToken)

	claims, err := newTestJWTService().ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, signed.ID, claims.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "Priya Sharma", "priya@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "priya@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
