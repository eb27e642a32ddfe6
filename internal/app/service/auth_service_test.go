package service

import (
	"context"
	"testing"
	"time"

	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/deviceshop/deviceshop-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func (e *testEnv) authService() AuthService {
	return NewAuthService(e.users, e.blacklist, testSecret, time.Hour, 24*time.Hour, "admin@example.com")
}

func TestAuthService_Register(t *testing.T) {
	env := setupEnv(t)
	svc := env.authService()

	user, tokens, err := svc.Register("Ann", " Ann@Example.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	_, _, err = svc.Register("Ann again", "ann@example.com", "secret2")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.ErrorIs(t, err, ErrValidation)

	count, err := env.users.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := setupEnv(t).authService()

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"blank name", " ", "a@example.com", "secret1"},
		{"bad email", "Ann", "not-an-email", "secret1"},
		{"short password", "Ann", "a@example.com", "123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_AdminEmailGetsAdminRole(t *testing.T) {
	svc := setupEnv(t).authService()

	user, tokens, err := svc.Register("Boss", "ADMIN@example.com", "secret1")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())

	claims, err := util.ValidateToken(tokens.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestAuthService_Login(t *testing.T) {
	svc := setupEnv(t).authService()
	_, _, err := svc.Register("Ann", "ann@example.com", "secret1")
	require.NoError(t, err)

	user, tokens, err := svc.Login("ANN@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.NotEmpty(t, tokens.RefreshToken)

	_, _, err = svc.Login("ann@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.Login("nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrEmailNotRegistered)
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	env := setupEnv(t)
	svc := env.authService()
	_, tokens, err := svc.Register("Ann", "ann@example.com", "secret1")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, svc.Logout(ctx, tokens.AccessToken))

	claims, err := util.ValidateToken(tokens.AccessToken, testSecret)
	require.NoError(t, err)
	revoked, err := env.blacklist.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.ErrorIs(t, svc.Logout(ctx, "garbage"), ErrInvalidToken)
}

func TestAuthService_GetUserByID(t *testing.T) {
	env := setupEnv(t)
	svc := env.authService()
	user := env.user(t, "ann@example.com")

	found, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = svc.GetUserByID(user.ID + 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_RegisterDeletedAccountEmail(t *testing.T) {
	env := setupEnv(t)
	svc := env.authService()

	user, _, err := svc.Register("Ann", "ann@example.com", "secret1")
	require.NoError(t, err)
	_, err = env.users.Delete(user.ID)
	require.NoError(t, err)

	_, _, err = svc.Register("Ann", "ann@example.com", "secret1")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	_, _, err = svc.Login("ann@example.com", "secret1")
	assert.ErrorIs(t, err, ErrEmailNotRegistered)
}

func TestAuthService_NoAdminEmailPromotesNobody(t *testing.T) {
	env := setupEnv(t)
	svc := NewAuthService(env.users, env.blacklist, testSecret, time.Hour, 24*time.Hour, "")

	user, _, err := svc.Register("Admin", "admin@deviceshop.local", "secret1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
}
