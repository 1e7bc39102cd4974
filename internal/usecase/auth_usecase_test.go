package usecase

import (
	"context"
	"testing"

	"docspot/internal/delivery/dto"
	"docspot/internal/domain/entity"
	"docspot/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, h *harness, email string) *dto.UserResponse {
	t.Helper()
	user, err := h.auth.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Ana",
		Email:    email,
		Password: "secret123",
		Phone:    "555-0100",
	})
	require.NoError(t, err)
	return user
}

func TestRegister(t *testing.T) {
	h := newHarness()

	user := register(t, h, " Ana@Example.COM ")
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, entity.RolePatient, user.Role)
	assert.False(t, user.IsDoctor)

	stored, _ := h.users.FindByID(context.Background(), user.ID)
	assert.NotEqual(t, "secret123", stored.Password)

	_, err := h.auth.Register(context.Background(), &dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	user := register(t, h, "ana@example.com")

	_, err := h.auth.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = h.auth.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	tokens, err := h.auth.Login(ctx, &dto.LoginRequest{Email: "ANA@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, int64(60), tokens.ExpiresIn)

	claims, err := h.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, entity.RolePatient, claims.Role)

	ok, _ := h.tokens.Exists(ctx, user.ID, jwt.AccessToken, claims.TokenID)
	assert.True(t, ok)
}

func TestRefreshToken_RotatesAndPicksUpNewRole(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	user := register(t, h, "ana@example.com")

	tokens, err := h.auth.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = h.users.UpdateRole(ctx, user.ID, entity.RoleDoctor, true)
	require.NoError(t, err)

	refreshed, err := h.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)

	claims, err := h.jwt.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDoctor, claims.Role)

	_, err = h.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = h.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: refreshed.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_RevokesBothTokens(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	user := register(t, h, "ana@example.com")

	tokens, err := h.auth.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	access, _ := h.jwt.ValidateToken(tokens.AccessToken)
	refresh, _ := h.jwt.ValidateToken(tokens.RefreshToken)

	require.NoError(t, h.auth.Logout(ctx, user.ID, access.TokenID, &dto.LogoutRequest{RefreshToken: tokens.RefreshToken}))

	ok, _ := h.tokens.Exists(ctx, user.ID, jwt.AccessToken, access.TokenID)
	assert.False(t, ok)
	ok, _ = h.tokens.Exists(ctx, user.ID, jwt.RefreshToken, refresh.TokenID)
	assert.False(t, ok)
}

func TestGetCurrentUser(t *testing.T) {
	h := newHarness()
	user := register(t, h, "ana@example.com")

	me, err := h.auth.GetCurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.Name)
}

func TestSeedAdmin(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	created, err := h.auth.SeedAdmin(ctx, &dto.SeedAdminRequest{Name: "Root", Email: "Root@Clinic.io", Password: "changeme1"})
	require.NoError(t, err)
	assert.Equal(t, "root@clinic.io", created.Email)
	assert.Equal(t, entity.RoleAdmin, created.Role)

	tokens, err := h.auth.Login(ctx, &dto.LoginRequest{Email: "root@clinic.io", Password: "changeme1"})
	require.NoError(t, err)
	claims, err := h.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
}

func TestSeedAdmin_PromotesExistingAccount(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	user := register(t, h, "ana@example.com")

	tokens, err := h.auth.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	claims, err := h.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)

	promoted, err := h.auth.SeedAdmin(ctx, &dto.SeedAdminRequest{Name: "Ana", Email: "ana@example.com", Password: "newsecret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, promoted.ID)
	assert.Equal(t, entity.RoleAdmin, promoted.Role)

	exists, err := h.tokens.Exists(ctx, user.ID, jwt.AccessToken, claims.TokenID)
	require.NoError(t, err)
	assert.False(t, exists, "sessions issued before promotion are revoked")

	_, err = h.auth.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
