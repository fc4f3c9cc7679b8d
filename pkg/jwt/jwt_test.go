package jwt

import (
	"testing"
	"time"

	"github.com/radha-2006/CliniqueManagementSystem/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        secret,
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestJWTService_AccessTokenRoundtrip(t *testing.T) {
	svc := newTestService("test-secret")
	userID := uuid.New()

	signed, tokenID, err := svc.GenerateAccessToken(userID, "house@clinic.test", 2)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "house@clinic.test", claims.Email)
	assert.Equal(t, 2, claims.RoleID)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestJWTService_RefreshTokenType(t *testing.T) {
	svc := newTestService("test-secret")

	signed, _, err := svc.GenerateRefreshToken(uuid.New(), "jane@clinic.test", 3)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestJWTService_UniqueTokenIDs(t *testing.T) {
	svc := newTestService("test-secret")
	userID := uuid.New()

	_, first, err := svc.GenerateAccessToken(userID, "jane@clinic.test", 3)
	require.NoError(t, err)
	_, second, err := svc.GenerateAccessToken(userID, "jane@clinic.test", 3)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	signed, _, err := newTestService("right-secret").GenerateAccessToken(uuid.New(), "jane@clinic.test", 3)
	require.NoError(t, err)

	_, err = newTestService("wrong-secret").ValidateToken(signed)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := newTestService("test-secret")

	_, err := svc.ValidateToken("not.a.jwt")
	assert.Error(t, err)
}
