package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("superadminpassword")
	require.NoError(t, err)
	assert.NotEqual(t, "superadminpassword", hash)

	assert.True(t, CheckPasswordHash("superadminpassword", hash))
	assert.False(t, CheckPasswordHash("wrongpassword", hash))
}

func TestGenerateAndParseJWT(t *testing.T) {
	SetSecret("test-secret")

	token, err := GenerateJWT("admin@example.com", "admin", "admin@example.com", "SITE-01", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "admin@example.com", claims.UserID)
	assert.Equal(t, "SITE-01", claims.SiteID)
}

func TestParseTokenRejectsBadInput(t *testing.T) {
	SetSecret("test-secret")

	_, err := ParseToken("not-a-token")
	assert.Error(t, err)

	// Token ký bằng secret khác không qua được.
	token, err := GenerateJWT("a@b.com", "admin", "a@b.com", "", time.Hour)
	require.NoError(t, err)
	SetSecret("another-secret")
	_, err = ParseToken(token)
	assert.Error(t, err)

	SetSecret("test-secret")
}

func TestExpiredTokenIsRejected(t *testing.T) {
	SetSecret("test-secret")

	claims := &JWTClaims{
		Email: "a@b.com",
		Role:  "employee",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JwtSecret)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}
