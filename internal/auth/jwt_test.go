package auth

import (
	"testing"
	"time"

	"tokobagus/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWT() *config.JWTConfig {
	return &config.JWTConfig{Secret: "test-secret", Expiry: 24 * time.Hour, Issuer: "test"}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testJWT()
	tok, err := GenerateToken(cfg, 1, "admin")
	require.NoError(t, err)

	claims, err := ParseToken(cfg, tok)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.ID)
	assert.Equal(t, "admin", claims.Username)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := GenerateToken(testJWT(), 1, "admin")
	require.NoError(t, err)

	other := testJWT()
	other.Secret = "other"
	_, err = ParseToken(other, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	cfg := testJWT()
	cfg.Expiry = -time.Minute
	tok, err := GenerateToken(cfg, 1, "admin")
	require.NoError(t, err)

	_, err = ParseToken(cfg, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbageAndNoneAlg(t *testing.T) {
	cfg := testJWT()
	_, err := ParseToken(cfg, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ID: 1, Username: "admin"})
	s, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseToken(cfg, s)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
