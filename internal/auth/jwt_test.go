package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTAuthenticator_RoundTrip(t *testing.T) {
	a := NewJWTAuthenticator("secret", "sashambhu", "idp")

	tok, err := a.GenerateToken("counter@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := a.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "counter@example.com", claims.Email)
}

func TestJWTAuthenticator_Rejects(t *testing.T) {
	a := NewJWTAuthenticator("secret", "sashambhu", "idp")

	expired, err := a.GenerateToken("a@example.com", -time.Minute)
	require.NoError(t, err)
	_, err = a.ValidateToken(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	otherSecret, err := NewJWTAuthenticator("other", "sashambhu", "idp").GenerateToken("a@example.com", time.Hour)
	require.NoError(t, err)
	_, err = a.ValidateToken(otherSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	otherAud, err := NewJWTAuthenticator("secret", "elsewhere", "idp").GenerateToken("a@example.com", time.Hour)
	require.NoError(t, err)
	_, err = a.ValidateToken(otherAud)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidAudience)

	noEmail, err := a.GenerateToken("  ", time.Hour)
	require.NoError(t, err)
	_, err = a.ValidateToken(noEmail)
	assert.ErrorIs(t, err, ErrMissingEmail)

	_, err = a.ValidateToken("not-a-token")
	assert.Error(t, err)
}
