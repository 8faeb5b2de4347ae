package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute)

	token, err := m.GenerateAccessToken("user-1", "owner")
	require.NoError(t, err)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "owner", claims.Role)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute)
	other := NewJWTManager("other-secret", time.Minute)

	token, err := m.GenerateAccessToken("user-1", "renter")
	require.NoError(t, err)

	_, err = other.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, err := m.GenerateAccessToken("user-1", "renter")
	require.NoError(t, err)

	_, err = m.ParseAndValidate(token)
	assert.Error(t, err)
}
