package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := NewSessionToken("test-secret", 42, "a@x.com", "A", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	require.NotEmpty(t, tok.SID)

	claims, err := ParseSessionToken("test-secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "A", claims.Name)
	assert.Equal(t, tok.SID, claims.SID)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	tok, err := NewSessionToken("test-secret", 42, "a@x.com", "A", 60)
	require.NoError(t, err)

	_, err = ParseSessionToken("other-secret", tok.Token)
	assert.Error(t, err)
}

func TestSessionTokenExpired(t *testing.T) {
	tok, err := NewSessionToken("test-secret", 42, "a@x.com", "A", -1)
	require.NoError(t, err)

	_, err = ParseSessionToken("test-secret", tok.Token)
	assert.Error(t, err)
}

func TestSessionTokenGarbage(t *testing.T) {
	_, err := ParseSessionToken("test-secret", "not-a-jwt")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)

	assert.True(t, VerifyPassword(hash, "secret"))
	assert.False(t, VerifyPassword(hash, "Secret"))
	assert.False(t, VerifyPassword(hash, ""))
}

// An out-of-range cost falls back to the bcrypt default instead of failing.
func TestPasswordHashingClampsCost(t *testing.T) {
	hash, err := HashPassword("secret", 99)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "secret"))
}
