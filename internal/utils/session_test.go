package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("WXYZ", "Bob", secret)
	require.NoError(t, err)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "WXYZ", claims.RoomCode)
	assert.Equal(t, "Bob", claims.DisplayName)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("WXYZ", "Bob", []byte("secret-a"))
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("secret-b"))
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", []byte("secret"))
	assert.Error(t, err)
}
