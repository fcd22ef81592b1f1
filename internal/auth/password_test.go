package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	ok, err := CheckPassword(hash, "password123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckPassword_EmptyHashNeverMatches(t *testing.T) {
	ok, err := CheckPassword("", "tasktracker-dummy-password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckPassword_CorruptHash(t *testing.T) {
	_, err := CheckPassword("not-a-bcrypt-hash", "password123")
	require.Error(t, err)
}
