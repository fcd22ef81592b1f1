package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, ValidateLogin("a@example.com", "secret1"))
	assert.ErrorIs(t, ValidateLogin("not-an-email", "secret1"), ErrEmailInvalid)
	assert.ErrorIs(t, ValidateLogin("", "secret1"), ErrEmailInvalid)
	assert.ErrorIs(t, ValidateLogin("a@example.com", "12345"), ErrPasswordTooShort)
}

func TestValidateRegistration(t *testing.T) {
	assert.NoError(t, ValidateRegistration("a@example.com", "secret1", "Alice"))
	assert.ErrorIs(t, ValidateRegistration("a@example.com", "secret1", "  "), ErrNameRequired)
	assert.ErrorIs(t, ValidateRegistration("a@example.com", "short", "Alice"), ErrPasswordTooShort)
}

func TestValidateProjectName(t *testing.T) {
	assert.NoError(t, ValidateProjectName("Go"))
	assert.ErrorIs(t, ValidateProjectName("G"), ErrProjectNameLength)
	assert.ErrorIs(t, ValidateProjectName("  G  "), ErrProjectNameLength)
}
