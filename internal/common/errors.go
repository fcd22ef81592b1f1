// Package common defines the sentinel errors shared by the storage, auth
// and server layers. Callers should match them with errors.Is.
package common

import "errors"

var (
	// storage errors
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")

	ErrValidation = errors.New("validation error")

	// auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
)

// ValidationError carries a message suitable for the client and matches
// ErrValidation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid returns a ValidationError with the given message.
func Invalid(msg string) error {
	return &ValidationError{Msg: msg}
}
