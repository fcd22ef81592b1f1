package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when a login names an unknown account so
// both failure paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("tasktracker-dummy-password"), bcrypt.DefaultCost)

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash. An empty hash is
// checked against a dummy value and never matches.
func CheckPassword(hash, password string) (bool, error) {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("compare password: %w", err)
	}
	return true, nil
}
