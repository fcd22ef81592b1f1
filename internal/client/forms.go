package client

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Form limits mirrored from the browser client.
const (
	MinPasswordLength    = 6
	MinProjectNameLength = 2
)

var (
	ErrEmailInvalid      = errors.New("enter a valid email address")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters")
	ErrNameRequired      = errors.New("name is required")
	ErrProjectNameLength = errors.New("project name must be at least 2 characters")
	ErrTitleRequired     = errors.New("title is required")
)

// ValidateLogin checks the login form before it is submitted.
func ValidateLogin(email, password string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return ErrEmailInvalid
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateRegistration checks the registration form.
func ValidateRegistration(email, password, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	return ValidateLogin(email, password)
}

// ValidateProjectName checks the project form.
func ValidateProjectName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < MinProjectNameLength {
		return ErrProjectNameLength
	}
	return nil
}
