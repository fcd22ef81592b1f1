package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tasktracker/internal/common"
	"tasktracker/internal/models"
)

// NormalizeEmail lower-cases and trims an address before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser inserts a user with an already hashed password. A second
// account with the same email yields common.ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, email, name, passwordHash string) (models.User, error) {
	u := models.User{
		ID:           uuid.NewString(),
		Email:        NormalizeEmail(email),
		Name:         strings.TrimSpace(name),
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
	}
	if u.Email == "" || u.Name == "" || u.PasswordHash == "" {
		return models.User{}, common.Invalid("all fields are required")
	}

	_, err := s.exec(ctx, s.db, `INSERT INTO users(id, email, password, name, created_at) VALUES(?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, fmt.Errorf("user %s: %w", u.Email, common.ErrDuplicate)
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// GetUserByEmail fetches a user including the password hash.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.queryRow(ctx, s.db, `SELECT id, email, password, name, created_at FROM users WHERE email = ?`, NormalizeEmail(email)).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, common.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
