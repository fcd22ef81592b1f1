package storage

import (
	"context"
	"fmt"
	"time"
)

// RevokeToken records a token id as no longer valid. Revoking the same id
// twice is not an error.
func (s *Store) RevokeToken(ctx context.Context, tokenID, userID string, expiresAt *time.Time) error {
	_, err := s.exec(ctx, s.db, `INSERT INTO revoked_tokens(token_id, user_id, expires_at, revoked_at) VALUES(?, ?, ?, ?)
        ON CONFLICT(token_id) DO NOTHING`, tokenID, userID, nullTime(expiresAt), s.now())
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID was revoked.
func (s *Store) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var n int
	if err := s.queryRow(ctx, s.db, `SELECT COUNT(1) FROM revoked_tokens WHERE token_id = ?`, tokenID).Scan(&n); err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return n > 0, nil
}

// PurgeRevoked drops revocations whose tokens have expired anyway.
func (s *Store) PurgeRevoked(ctx context.Context) (int64, error) {
	res, err := s.exec(ctx, s.db, `DELETE FROM revoked_tokens WHERE expires_at IS NOT NULL AND expires_at < ?`, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge revocations: %w", err)
	}
	return res.RowsAffected()
}
