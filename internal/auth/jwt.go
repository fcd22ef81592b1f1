// Package auth issues and verifies the signed session tokens and hashes
// passwords.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tasktracker/internal/common"
	"tasktracker/internal/models"
)

// Claims is the token payload: the standard claims plus the public user
// fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// User returns the public user encoded in the claims.
func (c *Claims) User() models.PublicUser {
	return models.PublicUser{ID: c.UserID, Email: c.Email, Name: c.Name}
}

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Issuer signs and verifies HS256 tokens with a server-held secret.
// A zero ttl issues tokens without an expiry.
type Issuer struct {
	secret  []byte
	ttl     time.Duration
	revoked RevocationChecker
	now     func() time.Time
}

// NewIssuer constructs an Issuer. revoked may be nil, in which case no
// token is ever considered revoked.
func NewIssuer(secret []byte, ttl time.Duration, revoked RevocationChecker) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("empty token secret")
	}
	return &Issuer{secret: secret, ttl: ttl, revoked: revoked, now: time.Now}, nil
}

// Issue creates a signed token for the user.
func (i *Issuer) Issue(user models.PublicUser) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Subject:  user.ID,
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}
	if i.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token signature, expiry and revocation state.
func (i *Issuer) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, common.ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	if i.revoked != nil && claims.ID != "" {
		revoked, err := i.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, common.ErrTokenRevoked
		}
	}
	return claims, nil
}

// ExpiresAtTime returns the expiry of the claims, or nil when the token never
// expires.
func (c *Claims) ExpiresAtTime() *time.Time {
	if c.ExpiresAt == nil {
		return nil
	}
	t := c.ExpiresAt.Time
	return &t
}
