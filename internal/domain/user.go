package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an application user as supplied by the identity layer.
type User struct {
	ID    uuid.UUID
	Email string
	Name  string
	Image *string
	// PasswordHash is nil for accounts created through the emailed
	// sign-in link. Never exposed over the transport layer.
	PasswordHash *string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Author holds the minimal owner display fields joined into list and
// detail reads.
type Author struct {
	ID    uuid.UUID
	Name  string
	Image *string
}

// DisplayAuthor converts a full user to its display projection.
func (u *User) DisplayAuthor() Author {
	return Author{ID: u.ID, Name: u.Name, Image: u.Image}
}

// SignInToken is a single-use emailed sign-in token. Only its SHA-256
// hash is stored.
type SignInToken struct {
	ID         uuid.UUID
	Email      string
	TokenHash  string
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

// IsConsumed returns true if the token was already used.
func (t *SignInToken) IsConsumed() bool {
	return t.ConsumedAt != nil
}

// IsExpired returns true if the token has expired relative to now.
func (t *SignInToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
