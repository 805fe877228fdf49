package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one operator sign-in. It holds the upstream credentials the
// original dashboard kept in browser storage; token rotation and logout go
// through explicit store operations rather than ad-hoc reads.
type Session struct {
	ID           uuid.UUID `json:"id"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	User         AdminUser `json:"user"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
