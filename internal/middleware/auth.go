package middleware

import (
	"context"
	"strings"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/scrapdesk/admin-api/internal/models"
	"github.com/scrapdesk/admin-api/internal/services"
)

const SessionKey = "session"

// SessionStore is the lookup the middleware needs; the session service
// satisfies it.
type SessionStore interface {
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)
}

// Auth validates the bearer session token and loads the matching session row.
// A signed but revoked token (logout, upstream auth failure) is rejected the
// same as a forged one.
func Auth(jwtService *services.JWTService, sessions SessionStore) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Unauthorized("missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		if _, err := jwtService.ValidateSessionToken(parts[1]); err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		session, err := sessions.GetByTokenHash(c.Request.Context(), services.HashToken(parts[1]))
		if err != nil {
			c.Unauthorized("session expired, please log in again")
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

func GetSession(c *drift.Context) *models.Session {
	if v, ok := c.Get(SessionKey); ok {
		if session, ok := v.(*models.Session); ok {
			return session
		}
	}
	return nil
}
