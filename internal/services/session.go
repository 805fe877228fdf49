package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/scrapdesk/admin-api/internal/backend"
	"github.com/scrapdesk/admin-api/internal/database"
	"github.com/scrapdesk/admin-api/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionService is the server-side home for what the original dashboard kept
// in browser storage: the upstream token pair and the cached operator profile.
// Rows are keyed by the SHA-256 hash of the session token.
type SessionService struct {
	db *database.DB
}

func NewSessionService(db *database.DB) *SessionService {
	return &SessionService{db: db}
}

func (s *SessionService) Create(ctx context.Context, tokenHash string, creds backend.Credentials, user models.AdminUser, expiresAt time.Time) (*models.Session, error) {
	profile, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user profile: %w", err)
	}

	session := &models.Session{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		User:         user,
		ExpiresAt:    expiresAt,
	}
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO sessions (token_hash, access_token, refresh_token, user_profile, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, tokenHash, creds.AccessToken, creds.RefreshToken, profile, expiresAt).
		Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

func (s *SessionService) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	var (
		session models.Session
		profile []byte
	)
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, access_token, refresh_token, user_profile, expires_at, created_at, updated_at
		FROM sessions
		WHERE token_hash = $1 AND expires_at > NOW()
	`, tokenHash).Scan(
		&session.ID, &session.AccessToken, &session.RefreshToken,
		&profile, &session.ExpiresAt, &session.CreatedAt, &session.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if err := json.Unmarshal(profile, &session.User); err != nil {
		return nil, fmt.Errorf("failed to decode user profile: %w", err)
	}
	return &session, nil
}

// UpdateCredentials persists a rotated upstream token pair.
func (s *SessionService) UpdateCredentials(ctx context.Context, id uuid.UUID, creds backend.Credentials) error {
	_, err := s.db.Pool.Exec(ctx, `
		UPDATE sessions
		SET access_token = $1, refresh_token = $2, updated_at = NOW()
		WHERE id = $3
	`, creds.AccessToken, creds.RefreshToken, id)
	return err
}

// UpdateUser refreshes the cached operator profile after a profile edit.
func (s *SessionService) UpdateUser(ctx context.Context, id uuid.UUID, user models.AdminUser) error {
	profile, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user profile: %w", err)
	}
	_, err = s.db.Pool.Exec(ctx, `
		UPDATE sessions
		SET user_profile = $1, updated_at = NOW()
		WHERE id = $2
	`, profile, id)
	return err
}

func (s *SessionService) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (s *SessionService) DeleteExpired(ctx context.Context) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < NOW()`)
	return err
}

// CredentialsFor adapts a loaded session into the upstream client's credential
// source. Rotation updates both the row and the in-memory session so the rest
// of the request sees the fresh pair.
func (s *SessionService) CredentialsFor(session *models.Session) backend.CredentialSource {
	return &sessionCredentials{sessions: s, session: session}
}

// dropSessionOnAuthError deletes the session when the backend rejected its
// credentials terminally, forcing a fresh login. The original error is always
// returned.
func dropSessionOnAuthError(ctx context.Context, sessions *SessionService, session *models.Session, err error) error {
	if backend.IsAuthError(err) {
		_ = sessions.Delete(ctx, session.ID)
	}
	return err
}

type sessionCredentials struct {
	sessions *SessionService
	session  *models.Session
}

func (c *sessionCredentials) Credentials() backend.Credentials {
	return backend.Credentials{
		AccessToken:  c.session.AccessToken,
		RefreshToken: c.session.RefreshToken,
	}
}

func (c *sessionCredentials) Rotate(ctx context.Context, creds backend.Credentials) error {
	if err := c.sessions.UpdateCredentials(ctx, c.session.ID, creds); err != nil {
		return err
	}
	c.session.AccessToken = creds.AccessToken
	c.session.RefreshToken = creds.RefreshToken
	return nil
}
