package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/scrapdesk/admin-api/internal/backend"
	"github.com/scrapdesk/admin-api/internal/models"
	"github.com/scrapdesk/admin-api/internal/workflow"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 8

// AuthService drives the operator sign-in lifecycle: upstream login, session
// issuance, logout and password reset. All input validation happens here,
// before any upstream call.
type AuthService struct {
	client   *backend.Client
	sessions *SessionService
	jwt      *JWTService
}

func NewAuthService(client *backend.Client, sessions *SessionService, jwt *JWTService) *AuthService {
	return &AuthService{client: client, sessions: sessions, jwt: jwt}
}

// Login authenticates against the upstream backend and opens a session. The
// returned token is what the client presents on subsequent calls; the session
// row holds the upstream credentials it stands for.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", nil, &workflow.ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailPattern.MatchString(email) {
		return "", nil, &workflow.ValidationError{Field: "email", Message: "invalid email format"}
	}
	if password == "" {
		return "", nil, &workflow.ValidationError{Field: "password", Message: "password is required"}
	}

	creds, user, err := s.client.Login(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.jwt.GenerateSessionToken(user.Email)
	if err != nil {
		return "", nil, err
	}

	session, err := s.sessions.Create(ctx, HashToken(token), creds, *user, time.Now().Add(s.jwt.Expiry()))
	if err != nil {
		return "", nil, err
	}
	return token, session, nil
}

// Logout tells the backend best-effort and always drops the session. A dead
// upstream must not leave the operator unable to sign out.
func (s *AuthService) Logout(ctx context.Context, session *models.Session) error {
	_ = s.client.Logout(ctx, s.sessions.CredentialsFor(session))
	return s.sessions.Delete(ctx, session.ID)
}

func (s *AuthService) ResetPassword(ctx context.Context, session *models.Session, oldPassword, newPassword, confirmPassword string) error {
	if oldPassword == "" {
		return &workflow.ValidationError{Field: "old_password", Message: "current password is required"}
	}
	if newPassword == "" {
		return &workflow.ValidationError{Field: "new_password", Message: "new password is required"}
	}
	if len(newPassword) < minPasswordLength {
		return &workflow.ValidationError{Field: "new_password", Message: "password must be at least 8 characters"}
	}
	if newPassword != confirmPassword {
		return &workflow.ValidationError{Field: "confirm_password", Message: "passwords do not match"}
	}

	err := s.client.ResetPassword(ctx, s.sessions.CredentialsFor(session), oldPassword, newPassword, session.User.Email)
	return dropSessionOnAuthError(ctx, s.sessions, session, err)
}

func (s *AuthService) GetProfile(ctx context.Context, session *models.Session) (*models.AdminUser, error) {
	user, err := s.client.GetProfile(ctx, s.sessions.CredentialsFor(session))
	if err != nil {
		return nil, dropSessionOnAuthError(ctx, s.sessions, session, err)
	}
	if err := s.sessions.UpdateUser(ctx, session.ID, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, session *models.Session, name, phone string) (*models.AdminUser, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &workflow.ValidationError{Field: "name", Message: "name is required"}
	}

	user, err := s.client.UpdateProfile(ctx, s.sessions.CredentialsFor(session), backend.ProfileInput{
		Name:  name,
		Phone: strings.TrimSpace(phone),
	})
	if err != nil {
		return nil, dropSessionOnAuthError(ctx, s.sessions, session, err)
	}
	if err := s.sessions.UpdateUser(ctx, session.ID, *user); err != nil {
		return nil, err
	}
	return user, nil
}
