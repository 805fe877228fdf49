package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/scrapdesk/admin-api/internal/backend"
	"github.com/scrapdesk/admin-api/internal/middleware"
	"github.com/scrapdesk/admin-api/internal/models"
	"github.com/scrapdesk/admin-api/internal/services"
	"github.com/scrapdesk/admin-api/internal/workflow"
	"github.com/scrapdesk/admin-api/pkg/dto"
	"github.com/scrapdesk/admin-api/tests/testutil"
)

func newTestJWTService() *services.JWTService {
	return services.NewJWTService("test-secret-key", time.Hour)
}

func testSession() *models.Session {
	return &models.Session{
		ID:           uuid.New(),
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         models.AdminUser{ID: "7", Name: "Admin", Email: "admin@example.com"},
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

// sessionAuth builds the auth middleware backed by a stub session lookup and
// returns a bearer token it accepts for the given session.
func sessionAuth(t *testing.T, session *models.Session) (drift.HandlerFunc, string) {
	t.Helper()
	jwtSvc := newTestJWTService()
	token, err := jwtSvc.GenerateSessionToken(session.User.Email)
	require.NoError(t, err)

	store := new(testutil.MockSessionStore)
	store.On("GetByTokenHash", mock.Anything, services.HashToken(token)).Return(session, nil)

	return middleware.Auth(jwtSvc, store), token
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mockAuth := new(testutil.MockAuthService)
	handler := NewAuthHandler(mockAuth)
	session := testSession()

	mockAuth.On("Login", mock.Anything, "admin@example.com", "password123").
		Return("session-token", session, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/login", handler.Login)

	body, _ := json.Marshal(dto.LoginRequest{Email: "admin@example.com", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "session-token", response.Token)
	assert.Equal(t, "Admin", response.User.Name)

	mockAuth.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockAuth := new(testutil.MockAuthService)
	handler := NewAuthHandler(mockAuth)

	mockAuth.On("Login", mock.Anything, "admin@example.com", "wrong").
		Return("", nil, &backend.ServerError{Status: 401, Message: "invalid credentials"})

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/login", handler.Login)

	body, _ := json.Marshal(dto.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestAuthHandler_Login_ValidationError(t *testing.T) {
	mockAuth := new(testutil.MockAuthService)
	handler := NewAuthHandler(mockAuth)

	mockAuth.On("Login", mock.Anything, "bad", "x").
		Return("", nil, &workflow.ValidationError{Field: "email", Message: "invalid email format"})

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/login", handler.Login)

	body, _ := json.Marshal(dto.LoginRequest{Email: "bad", Password: "x"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email format")
}

func TestAuthHandler_Login_BackendDown(t *testing.T) {
	mockAuth := new(testutil.MockAuthService)
	handler := NewAuthHandler(mockAuth)

	mockAuth.On("Login", mock.Anything, "admin@example.com", "password123").
		Return("", nil, &backend.NetworkError{})

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/login", handler.Login)

	body, _ := json.Marshal(dto.LoginRequest{Email: "admin@example.com", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	mockAuth := new(testutil.MockAuthService)
	handler := NewAuthHandler(mockAuth)
	session := testSession()

	mockAuth.On("Logout", mock.Anything, session).Return(nil)

	auth, token := sessionAuth(t, session)
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(auth)
	app.Post("/auth/logout", handler.Logout)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockAuth.AssertExpectations(t)
}

func TestAuthHandler_Logout_NoToken(t *testing.T) {
	handler := NewAuthHandler(new(testutil.MockAuthService))

	auth, _ := sessionAuth(t, testSession())
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(auth)
	app.Post("/auth/logout", handler.Logout)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	mockAuth := new(testutil.MockAuthService)
	handler := NewAuthHandler(mockAuth)
	session := testSession()

	mockAuth.On("ResetPassword", mock.Anything, session, "oldpass12", "newpass12", "newpass12").Return(nil)

	auth, token := sessionAuth(t, session)
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(auth)
	app.Post("/auth/reset-password", handler.ResetPassword)

	body, _ := json.Marshal(dto.ResetPasswordRequest{
		OldPassword:     "oldpass12",
		NewPassword:     "newpass12",
		ConfirmPassword: "newpass12",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/reset-password", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockAuth.AssertExpectations(t)
}

func TestAuthHandler_GetProfile(t *testing.T) {
	mockAuth := new(testutil.MockAuthService)
	handler := NewAuthHandler(mockAuth)
	session := testSession()

	mockAuth.On("GetProfile", mock.Anything, session).Return(&session.User, nil)

	auth, token := sessionAuth(t, session)
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(auth)
	app.Get("/profile", handler.GetProfile)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "admin@example.com", response.Email)
}
