package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/scrapdesk/admin-api/internal/models"
	"github.com/scrapdesk/admin-api/internal/services"
	"github.com/scrapdesk/admin-api/tests/testutil"
)

func newTestJWTService() *services.JWTService {
	return services.NewJWTService("test-secret-key", time.Hour)
}

func TestAuth_MissingAuthorizationHeader(t *testing.T) {
	app := drift.New()
	app.Use(Auth(newTestJWTService(), new(testutil.MockSessionStore)))
	app.Get("/protected", func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing authorization header")
}

func TestAuth_InvalidAuthorizationFormat(t *testing.T) {
	app := drift.New()
	app.Use(Auth(newTestJWTService(), new(testutil.MockSessionStore)))
	app.Get("/protected", func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token some-token")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid authorization header format")
}

func TestAuth_InvalidToken(t *testing.T) {
	app := drift.New()
	app.Use(Auth(newTestJWTService(), new(testutil.MockSessionStore)))
	app.Get("/protected", func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired token")
}

func TestAuth_RevokedSession(t *testing.T) {
	jwtSvc := newTestJWTService()
	token, err := jwtSvc.GenerateSessionToken("admin@example.com")
	require.NoError(t, err)

	// The token is valid but its session row is gone, e.g. after logout.
	store := new(testutil.MockSessionStore)
	store.On("GetByTokenHash", mock.Anything, services.HashToken(token)).
		Return(nil, services.ErrSessionNotFound)

	app := drift.New()
	app.Use(Auth(jwtSvc, store))
	app.Get("/protected", func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "session expired")
}

func TestAuth_ValidTokenLoadsSession(t *testing.T) {
	jwtSvc := newTestJWTService()
	token, err := jwtSvc.GenerateSessionToken("admin@example.com")
	require.NoError(t, err)

	session := &models.Session{
		ID:          uuid.New(),
		AccessToken: "upstream-access",
		User:        models.AdminUser{Email: "admin@example.com"},
	}
	store := new(testutil.MockSessionStore)
	store.On("GetByTokenHash", mock.Anything, services.HashToken(token)).Return(session, nil)

	app := drift.New()
	app.Use(Auth(jwtSvc, store))
	app.Get("/protected", func(c *drift.Context) {
		loaded := GetSession(c)
		require.NotNil(t, loaded)
		assert.Equal(t, session.ID, loaded.ID)
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	store.AssertExpectations(t)
}
