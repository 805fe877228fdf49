package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrapdesk/admin-api/internal/services"
)

func TestImageHandler_FailedThenLoaded(t *testing.T) {
	images := testImageService()
	handler := NewImageHandler(images)
	session := testSession()

	auth, token := sessionAuth(t, session)
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(auth)
	app.Post("/images/:key/failed", handler.MarkFailed)
	app.Post("/images/:key/loaded", handler.MarkLoaded)

	req := httptest.NewRequest(http.MethodPost, "/images/item-1-0/failed?kind=item", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, images.ItemImageFailed("item-1", 0))

	req = httptest.NewRequest(http.MethodPost, "/images/item-1-0/loaded?kind=item", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, images.ItemImageFailed("item-1", 0))
}

func TestImageHandler_UnknownKind(t *testing.T) {
	handler := NewImageHandler(services.NewImageService("http://localhost:5001"))
	session := testSession()

	auth, token := sessionAuth(t, session)
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(auth)
	app.Post("/images/:key/failed", handler.MarkFailed)

	req := httptest.NewRequest(http.MethodPost, "/images/12/failed?kind=banner", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
