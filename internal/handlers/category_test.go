package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/scrapdesk/admin-api/internal/backend"
	"github.com/scrapdesk/admin-api/internal/models"
	"github.com/scrapdesk/admin-api/internal/services"
	"github.com/scrapdesk/admin-api/pkg/dto"
	"github.com/scrapdesk/admin-api/tests/testutil"
)

func testImageService() *services.ImageService {
	return services.NewImageService("http://localhost:5001")
}

func TestCategoryHandler_List(t *testing.T) {
	mockCategories := new(testutil.MockCategoryService)
	images := testImageService()
	handler := NewCategoryHandler(mockCategories, images)
	session := testSession()

	categories := []models.Category{
		{
			ID:        "12",
			Name:      "Metal",
			Icon:      models.NewImageRef("metal.png"),
			IsActive:  true,
			CreatedAt: time.Now(),
		},
	}
	mockCategories.On("List", mock.Anything, session).Return(categories, nil)

	auth, token := sessionAuth(t, session)
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(auth)
	app.Get("/categories", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, "http://localhost:5001/uploads/category-icons/metal.png", response[0].IconURL)
	assert.False(t, response[0].IconFailed)

	mockCategories.AssertExpectations(t)
}

func TestCategoryHandler_List_FlagsFailedIcons(t *testing.T) {
	mockCategories := new(testutil.MockCategoryService)
	images := testImageService()
	handler := NewCategoryHandler(mockCategories, images)
	session := testSession()

	require.NoError(t, images.MarkFailed(services.ImageKindCategory, "12"))
	mockCategories.On("List", mock.Anything, session).
		Return([]models.Category{{ID: "12", Name: "Metal", Icon: models.NewImageRef("metal.png")}}, nil)

	auth, token := sessionAuth(t, session)
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(auth)
	app.Get("/categories", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	var response []dto.CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.True(t, response[0].IconFailed)
}

func categoryForm(t *testing.T, fields map[string]string, iconName string, iconContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if iconName != "" {
		part, err := writer.CreateFormFile("icon", iconName)
		require.NoError(t, err)
		_, err = part.Write(iconContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestCategoryHandler_Create(t *testing.T) {
	mockCategories := new(testutil.MockCategoryService)
	handler := NewCategoryHandler(mockCategories, testImageService())
	session := testSession()

	created := &models.Category{ID: "12", Name: "Metal", Icon: models.NewImageRef("metal.png"), IsActive: true}
	mockCategories.On("Create", mock.Anything, session, backend.CategoryInput{
		Name:        "Metal",
		Description: "Scrap metal",
		IsActive:    true,
		Icon:        &backend.IconFile{Filename: "metal.png", Content: []byte("png-bytes")},
	}).Return(created, nil)

	auth, token := sessionAuth(t, session)
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(auth)
	app.Post("/categories", handler.Create)

	body, contentType := categoryForm(t, map[string]string{
		"name":        "Metal",
		"description": "Scrap metal",
	}, "metal.png", []byte("png-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/categories", body)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockCategories.AssertExpectations(t)
}

func TestCategoryHandler_Update_RemoveIcon(t *testing.T) {
	mockCategories := new(testutil.MockCategoryService)
	handler := NewCategoryHandler(mockCategories, testImageService())
	session := testSession()

	name := "Metal"
	updated := &models.Category{ID: "12", Name: "Metal"}
	mockCategories.On("Update", mock.Anything, session, "12", backend.CategoryUpdate{
		Name:       &name,
		RemoveIcon: true,
	}).Return(updated, nil)

	auth, token := sessionAuth(t, session)
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(auth)
	app.Put("/categories/:id", handler.Update)

	body, contentType := categoryForm(t, map[string]string{
		"name": "Metal",
		"icon": "",
	}, "", nil)

	req := httptest.NewRequest(http.MethodPut, "/categories/12", body)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockCategories.AssertExpectations(t)
}

func TestCategoryHandler_Delete_UpstreamConflict(t *testing.T) {
	mockCategories := new(testutil.MockCategoryService)
	handler := NewCategoryHandler(mockCategories, testImageService())
	session := testSession()

	mockCategories.On("Delete", mock.Anything, session, "12").
		Return(&backend.ServerError{Status: 409, Message: "category has active requests"})

	auth, token := sessionAuth(t, session)
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(auth)
	app.Delete("/categories/:id", handler.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/categories/12", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "category has active requests")
}

func TestCategoryHandler_ToggleStatus(t *testing.T) {
	mockCategories := new(testutil.MockCategoryService)
	handler := NewCategoryHandler(mockCategories, testImageService())
	session := testSession()

	toggled := &models.Category{ID: "12", Name: "Metal", IsActive: false}
	mockCategories.On("ToggleActive", mock.Anything, session, "12", false).Return(toggled, nil)

	auth, token := sessionAuth(t, session)
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(auth)
	app.Patch("/categories/:id/status", handler.ToggleStatus)

	body, _ := json.Marshal(dto.ToggleCategoryRequest{IsActive: false})
	req := httptest.NewRequest(http.MethodPatch, "/categories/12/status", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.IsActive)
}
