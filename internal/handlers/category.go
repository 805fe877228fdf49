package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/scrapdesk/admin-api/internal/backend"
	"github.com/scrapdesk/admin-api/internal/middleware"
	"github.com/scrapdesk/admin-api/pkg/dto"
)

// maxCategoryFormSize bounds the multipart form held in memory; icon files
// have their own 5 MB limit in the service.
const maxCategoryFormSize = 8 << 20

type CategoryHandler struct {
	categoryService CategoryServiceInterface
	imageService    ImageServiceInterface
}

func NewCategoryHandler(categoryService CategoryServiceInterface, imageService ImageServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, imageService: imageService}
}

func (h *CategoryHandler) List(c *drift.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		c.Unauthorized("not authenticated")
		return
	}

	categories, err := h.categoryService.List(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		resp = append(resp, toCategoryResponse(&categories[i], h.imageService))
	}
	_ = c.JSON(200, resp)
}

func (h *CategoryHandler) Get(c *drift.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		c.Unauthorized("not authenticated")
		return
	}

	category, err := h.categoryService.Get(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, toCategoryResponse(category, h.imageService))
}

func (h *CategoryHandler) Create(c *drift.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := c.Request.ParseMultipartForm(maxCategoryFormSize); err != nil {
		c.BadRequest("invalid multipart form")
		return
	}

	input := backend.CategoryInput{
		Name:        c.Request.FormValue("name"),
		Description: c.Request.FormValue("description"),
		IsActive:    true,
	}
	if raw := c.Request.FormValue("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			c.BadRequest("is_active must be a boolean")
			return
		}
		input.IsActive = active
	}

	icon, err := readIconFile(c.Request)
	if err != nil {
		c.BadRequest("invalid icon file")
		return
	}
	input.Icon = icon

	category, err := h.categoryService.Create(c.Request.Context(), session, input)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(201, toCategoryResponse(category, h.imageService))
}

func (h *CategoryHandler) Update(c *drift.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := c.Request.ParseMultipartForm(maxCategoryFormSize); err != nil {
		c.BadRequest("invalid multipart form")
		return
	}

	var update backend.CategoryUpdate
	if values, ok := formField(c.Request, "name"); ok {
		update.Name = &values
	}
	if values, ok := formField(c.Request, "description"); ok {
		update.Description = &values
	}
	if raw, ok := formField(c.Request, "is_active"); ok {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			c.BadRequest("is_active must be a boolean")
			return
		}
		update.IsActive = &active
	}

	icon, err := readIconFile(c.Request)
	if err != nil {
		c.BadRequest("invalid icon file")
		return
	}
	update.Icon = icon
	if icon == nil {
		// An explicitly empty icon field means "remove the current icon".
		if raw, ok := formField(c.Request, "icon"); ok && raw == "" {
			update.RemoveIcon = true
		}
	}

	category, err := h.categoryService.Update(c.Request.Context(), session, c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, toCategoryResponse(category, h.imageService))
}

func (h *CategoryHandler) Delete(c *drift.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), session, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, dto.MessageResponse{Message: "category deleted"})
}

func (h *CategoryHandler) ToggleStatus(c *drift.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.ToggleCategoryRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	category, err := h.categoryService.ToggleActive(c.Request.Context(), session, c.Param("id"), req.IsActive)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, toCategoryResponse(category, h.imageService))
}

func formField(r *http.Request, name string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	values, ok := r.MultipartForm.Value[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func readIconFile(r *http.Request) (*backend.IconFile, error) {
	file, header, err := r.FormFile("icon")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &backend.IconFile{Filename: header.Filename, Content: content}, nil
}
