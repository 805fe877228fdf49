package services

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/scrapdesk/admin-api/internal/backend"
	"github.com/scrapdesk/admin-api/internal/models"
	"github.com/scrapdesk/admin-api/internal/workflow"
)

// maxIconSize caps uploaded icon files at 5 MB, matching the form's limit.
const maxIconSize = 5 << 20

var allowedIconExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".webp": true,
}

type CategoryService struct {
	client   *backend.Client
	sessions *SessionService
	images   *ImageService
}

func NewCategoryService(client *backend.Client, sessions *SessionService, images *ImageService) *CategoryService {
	return &CategoryService{client: client, sessions: sessions, images: images}
}

func (s *CategoryService) List(ctx context.Context, session *models.Session) ([]models.Category, error) {
	categories, err := s.client.ListCategories(ctx, s.sessions.CredentialsFor(session))
	if err != nil {
		return nil, dropSessionOnAuthError(ctx, s.sessions, session, err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, session *models.Session, id string) (*models.Category, error) {
	if id == "" {
		return nil, &workflow.ValidationError{Field: "id", Message: "category id is required"}
	}
	category, err := s.client.GetCategory(ctx, s.sessions.CredentialsFor(session), id)
	if err != nil {
		return nil, dropSessionOnAuthError(ctx, s.sessions, session, err)
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, session *models.Session, input backend.CategoryInput) (*models.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, &workflow.ValidationError{Field: "name", Message: "category name is required"}
	}
	if input.Icon == nil {
		return nil, &workflow.ValidationError{Field: "icon", Message: "icon image is required"}
	}
	if err := validateIcon(input.Icon); err != nil {
		return nil, err
	}

	category, err := s.client.CreateCategory(ctx, s.sessions.CredentialsFor(session), input)
	if err != nil {
		return nil, dropSessionOnAuthError(ctx, s.sessions, session, err)
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, session *models.Session, id string, update backend.CategoryUpdate) (*models.Category, error) {
	if id == "" {
		return nil, &workflow.ValidationError{Field: "id", Message: "category id is required"}
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, &workflow.ValidationError{Field: "name", Message: "category name cannot be empty"}
	}
	if update.Icon != nil {
		if err := validateIcon(update.Icon); err != nil {
			return nil, err
		}
	}

	category, err := s.client.UpdateCategory(ctx, s.sessions.CredentialsFor(session), id, update)
	if err != nil {
		return nil, dropSessionOnAuthError(ctx, s.sessions, session, err)
	}
	if update.Icon != nil || update.RemoveIcon {
		s.images.ClearCategoryIcon(id)
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, session *models.Session, id string) error {
	if id == "" {
		return &workflow.ValidationError{Field: "id", Message: "category id is required"}
	}
	if err := s.client.DeleteCategory(ctx, s.sessions.CredentialsFor(session), id); err != nil {
		return dropSessionOnAuthError(ctx, s.sessions, session, err)
	}
	s.images.ClearCategoryIcon(id)
	return nil
}

func (s *CategoryService) ToggleActive(ctx context.Context, session *models.Session, id string, active bool) (*models.Category, error) {
	if id == "" {
		return nil, &workflow.ValidationError{Field: "id", Message: "category id is required"}
	}
	category, err := s.client.SetCategoryActive(ctx, s.sessions.CredentialsFor(session), id, active)
	if err != nil {
		return nil, dropSessionOnAuthError(ctx, s.sessions, session, err)
	}
	return category, nil
}

func validateIcon(icon *backend.IconFile) error {
	ext := strings.ToLower(filepath.Ext(icon.Filename))
	if !allowedIconExtensions[ext] {
		return &workflow.ValidationError{Field: "icon", Message: "icon must be an image file"}
	}
	if len(icon.Content) == 0 {
		return &workflow.ValidationError{Field: "icon", Message: "icon file is empty"}
	}
	if len(icon.Content) > maxIconSize {
		return &workflow.ValidationError{Field: "icon", Message: "icon must be 5MB or smaller"}
	}
	return nil
}
