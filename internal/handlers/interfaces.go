package handlers

import (
	"context"

	"github.com/scrapdesk/admin-api/internal/backend"
	"github.com/scrapdesk/admin-api/internal/models"
	"github.com/scrapdesk/admin-api/internal/workflow"
)

// AuthServiceInterface defines the methods used by handlers from AuthService
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (string, *models.Session, error)
	Logout(ctx context.Context, session *models.Session) error
	ResetPassword(ctx context.Context, session *models.Session, oldPassword, newPassword, confirmPassword string) error
	GetProfile(ctx context.Context, session *models.Session) (*models.AdminUser, error)
	UpdateProfile(ctx context.Context, session *models.Session, name, phone string) (*models.AdminUser, error)
}

// CategoryServiceInterface defines the methods used by handlers from CategoryService
type CategoryServiceInterface interface {
	List(ctx context.Context, session *models.Session) ([]models.Category, error)
	Get(ctx context.Context, session *models.Session, id string) (*models.Category, error)
	Create(ctx context.Context, session *models.Session, input backend.CategoryInput) (*models.Category, error)
	Update(ctx context.Context, session *models.Session, id string, update backend.CategoryUpdate) (*models.Category, error)
	Delete(ctx context.Context, session *models.Session, id string) error
	ToggleActive(ctx context.Context, session *models.Session, id string, active bool) (*models.Category, error)
}

// RequestServiceInterface defines the methods used by handlers from RequestService
type RequestServiceInterface interface {
	List(ctx context.Context, session *models.Session, params backend.ListRequestsParams) (*backend.RequestPage, error)
	Get(ctx context.Context, session *models.Session, id string) (*models.CollectionRequest, error)
	UpdateStatus(ctx context.Context, session *models.Session, id string, target workflow.Status, reason string) (*models.CollectionRequest, error)
	UpdateWeights(ctx context.Context, session *models.Session, id string, updates []backend.ItemWeightUpdate) (*models.CollectionRequest, error)
}

// ImageServiceInterface defines the methods used by handlers from ImageService
type ImageServiceInterface interface {
	ResolveURL(ref models.ImageRef) string
	MarkFailed(kind, key string) error
	MarkLoaded(kind, key string) error
	CategoryIconFailed(categoryID string) bool
	ItemImageFailed(itemID string, index int) bool
}
