package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/scrapdesk/admin-api/internal/backend"
	"github.com/scrapdesk/admin-api/internal/models"
	"github.com/scrapdesk/admin-api/internal/workflow"
)

// MockSessionStore mocks the session lookup used by the auth middleware
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

// MockAuthService mocks the AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *models.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.Session), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, session *models.Session, oldPassword, newPassword, confirmPassword string) error {
	args := m.Called(ctx, session, oldPassword, newPassword, confirmPassword)
	return args.Error(0)
}

func (m *MockAuthService) GetProfile(ctx context.Context, session *models.Session) (*models.AdminUser, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminUser), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, session *models.Session, name, phone string) (*models.AdminUser, error) {
	args := m.Called(ctx, session, name, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminUser), args.Error(1)
}

// MockCategoryService mocks the CategoryService
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, session *models.Session) ([]models.Category, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, session *models.Session, id string) (*models.Category, error) {
	args := m.Called(ctx, session, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, session *models.Session, input backend.CategoryInput) (*models.Category, error) {
	args := m.Called(ctx, session, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, session *models.Session, id string, update backend.CategoryUpdate) (*models.Category, error) {
	args := m.Called(ctx, session, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, session *models.Session, id string) error {
	args := m.Called(ctx, session, id)
	return args.Error(0)
}

func (m *MockCategoryService) ToggleActive(ctx context.Context, session *models.Session, id string, active bool) (*models.Category, error) {
	args := m.Called(ctx, session, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

// MockRequestService mocks the RequestService
type MockRequestService struct {
	mock.Mock
}

func (m *MockRequestService) List(ctx context.Context, session *models.Session, params backend.ListRequestsParams) (*backend.RequestPage, error) {
	args := m.Called(ctx, session, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.RequestPage), args.Error(1)
}

func (m *MockRequestService) Get(ctx context.Context, session *models.Session, id string) (*models.CollectionRequest, error) {
	args := m.Called(ctx, session, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollectionRequest), args.Error(1)
}

func (m *MockRequestService) UpdateStatus(ctx context.Context, session *models.Session, id string, target workflow.Status, reason string) (*models.CollectionRequest, error) {
	args := m.Called(ctx, session, id, target, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollectionRequest), args.Error(1)
}

func (m *MockRequestService) UpdateWeights(ctx context.Context, session *models.Session, id string, updates []backend.ItemWeightUpdate) (*models.CollectionRequest, error) {
	args := m.Called(ctx, session, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollectionRequest), args.Error(1)
}

// MockImageService mocks the ImageService
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) ResolveURL(ref models.ImageRef) string {
	args := m.Called(ref)
	return args.String(0)
}

func (m *MockImageService) MarkFailed(kind, key string) error {
	args := m.Called(kind, key)
	return args.Error(0)
}

func (m *MockImageService) MarkLoaded(kind, key string) error {
	args := m.Called(kind, key)
	return args.Error(0)
}

func (m *MockImageService) CategoryIconFailed(categoryID string) bool {
	args := m.Called(categoryID)
	return args.Bool(0)
}

func (m *MockImageService) ItemImageFailed(itemID string, index int) bool {
	args := m.Called(itemID, index)
	return args.Bool(0)
}
