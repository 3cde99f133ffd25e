package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// MockCategoryService implements service.CategoryService for testing
type MockCategoryService struct {
	CreateCategoryFn func(ctx context.Context, name, hexColor string) (*domain.Category, error)
	GetCategoryFn    func(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	ListCategoriesFn func(ctx context.Context) ([]*domain.Category, error)
	UpdateCategoryFn func(ctx context.Context, id uuid.UUID, input service.UpdateCategoryInput) (*domain.Category, error)
	DeleteCategoryFn func(ctx context.Context, id uuid.UUID) error

	Category   *domain.Category
	Categories []*domain.Category
	Err        error
}

var _ service.CategoryService = (*MockCategoryService)(nil)

// CreateCategory implements the service.CategoryService interface
func (m *MockCategoryService) CreateCategory(
	ctx context.Context,
	name, hexColor string,
) (*domain.Category, error) {
	if m.CreateCategoryFn != nil {
		return m.CreateCategoryFn(ctx, name, hexColor)
	}
	return m.Category, m.Err
}

// GetCategory implements the service.CategoryService interface
func (m *MockCategoryService) GetCategory(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Category, error) {
	if m.GetCategoryFn != nil {
		return m.GetCategoryFn(ctx, id)
	}
	return m.Category, m.Err
}

// ListCategories implements the service.CategoryService interface
func (m *MockCategoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if m.ListCategoriesFn != nil {
		return m.ListCategoriesFn(ctx)
	}
	return m.Categories, m.Err
}

// UpdateCategory implements the service.CategoryService interface
func (m *MockCategoryService) UpdateCategory(
	ctx context.Context,
	id uuid.UUID,
	input service.UpdateCategoryInput,
) (*domain.Category, error) {
	if m.UpdateCategoryFn != nil {
		return m.UpdateCategoryFn(ctx, id, input)
	}
	return m.Category, m.Err
}

// DeleteCategory implements the service.CategoryService interface
func (m *MockCategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if m.DeleteCategoryFn != nil {
		return m.DeleteCategoryFn(ctx, id)
	}
	return m.Err
}
