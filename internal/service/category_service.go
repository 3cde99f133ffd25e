package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// UpdateCategoryInput carries a partial category update. Nil pointer fields
// leave the current value untouched.
type UpdateCategoryInput struct {
	Name     *string
	HexColor *string
}

// CategoryService provides category operations. Categories are shared across
// users; only the load bucket and task count vary with the tasks table.
type CategoryService interface {
	// CreateCategory creates a new category.
	CreateCategory(ctx context.Context, name, hexColor string) (*domain.Category, error)

	// GetCategory retrieves a category with its computed task count.
	// Returns store.ErrCategoryNotFound if it does not exist.
	GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	// ListCategories retrieves every category ordered by name.
	ListCategories(ctx context.Context) ([]*domain.Category, error)

	// UpdateCategory applies a partial update and returns the result.
	// Returns store.ErrCategoryNotFound if it does not exist.
	UpdateCategory(
		ctx context.Context,
		id uuid.UUID,
		input UpdateCategoryInput,
	) (*domain.Category, error)

	// DeleteCategory removes a category together with every task in it.
	// Returns store.ErrCategoryNotFound if it does not exist.
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type categoryServiceImpl struct {
	categoryStore store.CategoryStore
	logger        *slog.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryStore store.CategoryStore, logger *slog.Logger) CategoryService {
	if categoryStore == nil {
		panic("categoryStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &categoryServiceImpl{
		categoryStore: categoryStore,
		logger:        logger.With(slog.String("component", "category_service")),
	}
}

// CreateCategory implements CategoryService.CreateCategory
func (s *categoryServiceImpl) CreateCategory(
	ctx context.Context,
	name, hexColor string,
) (*domain.Category, error) {
	category, err := domain.NewCategory(name, hexColor)
	if err != nil {
		return nil, err
	}

	if err := s.categoryStore.Create(ctx, category); err != nil {
		return nil, wrapServiceError("create_category", "failed to save category", err,
			domain.ErrValidation)
	}

	s.logger.Info("category created", slog.String("category_id", category.ID.String()))
	return category, nil
}

// GetCategory implements CategoryService.GetCategory
func (s *categoryServiceImpl) GetCategory(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Category, error) {
	category, err := s.categoryStore.GetByID(ctx, id)
	if err != nil {
		return nil, wrapServiceError("get_category", "failed to retrieve category", err,
			store.ErrCategoryNotFound)
	}
	return category, nil
}

// ListCategories implements CategoryService.ListCategories
func (s *categoryServiceImpl) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryStore.List(ctx)
	if err != nil {
		return nil, wrapServiceError("list_categories", "failed to list categories", err)
	}
	return categories, nil
}

// UpdateCategory implements CategoryService.UpdateCategory
func (s *categoryServiceImpl) UpdateCategory(
	ctx context.Context,
	id uuid.UUID,
	input UpdateCategoryInput,
) (*domain.Category, error) {
	category, err := s.categoryStore.GetByID(ctx, id)
	if err != nil {
		return nil, wrapServiceError("update_category", "failed to retrieve category", err,
			store.ErrCategoryNotFound)
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.HexColor != nil {
		category.HexColor = *input.HexColor
	}

	if err := s.categoryStore.Update(ctx, category); err != nil {
		return nil, wrapServiceError("update_category", "failed to save category", err,
			domain.ErrValidation, store.ErrCategoryNotFound)
	}

	s.logger.Info("category updated", slog.String("category_id", id.String()))
	return category, nil
}

// DeleteCategory implements CategoryService.DeleteCategory
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryStore.Delete(ctx, id); err != nil {
		return wrapServiceError("delete_category", "failed to delete category", err,
			store.ErrCategoryNotFound)
	}

	s.logger.Info("category deleted with its tasks", slog.String("category_id", id.String()))
	return nil
}
