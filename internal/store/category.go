package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
// Task counts are computed by aggregation on every read, never stored.
type CategoryStore interface {
	// Create saves a new category to the store.
	// Returns validation errors from the domain Category if data is invalid.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by its unique ID, including its computed
	// task count. Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	// List retrieves all categories ordered by name, each with its computed
	// task count. Returns an empty slice when there are none.
	List(ctx context.Context) ([]*domain.Category, error)

	// Update modifies an existing category's name and color.
	// Returns ErrCategoryNotFound if the category does not exist.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category by ID. Every task referencing the category
	// is deleted with it by the schema's cascade rule.
	// Returns ErrCategoryNotFound if the category does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// TagStore defines the interface for tag data persistence.
type TagStore interface {
	// Create saves a new tag to the store.
	// Returns validation errors from the domain Tag if data is invalid.
	Create(ctx context.Context, tag *domain.Tag) error

	// GetByID retrieves a tag by its unique ID, including its computed task
	// count. Returns ErrTagNotFound if the tag does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error)

	// List retrieves all tags ordered by label, each with its computed task
	// count. Returns an empty slice when there are none.
	List(ctx context.Context) ([]*domain.Tag, error)

	// Update modifies an existing tag's label.
	// Returns ErrTagNotFound if the tag does not exist.
	Update(ctx context.Context, tag *domain.Tag) error

	// Delete removes a tag by ID. Tasks carrying the tag merely lose the
	// association; they are never deleted with the tag.
	// Returns ErrTagNotFound if the tag does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
