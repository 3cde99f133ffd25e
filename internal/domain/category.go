package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Category-specific validation errors
var (
	// ErrCategoryIDEmpty is returned when a category ID is empty or nil.
	ErrCategoryIDEmpty = errors.New("category ID cannot be empty")

	// ErrCategoryNameEmpty is returned when a category's name is empty.
	ErrCategoryNameEmpty = errors.New("category name cannot be empty")

	// ErrCategoryNameTooLong is returned when a category's name exceeds the maximum length.
	ErrCategoryNameTooLong = errors.New("category name cannot exceed 100 characters")

	// ErrInvalidHexColor is returned when a category color is not a hex color string.
	ErrInvalidHexColor = errors.New("invalid hex color")
)

// MaxCategoryNameLength is the maximum allowed length for a category name.
const MaxCategoryNameLength = 100

// MaxHexColorLength is the maximum stored length for a hex color string,
// a leading '#' plus six hex digits.
const MaxHexColorLength = 7

var hexColorPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{1,6}$`)

// Category is a named, colored grouping for tasks. Deleting a category
// deletes every task that references it.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	HexColor  string    `json:"hex_color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// TaskCount is the number of tasks referencing this category. It is
	// computed by an aggregation query on every read, never stored.
	TaskCount int `json:"total_count"`
}

// NewCategory creates a new Category with the given name and optional hex color.
// Returns an error if validation fails.
func NewCategory(name, hexColor string) (*Category, error) {
	now := time.Now().UTC()
	category := &Category{
		ID:        uuid.New(),
		Name:      name,
		HexColor:  hexColor,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCategoryIDEmpty
	}

	if c.Name == "" {
		return ErrCategoryNameEmpty
	}

	if len(c.Name) > MaxCategoryNameLength {
		return ErrCategoryNameTooLong
	}

	if c.HexColor != "" {
		if len(c.HexColor) > MaxHexColorLength || !hexColorPattern.MatchString(c.HexColor) {
			return ErrInvalidHexColor
		}
	}

	return nil
}

// LoadBucket classifies the category's task count.
func (c *Category) LoadBucket() LoadBucket {
	return BucketForCount(c.TaskCount)
}
