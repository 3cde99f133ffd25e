package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Tag-specific validation errors
var (
	// ErrTagIDEmpty is returned when a tag ID is empty or nil.
	ErrTagIDEmpty = errors.New("tag ID cannot be empty")

	// ErrTagLabelEmpty is returned when a tag's label is empty.
	ErrTagLabelEmpty = errors.New("tag label cannot be empty")

	// ErrTagLabelTooLong is returned when a tag's label exceeds the maximum length.
	ErrTagLabelTooLong = errors.New("tag label cannot exceed 100 characters")
)

// MaxTagLabelLength is the maximum allowed length for a tag label.
const MaxTagLabelLength = 100

// Tag is a free-form label attachable to many tasks. Deleting a tag only
// detaches it from tasks; the tasks themselves survive.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// TaskCount is the number of tasks carrying this tag, computed on read
	// over the many-to-many membership.
	TaskCount int `json:"total_count"`
}

// NewTag creates a new Tag with the given label.
// Returns an error if validation fails.
func NewTag(label string) (*Tag, error) {
	now := time.Now().UTC()
	tag := &Tag{
		ID:        uuid.New(),
		Label:     label,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := tag.Validate(); err != nil {
		return nil, err
	}

	return tag, nil
}

// Validate checks if the Tag has valid data.
func (t *Tag) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTagIDEmpty
	}

	if t.Label == "" {
		return ErrTagLabelEmpty
	}

	if len(t.Label) > MaxTagLabelLength {
		return ErrTagLabelTooLong
	}

	return nil
}

// LoadBucket classifies the tag's task count.
func (t *Tag) LoadBucket() LoadBucket {
	return BucketForCount(t.TaskCount)
}
