package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Every read hydrates the task's Category (with its computed task count) and
// Tags so callers can produce full nested representations without extra
// round trips.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	// Returns ErrInvalidEntity if the category or user reference does not
	// exist (foreign key violation).
	Create(ctx context.Context, task *domain.Task) error

	// GetForUser retrieves a task by ID, scoped to the owning user in a
	// single combined query. Returns ErrTaskNotFound both when no task with
	// that ID exists and when the task belongs to a different user.
	GetForUser(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// ListForUser retrieves every task owned by the user, most recently
	// created first. Returns an empty slice when the user has no tasks.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// Update modifies an existing task's fields, scoped to the owning user.
	// Returns ErrTaskNotFound if no task with that ID is owned by the user.
	// Returns ErrInvalidEntity if the new category reference does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by ID, scoped to the owning user.
	// Returns ErrTaskNotFound if no task with that ID is owned by the user.
	Delete(ctx context.Context, userID, taskID uuid.UUID) error

	// ReplaceTags replaces the task's tag set with the given tag IDs.
	// Passing an empty slice detaches every tag. Returns ErrInvalidEntity if
	// any tag ID does not exist. Run inside a transaction together with
	// Create or Update so a failed tag reference leaves no partial write.
	ReplaceTags(ctx context.Context, taskID uuid.UUID, tagIDs []uuid.UUID) error

	// WithTx returns a TaskStore bound to the given transaction so multiple
	// operations commit atomically. The transaction is created and managed by
	// the caller, typically via RunInTransaction.
	WithTx(tx *sql.Tx) TaskStore
}
