package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskUserIDEmpty is returned when a task's user ID is empty or nil.
	ErrTaskUserIDEmpty = errors.New("task user ID cannot be empty")

	// ErrTaskCategoryIDEmpty is returned when a task's category ID is empty or nil.
	// A task must always belong to exactly one category.
	ErrTaskCategoryIDEmpty = errors.New("task category ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskTitleTooLong is returned when a task's title exceeds the maximum length.
	ErrTaskTitleTooLong = errors.New("task title cannot exceed 500 characters")

	// ErrInvalidTaskStatus is returned when a task status is not one of the
	// known enumeration values.
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// MaxTaskTitleLength is the maximum allowed length for a task title.
const MaxTaskTitleLength = 500

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Valid task statuses.
const (
	TaskStatusInit       TaskStatus = "init"
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// taskStatusLabels maps each status to its human-readable label.
// The status set is closed, so a fixed lookup table is sufficient.
var taskStatusLabels = map[TaskStatus]string{
	TaskStatusInit:       "Initialized",
	TaskStatusTodo:       "To Do",
	TaskStatusInProgress: "In Progress",
	TaskStatusDone:       "Done",
	TaskStatusCancelled:  "Cancelled",
}

// IsValid reports whether the status is one of the known enumeration values.
func (s TaskStatus) IsValid() bool {
	_, ok := taskStatusLabels[s]
	return ok
}

// Label returns the human-readable label for the status.
// Unknown statuses fall back to the raw value.
func (s TaskStatus) Label() string {
	if label, ok := taskStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// AllTaskStatuses returns every valid task status. The order is fixed.
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusInit,
		TaskStatusTodo,
		TaskStatusInProgress,
		TaskStatusDone,
		TaskStatusCancelled,
	}
}

// Task represents a unit of work owned by exactly one user, classified by
// exactly one category, and labeled by zero or more tags.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	CategoryID  uuid.UUID  `json:"category_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Category and Tags are hydrated on reads so API responses can nest the
	// full representations. They are not part of the task's own column set.
	Category *Category `json:"category,omitempty"`
	Tags     []*Tag    `json:"tags,omitempty"`
}

// NewTask creates a new Task owned by the given user in the given category.
// It generates a new UUID, stamps the creation/update timestamps, and applies
// the completion invariant so a task created directly in the done status gets
// a completion timestamp. Returns an error if validation fails.
func NewTask(
	userID, categoryID uuid.UUID,
	title, description string,
	status TaskStatus,
	dueDate *time.Time,
) (*Task, error) {
	if status == "" {
		status = TaskStatusInit
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		Title:       title,
		Description: description,
		Status:      status,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	task.ApplyCompletionInvariant(now)

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTaskUserIDEmpty
	}

	if t.CategoryID == uuid.Nil {
		return ErrTaskCategoryIDEmpty
	}

	if t.Title == "" {
		return ErrTaskTitleEmpty
	}

	if len(t.Title) > MaxTaskTitleLength {
		return ErrTaskTitleTooLong
	}

	if !t.Status.IsValid() {
		return ErrInvalidTaskStatus
	}

	return nil
}

// ApplyCompletionInvariant enforces the relationship between the task status
// and the completion timestamp. It must run on every save, regardless of
// which field changed: transitioning into done stamps CompletedAt if unset,
// and any other status clears it.
func (t *Task) ApplyCompletionInvariant(now time.Time) {
	if t.Status == TaskStatusDone && t.CompletedAt == nil {
		completed := now.UTC()
		t.CompletedAt = &completed
	} else if t.Status != TaskStatusDone && t.CompletedAt != nil {
		t.CompletedAt = nil
	}
}

// IsCompleted reports whether the task is in the done status.
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusDone
}
