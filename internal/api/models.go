package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=12,max=72"`
	DisplayName string `json:"display_name" validate:"max=150"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires.
	ExpiresAt string `json:"expires_at"`
}

// CreateTaskRequest defines the payload for creating a task. The owner is
// always the authenticated caller, never part of the body.
type CreateTaskRequest struct {
	Title       string      `json:"title"       validate:"required,max=500"`
	Description string      `json:"description"`
	Status      string      `json:"status"      validate:"omitempty,oneof=init todo in_progress done cancelled"`
	DueDate     *time.Time  `json:"due_date"`
	CategoryID  uuid.UUID   `json:"category_id" validate:"required"`
	TagIDs      []uuid.UUID `json:"tag_ids"`
}

// PatchTaskRequest defines a partial task update. Absent fields leave the
// current values untouched; a nil TagIDs slice keeps the current tag set.
type PatchTaskRequest struct {
	Title       *string     `json:"title"       validate:"omitempty,max=500"`
	Description *string     `json:"description"`
	Status      *string     `json:"status"      validate:"omitempty,oneof=init todo in_progress done cancelled"`
	DueDate     *time.Time  `json:"due_date"`
	CategoryID  *uuid.UUID  `json:"category_id"`
	TagIDs      []uuid.UUID `json:"tag_ids"`
}

// CategoryRequest defines the payload for creating or fully replacing a
// category.
type CategoryRequest struct {
	Name     string `json:"name"      validate:"required,max=100"`
	HexColor string `json:"hex_color" validate:"omitempty,max=7"`
}

// PatchCategoryRequest defines a partial category update.
type PatchCategoryRequest struct {
	Name     *string `json:"name"      validate:"omitempty,max=100"`
	HexColor *string `json:"hex_color" validate:"omitempty,max=7"`
}

// TagRequest defines the payload for creating or renaming a tag.
type TagRequest struct {
	Label string `json:"label" validate:"required,max=100"`
}

// ProfileRequest defines the payload for the profile upsert endpoint.
type ProfileRequest struct {
	PhoneNumber string `json:"phone_number" validate:"max=32"`
	Address     string `json:"address"      validate:"max=500"`
}

// CategoryResponse is the API representation of a category, including the
// derived task count and load bucket.
type CategoryResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	HexColor   string    `json:"hex_color,omitempty"`
	TotalCount int       `json:"total_count"`
	LoadBucket string    `json:"load_bucket"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TagResponse is the API representation of a tag, including the derived
// task count and load bucket.
type TagResponse struct {
	ID         uuid.UUID `json:"id"`
	Label      string    `json:"label"`
	TotalCount int       `json:"total_count"`
	LoadBucket string    `json:"load_bucket"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TaskResponse is the API representation of a task with its nested category
// and tags.
type TaskResponse struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Status      string            `json:"status"`
	StatusLabel string            `json:"status_label"`
	IsCompleted bool              `json:"is_completed"`
	DueDate     *time.Time        `json:"due_date"`
	CompletedAt *time.Time        `json:"completed_at"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Tags        []TagResponse     `json:"tags"`
}

// NewCategoryResponse converts a domain category to its API representation.
func NewCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:         category.ID,
		Name:       category.Name,
		HexColor:   category.HexColor,
		TotalCount: category.TaskCount,
		LoadBucket: string(category.LoadBucket()),
		CreatedAt:  category.CreatedAt,
		UpdatedAt:  category.UpdatedAt,
	}
}

// NewTagResponse converts a domain tag to its API representation.
func NewTagResponse(tag *domain.Tag) TagResponse {
	return TagResponse{
		ID:         tag.ID,
		Label:      tag.Label,
		TotalCount: tag.TaskCount,
		LoadBucket: string(tag.LoadBucket()),
		CreatedAt:  tag.CreatedAt,
		UpdatedAt:  tag.UpdatedAt,
	}
}

// NewTaskResponse converts a domain task to its API representation, nesting
// the hydrated category and tags.
func NewTaskResponse(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		StatusLabel: task.Status.Label(),
		IsCompleted: task.IsCompleted(),
		DueDate:     task.DueDate,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Tags:        []TagResponse{},
	}

	if task.Category != nil {
		category := NewCategoryResponse(task.Category)
		resp.Category = &category
	}
	for _, tag := range task.Tags {
		resp.Tags = append(resp.Tags, NewTagResponse(tag))
	}

	return resp
}

// NewTaskListResponse converts a slice of domain tasks.
func NewTaskListResponse(tasks []*domain.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, NewTaskResponse(task))
	}
	return responses
}
