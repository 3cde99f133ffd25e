// Package mocks provides hand-rolled test doubles for the service and store
// interfaces. Each mock exposes function fields for custom behavior and falls
// back to default response values.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Custom behavior functions
	CreateTaskFn func(ctx context.Context, userID uuid.UUID, input service.CreateTaskInput) (*domain.Task, error)
	GetTaskFn    func(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
	ListTasksFn  func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	UpdateTaskFn func(ctx context.Context, userID, taskID uuid.UUID, input service.UpdateTaskInput) (*domain.Task, error)
	DeleteTaskFn func(ctx context.Context, userID, taskID uuid.UUID) error

	// Default response values
	Task  *domain.Task
	Tasks []*domain.Task
	Err   error
}

var _ service.TaskService = (*MockTaskService)(nil)

// CreateTask implements the service.TaskService interface
func (m *MockTaskService) CreateTask(
	ctx context.Context,
	userID uuid.UUID,
	input service.CreateTaskInput,
) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, userID, input)
	}
	return m.Task, m.Err
}

// GetTask implements the service.TaskService interface
func (m *MockTaskService) GetTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, userID, taskID)
	}
	return m.Task, m.Err
}

// ListTasks implements the service.TaskService interface
func (m *MockTaskService) ListTasks(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, userID)
	}
	return m.Tasks, m.Err
}

// UpdateTask implements the service.TaskService interface
func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
	input service.UpdateTaskInput,
) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, userID, taskID, input)
	}
	return m.Task, m.Err
}

// DeleteTask implements the service.TaskService interface
func (m *MockTaskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, userID, taskID)
	}
	return m.Err
}
