package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// CreateTaskInput carries the fields for creating a task. Status defaults to
// the initialized state when empty.
type CreateTaskInput struct {
	CategoryID  uuid.UUID
	Title       string
	Description string
	Status      domain.TaskStatus
	DueDate     *time.Time
	TagIDs      []uuid.UUID
}

// UpdateTaskInput carries a partial update. Nil pointer fields leave the
// current value untouched. DueDateSet distinguishes "clear the due date"
// (set true, DueDate nil) from "leave it alone" (set false). A nil TagIDs
// slice keeps the current tag set; an empty one detaches every tag.
type UpdateTaskInput struct {
	CategoryID  *uuid.UUID
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	DueDate     *time.Time
	DueDateSet  bool
	TagIDs      []uuid.UUID
}

// TaskService provides task operations scoped to the requesting user.
//
// Completed-at stamping is handled here on every save: moving a task into the
// done state records the completion time, moving it out clears it.
type TaskService interface {
	// CreateTask creates a task with its tag set in one transaction and
	// returns the hydrated result.
	CreateTask(ctx context.Context, userID uuid.UUID, input CreateTaskInput) (*domain.Task, error)

	// GetTask retrieves one of the user's tasks.
	// Returns store.ErrTaskNotFound if the task is absent or not owned.
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// ListTasks retrieves the user's tasks, most recently created first.
	ListTasks(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// UpdateTask applies a partial update and the tag replacement in one
	// transaction and returns the hydrated result.
	// Returns store.ErrTaskNotFound if the task is absent or not owned.
	UpdateTask(
		ctx context.Context,
		userID, taskID uuid.UUID,
		input UpdateTaskInput,
	) (*domain.Task, error)

	// DeleteTask removes one of the user's tasks.
	// Returns store.ErrTaskNotFound if the task is absent or not owned.
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}

type taskServiceImpl struct {
	db        *sql.DB
	taskStore store.TaskStore
	logger    *slog.Logger
	timeFunc  func() time.Time
}

// NewTaskService creates a new TaskService. The db handle is used to open
// transactions spanning the task write and its tag replacement.
func NewTaskService(db *sql.DB, taskStore store.TaskStore, logger *slog.Logger) TaskService {
	if db == nil {
		panic("db cannot be nil")
	}
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		db:        db,
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
		timeFunc:  time.Now,
	}
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	userID uuid.UUID,
	input CreateTaskInput,
) (*domain.Task, error) {
	task, err := domain.NewTask(
		userID,
		input.CategoryID,
		input.Title,
		input.Description,
		input.Status,
		input.DueDate,
	)
	if err != nil {
		s.logger.Warn("invalid task input",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)
		if err := txStore.Create(ctx, task); err != nil {
			return err
		}
		if len(input.TagIDs) > 0 {
			return txStore.ReplaceTags(ctx, task.ID, input.TagIDs)
		}
		return nil
	})
	if err != nil {
		return nil, wrapServiceError("create_task", "failed to save task", err,
			domain.ErrValidation, store.ErrInvalidEntity)
	}

	s.logger.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))

	return s.taskStore.GetForUser(ctx, userID, task.ID)
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	task, err := s.taskStore.GetForUser(ctx, userID, taskID)
	if err != nil {
		return nil, wrapServiceError("get_task", "failed to retrieve task", err,
			store.ErrTaskNotFound)
	}
	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Task, error) {
	tasks, err := s.taskStore.ListForUser(ctx, userID)
	if err != nil {
		return nil, wrapServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
	input UpdateTaskInput,
) (*domain.Task, error) {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		task, err := txStore.GetForUser(ctx, userID, taskID)
		if err != nil {
			return err
		}

		if input.CategoryID != nil {
			task.CategoryID = *input.CategoryID
		}
		if input.Title != nil {
			task.Title = *input.Title
		}
		if input.Description != nil {
			task.Description = *input.Description
		}
		if input.Status != nil {
			task.Status = *input.Status
		}
		if input.DueDateSet {
			task.DueDate = input.DueDate
		}
		task.ApplyCompletionInvariant(s.timeFunc().UTC())

		if err := txStore.Update(ctx, task); err != nil {
			return err
		}
		if input.TagIDs != nil {
			return txStore.ReplaceTags(ctx, taskID, input.TagIDs)
		}
		return nil
	})
	if err != nil {
		return nil, wrapServiceError("update_task", "failed to update task", err,
			domain.ErrValidation, store.ErrTaskNotFound, store.ErrInvalidEntity)
	}

	s.logger.Info("task updated",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))

	return s.taskStore.GetForUser(ctx, userID, taskID)
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if err := s.taskStore.Delete(ctx, userID, taskID); err != nil {
		return wrapServiceError("delete_task", "failed to delete task", err,
			store.ErrTaskNotFound)
	}

	s.logger.Info("task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))
	return nil
}
