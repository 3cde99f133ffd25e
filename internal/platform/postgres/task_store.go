package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
//
// All single-task lookups are scoped by (id, user_id) in one combined query
// so a task owned by another user is indistinguishable from a nonexistent
// one. Reads hydrate the owning category and the tag set, each with its
// computed task count.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. If logger is nil, a default logger is used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

const taskSelectQuery = `
	SELECT t.id, t.user_id, t.category_id, t.title, t.description, t.status,
	       t.due_date, t.completed_at, t.created_at, t.updated_at,
	       c.name, c.hex_color, c.created_at, c.updated_at,
	       (SELECT COUNT(*) FROM tasks ct WHERE ct.category_id = c.id) AS category_task_count
	FROM tasks t
	JOIN categories c ON c.id = t.category_id
`

// Create implements store.TaskStore.Create
// Returns store.ErrInvalidEntity if the category or user reference does not exist.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, user_id, category_id, title, description, status,
		                   due_date, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.UserID,
		task.CategoryID,
		task.Title,
		nullableString(task.Description),
		task.Status,
		task.DueDate,
		task.CompletedAt,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("task_id", task.ID.String()),
				slog.String("category_id", task.CategoryID.String()))
			return fmt.Errorf("%w: category with ID %s not found",
				store.ErrInvalidEntity, task.CategoryID)
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// GetForUser implements store.TaskStore.GetForUser
// Returns store.ErrTaskNotFound when the task is absent or owned by another
// user; the two cases are indistinguishable by design.
func (s *PostgresTaskStore) GetForUser(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := taskSelectQuery + ` WHERE t.id = $1 AND t.user_id = $2`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, taskID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found or not owned",
				slog.String("task_id", taskID.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, err
	}

	if err := s.attachTags(ctx, []*domain.Task{task}); err != nil {
		return nil, err
	}

	return task, nil
}

// ListForUser implements store.TaskStore.ListForUser
// Tasks are ordered most recently created first.
func (s *PostgresTaskStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := taskSelectQuery + ` WHERE t.user_id = $1 ORDER BY t.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachTags(ctx, tasks); err != nil {
		return nil, err
	}

	log.Debug("listed tasks",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// Update implements store.TaskStore.Update
// The write is scoped by (id, user_id); created_at and user_id are never
// touched. Returns store.ErrTaskNotFound if no owned task matches.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	task.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tasks
		SET category_id = $1, title = $2, description = $3, status = $4,
		    due_date = $5, completed_at = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.CategoryID,
		task.Title,
		nullableString(task.Description),
		task.Status,
		task.DueDate,
		task.CompletedAt,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: category with ID %s not found",
				store.ErrInvalidEntity, task.CategoryID)
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		log.Debug("task not found or not owned for update",
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return store.ErrTaskNotFound
	}

	log.Info("task updated successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if no owned task matches.
func (s *PostgresTaskStore) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		taskID,
		userID,
	)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	log.Info("task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// ReplaceTags implements store.TaskStore.ReplaceTags
// Returns store.ErrInvalidEntity if any tag ID does not exist.
func (s *PostgresTaskStore) ReplaceTags(
	ctx context.Context,
	taskID uuid.UUID,
	tagIDs []uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(
		ctx,
		`DELETE FROM task_tags WHERE task_id = $1`,
		taskID,
	); err != nil {
		log.Error("failed to clear task tags",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return err
	}

	for _, tagID := range tagIDs {
		_, err := s.db.ExecContext(
			ctx,
			`INSERT INTO task_tags (task_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			taskID,
			tagID,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				log.Warn("foreign key violation during tag attach",
					slog.String("task_id", taskID.String()),
					slog.String("tag_id", tagID.String()))
				return fmt.Errorf("%w: tag with ID %s not found",
					store.ErrInvalidEntity, tagID)
			}
			log.Error("failed to attach tag",
				slog.String("error", err.Error()),
				slog.String("task_id", taskID.String()),
				slog.String("tag_id", tagID.String()))
			return err
		}
	}

	log.Debug("task tags replaced",
		slog.String("task_id", taskID.String()),
		slog.Int("tag_count", len(tagIDs)))
	return nil
}

// attachTags loads the tag sets for the given tasks in one query and
// attaches them. Tasks without tags get an empty slice.
func (s *PostgresTaskStore) attachTags(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	byID := make(map[uuid.UUID]*domain.Task, len(tasks))
	taskIDs := make([]string, 0, len(tasks))
	for _, task := range tasks {
		task.Tags = []*domain.Tag{}
		byID[task.ID] = task
		taskIDs = append(taskIDs, task.ID.String())
	}

	query := `
		SELECT tt.task_id, g.id, g.label, g.created_at, g.updated_at,
		       (SELECT COUNT(*) FROM task_tags x WHERE x.tag_id = g.id) AS task_count
		FROM task_tags tt
		JOIN tags g ON g.id = tt.tag_id
		WHERE tt.task_id = ANY($1)
		ORDER BY g.label
	`
	rows, err := s.db.QueryContext(ctx, query, taskIDs)
	if err != nil {
		log.Error("failed to load task tags", slog.String("error", err.Error()))
		return err
	}
	defer closeRows(rows, log)

	for rows.Next() {
		var taskID uuid.UUID
		var tag domain.Tag
		if err := rows.Scan(
			&taskID,
			&tag.ID,
			&tag.Label,
			&tag.CreatedAt,
			&tag.UpdatedAt,
			&tag.TaskCount,
		); err != nil {
			log.Error("failed to scan task tag row", slog.String("error", err.Error()))
			return err
		}
		if task, ok := byID[taskID]; ok {
			task.Tags = append(task.Tags, &tag)
		}
	}

	return rows.Err()
}

// scanTask scans a task row joined with its category.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var category domain.Category
	var description, hexColor sql.NullString
	var status string
	var dueDate, completedAt sql.NullTime

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.CategoryID,
		&task.Title,
		&description,
		&status,
		&dueDate,
		&completedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
		&category.Name,
		&hexColor,
		&category.CreatedAt,
		&category.UpdatedAt,
		&category.TaskCount,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	task.Status = domain.TaskStatus(status)
	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		task.CompletedAt = &t
	}

	category.ID = task.CategoryID
	category.HexColor = hexColor.String
	task.Category = &category

	return &task, nil
}
