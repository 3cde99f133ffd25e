package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// PostgresTagStore implements the store.TagStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTagStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTagStore creates a new PostgreSQL implementation of the
// TagStore interface. If logger is nil, a default logger is used.
func NewPostgresTagStore(db store.DBTX, logger *slog.Logger) *PostgresTagStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTagStore{
		db:     db,
		logger: logger.With(slog.String("component", "tag_store")),
	}
}

// Ensure PostgresTagStore implements store.TagStore interface
var _ store.TagStore = (*PostgresTagStore)(nil)

const tagSelectColumns = `
	g.id, g.label, g.created_at, g.updated_at,
	(SELECT COUNT(*) FROM task_tags tt WHERE tt.tag_id = g.id) AS task_count
`

// Create implements store.TagStore.Create
func (s *PostgresTagStore) Create(ctx context.Context, tag *domain.Tag) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tag.Validate(); err != nil {
		log.Warn("tag validation failed during create",
			slog.String("error", err.Error()),
			slog.String("tag_id", tag.ID.String()))
		return err
	}

	query := `
		INSERT INTO tags (id, label, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query, tag.ID, tag.Label, tag.CreatedAt, tag.UpdatedAt)
	if err != nil {
		log.Error("failed to create tag",
			slog.String("error", err.Error()),
			slog.String("tag_id", tag.ID.String()))
		return err
	}

	log.Info("tag created successfully",
		slog.String("tag_id", tag.ID.String()),
		slog.String("label", tag.Label))
	return nil
}

// GetByID implements store.TagStore.GetByID
// Returns store.ErrTagNotFound if the tag does not exist.
func (s *PostgresTagStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + tagSelectColumns + ` FROM tags g WHERE g.id = $1`

	tag, err := scanTag(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("tag not found", slog.String("tag_id", id.String()))
			return nil, store.ErrTagNotFound
		}
		log.Error("failed to get tag by ID",
			slog.String("error", err.Error()),
			slog.String("tag_id", id.String()))
		return nil, err
	}

	return tag, nil
}

// List implements store.TagStore.List
func (s *PostgresTagStore) List(ctx context.Context) ([]*domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + tagSelectColumns + ` FROM tags g ORDER BY g.label`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list tags", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	tags := []*domain.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			log.Error("failed to scan tag row", slog.String("error", err.Error()))
			return nil, err
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}

// Update implements store.TagStore.Update
// Returns store.ErrTagNotFound if the tag does not exist.
func (s *PostgresTagStore) Update(ctx context.Context, tag *domain.Tag) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tag.Validate(); err != nil {
		log.Warn("tag validation failed during update",
			slog.String("error", err.Error()),
			slog.String("tag_id", tag.ID.String()))
		return err
	}

	tag.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(
		ctx,
		`UPDATE tags SET label = $1, updated_at = $2 WHERE id = $3`,
		tag.Label,
		tag.UpdatedAt,
		tag.ID,
	)
	if err != nil {
		log.Error("failed to update tag",
			slog.String("error", err.Error()),
			slog.String("tag_id", tag.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		log.Debug("tag not found for update", slog.String("tag_id", tag.ID.String()))
		return store.ErrTagNotFound
	}

	log.Info("tag updated successfully", slog.String("tag_id", tag.ID.String()))
	return nil
}

// Delete implements store.TagStore.Delete
// Tasks carrying the tag lose the association via the join table's cascade;
// the tasks themselves survive.
// Returns store.ErrTagNotFound if the tag does not exist.
func (s *PostgresTagStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete tag",
			slog.String("error", err.Error()),
			slog.String("tag_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrTagNotFound
	}

	log.Info("tag deleted", slog.String("tag_id", id.String()))
	return nil
}

// scanTag scans a tag row including the computed task count.
func scanTag(row rowScanner) (*domain.Tag, error) {
	var tag domain.Tag

	err := row.Scan(
		&tag.ID,
		&tag.Label,
		&tag.CreatedAt,
		&tag.UpdatedAt,
		&tag.TaskCount,
	)
	if err != nil {
		return nil, err
	}

	return &tag, nil
}
