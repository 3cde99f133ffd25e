package service

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
	"github.com/taskdeck/taskdeck-api/migrations"
)

const integrationTimeout = 10 * time.Second

func integrationTestEnvironment() bool {
	return os.Getenv("DATABASE_URL") != ""
}

var (
	migrateOnce sync.Once
	migrateErr  error
)

// getTestDB opens a connection to the test database and ensures the schema
// is migrated. The connection is closed when the test finishes.
func getTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", os.Getenv("DATABASE_URL"))
	require.NoError(t, err, "Failed to open database connection")
	require.NoError(t, db.Ping(), "Failed to ping test database")

	migrateOnce.Do(func() {
		goose.SetLogger(goose.NopLogger())
		goose.SetBaseFS(migrations.FS)
		if migrateErr = goose.SetDialect("postgres"); migrateErr != nil {
			return
		}
		migrateErr = goose.Up(db, ".")
	})
	require.NoError(t, migrateErr, "Failed to migrate test database")

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TestTaskServiceUpdateTaskIntegration pins UpdateTask's merge semantics
// against a real database: nil pointers leave fields alone, the completion
// timestamp follows the status, DueDateSet distinguishes clearing from
// keeping, and tag replacement distinguishes empty from nil.
//
// The service owns its transactions, so writes commit; created rows are
// removed in cleanup.
func TestTaskServiceUpdateTaskIntegration(t *testing.T) {
	if !integrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	db := getTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), integrationTimeout)
	defer cancel()

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	userStore := postgres.NewPostgresUserStore(db, hasher, nil)
	categoryStore := postgres.NewPostgresCategoryStore(db, nil)
	tagStore := postgres.NewPostgresTagStore(db, nil)
	taskStore := postgres.NewPostgresTaskStore(db, nil)

	owner, err := domain.NewUser(
		fmt.Sprintf("task-service-%s@example.com", uuid.NewString()),
		"a-long-password", "Task Service Test")
	require.NoError(t, err)
	require.NoError(t, userStore.Create(ctx, owner))

	stranger, err := domain.NewUser(
		fmt.Sprintf("task-service-%s@example.com", uuid.NewString()),
		"a-long-password", "Other User")
	require.NoError(t, err)
	require.NoError(t, userStore.Create(ctx, stranger))

	category, err := domain.NewCategory("Service updates", "#112233")
	require.NoError(t, err)
	require.NoError(t, categoryStore.Create(ctx, category))

	tag, err := domain.NewTag("service-update-" + uuid.NewString()[:8])
	require.NoError(t, err)
	require.NoError(t, tagStore.Create(ctx, tag))

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), integrationTimeout)
		defer cleanupCancel()

		// Deleting the users cascades away their tasks and tag rows.
		_, _ = db.ExecContext(cleanupCtx,
			`DELETE FROM users WHERE id IN ($1, $2)`, owner.ID, stranger.ID)
		_, _ = db.ExecContext(cleanupCtx, `DELETE FROM categories WHERE id = $1`, category.ID)
		_, _ = db.ExecContext(cleanupCtx, `DELETE FROM tags WHERE id = $1`, tag.ID)
	})

	fixedNow := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc := NewTaskService(db, taskStore, nil).(*taskServiceImpl)
	svc.timeFunc = func() time.Time { return fixedNow }

	due := fixedNow.AddDate(0, 0, 7)
	task, err := svc.CreateTask(ctx, owner.ID, CreateTaskInput{
		CategoryID: category.ID,
		Title:      "Quarterly report",
		Status:     domain.TaskStatusTodo,
		DueDate:    &due,
		TagIDs:     []uuid.UUID{tag.ID},
	})
	require.NoError(t, err)
	require.Len(t, task.Tags, 1)
	require.Nil(t, task.CompletedAt)

	t.Run("status change merges into untouched fields", func(t *testing.T) {
		doneStatus := domain.TaskStatusDone
		updated, err := svc.UpdateTask(ctx, owner.ID, task.ID, UpdateTaskInput{
			Status: &doneStatus,
		})
		require.NoError(t, err)

		assert.Equal(t, "Quarterly report", updated.Title, "Title should be untouched")
		assert.NotNil(t, updated.DueDate, "Due date should survive with DueDateSet false")
		require.NotNil(t, updated.CompletedAt, "Entering done should stamp completion")
		assert.True(t, updated.CompletedAt.Equal(fixedNow))
		assert.Len(t, updated.Tags, 1, "Nil TagIDs should keep the tag set")
	})

	t.Run("leaving done clears completion", func(t *testing.T) {
		todoStatus := domain.TaskStatusTodo
		updated, err := svc.UpdateTask(ctx, owner.ID, task.ID, UpdateTaskInput{
			Status: &todoStatus,
		})
		require.NoError(t, err)
		assert.Nil(t, updated.CompletedAt)
	})

	t.Run("due date cleared only when the flag is set", func(t *testing.T) {
		updated, err := svc.UpdateTask(ctx, owner.ID, task.ID, UpdateTaskInput{
			DueDate:    nil,
			DueDateSet: true,
		})
		require.NoError(t, err)
		assert.Nil(t, updated.DueDate)
	})

	t.Run("empty tag slice detaches where nil keeps", func(t *testing.T) {
		updated, err := svc.UpdateTask(ctx, owner.ID, task.ID, UpdateTaskInput{
			TagIDs: []uuid.UUID{},
		})
		require.NoError(t, err)
		assert.Empty(t, updated.Tags)

		newTitle := "Renamed report"
		updated, err = svc.UpdateTask(ctx, owner.ID, task.ID, UpdateTaskInput{
			Title: &newTitle,
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed report", updated.Title)
		assert.Empty(t, updated.Tags, "Nil TagIDs should not resurrect detached tags")
	})

	t.Run("cross-user update is invisible", func(t *testing.T) {
		hijack := "Hijacked"
		_, err := svc.UpdateTask(ctx, stranger.ID, task.ID, UpdateTaskInput{
			Title: &hijack,
		})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}
