package postgres

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
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
	"github.com/taskdeck/taskdeck-api/migrations"
)

const testTimeout = 5 * time.Second

// integrationTestEnvironment reports whether a test database is available.
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

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

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

// withTestTx runs fn inside a transaction that is always rolled back, so
// tests leave no rows behind.
func withTestTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin test transaction")
	defer func() { _ = tx.Rollback() }()

	fn(t, tx)
}

func createTestUser(t *testing.T, tx *sql.Tx) *domain.User {
	t.Helper()

	userStore := NewPostgresUserStore(tx, auth.NewBcryptHasher(bcrypt.MinCost), nil)
	user, err := domain.NewUser(
		fmt.Sprintf("store-test-%s@example.com", uuid.NewString()),
		"a-long-password", "Store Test")
	require.NoError(t, err, "Failed to build test user")
	require.NoError(t, userStore.Create(context.Background(), user), "Failed to create test user")
	return user
}

func createTestCategory(t *testing.T, tx *sql.Tx, name string) *domain.Category {
	t.Helper()

	categoryStore := NewPostgresCategoryStore(tx, nil)
	category, err := domain.NewCategory(name, "#336699")
	require.NoError(t, err, "Failed to build test category")
	require.NoError(t, categoryStore.Create(context.Background(), category),
		"Failed to create test category")
	return category
}

func createTestTag(t *testing.T, tx *sql.Tx, label string) *domain.Tag {
	t.Helper()

	tagStore := NewPostgresTagStore(tx, nil)
	tag, err := domain.NewTag(label)
	require.NoError(t, err, "Failed to build test tag")
	require.NoError(t, tagStore.Create(context.Background(), tag), "Failed to create test tag")
	return tag
}

func createTestTask(t *testing.T, tx *sql.Tx, userID, categoryID uuid.UUID, title string) *domain.Task {
	t.Helper()

	taskStore := NewPostgresTaskStore(tx, nil)
	task, err := domain.NewTask(userID, categoryID, title, "", domain.TaskStatusTodo, nil)
	require.NoError(t, err, "Failed to build test task")
	require.NoError(t, taskStore.Create(context.Background(), task), "Failed to create test task")
	return task
}

// TestPostgresTaskStore_OwnershipScoping verifies that the combined
// (id, user_id) predicate makes another user's tasks indistinguishable from
// nonexistent ones for every scoped operation.
func TestPostgresTaskStore_OwnershipScoping(t *testing.T) {
	if !integrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}
	t.Parallel()

	db := getTestDB(t)

	withTestTx(t, db, func(t *testing.T, tx *sql.Tx) {
		taskStore := NewPostgresTaskStore(tx, nil)

		owner := createTestUser(t, tx)
		stranger := createTestUser(t, tx)
		category := createTestCategory(t, tx, "Scoping")
		task := createTestTask(t, tx, owner.ID, category.ID, "Owner's task")

		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		t.Run("get_scoped_to_owner", func(t *testing.T) {
			got, err := taskStore.GetForUser(ctx, owner.ID, task.ID)
			require.NoError(t, err, "Owner should see their task")
			assert.Equal(t, task.ID, got.ID)

			_, err = taskStore.GetForUser(ctx, stranger.ID, task.ID)
			assert.ErrorIs(t, err, store.ErrTaskNotFound,
				"Another user's task should look nonexistent")
		})

		t.Run("list_excludes_foreign_tasks", func(t *testing.T) {
			tasks, err := taskStore.ListForUser(ctx, stranger.ID)
			require.NoError(t, err)
			assert.Empty(t, tasks, "List should not leak another user's tasks")
		})

		t.Run("update_scoped_to_owner", func(t *testing.T) {
			hijacked := *task
			hijacked.UserID = stranger.ID
			hijacked.Title = "Hijacked title"

			err := taskStore.Update(ctx, &hijacked)
			assert.ErrorIs(t, err, store.ErrTaskNotFound,
				"Update under another user should find nothing")

			got, err := taskStore.GetForUser(ctx, owner.ID, task.ID)
			require.NoError(t, err)
			assert.Equal(t, "Owner's task", got.Title, "Title should be unchanged")
		})

		t.Run("delete_scoped_to_owner", func(t *testing.T) {
			err := taskStore.Delete(ctx, stranger.ID, task.ID)
			assert.ErrorIs(t, err, store.ErrTaskNotFound,
				"Delete under another user should find nothing")

			_, err = taskStore.GetForUser(ctx, owner.ID, task.ID)
			require.NoError(t, err, "Task should survive a foreign delete attempt")

			require.NoError(t, taskStore.Delete(ctx, owner.ID, task.ID))
			_, err = taskStore.GetForUser(ctx, owner.ID, task.ID)
			assert.ErrorIs(t, err, store.ErrTaskNotFound)
		})
	})
}

// TestPostgresCategoryStore_DeleteCascade verifies that deleting a category
// removes its tasks while leaving tags and other categories' tasks alone.
func TestPostgresCategoryStore_DeleteCascade(t *testing.T) {
	if !integrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}
	t.Parallel()

	db := getTestDB(t)

	withTestTx(t, db, func(t *testing.T, tx *sql.Tx) {
		taskStore := NewPostgresTaskStore(tx, nil)
		categoryStore := NewPostgresCategoryStore(tx, nil)
		tagStore := NewPostgresTagStore(tx, nil)

		user := createTestUser(t, tx)
		doomed := createTestCategory(t, tx, "Doomed")
		survivor := createTestCategory(t, tx, "Survivor")
		tag := createTestTag(t, tx, "cascade-check")

		doomedTask := createTestTask(t, tx, user.ID, doomed.ID, "Goes with the category")
		survivorTask := createTestTask(t, tx, user.ID, survivor.ID, "Stays behind")

		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		require.NoError(t, taskStore.ReplaceTags(ctx, doomedTask.ID, []uuid.UUID{tag.ID}))

		require.NoError(t, categoryStore.Delete(ctx, doomed.ID))

		_, err := categoryStore.GetByID(ctx, doomed.ID)
		assert.ErrorIs(t, err, store.ErrCategoryNotFound)

		_, err = taskStore.GetForUser(ctx, user.ID, doomedTask.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound,
			"Tasks in a deleted category should be deleted with it")

		got, err := taskStore.GetForUser(ctx, user.ID, survivorTask.ID)
		require.NoError(t, err, "Tasks in other categories should be untouched")
		assert.Equal(t, survivor.ID, got.CategoryID)

		// The tag outlives the cascade; only its membership count drops.
		gotTag, err := tagStore.GetByID(ctx, tag.ID)
		require.NoError(t, err, "Tags should never be deleted by a category cascade")
		assert.Equal(t, 0, gotTag.TaskCount)
	})
}

// TestPostgresTagStore_DeleteDetach verifies that deleting a tag removes only
// the association; the tagged tasks survive with the remaining tags.
func TestPostgresTagStore_DeleteDetach(t *testing.T) {
	if !integrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}
	t.Parallel()

	db := getTestDB(t)

	withTestTx(t, db, func(t *testing.T, tx *sql.Tx) {
		taskStore := NewPostgresTaskStore(tx, nil)
		tagStore := NewPostgresTagStore(tx, nil)

		user := createTestUser(t, tx)
		category := createTestCategory(t, tx, "Detach")
		doomedTag := createTestTag(t, tx, "doomed")
		keptTag := createTestTag(t, tx, "kept")
		task := createTestTask(t, tx, user.ID, category.ID, "Tagged task")

		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		require.NoError(t, taskStore.ReplaceTags(ctx, task.ID,
			[]uuid.UUID{doomedTag.ID, keptTag.ID}))

		require.NoError(t, tagStore.Delete(ctx, doomedTag.ID))

		_, err := tagStore.GetByID(ctx, doomedTag.ID)
		assert.ErrorIs(t, err, store.ErrTagNotFound)

		got, err := taskStore.GetForUser(ctx, user.ID, task.ID)
		require.NoError(t, err, "Task should survive the tag deletion")
		require.Len(t, got.Tags, 1, "Only the association should be gone")
		assert.Equal(t, keptTag.ID, got.Tags[0].ID)
	})
}

// TestPostgresTaskStore_ReplaceTagsUnknownTag verifies that a bad tag
// reference surfaces as an invalid-entity error naming the tag.
func TestPostgresTaskStore_ReplaceTagsUnknownTag(t *testing.T) {
	if !integrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}
	t.Parallel()

	db := getTestDB(t)

	withTestTx(t, db, func(t *testing.T, tx *sql.Tx) {
		taskStore := NewPostgresTaskStore(tx, nil)

		user := createTestUser(t, tx)
		category := createTestCategory(t, tx, "Bad refs")
		task := createTestTask(t, tx, user.ID, category.ID, "Task with bad tag")

		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		err := taskStore.ReplaceTags(ctx, task.ID, []uuid.UUID{uuid.New()})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}
