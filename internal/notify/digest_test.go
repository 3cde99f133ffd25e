package notify_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/notify"
)

func digestTask(title string, status domain.TaskStatus) *domain.Task {
	return &domain.Task{
		ID:     uuid.New(),
		Title:  title,
		Status: status,
	}
}

func TestBuildDigest(t *testing.T) {
	t.Parallel()

	user := &domain.User{
		ID:          uuid.New(),
		Email:       "user@example.com",
		DisplayName: "Pat",
	}

	t.Run("includes only open tasks", func(t *testing.T) {
		t.Parallel()

		due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		withDue := digestTask("File taxes", domain.TaskStatusInProgress)
		withDue.DueDate = &due
		withDue.Category = &domain.Category{Name: "Finance"}

		tasks := []*domain.Task{
			digestTask("Write report", domain.TaskStatusTodo),
			withDue,
			digestTask("Shipped already", domain.TaskStatusDone),
			digestTask("Abandoned", domain.TaskStatusCancelled),
		}

		digest := notify.BuildDigest(user, tasks)

		assert.Equal(t, 2, digest.OpenCount)
		assert.Contains(t, digest.Body, "Hello Pat,")
		assert.Contains(t, digest.Body, "[To Do] Write report")
		assert.Contains(t, digest.Body, "[In Progress] File taxes (Finance), due 2026-09-15")
		assert.NotContains(t, digest.Body, "Shipped already")
		assert.NotContains(t, digest.Body, "Abandoned")
	})

	t.Run("no open tasks produces a zero-count digest", func(t *testing.T) {
		t.Parallel()

		digest := notify.BuildDigest(user, []*domain.Task{
			digestTask("Shipped already", domain.TaskStatusDone),
		})

		assert.Equal(t, 0, digest.OpenCount)
		assert.Contains(t, digest.Body, "no open tasks")
	})

	t.Run("falls back to email when display name is empty", func(t *testing.T) {
		t.Parallel()

		anonymous := &domain.User{ID: uuid.New(), Email: "user@example.com"}
		digest := notify.BuildDigest(anonymous, nil)

		assert.Contains(t, digest.Body, "Hello user@example.com,")
	})
}
