// Package seed fills the database with synthetic development data.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// Options controls how much data the seeder creates.
type Options struct {
	Users      int
	Categories int
	Tags       int
	Tasks      int

	// Clear removes all existing data before seeding.
	Clear bool
}

// DefaultOptions returns the seeding volumes used when no flags are given.
func DefaultOptions() Options {
	return Options{
		Users:      3,
		Categories: 5,
		Tags:       8,
		Tasks:      25,
	}
}

// seedPassword is the password every synthetic user gets. Development only.
const seedPassword = "taskdeck-dev-password"

// Seeder creates synthetic users, categories, tags, and tasks through the
// regular stores so every domain rule applies to seeded data too.
type Seeder struct {
	db         *sql.DB
	users      store.UserStore
	categories store.CategoryStore
	tags       store.TagStore
	tasks      store.TaskStore
	faker      *gofakeit.Faker
	logger     *slog.Logger
}

// NewSeeder creates a Seeder. The db handle is used for the clear pass and
// the user-count check; all writes go through the stores.
func NewSeeder(
	db *sql.DB,
	users store.UserStore,
	categories store.CategoryStore,
	tags store.TagStore,
	tasks store.TaskStore,
	logger *slog.Logger,
) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		db:         db,
		users:      users,
		categories: categories,
		tags:       tags,
		tasks:      tasks,
		faker:      gofakeit.New(0),
		logger:     logger.With(slog.String("component", "seeder")),
	}
}

// Run executes the seeding pass.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	if opts.Clear {
		if err := s.clear(ctx); err != nil {
			return err
		}
	}

	userIDs, err := s.seedUsers(ctx, opts.Users)
	if err != nil {
		return err
	}

	categoryIDs, err := s.seedCategories(ctx, opts.Categories)
	if err != nil {
		return err
	}

	tagIDs, err := s.seedTags(ctx, opts.Tags)
	if err != nil {
		return err
	}

	if err := s.seedTasks(ctx, opts.Tasks, userIDs, categoryIDs, tagIDs); err != nil {
		return err
	}

	s.logger.Info("seeding complete",
		slog.Int("users", len(userIDs)),
		slog.Int("categories", len(categoryIDs)),
		slog.Int("tags", len(tagIDs)),
		slog.Int("tasks", opts.Tasks))
	return nil
}

// clear removes all data in dependency order.
func (s *Seeder) clear(ctx context.Context) error {
	for _, table := range []string{"task_tags", "tasks", "tags", "categories", "profiles", "users"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	s.logger.Info("existing data cleared")
	return nil
}

// seedUsers creates count synthetic users, skipped entirely when any user
// already exists.
func (s *Seeder) seedUsers(ctx context.Context, count int) ([]uuid.UUID, error) {
	var existing int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&existing); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if existing > 0 {
		s.logger.Info("users already present, skipping user seeding",
			slog.Int("existing", existing))
		return s.existingUserIDs(ctx)
	}

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		email := fmt.Sprintf("%s%d@example.com", s.faker.Username(), i)
		user, err := domain.NewUser(email, seedPassword, s.faker.Name())
		if err != nil {
			return nil, fmt.Errorf("build user: %w", err)
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("seed user: %w", err)
		}
		ids = append(ids, user.ID)
	}
	return ids, nil
}

// existingUserIDs loads every user ID so tasks can be spread over them.
func (s *Seeder) existingUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM users")
	if err != nil {
		return nil, fmt.Errorf("list user IDs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Seeder) seedCategories(ctx context.Context, count int) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		// Index suffix keeps names unique across faker collisions.
		name := fmt.Sprintf("%s %d", s.faker.ProductCategory(), i+1)
		category, err := domain.NewCategory(name, s.faker.HexColor())
		if err != nil {
			return nil, fmt.Errorf("build category: %w", err)
		}
		if err := s.categories.Create(ctx, category); err != nil {
			return nil, fmt.Errorf("seed category: %w", err)
		}
		ids = append(ids, category.ID)
	}
	return ids, nil
}

func (s *Seeder) seedTags(ctx context.Context, count int) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		label := fmt.Sprintf("%s-%d", s.faker.Word(), i+1)
		tag, err := domain.NewTag(label)
		if err != nil {
			return nil, fmt.Errorf("build tag: %w", err)
		}
		if err := s.tags.Create(ctx, tag); err != nil {
			return nil, fmt.Errorf("seed tag: %w", err)
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

func (s *Seeder) seedTasks(
	ctx context.Context,
	count int,
	userIDs, categoryIDs, tagIDs []uuid.UUID,
) error {
	if len(userIDs) == 0 || len(categoryIDs) == 0 {
		return fmt.Errorf("cannot seed tasks without users and categories")
	}

	statuses := domain.AllTaskStatuses()
	for i := 0; i < count; i++ {
		var dueDate *time.Time
		if s.faker.Bool() {
			due := time.Now().UTC().AddDate(0, 0, s.faker.Number(-10, 30))
			dueDate = &due
		}

		task, err := domain.NewTask(
			userIDs[s.faker.Number(0, len(userIDs)-1)],
			categoryIDs[s.faker.Number(0, len(categoryIDs)-1)],
			s.faker.Sentence(4),
			s.faker.Sentence(12),
			statuses[s.faker.Number(0, len(statuses)-1)],
			dueDate,
		)
		if err != nil {
			return fmt.Errorf("build task: %w", err)
		}
		if err := s.tasks.Create(ctx, task); err != nil {
			return fmt.Errorf("seed task: %w", err)
		}

		if subset := s.randomTagSubset(tagIDs); len(subset) > 0 {
			if err := s.tasks.ReplaceTags(ctx, task.ID, subset); err != nil {
				return fmt.Errorf("seed task tags: %w", err)
			}
		}
	}
	return nil
}

// randomTagSubset picks zero to three tags.
func (s *Seeder) randomTagSubset(tagIDs []uuid.UUID) []uuid.UUID {
	if len(tagIDs) == 0 {
		return nil
	}
	n := s.faker.Number(0, min(3, len(tagIDs)))
	picked := make([]uuid.UUID, 0, n)
	seen := make(map[uuid.UUID]bool, n)
	for len(picked) < n {
		id := tagIDs[s.faker.Number(0, len(tagIDs)-1)]
		if !seen[id] {
			seen[id] = true
			picked = append(picked, id)
		}
	}
	return picked
}
