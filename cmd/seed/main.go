// Package main implements the development data seeder. It fills the
// database with synthetic users, categories, tags, and tasks through the
// regular stores.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	"github.com/taskdeck/taskdeck-api/internal/seed"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

func main() {
	defaults := seed.DefaultOptions()

	users := flag.Int("users", defaults.Users, "number of synthetic users (skipped if users exist)")
	categories := flag.Int("categories", defaults.Categories, "number of categories")
	tags := flag.Int("tags", defaults.Tags, "number of tags")
	tasks := flag.Int("tasks", defaults.Tasks, "number of tasks")
	clear := flag.Bool("clear", false, "delete all existing data first")
	flag.Parse()

	if err := run(seed.Options{
		Users:      *users,
		Categories: *categories,
		Tags:       *tags,
		Tasks:      *tasks,
		Clear:      *clear,
	}); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
}

func run(opts seed.Options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	seeder := seed.NewSeeder(
		db,
		postgres.NewPostgresUserStore(db, hasher, appLogger),
		postgres.NewPostgresCategoryStore(db, appLogger),
		postgres.NewPostgresTagStore(db, appLogger),
		postgres.NewPostgresTaskStore(db, appLogger),
		appLogger,
	)

	return seeder.Run(ctx, opts)
}
