// Package main implements the one-shot task digest command. It builds a
// digest of a user's open tasks and delivers it over email or telegram,
// then exits. There is no scheduler; external cron owns the cadence.
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
	"github.com/taskdeck/taskdeck-api/internal/notify"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

func main() {
	email := flag.String("email", "", "email address of the user to notify")
	channel := flag.String("channel", "email", "delivery channel: email or telegram")
	flag.Parse()

	if *email == "" {
		log.Fatal("the -email flag is required")
	}
	if *channel != "email" && *channel != "telegram" {
		log.Fatalf("unknown channel %q: must be email or telegram", *channel)
	}

	if err := run(*email, *channel); err != nil {
		log.Fatalf("notification failed: %v", err)
	}
}

func run(email, channel string) error {
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	userStore := postgres.NewPostgresUserStore(db, hasher, appLogger)
	taskStore := postgres.NewPostgresTaskStore(db, appLogger)

	user, err := userStore.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("look up user %s: %w", email, err)
	}

	tasks, err := taskStore.ListForUser(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("list tasks for %s: %w", email, err)
	}

	digest := notify.BuildDigest(user, tasks)

	switch channel {
	case "telegram":
		sender, err := notify.NewTelegramSender(cfg.Notify, appLogger)
		if err != nil {
			return err
		}
		return sender.Send(digest)
	default:
		sender, err := notify.NewEmailSender(cfg.Notify, appLogger)
		if err != nil {
			return err
		}
		return sender.Send(user.Email, digest)
	}
}
