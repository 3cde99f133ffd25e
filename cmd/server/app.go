package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/payment"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// application holds the wired dependencies for the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier

	taskService     service.TaskService
	categoryService service.CategoryService
	tagService      service.TagService

	// paymentService is nil when no payment secret key is configured; the
	// payment routes are only mounted when it is present.
	paymentService *payment.Service
}

// newApplication connects to the database, runs migrations, and wires the
// stores, services, and auth components.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	userStore := postgres.NewPostgresUserStore(db, hasher, logger)
	categoryStore := postgres.NewPostgresCategoryStore(db, logger)
	tagStore := postgres.NewPostgresTagStore(db, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)

	app := &application{
		config:           cfg,
		logger:           logger,
		db:               db,
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: auth.NewBcryptVerifier(),
		taskService:      service.NewTaskService(db, taskStore, logger),
		categoryService:  service.NewCategoryService(categoryStore, logger),
		tagService:       service.NewTagService(tagStore, logger),
	}

	if cfg.Payment.StripeSecretKey != "" {
		app.paymentService = payment.NewService(cfg.Payment, logger)
	}

	return app, nil
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
