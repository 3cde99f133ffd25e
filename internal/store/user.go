package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// It handles domain validation and password hashing internally.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user contains all fields except the plaintext password.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user's details. If a new plaintext Password
	// is set on the user, it is hashed and replaces the stored hash.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that is already taken.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user by ID. Tasks owned by the user are removed by
	// the schema's cascade rules.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetProfile retrieves the user's profile.
	// Returns ErrProfileNotFound if the user has no profile yet; profiles
	// are created lazily by UpsertProfile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// UpsertProfile creates the user's profile on first write and updates it
	// afterwards. Returns ErrInvalidEntity if the user does not exist.
	UpsertProfile(ctx context.Context, profile *domain.Profile) error
}
