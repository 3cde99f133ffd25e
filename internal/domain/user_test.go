package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid", email: "user@example.com", password: "a-long-password"},
		{name: "empty email", email: "", password: "a-long-password", wantErr: domain.ErrEmptyEmail},
		{name: "no at sign", email: "example.com", password: "a-long-password", wantErr: domain.ErrInvalidEmailFormat},
		{name: "no domain dot", email: "user@example", password: "a-long-password", wantErr: domain.ErrInvalidEmailFormat},
		{name: "empty password", email: "user@example.com", password: "", wantErr: domain.ErrEmptyPassword},
		{name: "password too short", email: "user@example.com", password: "short", wantErr: domain.ErrPasswordTooShort},
		{
			name:     "password too long",
			email:    "user@example.com",
			password: strings.Repeat("p", domain.MaxPasswordLength+1),
			wantErr:  domain.ErrPasswordTooLong,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			user, err := domain.NewUser(tc.email, tc.password, "Test User")

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.True(t, user.IsActive)
		})
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	t.Parallel()

	// Users loaded from the store carry only the hash, never the plaintext.
	user := &domain.User{
		ID:             uuid.New(),
		Email:          "user@example.com",
		HashedPassword: "$2a$10$fakefakefakefakefakefake",
	}
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), domain.ErrEmptyPassword)
}

func TestNewProfile(t *testing.T) {
	t.Parallel()

	profile, err := domain.NewProfile(uuid.New(), "+15551234567", "1 Main St")
	require.NoError(t, err)
	assert.Equal(t, "+15551234567", profile.PhoneNumber)

	_, err = domain.NewProfile(uuid.Nil, "", "")
	assert.ErrorIs(t, err, domain.ErrProfileUserIDEmpty)
}
