package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck-api/internal/api"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid token", err: auth.ErrInvalidToken, want: http.StatusUnauthorized},
		{name: "expired token", err: auth.ErrExpiredToken, want: http.StatusUnauthorized},
		{name: "unauthorized", err: domain.ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "task not found", err: store.ErrTaskNotFound, want: http.StatusNotFound},
		{name: "category not found", err: store.ErrCategoryNotFound, want: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("looking up: %w", store.ErrTagNotFound), want: http.StatusNotFound},
		{name: "email exists", err: store.ErrEmailExists, want: http.StatusConflict},
		{name: "invalid reference", err: store.ErrInvalidEntity, want: http.StatusBadRequest},
		{name: "invalid id", err: domain.ErrInvalidID, want: http.StatusBadRequest},
		{name: "domain validation sentinel", err: domain.ErrTaskTitleTooLong, want: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, api.MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "task not found", err: store.ErrTaskNotFound, want: "Task not found"},
		{name: "email exists", err: store.ErrEmailExists, want: "Email already exists"},
		{name: "expired token", err: auth.ErrExpiredToken, want: "Invalid token"},
		{
			name: "invalid reference keeps entity details",
			err:  fmt.Errorf("%w: category with ID 42 not found", store.ErrInvalidEntity),
			want: "invalid entity: category with ID 42 not found",
		},
		{
			name: "validation sentinel passed verbatim",
			err:  domain.ErrTaskTitleEmpty,
			want: domain.ErrTaskTitleEmpty.Error(),
		},
		{name: "unknown error hidden", err: errors.New("pq: connection reset"), want: "An unexpected error occurred"},
		{name: "nil", err: nil, want: "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, api.GetSafeErrorMessage(tc.err))
		})
	}
}
