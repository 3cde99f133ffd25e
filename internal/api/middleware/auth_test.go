package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	// The next handler records whether it ran and what user it saw.
	newNext := func(called *bool, gotUserID *uuid.UUID) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*called = true
			if id, ok := middleware.GetUserID(r); ok {
				*gotUserID = id
			}
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("valid token passes user ID through", func(t *testing.T) {
		t.Parallel()

		jwtSvc := &mocks.MockJWTService{
			Claims: &auth.Claims{UserID: userID, TokenType: "access"},
		}
		mw := middleware.NewAuthMiddleware(jwtSvc)

		var called bool
		var gotUserID uuid.UUID
		handler := mw.Authenticate(newNext(&called, &gotUserID))

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, called)
		assert.Equal(t, userID, gotUserID)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		t.Parallel()

		mw := middleware.NewAuthMiddleware(&mocks.MockJWTService{})

		var called bool
		var gotUserID uuid.UUID
		handler := mw.Authenticate(newNext(&called, &gotUserID))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, called)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		t.Parallel()

		mw := middleware.NewAuthMiddleware(&mocks.MockJWTService{})

		var called bool
		var gotUserID uuid.UUID
		handler := mw.Authenticate(newNext(&called, &gotUserID))

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, called)
	})

	t.Run("expired token names the reason", func(t *testing.T) {
		t.Parallel()

		jwtSvc := &mocks.MockJWTService{Err: auth.ErrExpiredToken}
		mw := middleware.NewAuthMiddleware(jwtSvc)

		var called bool
		var gotUserID uuid.UUID
		handler := mw.Authenticate(newNext(&called, &gotUserID))

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Bearer stale-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, called)

		var resp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Token expired", resp.Error)
	})

	t.Run("refresh token in the auth header is rejected", func(t *testing.T) {
		t.Parallel()

		jwtSvc := &mocks.MockJWTService{Err: auth.ErrWrongTokenType}
		mw := middleware.NewAuthMiddleware(jwtSvc)

		var called bool
		var gotUserID uuid.UUID
		handler := mw.Authenticate(newNext(&called, &gotUserID))

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Bearer refresh-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, called)
	})
}
