package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/api"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	serviceauth "github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// stubVerifier compares against a fixed plaintext instead of hashing.
type stubVerifier struct {
	password string
}

func (v *stubVerifier) Compare(_, password string) error {
	if password != v.password {
		return errors.New("password mismatch")
	}
	return nil
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates a user and returns a token pair", func(t *testing.T) {
		t.Parallel()

		var created *domain.User
		userStore := &mocks.MockUserStore{
			CreateFn: func(_ context.Context, user *domain.User) error {
				created = user
				return nil
			},
		}
		handler := api.NewAuthHandler(userStore, &mocks.MockJWTService{Token: "tok"}, &stubVerifier{})

		w := httptest.NewRecorder()
		handler.Register(w, jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]string{
			"email":        "user@example.com",
			"password":     "a-long-password",
			"display_name": "Test User",
		}))

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, created)
		assert.Equal(t, "user@example.com", created.Email)
		assert.NotEmpty(t, created.Password)

		var resp api.AuthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, created.ID, resp.UserID)
		assert.Equal(t, "tok", resp.AccessToken)
		assert.Equal(t, "tok", resp.RefreshToken)
		assert.NotEmpty(t, resp.ExpiresAt)
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		t.Parallel()

		userStore := &mocks.MockUserStore{Err: store.ErrEmailExists}
		handler := api.NewAuthHandler(userStore, &mocks.MockJWTService{}, &stubVerifier{})

		w := httptest.NewRecorder()
		handler.Register(w, jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]string{
			"email":    "user@example.com",
			"password": "a-long-password",
		}))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("short password returns 400", func(t *testing.T) {
		t.Parallel()

		handler := api.NewAuthHandler(&mocks.MockUserStore{}, &mocks.MockJWTService{}, &stubVerifier{})

		w := httptest.NewRecorder()
		handler.Register(w, jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]string{
			"email":    "user@example.com",
			"password": "short",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	user := &domain.User{
		ID:             uuid.New(),
		Email:          "user@example.com",
		HashedPassword: "$2a$10$fakefakefakefakefakefake",
	}

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		t.Parallel()

		userStore := &mocks.MockUserStore{User: user}
		verifier := &stubVerifier{password: "a-long-password"}
		handler := api.NewAuthHandler(userStore, &mocks.MockJWTService{Token: "tok"}, verifier)

		w := httptest.NewRecorder()
		handler.Login(w, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "user@example.com",
			"password": "a-long-password",
		}))

		require.Equal(t, http.StatusOK, w.Code)

		var resp api.AuthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, user.ID, resp.UserID)
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		t.Parallel()

		userStore := &mocks.MockUserStore{User: user}
		verifier := &stubVerifier{password: "a-long-password"}
		handler := api.NewAuthHandler(userStore, &mocks.MockJWTService{}, verifier)

		w := httptest.NewRecorder()
		handler.Login(w, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "user@example.com",
			"password": "wrong-password!",
		}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email returns the same 401", func(t *testing.T) {
		t.Parallel()

		userStore := &mocks.MockUserStore{Err: store.ErrUserNotFound}
		handler := api.NewAuthHandler(userStore, &mocks.MockJWTService{}, &stubVerifier{})

		w := httptest.NewRecorder()
		handler.Login(w, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "a-long-password",
		}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("valid refresh token issues a new pair", func(t *testing.T) {
		t.Parallel()

		jwtSvc := &mocks.MockJWTService{
			Token:  "fresh-tok",
			Claims: &serviceauth.Claims{UserID: userID, TokenType: "refresh"},
		}
		userStore := &mocks.MockUserStore{User: &domain.User{ID: userID}}
		handler := api.NewAuthHandler(userStore, jwtSvc, &stubVerifier{})

		w := httptest.NewRecorder()
		handler.Refresh(w, jsonRequest(t, http.MethodPost, "/api/auth/refresh", map[string]string{
			"refresh_token": "old-refresh",
		}))

		require.Equal(t, http.StatusOK, w.Code)

		var resp api.AuthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, "fresh-tok", resp.AccessToken)
	})

	t.Run("expired refresh token returns 401", func(t *testing.T) {
		t.Parallel()

		jwtSvc := &mocks.MockJWTService{Err: serviceauth.ErrExpiredRefreshToken}
		handler := api.NewAuthHandler(&mocks.MockUserStore{}, jwtSvc, &stubVerifier{})

		w := httptest.NewRecorder()
		handler.Refresh(w, jsonRequest(t, http.MethodPost, "/api/auth/refresh", map[string]string{
			"refresh_token": "stale",
		}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh for a deleted user returns 401", func(t *testing.T) {
		t.Parallel()

		jwtSvc := &mocks.MockJWTService{
			Claims: &serviceauth.Claims{UserID: userID, TokenType: "refresh"},
		}
		userStore := &mocks.MockUserStore{Err: store.ErrUserNotFound}
		handler := api.NewAuthHandler(userStore, jwtSvc, &stubVerifier{})

		w := httptest.NewRecorder()
		handler.Refresh(w, jsonRequest(t, http.MethodPost, "/api/auth/refresh", map[string]string{
			"refresh_token": "orphaned",
		}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
