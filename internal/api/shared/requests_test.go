package shared_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
)

type labelPayload struct {
	Label string `json:"label" validate:"required,max=10"`
}

// selfValidating exercises the Validate-method branch of ValidateRequest.
type selfValidating struct {
	err error
}

func (s selfValidating) Validate() error { return s.err }

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes a valid body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"label":"urgent"}`))

		var payload labelPayload
		require.NoError(t, shared.DecodeJSON(req, &payload))
		assert.Equal(t, "urgent", payload.Label)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"label":`))

		var payload labelPayload
		assert.Error(t, shared.DecodeJSON(req, &payload))
	})
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	t.Run("passes valid struct tags", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, shared.ValidateRequest(labelPayload{Label: "urgent"}))
	})

	t.Run("fails struct tag violations", func(t *testing.T) {
		t.Parallel()

		assert.Error(t, shared.ValidateRequest(labelPayload{}), "missing required field")
		assert.Error(t, shared.ValidateRequest(labelPayload{Label: "well-over-ten-chars"}))
	})

	t.Run("prefers a Validate method when present", func(t *testing.T) {
		t.Parallel()

		sentinel := errors.New("custom validation failed")
		assert.ErrorIs(t, shared.ValidateRequest(selfValidating{err: sentinel}), sentinel)
		assert.NoError(t, shared.ValidateRequest(selfValidating{}))
	})
}
