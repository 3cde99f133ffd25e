package api

import (
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// TagHandler handles tag-related API requests. Like categories, tags are
// shared resources mutable by any authenticated caller.
type TagHandler struct {
	tagService service.TagService
	logger     *slog.Logger
}

// NewTagHandler creates a new TagHandler with the given dependencies.
func NewTagHandler(tagService service.TagService, logger *slog.Logger) *TagHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TagHandler{
		tagService: tagService,
		logger:     logger.With(slog.String("component", "tag_handler")),
	}
}

// ListTags handles GET /api/tags.
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.ListTags(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tags")
		return
	}

	responses := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		responses = append(responses, NewTagResponse(tag))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// CreateTag handles POST /api/tags.
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	tag, err := h.tagService.CreateTag(r.Context(), req.Label)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create tag")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewTagResponse(tag))
}

// GetTag handles GET /api/tags/{id}.
func (h *TagHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	tag, err := h.tagService.GetTag(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve tag")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTagResponse(tag))
}

// UpdateTag handles PUT and PATCH /api/tags/{id}. A tag has a single
// writable field, so full and partial updates coincide.
func (h *TagHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req TagRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	tag, err := h.tagService.UpdateTag(r.Context(), id, req.Label)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update tag")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTagResponse(tag))
}

// DeleteTag handles DELETE /api/tags/{id}. Tasks carrying the tag survive;
// only the association is removed.
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete tag")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
