package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TagService provides tag operations. Tags are shared across users and
// attach to tasks through a join table.
type TagService interface {
	// CreateTag creates a new tag.
	CreateTag(ctx context.Context, label string) (*domain.Tag, error)

	// GetTag retrieves a tag with its computed task count.
	// Returns store.ErrTagNotFound if it does not exist.
	GetTag(ctx context.Context, id uuid.UUID) (*domain.Tag, error)

	// ListTags retrieves every tag ordered by label.
	ListTags(ctx context.Context) ([]*domain.Tag, error)

	// UpdateTag renames a tag and returns the result.
	// Returns store.ErrTagNotFound if it does not exist.
	UpdateTag(ctx context.Context, id uuid.UUID, label string) (*domain.Tag, error)

	// DeleteTag removes a tag, detaching it from tasks without touching them.
	// Returns store.ErrTagNotFound if it does not exist.
	DeleteTag(ctx context.Context, id uuid.UUID) error
}

type tagServiceImpl struct {
	tagStore store.TagStore
	logger   *slog.Logger
}

// NewTagService creates a new TagService.
func NewTagService(tagStore store.TagStore, logger *slog.Logger) TagService {
	if tagStore == nil {
		panic("tagStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &tagServiceImpl{
		tagStore: tagStore,
		logger:   logger.With(slog.String("component", "tag_service")),
	}
}

// CreateTag implements TagService.CreateTag
func (s *tagServiceImpl) CreateTag(ctx context.Context, label string) (*domain.Tag, error) {
	tag, err := domain.NewTag(label)
	if err != nil {
		return nil, err
	}

	if err := s.tagStore.Create(ctx, tag); err != nil {
		return nil, wrapServiceError("create_tag", "failed to save tag", err,
			domain.ErrValidation)
	}

	s.logger.Info("tag created", slog.String("tag_id", tag.ID.String()))
	return tag, nil
}

// GetTag implements TagService.GetTag
func (s *tagServiceImpl) GetTag(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	tag, err := s.tagStore.GetByID(ctx, id)
	if err != nil {
		return nil, wrapServiceError("get_tag", "failed to retrieve tag", err,
			store.ErrTagNotFound)
	}
	return tag, nil
}

// ListTags implements TagService.ListTags
func (s *tagServiceImpl) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.tagStore.List(ctx)
	if err != nil {
		return nil, wrapServiceError("list_tags", "failed to list tags", err)
	}
	return tags, nil
}

// UpdateTag implements TagService.UpdateTag
func (s *tagServiceImpl) UpdateTag(
	ctx context.Context,
	id uuid.UUID,
	label string,
) (*domain.Tag, error) {
	tag, err := s.tagStore.GetByID(ctx, id)
	if err != nil {
		return nil, wrapServiceError("update_tag", "failed to retrieve tag", err,
			store.ErrTagNotFound)
	}

	tag.Label = label

	if err := s.tagStore.Update(ctx, tag); err != nil {
		return nil, wrapServiceError("update_tag", "failed to save tag", err,
			domain.ErrValidation, store.ErrTagNotFound)
	}

	s.logger.Info("tag updated", slog.String("tag_id", id.String()))
	return tag, nil
}

// DeleteTag implements TagService.DeleteTag
func (s *tagServiceImpl) DeleteTag(ctx context.Context, id uuid.UUID) error {
	if err := s.tagStore.Delete(ctx, id); err != nil {
		return wrapServiceError("delete_tag", "failed to delete tag", err,
			store.ErrTagNotFound)
	}

	s.logger.Info("tag deleted", slog.String("tag_id", id.String()))
	return nil
}
