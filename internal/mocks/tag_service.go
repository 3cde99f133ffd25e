package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// MockTagService implements service.TagService for testing
type MockTagService struct {
	CreateTagFn func(ctx context.Context, label string) (*domain.Tag, error)
	GetTagFn    func(ctx context.Context, id uuid.UUID) (*domain.Tag, error)
	ListTagsFn  func(ctx context.Context) ([]*domain.Tag, error)
	UpdateTagFn func(ctx context.Context, id uuid.UUID, label string) (*domain.Tag, error)
	DeleteTagFn func(ctx context.Context, id uuid.UUID) error

	Tag  *domain.Tag
	Tags []*domain.Tag
	Err  error
}

var _ service.TagService = (*MockTagService)(nil)

// CreateTag implements the service.TagService interface
func (m *MockTagService) CreateTag(ctx context.Context, label string) (*domain.Tag, error) {
	if m.CreateTagFn != nil {
		return m.CreateTagFn(ctx, label)
	}
	return m.Tag, m.Err
}

// GetTag implements the service.TagService interface
func (m *MockTagService) GetTag(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	if m.GetTagFn != nil {
		return m.GetTagFn(ctx, id)
	}
	return m.Tag, m.Err
}

// ListTags implements the service.TagService interface
func (m *MockTagService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	if m.ListTagsFn != nil {
		return m.ListTagsFn(ctx)
	}
	return m.Tags, m.Err
}

// UpdateTag implements the service.TagService interface
func (m *MockTagService) UpdateTag(
	ctx context.Context,
	id uuid.UUID,
	label string,
) (*domain.Tag, error) {
	if m.UpdateTagFn != nil {
		return m.UpdateTagFn(ctx, id, label)
	}
	return m.Tag, m.Err
}

// DeleteTag implements the service.TagService interface
func (m *MockTagService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	if m.DeleteTagFn != nil {
		return m.DeleteTagFn(ctx, id)
	}
	return m.Err
}
