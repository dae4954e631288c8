package media

import (
	"context"
	"geomedia/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMediaService is a mock implementation of MediaItemService
type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) CreateMediaItem(ctx context.Context, item domain.NewMediaItem, tagNames []string) (*domain.MediaItem, error) {
	args := m.Called(ctx, item, tagNames)
	created, _ := args.Get(0).(*domain.MediaItem)
	return created, args.Error(1)
}

func (m *MockMediaService) GetMediaItem(ctx context.Context, id uuid.UUID) (*domain.MediaItemView, error) {
	args := m.Called(ctx, id)
	view, _ := args.Get(0).(*domain.MediaItemView)
	return view, args.Error(1)
}

func (m *MockMediaService) GetMediaItemsByBounds(ctx context.Context, bounds domain.Bounds) ([]domain.MediaItemView, error) {
	args := m.Called(ctx, bounds)
	views, _ := args.Get(0).([]domain.MediaItemView)
	return views, args.Error(1)
}

func (m *MockMediaService) GetMediaItemsByTag(ctx context.Context, tagID uuid.UUID, page int) (*domain.MediaItemPage, error) {
	args := m.Called(ctx, tagID, page)
	result, _ := args.Get(0).(*domain.MediaItemPage)
	return result, args.Error(1)
}

func (m *MockMediaService) SearchMediaItems(ctx context.Context, search string, page int) (*domain.MediaItemPage, error) {
	args := m.Called(ctx, search, page)
	result, _ := args.Get(0).(*domain.MediaItemPage)
	return result, args.Error(1)
}

func (m *MockMediaService) ListByProcessingStatus(ctx context.Context, status domain.ProcessingStatus) ([]domain.MediaItem, error) {
	args := m.Called(ctx, status)
	items, _ := args.Get(0).([]domain.MediaItem)
	return items, args.Error(1)
}

func (m *MockMediaService) ListByModerationStatus(ctx context.Context, status domain.ModerationStatus) ([]domain.MediaItem, error) {
	args := m.Called(ctx, status)
	items, _ := args.Get(0).([]domain.MediaItem)
	return items, args.Error(1)
}

func (m *MockMediaService) UpdateMediaItem(ctx context.Context, id uuid.UUID, patch domain.MediaItemPatch, tagNames []string) (*domain.MediaItem, error) {
	args := m.Called(ctx, id, patch, tagNames)
	updated, _ := args.Get(0).(*domain.MediaItem)
	return updated, args.Error(1)
}

func (m *MockMediaService) UpdateProcessingStatus(ctx context.Context, id uuid.UUID, status domain.ProcessingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockMediaService) UpdateModerationStatus(ctx context.Context, id uuid.UUID, status domain.ModerationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockMediaService) DeleteMediaItem(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher is a mock implementation of EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishMediaCreated(ctx context.Context, event domain.MediaCreatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
