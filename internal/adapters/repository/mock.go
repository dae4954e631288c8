package repository

import (
	"context"
	"geomedia/internal/core/domain"
	"geomedia/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockTagRepository struct {
	mock.Mock
}

func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{}
}

func (m *MockTagRepository) GetOrCreate(ctx context.Context, name string) (*domain.Tag, error) {
	args := m.Called(ctx, name)
	tag, _ := args.Get(0).(*domain.Tag)
	return tag, args.Error(1)
}

func (m *MockTagRepository) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	args := m.Called(ctx, name)
	tag, _ := args.Get(0).(*domain.Tag)
	return tag, args.Error(1)
}

func (m *MockTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	args := m.Called(ctx, id)
	tag, _ := args.Get(0).(*domain.Tag)
	return tag, args.Error(1)
}

func (m *MockTagRepository) FindByMediaItemID(ctx context.Context, mediaItemID uuid.UUID) ([]domain.Tag, error) {
	args := m.Called(ctx, mediaItemID)
	tags, _ := args.Get(0).([]domain.Tag)
	return tags, args.Error(1)
}

func (m *MockTagRepository) ListAll(ctx context.Context) ([]domain.Tag, error) {
	args := m.Called(ctx)
	tags, _ := args.Get(0).([]domain.Tag)
	return tags, args.Error(1)
}

func (m *MockTagRepository) List(ctx context.Context, limit int, marker *string) ([]domain.Tag, *string, error) {
	args := m.Called(ctx, limit, marker)
	tags, _ := args.Get(0).([]domain.Tag)
	next, _ := args.Get(1).(*string)
	return tags, next, args.Error(2)
}

func (m *MockTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMediaItemRepository struct {
	mock.Mock
}

func NewMockMediaItemRepository() *MockMediaItemRepository {
	return &MockMediaItemRepository{}
}

func (m *MockMediaItemRepository) Create(ctx context.Context, item domain.MediaItem) (*domain.MediaItem, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(*domain.MediaItem)
	return created, args.Error(1)
}

func (m *MockMediaItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MediaItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*domain.MediaItem)
	return item, args.Error(1)
}

func (m *MockMediaItemRepository) FindByBounds(ctx context.Context, bounds domain.Bounds) ([]domain.MediaItem, error) {
	args := m.Called(ctx, bounds)
	items, _ := args.Get(0).([]domain.MediaItem)
	return items, args.Error(1)
}

func (m *MockMediaItemRepository) FindByTag(ctx context.Context, tagID uuid.UUID, page int, pageSize int) ([]domain.MediaItem, int, error) {
	args := m.Called(ctx, tagID, page, pageSize)
	items, _ := args.Get(0).([]domain.MediaItem)
	return items, args.Int(1), args.Error(2)
}

func (m *MockMediaItemRepository) SearchByTitle(ctx context.Context, search string, page int, pageSize int) ([]domain.MediaItem, int, error) {
	args := m.Called(ctx, search, page, pageSize)
	items, _ := args.Get(0).([]domain.MediaItem)
	return items, args.Int(1), args.Error(2)
}

func (m *MockMediaItemRepository) FindByProcessingStatus(ctx context.Context, status domain.ProcessingStatus) ([]domain.MediaItem, error) {
	args := m.Called(ctx, status)
	items, _ := args.Get(0).([]domain.MediaItem)
	return items, args.Error(1)
}

func (m *MockMediaItemRepository) FindByModerationStatus(ctx context.Context, status domain.ModerationStatus) ([]domain.MediaItem, error) {
	args := m.Called(ctx, status)
	items, _ := args.Get(0).([]domain.MediaItem)
	return items, args.Error(1)
}

func (m *MockMediaItemRepository) ExistsByObjectKey(ctx context.Context, objectKey string) (bool, error) {
	args := m.Called(ctx, objectKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockMediaItemRepository) Update(ctx context.Context, id uuid.UUID, patch domain.MediaItemPatch) (*domain.MediaItem, error) {
	args := m.Called(ctx, id, patch)
	item, _ := args.Get(0).(*domain.MediaItem)
	return item, args.Error(1)
}

func (m *MockMediaItemRepository) UpdateProcessingStatus(ctx context.Context, id uuid.UUID, status domain.ProcessingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockMediaItemRepository) UpdateModerationStatus(ctx context.Context, id uuid.UUID, status domain.ModerationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockMediaItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMediaItemTagRepository struct {
	mock.Mock
}

func NewMockMediaItemTagRepository() *MockMediaItemTagRepository {
	return &MockMediaItemTagRepository{}
}

func (m *MockMediaItemTagRepository) Attach(ctx context.Context, mediaItemID uuid.UUID, tagID uuid.UUID) error {
	args := m.Called(ctx, mediaItemID, tagID)
	return args.Error(0)
}

func (m *MockMediaItemTagRepository) Detach(ctx context.Context, mediaItemID uuid.UUID, tagID uuid.UUID) error {
	args := m.Called(ctx, mediaItemID, tagID)
	return args.Error(0)
}

func (m *MockMediaItemTagRepository) DetachAll(ctx context.Context, mediaItemID uuid.UUID) error {
	args := m.Called(ctx, mediaItemID)
	return args.Error(0)
}

type MockUnitOfWork struct {
	mock.Mock
	tagRepo          *MockTagRepository
	mediaItemRepo    *MockMediaItemRepository
	mediaItemTagRepo *MockMediaItemTagRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		tagRepo:          &MockTagRepository{},
		mediaItemRepo:    &MockMediaItemRepository{},
		mediaItemTagRepo: &MockMediaItemTagRepository{},
	}
}

func (m *MockUnitOfWork) TagRepo() port.TagRepository {
	return m.tagRepo
}

func (m *MockUnitOfWork) MediaItemRepo() port.MediaItemRepository {
	return m.mediaItemRepo
}

func (m *MockUnitOfWork) MediaItemTagRepo() port.MediaItemTagRepository {
	return m.mediaItemTagRepo
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	args := m.Called(ctx, fn)

	if err := fn(m); err != nil {
		return err
	}

	return args.Error(0)
}

func (m *MockUnitOfWork) GetTagRepoMock() *MockTagRepository {
	return m.tagRepo
}

func (m *MockUnitOfWork) GetMediaItemRepoMock() *MockMediaItemRepository {
	return m.mediaItemRepo
}

func (m *MockUnitOfWork) GetMediaItemTagRepoMock() *MockMediaItemTagRepository {
	return m.mediaItemTagRepo
}
