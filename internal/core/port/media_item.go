package port

import (
	"context"
	"geomedia/internal/core/domain"

	"github.com/google/uuid"
)

// MediaItemRepository is an interface to define media item repository interactions.
// It performs no business validation.
type MediaItemRepository interface {
	Create(ctx context.Context, item domain.MediaItem) (*domain.MediaItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.MediaItem, error)
	FindByBounds(ctx context.Context, bounds domain.Bounds) ([]domain.MediaItem, error)
	FindByTag(ctx context.Context, tagID uuid.UUID, page int, pageSize int) ([]domain.MediaItem, int, error)
	SearchByTitle(ctx context.Context, search string, page int, pageSize int) ([]domain.MediaItem, int, error)
	FindByProcessingStatus(ctx context.Context, status domain.ProcessingStatus) ([]domain.MediaItem, error)
	FindByModerationStatus(ctx context.Context, status domain.ModerationStatus) ([]domain.MediaItem, error)
	ExistsByObjectKey(ctx context.Context, objectKey string) (bool, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.MediaItemPatch) (*domain.MediaItem, error)
	UpdateProcessingStatus(ctx context.Context, id uuid.UUID, status domain.ProcessingStatus) error
	UpdateModerationStatus(ctx context.Context, id uuid.UUID, status domain.ModerationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MediaItemTagRepository manages media item to tag associations
type MediaItemTagRepository interface {
	Attach(ctx context.Context, mediaItemID uuid.UUID, tagID uuid.UUID) error
	Detach(ctx context.Context, mediaItemID uuid.UUID, tagID uuid.UUID) error
	DetachAll(ctx context.Context, mediaItemID uuid.UUID) error
}

// MediaItemService is the use-case boundary for media items
type MediaItemService interface {
	CreateMediaItem(ctx context.Context, item domain.NewMediaItem, tagNames []string) (*domain.MediaItem, error)
	GetMediaItem(ctx context.Context, id uuid.UUID) (*domain.MediaItemView, error)
	GetMediaItemsByBounds(ctx context.Context, bounds domain.Bounds) ([]domain.MediaItemView, error)
	GetMediaItemsByTag(ctx context.Context, tagID uuid.UUID, page int) (*domain.MediaItemPage, error)
	SearchMediaItems(ctx context.Context, search string, page int) (*domain.MediaItemPage, error)
	ListByProcessingStatus(ctx context.Context, status domain.ProcessingStatus) ([]domain.MediaItem, error)
	ListByModerationStatus(ctx context.Context, status domain.ModerationStatus) ([]domain.MediaItem, error)
	UpdateMediaItem(ctx context.Context, id uuid.UUID, patch domain.MediaItemPatch, tagNames []string) (*domain.MediaItem, error)
	UpdateProcessingStatus(ctx context.Context, id uuid.UUID, status domain.ProcessingStatus) error
	UpdateModerationStatus(ctx context.Context, id uuid.UUID, status domain.ModerationStatus) error
	DeleteMediaItem(ctx context.Context, id uuid.UUID) error
}
