package cleanup_test

import (
	"context"
	"geomedia/internal/adapters/repository"
	"geomedia/internal/adapters/storage"
	"geomedia/internal/config"
	"geomedia/internal/core/domain"
	"geomedia/internal/core/service/cleanup"
	"geomedia/internal/core/service/media"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var republishConfig = config.FileUploadConfig{
	KeyPrefix:      "original",
	RepublishAfter: 5 * time.Minute,
}

func pendingSince(updatedAt time.Time) domain.MediaItem {
	return domain.MediaItem{
		ID:               uuid.New(),
		ObjectKey:        "original/" + uuid.NewString() + ".png",
		MimeType:         "image/png",
		ProcessingStatus: domain.ProcessingStatusPending,
		UpdatedAt:        updatedAt,
	}
}

func TestCleanupService_RepublishPending(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("republishes only stale items", func(t *testing.T) {
		// Arrange
		mockUow := repository.NewMockUnitOfWork()
		publisher := &media.MockPublisher{}
		service := cleanup.NewCleanupService(mockUow, storage.NewMockStorage(), publisher, republishConfig, discardLogger)

		stale := pendingSince(now.Add(-10 * time.Minute))
		fresh := pendingSince(now.Add(-time.Minute))
		mockUow.GetMediaItemRepoMock().
			On("FindByProcessingStatus", ctx, domain.ProcessingStatusPending).
			Return([]domain.MediaItem{stale, fresh}, nil)
		publisher.On("PublishMediaCreated", ctx, domain.MediaCreatedEvent{
			MediaItemID: stale.ID,
			ObjectKey:   stale.ObjectKey,
			MimeType:    stale.MimeType,
		}).Return(nil)

		// Act
		published, err := service.RepublishPending(ctx, now)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 1, published)
		publisher.AssertExpectations(t)
		publisher.AssertNumberOfCalls(t, "PublishMediaCreated", 1)
	})

	t.Run("stops at the first publish failure", func(t *testing.T) {
		// Arrange
		mockUow := repository.NewMockUnitOfWork()
		publisher := &media.MockPublisher{}
		service := cleanup.NewCleanupService(mockUow, storage.NewMockStorage(), publisher, republishConfig, discardLogger)

		items := []domain.MediaItem{pendingSince(now.Add(-time.Hour)), pendingSince(now.Add(-time.Hour))}
		mockUow.GetMediaItemRepoMock().
			On("FindByProcessingStatus", ctx, domain.ProcessingStatusPending).
			Return(items, nil)
		publisher.On("PublishMediaCreated", ctx, mock.Anything).Return(assert.AnError)

		// Act
		published, err := service.RepublishPending(ctx, now)

		// Assert
		assert.ErrorIs(t, err, assert.AnError)
		assert.Zero(t, published)
		publisher.AssertNumberOfCalls(t, "PublishMediaCreated", 1)
	})

	t.Run("without a publisher nothing is read", func(t *testing.T) {
		// Arrange
		mockUow := repository.NewMockUnitOfWork()
		service := cleanup.NewCleanupService(mockUow, storage.NewMockStorage(), nil, republishConfig, discardLogger)

		// Act
		published, err := service.RepublishPending(ctx, now)

		// Assert
		assert.NoError(t, err)
		assert.Zero(t, published)
		mockUow.GetMediaItemRepoMock().AssertNotCalled(t, "FindByProcessingStatus", mock.Anything, mock.Anything)
	})
}
