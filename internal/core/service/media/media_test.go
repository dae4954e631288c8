package media_test

import (
	"geomedia/internal/adapters/repository"
	"geomedia/internal/adapters/storage"
	"geomedia/internal/config"
	"geomedia/internal/core/domain"
	"geomedia/internal/core/port"
	"geomedia/internal/core/service/media"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fixture struct {
	uow       *repository.MockUnitOfWork
	storage   *storage.MockStorage
	publisher *media.MockPublisher
	service   port.MediaItemService
}

func newFixture() *fixture {
	f := &fixture{
		uow:       repository.NewMockUnitOfWork(),
		storage:   storage.NewMockStorage(),
		publisher: &media.MockPublisher{},
	}
	f.service = media.NewMediaService(f.uow, f.storage, f.publisher, config.MediaConfig{PageSize: 20}, discardLogger)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.uow.AssertExpectations(t)
	f.uow.GetMediaItemRepoMock().AssertExpectations(t)
	f.uow.GetTagRepoMock().AssertExpectations(t)
	f.uow.GetMediaItemTagRepoMock().AssertExpectations(t)
	f.storage.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func storedItem(moderation domain.ModerationStatus, processing domain.ProcessingStatus) *domain.MediaItem {
	return &domain.MediaItem{
		ID:               uuid.New(),
		ObjectKey:        "original/" + uuid.NewString() + ".jpg",
		OriginalFilename: "photo.jpg",
		MimeType:         "image/jpeg",
		FileSize:         2048,
		MediaType:        domain.MediaTypeImage,
		ProcessingStatus: processing,
		ModerationStatus: moderation,
		Title:            "street",
		Latitude:         35,
		Longitude:        51,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
		Tags:             []domain.Tag{},
	}
}

func ptr[T any](v T) *T {
	return &v
}
