package media

import (
	"context"
	"fmt"
	"geomedia/internal/config"
	"geomedia/internal/core/domain"
	"geomedia/internal/core/port"
	"log/slog"
	"sort"

	"github.com/google/uuid"
)

type mediaService struct {
	uow         port.UnitOfWork
	fileStorage port.FileStorage
	publisher   port.EventPublisher
	cfg         config.MediaConfig
	logger      *slog.Logger
}

// NewMediaService creates a new media service. publisher may be nil, events are then not emitted.
func NewMediaService(uow port.UnitOfWork, storage port.FileStorage, publisher port.EventPublisher, cfg config.MediaConfig, logger *slog.Logger) port.MediaItemService {
	return &mediaService{
		uow:         uow,
		fileStorage: storage,
		publisher:   publisher,
		cfg:         cfg,
		logger:      logger,
	}
}

// toView resolves a presigned access URL for the item's object key
func (m *mediaService) toView(ctx context.Context, item domain.MediaItem) (domain.MediaItemView, error) {
	url, expiresAt, err := m.fileStorage.GeneratePresignedURLForDownload(ctx, item.ObjectKey)
	if err != nil {
		return domain.MediaItemView{}, fmt.Errorf("could not resolve url for %s: %w", item.ID, err)
	}
	return domain.MediaItemView{MediaItem: item, URL: url, URLExpiresAt: expiresAt}, nil
}

func (m *mediaService) toViews(ctx context.Context, items []domain.MediaItem) ([]domain.MediaItemView, error) {
	views := make([]domain.MediaItemView, 0, len(items))
	for _, item := range items {
		view, err := m.toView(ctx, item)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// attachTag get-or-creates a normalized tag and attaches it to the item
func attachTag(ctx context.Context, uow port.UnitOfWork, mediaItemID uuid.UUID, name string) (*domain.Tag, error) {
	tag, err := uow.TagRepo().GetOrCreate(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("could not create tag %q: %w", name, err)
	}
	if err := uow.MediaItemTagRepo().Attach(ctx, mediaItemID, tag.ID); err != nil {
		return nil, fmt.Errorf("could not attach tag %q: %w", name, err)
	}
	return tag, nil
}

// attachTagsBestEffort attaches what it can. A failing tag is logged and skipped.
func (m *mediaService) attachTagsBestEffort(ctx context.Context, mediaItemID uuid.UUID, tagNames []string) []domain.Tag {
	attached := make([]domain.Tag, 0, len(tagNames))

	for _, name := range domain.NormalizeTagNames(tagNames) {
		tag, err := attachTag(ctx, m.uow, mediaItemID, name)
		if err != nil {
			m.logger.Warn("tag attachment failed, media item kept without it",
				"mediaItemID", mediaItemID.String(),
				"tag", name,
				"error", err)
			continue
		}
		attached = append(attached, *tag)
	}

	sort.Slice(attached, func(i, j int) bool {
		return attached[i].Name < attached[j].Name
	})
	return attached
}

// replaceTags swaps the item's tag set inside uow and returns the stored result
func replaceTags(ctx context.Context, uow port.UnitOfWork, mediaItemID uuid.UUID, tagNames []string) ([]domain.Tag, error) {
	if err := uow.MediaItemTagRepo().DetachAll(ctx, mediaItemID); err != nil {
		return nil, err
	}
	for _, name := range domain.NormalizeTagNames(tagNames) {
		if _, err := attachTag(ctx, uow, mediaItemID, name); err != nil {
			return nil, err
		}
	}
	return uow.TagRepo().FindByMediaItemID(ctx, mediaItemID)
}

func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidMediaItem)
	}
	return nil
}
