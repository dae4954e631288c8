package media

import (
	"context"
	"fmt"
	"geomedia/internal/core/domain"
	"strings"
)

// CreateMediaItem validates input, stores the record, then attaches tags.
// Tag failures after the insert are logged and the record is kept.
func (m *mediaService) CreateMediaItem(ctx context.Context, input domain.NewMediaItem, tagNames []string) (*domain.MediaItem, error) {
	item, err := buildMediaItem(input)
	if err != nil {
		return nil, err
	}

	created, err := m.uow.MediaItemRepo().Create(ctx, *item)
	if err != nil {
		return nil, err
	}

	created.Tags = m.attachTagsBestEffort(ctx, created.ID, tagNames)

	if m.publisher != nil {
		event := domain.MediaCreatedEvent{
			MediaItemID: created.ID,
			ObjectKey:   created.ObjectKey,
			MimeType:    created.MimeType,
		}
		if err := m.publisher.PublishMediaCreated(ctx, event); err != nil {
			m.logger.Error("could not publish media created event",
				"mediaItemID", created.ID.String(),
				"error", err)
		}
	}

	m.logger.Info("media item created",
		"mediaItemID", created.ID.String(),
		"objectKey", created.ObjectKey,
		"tags", len(created.Tags))

	return created, nil
}

func buildMediaItem(input domain.NewMediaItem) (*domain.MediaItem, error) {
	title := strings.TrimSpace(input.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.ObjectKey) == "" {
		return nil, fmt.Errorf("%w: object key is required", domain.ErrInvalidMediaItem)
	}
	if strings.TrimSpace(input.MimeType) == "" {
		return nil, fmt.Errorf("%w: mime type is required", domain.ErrInvalidMediaItem)
	}
	if input.FileSize < 0 {
		return nil, fmt.Errorf("%w: file size must not be negative", domain.ErrInvalidMediaItem)
	}
	if err := domain.ValidateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	timeOfDay := input.TimeOfDay
	if timeOfDay == nil && input.CapturedAt != nil {
		derived := domain.DeriveTimeOfDay(*input.CapturedAt)
		timeOfDay = &derived
	}

	return &domain.MediaItem{
		ObjectKey:        input.ObjectKey,
		OriginalFilename: input.OriginalFilename,
		MimeType:         input.MimeType,
		FileSize:         input.FileSize,
		MediaType:        domain.DeriveMediaType(input.MimeType),
		ProcessingStatus: domain.ProcessingStatusPending,
		ModerationStatus: domain.ModerationStatusPending,
		Title:            title,
		Description:      input.Description,
		Latitude:         input.Latitude,
		Longitude:        input.Longitude,
		CapturedAt:       input.CapturedAt,
		TimeOfDay:        timeOfDay,
	}, nil
}
