package processing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"geomedia/internal/core/domain"

	"github.com/gabriel-vasile/mimetype"
)

// HandleMessage moves a freshly created item pending -> processing -> done|failed.
// Done means the stored bytes match the declared MIME type.
// A returned error asks for redelivery, the item is then back to pending.
func (p *processingService) HandleMessage(ctx context.Context, data []byte) error {
	var event domain.MediaCreatedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("could not unmarshal media created event: %w", err)
	}

	item, err := p.uow.MediaItemRepo().FindByID(ctx, event.MediaItemID)
	if err != nil {
		if errors.Is(err, domain.ErrMediaItemNotFound) {
			p.logger.Warn("media item vanished before processing", "mediaItemID", event.MediaItemID.String())
			return nil
		}
		return err
	}

	if item.ProcessingStatus != domain.ProcessingStatusPending {
		p.logger.Info("media item already handled", "mediaItemID", item.ID.String(), "status", item.ProcessingStatus)
		return nil
	}

	p.logger.Info("processing media item", "mediaItemID", item.ID.String(), "key", item.ObjectKey)

	if err := p.mediaService.UpdateProcessingStatus(ctx, item.ID, domain.ProcessingStatusProcessing); err != nil {
		return err
	}

	header, err := p.storage.GetHeaderBytes(ctx, item.ObjectKey, headerSize)
	if err != nil {
		if errors.Is(err, domain.ErrObjectNotFound) {
			p.logger.Warn("stored object is missing", "mediaItemID", item.ID.String(), "key", item.ObjectKey)
			return p.mediaService.UpdateProcessingStatus(ctx, item.ID, domain.ProcessingStatusFailed)
		}
		if resetErr := p.mediaService.UpdateProcessingStatus(ctx, item.ID, domain.ProcessingStatusPending); resetErr != nil {
			return fmt.Errorf("%w : %w", err, resetErr)
		}
		return err
	}

	if len(header) == 0 {
		p.logger.Warn("stored object is empty", "mediaItemID", item.ID.String(), "key", item.ObjectKey)
		return p.mediaService.UpdateProcessingStatus(ctx, item.ID, domain.ProcessingStatusFailed)
	}

	status := domain.ProcessingStatusDone
	detected := mimetype.Detect(header)
	if !matches(detected, item.MimeType) {
		status = domain.ProcessingStatusFailed
		p.logger.Warn("content type mismatch",
			"mediaItemID", item.ID.String(),
			"declared", item.MimeType,
			"detected", detected.String())
	}

	return p.mediaService.UpdateProcessingStatus(ctx, item.ID, status)
}

// matches reports whether detected, or one of its parents, is declared
func matches(detected *mimetype.MIME, declared string) bool {
	for m := detected; m != nil; m = m.Parent() {
		if m.Is(declared) {
			return true
		}
	}
	return false
}
