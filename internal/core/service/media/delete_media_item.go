package media

import (
	"context"
	"geomedia/internal/core/domain"

	"github.com/google/uuid"
)

// DeleteMediaItem removes the record then its stored object. Items being processed cannot be deleted.
func (m *mediaService) DeleteMediaItem(ctx context.Context, id uuid.UUID) error {
	item, err := m.uow.MediaItemRepo().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if item.ProcessingStatus == domain.ProcessingStatusProcessing {
		return domain.ErrMediaItemProcessing
	}

	if err := m.uow.MediaItemRepo().Delete(ctx, id); err != nil {
		return err
	}

	if err := m.fileStorage.DeleteObject(ctx, item.ObjectKey); err != nil {
		m.logger.Warn("media item deleted but object removal failed",
			"mediaItemID", id.String(),
			"objectKey", item.ObjectKey,
			"error", err)
	}

	return nil
}
