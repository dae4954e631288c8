package cleanup

import (
	"context"
	"geomedia/internal/core/domain"
	"time"
)

// RepublishPending sends the created event again for items pending since before now-RepublishAfter.
// The processing worker skips items that are no longer pending, so a duplicate is harmless.
// It stops at the first publish failure and returns how many events were sent.
func (c *cleanupService) RepublishPending(ctx context.Context, now time.Time) (int, error) {
	if c.publisher == nil {
		return 0, nil
	}

	items, err := c.uow.MediaItemRepo().FindByProcessingStatus(ctx, domain.ProcessingStatusPending)
	if err != nil {
		return 0, err
	}

	cutoff := now.Add(-c.cfg.RepublishAfter)
	published := 0
	for _, item := range items {
		if !item.UpdatedAt.Before(cutoff) {
			continue
		}

		event := domain.MediaCreatedEvent{
			MediaItemID: item.ID,
			ObjectKey:   item.ObjectKey,
			MimeType:    item.MimeType,
		}
		if err := c.publisher.PublishMediaCreated(ctx, event); err != nil {
			return published, err
		}
		published++
	}

	if published > 0 {
		c.logger.Info("stale pending items republished", "published", published)
	}
	return published, nil
}
