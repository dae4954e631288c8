package cleanup

import (
	"context"
	"time"
)

// confirmMargin separates the confirm window from the sweep cutoff
const confirmMargin = time.Minute

// SweepOrphans deletes uploaded objects older than the grace period that no media item references.
// Only objects confirm would already reject are candidates, so a confirm cannot land between
// the reference check and the delete. It returns how many objects were deleted.
func (c *cleanupService) SweepOrphans(ctx context.Context, now time.Time) (int, error) {
	objects, err := c.fileStorage.ListObjects(ctx, c.cfg.KeyPrefix+"/", c.cutoff(now))
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, object := range objects {
		if ctx.Err() != nil {
			return deleted, ctx.Err()
		}

		exists, existsErr := c.uow.MediaItemRepo().ExistsByObjectKey(ctx, object.Key)
		if existsErr != nil {
			return deleted, existsErr
		}
		if exists {
			continue
		}

		if deleteErr := c.fileStorage.DeleteObject(ctx, object.Key); deleteErr != nil {
			c.logger.Error("failed to delete orphan object", "key", object.Key, "err", deleteErr)
			continue
		}
		deleted++
	}

	c.logger.Info("orphan sweep completed", "scanned", len(objects), "deleted", deleted)
	return deleted, nil
}

// cutoff is now minus the grace period, never less than the confirm window plus a margin
func (c *cleanupService) cutoff(now time.Time) time.Time {
	grace := c.cfg.OrphanGrace
	if floor := c.cfg.ConfirmWindow + confirmMargin; grace < floor {
		grace = floor
	}
	return now.Add(-grace)
}
