package port

import (
	"context"
	"time"
)

// CleanupService reconciles storage, records and events: it removes uploaded objects
// that never got a media record and re-sends events for items stuck pending
type CleanupService interface {
	SweepOrphans(ctx context.Context, now time.Time) (int, error)
	RepublishPending(ctx context.Context, now time.Time) (int, error)
}
