package media

import (
	"context"
	"geomedia/internal/core/domain"

	"github.com/google/uuid"
)

// GetMediaItem returns an approved item. Unapproved items are reported as not found.
func (m *mediaService) GetMediaItem(ctx context.Context, id uuid.UUID) (*domain.MediaItemView, error) {
	item, err := m.uow.MediaItemRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.ModerationStatus != domain.ModerationStatusApproved {
		return nil, domain.ErrMediaItemNotFound
	}

	view, err := m.toView(ctx, *item)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
