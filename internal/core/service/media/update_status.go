package media

import (
	"context"
	"geomedia/internal/core/domain"

	"github.com/google/uuid"
)

// UpdateProcessingStatus moves the processing status, rejecting forbidden transitions
func (m *mediaService) UpdateProcessingStatus(ctx context.Context, id uuid.UUID, status domain.ProcessingStatus) error {
	if _, err := domain.ParseProcessingStatus(string(status)); err != nil {
		return err
	}

	item, err := m.uow.MediaItemRepo().FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := domain.CheckProcessingTransition(item.ProcessingStatus, status); err != nil {
		return err
	}

	return m.uow.MediaItemRepo().UpdateProcessingStatus(ctx, id, status)
}

// UpdateModerationStatus moves the moderation status
func (m *mediaService) UpdateModerationStatus(ctx context.Context, id uuid.UUID, status domain.ModerationStatus) error {
	if _, err := domain.ParseModerationStatus(string(status)); err != nil {
		return err
	}

	item, err := m.uow.MediaItemRepo().FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := domain.CheckModerationTransition(item.ModerationStatus, status); err != nil {
		return err
	}

	return m.uow.MediaItemRepo().UpdateModerationStatus(ctx, id, status)
}
