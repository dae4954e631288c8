package media

import (
	"context"
	"geomedia/internal/core/domain"
	"geomedia/internal/core/port"
	"strings"

	"github.com/google/uuid"
)

// UpdateMediaItem applies patch and, when tagNames is not nil, replaces the item's tags.
// Both happen in one transaction. Items being processed cannot be updated.
func (m *mediaService) UpdateMediaItem(ctx context.Context, id uuid.UUID, patch domain.MediaItemPatch, tagNames []string) (*domain.MediaItem, error) {
	current, err := m.uow.MediaItemRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.ProcessingStatus == domain.ProcessingStatusProcessing {
		return nil, domain.ErrMediaItemProcessing
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		patch.Title = &title
	}

	if patch.Latitude != nil || patch.Longitude != nil {
		latitude, longitude := current.Latitude, current.Longitude
		if patch.Latitude != nil {
			latitude = *patch.Latitude
		}
		if patch.Longitude != nil {
			longitude = *patch.Longitude
		}
		if err := domain.ValidateCoordinates(latitude, longitude); err != nil {
			return nil, err
		}
	}

	if patch.ClearCapturedAt {
		patch.CapturedAt = nil
	}
	if patch.ClearDescription {
		patch.Description = nil
	}
	if patch.CapturedAt != nil && patch.TimeOfDay == nil {
		derived := domain.DeriveTimeOfDay(*patch.CapturedAt)
		patch.TimeOfDay = &derived
	}

	var updated *domain.MediaItem
	txErr := m.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		var err error
		updated, err = uow.MediaItemRepo().Update(ctx, id, patch)
		if err != nil {
			return err
		}

		if tagNames == nil {
			return nil
		}

		updated.Tags, err = replaceTags(ctx, uow, id, tagNames)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	return updated, nil
}
