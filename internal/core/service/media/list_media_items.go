package media

import (
	"context"
	"geomedia/internal/core/domain"
	"strings"

	"github.com/google/uuid"
)

// GetMediaItemsByBounds returns approved items inside the box, newest first
func (m *mediaService) GetMediaItemsByBounds(ctx context.Context, bounds domain.Bounds) ([]domain.MediaItemView, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}

	items, err := m.uow.MediaItemRepo().FindByBounds(ctx, bounds)
	if err != nil {
		return nil, err
	}

	return m.toViews(ctx, items)
}

// GetMediaItemsByTag returns a page of approved items carrying the tag
func (m *mediaService) GetMediaItemsByTag(ctx context.Context, tagID uuid.UUID, page int) (*domain.MediaItemPage, error) {
	if _, err := m.uow.TagRepo().FindByID(ctx, tagID); err != nil {
		return nil, err
	}

	items, total, err := m.uow.MediaItemRepo().FindByTag(ctx, tagID, normalizePage(page), m.pageSize())
	if err != nil {
		return nil, err
	}

	return m.toPage(ctx, items, total)
}

// SearchMediaItems returns a page of approved items whose title contains search
func (m *mediaService) SearchMediaItems(ctx context.Context, search string, page int) (*domain.MediaItemPage, error) {
	items, total, err := m.uow.MediaItemRepo().SearchByTitle(ctx, strings.TrimSpace(search), normalizePage(page), m.pageSize())
	if err != nil {
		return nil, err
	}

	return m.toPage(ctx, items, total)
}

// ListByProcessingStatus lists items in a processing status, moderation is ignored
func (m *mediaService) ListByProcessingStatus(ctx context.Context, status domain.ProcessingStatus) ([]domain.MediaItem, error) {
	if _, err := domain.ParseProcessingStatus(string(status)); err != nil {
		return nil, err
	}
	return m.uow.MediaItemRepo().FindByProcessingStatus(ctx, status)
}

// ListByModerationStatus lists items in a moderation status
func (m *mediaService) ListByModerationStatus(ctx context.Context, status domain.ModerationStatus) ([]domain.MediaItem, error) {
	if _, err := domain.ParseModerationStatus(string(status)); err != nil {
		return nil, err
	}
	return m.uow.MediaItemRepo().FindByModerationStatus(ctx, status)
}

func (m *mediaService) toPage(ctx context.Context, items []domain.MediaItem, total int) (*domain.MediaItemPage, error) {
	views, err := m.toViews(ctx, items)
	if err != nil {
		return nil, err
	}
	return &domain.MediaItemPage{Data: views, Total: total, PerPage: m.pageSize()}, nil
}

func (m *mediaService) pageSize() int {
	if m.cfg.PageSize <= 0 {
		return 20
	}
	return m.cfg.PageSize
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
