package postgres

import (
	"context"
	"fmt"
	"geomedia/internal/core/port"

	"github.com/google/uuid"
)

type sqlMediaItemTagRepository struct {
	db SQLQuerier
}

// NewMediaItemTagRepository creates sqlMediaItemTagRepository
func NewMediaItemTagRepository(db SQLQuerier) port.MediaItemTagRepository {
	return &sqlMediaItemTagRepository{db: db}
}

// Attach inserts the association, doing nothing when it already exists
func (s *sqlMediaItemTagRepository) Attach(ctx context.Context, mediaItemID uuid.UUID, tagID uuid.UUID) error {
	query := `INSERT INTO media_item_tags (media_item_id, tag_id)
              VALUES ($1, $2)
              ON CONFLICT (media_item_id, tag_id) DO NOTHING`

	_, err := s.db.ExecContext(ctx, query, mediaItemID, tagID)
	if err != nil {
		return fmt.Errorf("error inserting media item tag: %w", err)
	}
	return nil
}

// Detach removes the association if present
func (s *sqlMediaItemTagRepository) Detach(ctx context.Context, mediaItemID uuid.UUID, tagID uuid.UUID) error {
	query := `DELETE FROM media_item_tags WHERE media_item_id = $1 AND tag_id = $2`

	_, err := s.db.ExecContext(ctx, query, mediaItemID, tagID)
	if err != nil {
		return fmt.Errorf("error deleting media item tag: %w", err)
	}
	return nil
}

// DetachAll removes all tag associations for a given media item
func (s *sqlMediaItemTagRepository) DetachAll(ctx context.Context, mediaItemID uuid.UUID) error {
	query := `DELETE FROM media_item_tags WHERE media_item_id = $1`

	_, err := s.db.ExecContext(ctx, query, mediaItemID)
	if err != nil {
		return fmt.Errorf("error deleting media item tags: %w", err)
	}
	return nil
}
