package tag

import (
	"context"
	"geomedia/internal/core/domain"
)

// GetOrCreateTag returns the tag named name once normalized, creating it if needed
func (t *tagService) GetOrCreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	normalized := domain.NormalizeTagName(name)
	if normalized == "" {
		return nil, domain.ErrInvalidTag
	}

	return t.repo.GetOrCreate(ctx, normalized)
}
