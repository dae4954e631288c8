package tag

import (
	"context"
	"geomedia/internal/core/domain"
)

func (t *tagService) ListTags(ctx context.Context, limit int, marker *string) ([]domain.Tag, *string, error) {

	list, nextMarker, err := t.repo.List(ctx, limit, marker)
	if err != nil {
		return nil, nil, err
	}

	return list, nextMarker, nil
}

// ListAllTags returns every tag ordered by name
func (t *tagService) ListAllTags(ctx context.Context) ([]domain.Tag, error) {
	return t.repo.ListAll(ctx)
}
