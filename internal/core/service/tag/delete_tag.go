package tag

import (
	"context"

	"github.com/google/uuid"
)

// DeleteTag removes a tag, its media associations cascade
func (t *tagService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	return t.repo.Delete(ctx, id)
}
