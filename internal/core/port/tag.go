package port

import (
	"context"
	"geomedia/internal/core/domain"

	"github.com/google/uuid"
)

// TagRepository represents a tag repository implementation
type TagRepository interface {
	GetOrCreate(ctx context.Context, name string) (*domain.Tag, error)
	FindByName(ctx context.Context, name string) (*domain.Tag, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error)
	FindByMediaItemID(ctx context.Context, mediaItemID uuid.UUID) ([]domain.Tag, error)
	ListAll(ctx context.Context) ([]domain.Tag, error)
	List(ctx context.Context, limit int, marker *string) ([]domain.Tag, *string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TagService represents a tag service implementation
type TagService interface {
	GetOrCreateTag(ctx context.Context, name string) (*domain.Tag, error)
	GetTagByName(ctx context.Context, name string) (*domain.Tag, error)
	ListAllTags(ctx context.Context) ([]domain.Tag, error)
	ListTags(ctx context.Context, limit int, marker *string) ([]domain.Tag, *string, error)
	DeleteTag(ctx context.Context, id uuid.UUID) error
}
