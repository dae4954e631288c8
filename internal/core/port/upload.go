package port

import (
	"context"
	"geomedia/internal/core/domain"
)

// UploadService handles the two-phase direct-to-storage upload
type UploadService interface {
	RequestUploadCredential(ctx context.Context, req domain.UploadRequest) (*domain.UploadCredential, error)
	ConfirmUpload(ctx context.Context, item domain.NewMediaItem, tagNames []string) (*domain.MediaItem, error)
}
