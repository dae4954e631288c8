package port

import (
	"context"
	"geomedia/internal/core/domain"
	"time"
)

// FileStorage is an interface to define file storage interactions
type FileStorage interface {
	GenerateUploadCredential(ctx context.Context, objectKey string, contentType string, maxBytes int64) (*domain.UploadCredential, error)
	GeneratePresignedURLForDownload(ctx context.Context, objectKey string) (string, *time.Time, error)
	GetObjectInfo(ctx context.Context, objectKey string) (*domain.StoredObject, error)
	GetHeaderBytes(ctx context.Context, objectKey string, n int64) ([]byte, error)
	ListObjects(ctx context.Context, prefix string, olderThan time.Time) ([]domain.StoredObject, error)
	DeleteObject(ctx context.Context, objectKey string) error
}
