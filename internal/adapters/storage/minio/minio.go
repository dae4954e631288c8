package minio

import (
	"context"
	"errors"
	"fmt"
	"geomedia/internal/config"
	"geomedia/internal/core/domain"
	"io"
	"log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is an adapter for minio
type Adapter struct {
	client *minio.Client
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// GenerateUploadCredential issues a presigned POST policy bound to the exact key,
// a content length between 1 and maxBytes and a content type starting with contentType
func (a *Adapter) GenerateUploadCredential(ctx context.Context, objectKey string, contentType string, maxBytes int64) (*domain.UploadCredential, error) {
	expiresAt := time.Now().UTC().Add(a.config.UploadCredentialDuration)

	policy := minio.NewPostPolicy()
	if err := policy.SetBucket(a.config.BucketName); err != nil {
		return nil, fmt.Errorf("failed to set policy bucket: %w", err)
	}
	if err := policy.SetKey(objectKey); err != nil {
		return nil, fmt.Errorf("failed to set policy key: %w", err)
	}
	if err := policy.SetExpires(expiresAt); err != nil {
		return nil, fmt.Errorf("failed to set policy expiry: %w", err)
	}
	if err := policy.SetContentLengthRange(1, maxBytes); err != nil {
		return nil, fmt.Errorf("failed to set policy content length: %w", err)
	}
	if err := policy.SetContentTypeStartsWith(contentType); err != nil {
		return nil, fmt.Errorf("failed to set policy content type: %w", err)
	}

	postURL, formData, err := a.client.PresignedPostPolicy(ctx, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload credential: %w", err)
	}

	return &domain.UploadCredential{
		ObjectKey: objectKey,
		URL:       postURL.String(),
		Fields:    formData,
		ExpiresAt: expiresAt,
	}, nil
}

// GetObjectInfo retrieves obj info, domain.ErrObjectNotFound when the key is absent
func (a *Adapter) GetObjectInfo(ctx context.Context, objectKey string) (*domain.StoredObject, error) {
	info, err := a.client.StatObject(ctx, a.config.BucketName, objectKey, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%s : %w", objectKey, domain.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to get object info: %w", err)
	}

	object := toStoredObject(info)
	return &object, nil
}

// GetHeaderBytes reads the first n bytes of an object. An empty object yields no bytes.
func (a *Adapter) GetHeaderBytes(ctx context.Context, objectKey string, n int64) ([]byte, error) {
	opts := minio.GetObjectOptions{}
	err := opts.SetRange(0, n-1)
	if err != nil {
		return nil, fmt.Errorf("failed to set range: %w", err)
	}

	object, err := a.client.GetObject(ctx, a.config.BucketName, objectKey, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get partial object: %w", err)
	}
	defer object.Close()

	buffer, err := io.ReadAll(io.LimitReader(object, n))
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%s : %w", objectKey, domain.ErrObjectNotFound)
		}
		if minio.ToErrorResponse(err).Code == "InvalidRange" {
			return []byte{}, nil
		}
		return nil, fmt.Errorf("failed to read header bytes: %w", err)
	}

	return buffer, nil
}

// ListObjects lists objects under prefix last modified before olderThan
func (a *Adapter) ListObjects(ctx context.Context, prefix string, olderThan time.Time) ([]domain.StoredObject, error) {
	objects := make([]domain.StoredObject, 0)

	for info := range a.client.ListObjects(ctx, a.config.BucketName, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", info.Err)
		}
		if !info.LastModified.Before(olderThan) {
			continue
		}
		objects = append(objects, toStoredObject(info))
	}

	return objects, nil
}

// DeleteObject deletes an object from storage
func (a *Adapter) DeleteObject(ctx context.Context, objectKey string) error {
	err := a.client.RemoveObject(ctx, a.config.BucketName, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	a.logger.Info("object deleted",
		slog.String("objectKey", objectKey),
		slog.String("bucket", a.config.BucketName))

	return nil
}

// GeneratePresignedURLForDownload generates a presigned URL for downloading a file
func (a *Adapter) GeneratePresignedURLForDownload(ctx context.Context, objectKey string) (string, *time.Time, error) {
	presignedURL, err := a.client.PresignedGetObject(ctx, a.config.BucketName, objectKey, a.config.DownloadSignedURLDuration, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	expiresAt := time.Now().Add(a.config.DownloadSignedURLDuration)

	return presignedURL.String(), &expiresAt, nil
}

func isNotFound(err error) bool {
	var response minio.ErrorResponse
	return errors.As(err, &response) && response.Code == "NoSuchKey"
}

func toStoredObject(info minio.ObjectInfo) domain.StoredObject {
	return domain.StoredObject{
		Key:          info.Key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
	}
}
