package upload

import (
	"context"
	"fmt"
	"geomedia/internal/core/domain"

	"github.com/google/uuid"
)

// RequestUploadCredential validates the declared file and issues a scoped credential
// for a fresh key under the upload prefix
func (u *uploadService) RequestUploadCredential(ctx context.Context, req domain.UploadRequest) (*domain.UploadCredential, error) {
	if req.Size < 0 {
		return nil, fmt.Errorf("%w: size must not be negative", domain.ErrInvalidFileType)
	}
	if req.Size > u.cfg.MaxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", domain.ErrFileSizeTooBig, req.Size, u.cfg.MaxSize)
	}

	mimeType, ext, err := validateMediaFile(req.Filename, req.MimeType)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("%s/%s.%s", u.cfg.KeyPrefix, uuid.New().String(), ext)

	credential, err := u.fileStorage.GenerateUploadCredential(ctx, objectKey, mimeType, u.cfg.MaxSize)
	if err != nil {
		return nil, fmt.Errorf("could not issue upload credential: %w", err)
	}

	u.logger.Info("upload credential issued",
		"objectKey", objectKey,
		"mimeType", mimeType,
		"size", req.Size)

	return credential, nil
}
