package upload

import (
	"context"
	"errors"
	"fmt"
	"geomedia/internal/core/domain"
	"time"
)

// ConfirmUpload records an upload the client reports as done.
// The key must be one this service could have issued for the MIME type.
// With verification, the object must be non empty and younger than the confirm window.
func (u *uploadService) ConfirmUpload(ctx context.Context, item domain.NewMediaItem, tagNames []string) (*domain.MediaItem, error) {
	mimeType, _, err := validateMediaFile(item.OriginalFilename, item.MimeType)
	if err != nil {
		return nil, err
	}
	item.MimeType = mimeType

	if err := u.validateObjectKey(item.ObjectKey, mimeType); err != nil {
		return nil, err
	}

	if u.cfg.VerifyObject {
		info, err := u.fileStorage.GetObjectInfo(ctx, item.ObjectKey)
		if err != nil {
			if errors.Is(err, domain.ErrObjectNotFound) {
				return nil, fmt.Errorf("%w: %s", domain.ErrUploadNotFound, item.ObjectKey)
			}
			return nil, err
		}
		if info.Size == 0 {
			return nil, fmt.Errorf("%w: %s", domain.ErrEmptyUpload, item.ObjectKey)
		}
		if u.cfg.ConfirmWindow > 0 && time.Since(info.LastModified) > u.cfg.ConfirmWindow {
			return nil, fmt.Errorf("%w: %s", domain.ErrUploadExpired, item.ObjectKey)
		}
		item.FileSize = info.Size
	}

	return u.mediaService.CreateMediaItem(ctx, item, tagNames)
}
