package upload

import (
	"fmt"
	"geomedia/internal/config"
	"geomedia/internal/core/domain"
	"geomedia/internal/core/port"
	"log/slog"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"
)

// AllowedMediaMimeTypes maps each accepted MIME type to the extensions it may carry.
// It does not rely on OS mime databases.
var AllowedMediaMimeTypes = map[string][]string{
	"image/jpeg":      {"jpg", "jpeg"},
	"image/png":       {"png"},
	"image/webp":      {"webp"},
	"video/mp4":       {"mp4"},
	"video/quicktime": {"mov"},
}

type uploadService struct {
	fileStorage  port.FileStorage
	mediaService port.MediaItemService
	cfg          config.FileUploadConfig
	logger       *slog.Logger
}

// NewUploadService creates the two-phase upload service
func NewUploadService(storage port.FileStorage, mediaService port.MediaItemService, cfg config.FileUploadConfig, logger *slog.Logger) port.UploadService {
	return &uploadService{
		fileStorage:  storage,
		mediaService: mediaService,
		cfg:          cfg,
		logger:       logger,
	}
}

// validateMediaFile checks filename carries an extension allowed for contentType
// and returns the bare MIME type and lower-cased extension
func validateMediaFile(filename string, contentType string) (string, string, error) {
	mimeType := extractMimeType(contentType)
	if mimeType == "" {
		return "", "", fmt.Errorf("%w: invalid content type %q", domain.ErrInvalidFileType, contentType)
	}

	allowedExts, ok := AllowedMediaMimeTypes[mimeType]
	if !ok {
		return "", "", fmt.Errorf("%w: unsupported MIME type %s", domain.ErrInvalidFileType, mimeType)
	}

	ext := extension(filename)
	if ext == "" {
		return "", "", fmt.Errorf("%w: file must have an extension", domain.ErrInvalidFileType)
	}

	for _, allowed := range allowedExts {
		if ext == allowed {
			return mimeType, ext, nil
		}
	}

	return "", "", fmt.Errorf("%w: extension %s is not allowed for %s (expected one of: %v)",
		domain.ErrInvalidFileType, ext, mimeType, allowedExts)
}

// validateObjectKey checks key has the form <prefix>/<uuid>.<ext> with ext allowed for mimeType
func (u *uploadService) validateObjectKey(key string, mimeType string) error {
	rest, ok := strings.CutPrefix(key, u.cfg.KeyPrefix+"/")
	if !ok || strings.Contains(rest, "/") {
		return fmt.Errorf("%w: %s", domain.ErrInvalidObjectKey, key)
	}

	ext := extension(rest)
	if _, err := uuid.Parse(strings.TrimSuffix(rest, "."+ext)); err != nil || ext == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidObjectKey, key)
	}

	for _, allowed := range AllowedMediaMimeTypes[mimeType] {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %s does not match %s", domain.ErrInvalidObjectKey, key, mimeType)
}

func extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(strings.TrimSpace(filename)), "."))
}

func extractMimeType(contentType string) string {
	mimeType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mimeType
}
