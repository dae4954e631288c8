package upload_test

import (
	"context"
	"geomedia/internal/adapters/repository"
	"geomedia/internal/adapters/storage"
	"geomedia/internal/config"
	"geomedia/internal/core/domain"
	"geomedia/internal/core/service/media"
	"geomedia/internal/core/service/upload"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const maxSize = 50 * 1024 * 1024

var (
	discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	defaultCfg    = config.FileUploadConfig{MaxSize: maxSize, KeyPrefix: "original", VerifyObject: true}
	keyPattern    = regexp.MustCompile(`^original/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.mp4$`)
)

func issued(key string) *domain.UploadCredential {
	return &domain.UploadCredential{
		ObjectKey: key,
		URL:       "http://storage/bucket",
		Fields:    map[string]string{"key": key},
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
}

func TestUploadService_RequestUploadCredential(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a credential for a fresh key", func(t *testing.T) {
		// Arrange
		mockStorage := storage.NewMockStorage()
		mockMedia := &media.MockMediaService{}
		service := upload.NewUploadService(mockStorage, mockMedia, defaultCfg, discardLogger)

		var issuedKey string
		mockStorage.
			On("GenerateUploadCredential", ctx, mock.MatchedBy(func(key string) bool {
				issuedKey = key
				return keyPattern.MatchString(key)
			}), "video/mp4", int64(maxSize)).
			Return(issued("original/x.mp4"), nil)

		// Act
		credential, err := service.RequestUploadCredential(ctx, domain.UploadRequest{
			Filename: "clip.mp4",
			MimeType: "video/mp4",
			Size:     10 * 1024 * 1024,
		})

		// Assert
		require.NoError(t, err)
		require.NotNil(t, credential)
		assert.Regexp(t, keyPattern, issuedKey)
		mockStorage.AssertExpectations(t)
	})

	t.Run("accepts every allowed pairing", func(t *testing.T) {
		for mimeType, exts := range upload.AllowedMediaMimeTypes {
			for _, ext := range exts {
				t.Run(mimeType+"/"+ext, func(t *testing.T) {
					// Arrange
					mockStorage := storage.NewMockStorage()
					service := upload.NewUploadService(mockStorage, &media.MockMediaService{}, defaultCfg, discardLogger)
					mockStorage.On("GenerateUploadCredential", ctx, mock.Anything, mimeType, int64(maxSize)).Return(issued("k"), nil)

					// Act
					_, err := service.RequestUploadCredential(ctx, domain.UploadRequest{Filename: "FILE." + ext, MimeType: mimeType, Size: 1})

					// Assert
					require.NoError(t, err)
				})
			}
		}
	})

	t.Run("rejects invalid requests without reaching storage", func(t *testing.T) {
		for _, tc := range []struct {
			name    string
			req     domain.UploadRequest
			wantErr error
		}{
			{"extension does not match mime", domain.UploadRequest{Filename: "photo.gif", MimeType: "image/png", Size: 10}, domain.ErrInvalidFileType},
			{"missing extension", domain.UploadRequest{Filename: "photo", MimeType: "image/png", Size: 10}, domain.ErrInvalidFileType},
			{"unsupported mime", domain.UploadRequest{Filename: "doc.pdf", MimeType: "application/pdf", Size: 10}, domain.ErrInvalidFileType},
			{"malformed mime", domain.UploadRequest{Filename: "photo.png", MimeType: "", Size: 10}, domain.ErrInvalidFileType},
			{"too big", domain.UploadRequest{Filename: "clip.mp4", MimeType: "video/mp4", Size: maxSize + 1}, domain.ErrFileSizeTooBig},
		} {
			t.Run(tc.name, func(t *testing.T) {
				// Arrange
				mockStorage := storage.NewMockStorage()
				service := upload.NewUploadService(mockStorage, &media.MockMediaService{}, defaultCfg, discardLogger)

				// Act
				credential, err := service.RequestUploadCredential(ctx, tc.req)

				// Assert
				require.ErrorIs(t, err, tc.wantErr)
				require.Nil(t, credential)
				assert.True(t, domain.IsValidation(err))
				mockStorage.AssertNotCalled(t, "GenerateUploadCredential", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("exactly the limit is accepted", func(t *testing.T) {
		// Arrange
		mockStorage := storage.NewMockStorage()
		service := upload.NewUploadService(mockStorage, &media.MockMediaService{}, defaultCfg, discardLogger)
		mockStorage.On("GenerateUploadCredential", ctx, mock.Anything, "image/jpeg", int64(maxSize)).Return(issued("k"), nil)

		// Act
		_, err := service.RequestUploadCredential(ctx, domain.UploadRequest{Filename: "a.jpeg", MimeType: "image/jpeg", Size: maxSize})

		// Assert
		require.NoError(t, err)
	})

	t.Run("storage failure is not public", func(t *testing.T) {
		// Arrange
		mockStorage := storage.NewMockStorage()
		service := upload.NewUploadService(mockStorage, &media.MockMediaService{}, defaultCfg, discardLogger)
		mockStorage.On("GenerateUploadCredential", ctx, mock.Anything, "image/png", int64(maxSize)).Return(nil, assert.AnError)

		// Act
		_, err := service.RequestUploadCredential(ctx, domain.UploadRequest{Filename: "a.png", MimeType: "image/png", Size: 1})

		// Assert
		require.ErrorIs(t, err, assert.AnError)
		assert.False(t, domain.IsPublic(err))
	})
}

func TestUploadService_ConfirmUpload(t *testing.T) {
	ctx := context.Background()
	validKey := "original/" + uuid.NewString() + ".jpg"

	newItem := func(key string) domain.NewMediaItem {
		return domain.NewMediaItem{
			ObjectKey:        key,
			OriginalFilename: "photo.jpg",
			MimeType:         "image/jpeg",
			FileSize:         100,
			Title:            "photo",
			Latitude:         1,
			Longitude:        1,
		}
	}

	t.Run("delegates with the stored size", func(t *testing.T) {
		// Arrange
		mockStorage := storage.NewMockStorage()
		mockMedia := &media.MockMediaService{}
		service := upload.NewUploadService(mockStorage, mockMedia, defaultCfg, discardLogger)
		created := &domain.MediaItem{ID: uuid.New()}
		mockStorage.On("GetObjectInfo", ctx, validKey).Return(&domain.StoredObject{Key: validKey, Size: 4096}, nil)
		mockMedia.On("CreateMediaItem", ctx, mock.MatchedBy(func(item domain.NewMediaItem) bool {
			return item.FileSize == 4096 && item.ObjectKey == validKey
		}), []string{"a"}).Return(created, nil)

		// Act
		res, err := service.ConfirmUpload(ctx, newItem(validKey), []string{"a"})

		// Assert
		require.NoError(t, err)
		require.Equal(t, created, res)
		mockStorage.AssertExpectations(t)
		mockMedia.AssertExpectations(t)
	})

	t.Run("rejects keys this service would not issue", func(t *testing.T) {
		for _, key := range []string{
			"",
			"other/" + uuid.NewString() + ".jpg",
			"original/not-a-uuid.jpg",
			"original/" + uuid.NewString() + ".png",
			"original/nested/" + uuid.NewString() + ".jpg",
			"original/" + uuid.NewString(),
		} {
			t.Run(key, func(t *testing.T) {
				// Arrange
				mockStorage := storage.NewMockStorage()
				mockMedia := &media.MockMediaService{}
				service := upload.NewUploadService(mockStorage, mockMedia, defaultCfg, discardLogger)

				// Act
				_, err := service.ConfirmUpload(ctx, newItem(key), nil)

				// Assert
				require.ErrorIs(t, err, domain.ErrInvalidObjectKey)
				mockMedia.AssertNotCalled(t, "CreateMediaItem", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("missing object", func(t *testing.T) {
		// Arrange
		mockStorage := storage.NewMockStorage()
		mockMedia := &media.MockMediaService{}
		service := upload.NewUploadService(mockStorage, mockMedia, defaultCfg, discardLogger)
		mockStorage.On("GetObjectInfo", ctx, validKey).Return(nil, domain.ErrObjectNotFound)

		// Act
		_, err := service.ConfirmUpload(ctx, newItem(validKey), nil)

		// Assert
		require.ErrorIs(t, err, domain.ErrUploadNotFound)
		assert.True(t, domain.IsBusinessRule(err))
		mockMedia.AssertNotCalled(t, "CreateMediaItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty object", func(t *testing.T) {
		// Arrange
		mockStorage := storage.NewMockStorage()
		mockMedia := &media.MockMediaService{}
		service := upload.NewUploadService(mockStorage, mockMedia, defaultCfg, discardLogger)
		mockStorage.On("GetObjectInfo", ctx, validKey).Return(&domain.StoredObject{Key: validKey, Size: 0, LastModified: time.Now()}, nil)

		// Act
		_, err := service.ConfirmUpload(ctx, newItem(validKey), nil)

		// Assert
		require.ErrorIs(t, err, domain.ErrEmptyUpload)
		assert.True(t, domain.IsValidation(err))
		mockMedia.AssertNotCalled(t, "CreateMediaItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("object older than the confirm window", func(t *testing.T) {
		// Arrange
		mockStorage := storage.NewMockStorage()
		mockMedia := &media.MockMediaService{}
		cfg := defaultCfg
		cfg.ConfirmWindow = 20 * time.Minute
		service := upload.NewUploadService(mockStorage, mockMedia, cfg, discardLogger)
		stale := &domain.StoredObject{Key: validKey, Size: 4096, LastModified: time.Now().Add(-21 * time.Minute)}
		mockStorage.On("GetObjectInfo", ctx, validKey).Return(stale, nil)

		// Act
		_, err := service.ConfirmUpload(ctx, newItem(validKey), nil)

		// Assert
		require.ErrorIs(t, err, domain.ErrUploadExpired)
		assert.True(t, domain.IsBusinessRule(err))
		mockMedia.AssertNotCalled(t, "CreateMediaItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("object inside the confirm window", func(t *testing.T) {
		// Arrange
		mockStorage := storage.NewMockStorage()
		mockMedia := &media.MockMediaService{}
		cfg := defaultCfg
		cfg.ConfirmWindow = 20 * time.Minute
		service := upload.NewUploadService(mockStorage, mockMedia, cfg, discardLogger)
		fresh := &domain.StoredObject{Key: validKey, Size: 4096, LastModified: time.Now().Add(-5 * time.Minute)}
		mockStorage.On("GetObjectInfo", ctx, validKey).Return(fresh, nil)
		mockMedia.On("CreateMediaItem", ctx, mock.Anything, []string(nil)).Return(&domain.MediaItem{ID: uuid.New()}, nil)

		// Act
		_, err := service.ConfirmUpload(ctx, newItem(validKey), nil)

		// Assert
		require.NoError(t, err)
		mockMedia.AssertExpectations(t)
	})

	t.Run("verification can be disabled", func(t *testing.T) {
		// Arrange
		mockStorage := storage.NewMockStorage()
		mockMedia := &media.MockMediaService{}
		cfg := defaultCfg
		cfg.VerifyObject = false
		service := upload.NewUploadService(mockStorage, mockMedia, cfg, discardLogger)
		mockMedia.On("CreateMediaItem", ctx, newItem(validKey), []string(nil)).Return(&domain.MediaItem{}, nil)

		// Act
		_, err := service.ConfirmUpload(ctx, newItem(validKey), nil)

		// Assert
		require.NoError(t, err)
		mockStorage.AssertNotCalled(t, "GetObjectInfo", mock.Anything, mock.Anything)
	})
}

// The full handshake through the real media service with mocked stores
func TestUploadService_EndToEnd(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	mediaService := media.NewMediaService(mockUow, mockStorage, nil, config.MediaConfig{PageSize: 20}, discardLogger)
	service := upload.NewUploadService(mockStorage, mediaService, defaultCfg, discardLogger)

	var objectKey string
	mockStorage.
		On("GenerateUploadCredential", ctx, mock.MatchedBy(func(key string) bool {
			objectKey = key
			return true
		}), "video/mp4", int64(maxSize)).
		Return(issued("pending"), nil)

	// Act
	_, err := service.RequestUploadCredential(ctx, domain.UploadRequest{
		Filename: "clip.mp4",
		MimeType: "video/mp4",
		Size:     10 * 1024 * 1024,
	})
	require.NoError(t, err)

	// Assert
	require.Regexp(t, keyPattern, objectKey)

	// Arrange
	createdID := uuid.New()
	protest := &domain.Tag{ID: uuid.New(), Name: "protest"}
	urban := &domain.Tag{ID: uuid.New(), Name: "urban"}
	mockStorage.On("GetObjectInfo", ctx, objectKey).Return(&domain.StoredObject{Key: objectKey, Size: 10 * 1024 * 1024}, nil)
	mockUow.GetMediaItemRepoMock().
		On("Create", ctx, mock.MatchedBy(func(item domain.MediaItem) bool {
			return item.ObjectKey == objectKey && item.MediaType == domain.MediaTypeVideo &&
				item.Latitude == 35.0 && item.Longitude == 51.0
		})).
		Return(&domain.MediaItem{ID: createdID, ObjectKey: objectKey}, nil)
	mockUow.GetTagRepoMock().On("GetOrCreate", ctx, "protest").Return(protest, nil).Once()
	mockUow.GetTagRepoMock().On("GetOrCreate", ctx, "urban").Return(urban, nil).Once()
	mockUow.GetMediaItemTagRepoMock().On("Attach", ctx, createdID, protest.ID).Return(nil).Once()
	mockUow.GetMediaItemTagRepoMock().On("Attach", ctx, createdID, urban.ID).Return(nil).Once()

	// Act
	created, err := service.ConfirmUpload(ctx, domain.NewMediaItem{
		ObjectKey:        objectKey,
		OriginalFilename: "clip.mp4",
		MimeType:         "video/mp4",
		FileSize:         10 * 1024 * 1024,
		Title:            "march",
		Latitude:         35.0,
		Longitude:        51.0,
	}, []string{"Protest", "protest", " Urban "})

	// Assert
	require.NoError(t, err)
	require.Len(t, created.Tags, 2)
	assert.Equal(t, "protest", created.Tags[0].Name)
	assert.Equal(t, "urban", created.Tags[1].Name)
	mockStorage.AssertExpectations(t)
	mockUow.GetMediaItemRepoMock().AssertExpectations(t)
	mockUow.GetTagRepoMock().AssertExpectations(t)
	mockUow.GetMediaItemTagRepoMock().AssertExpectations(t)
}
