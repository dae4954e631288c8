package upload

import (
	"context"
	"geomedia/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockUploadService is a mock implementation of UploadService
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) RequestUploadCredential(ctx context.Context, req domain.UploadRequest) (*domain.UploadCredential, error) {
	args := m.Called(ctx, req)
	credential, _ := args.Get(0).(*domain.UploadCredential)
	return credential, args.Error(1)
}

func (m *MockUploadService) ConfirmUpload(ctx context.Context, item domain.NewMediaItem, tagNames []string) (*domain.MediaItem, error) {
	args := m.Called(ctx, item, tagNames)
	created, _ := args.Get(0).(*domain.MediaItem)
	return created, args.Error(1)
}
