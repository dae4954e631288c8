package storage

import (
	"context"
	"geomedia/internal/core/domain"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (m *MockStorage) GenerateUploadCredential(ctx context.Context, objectKey string, contentType string, maxBytes int64) (*domain.UploadCredential, error) {
	args := m.Called(ctx, objectKey, contentType, maxBytes)
	credential, _ := args.Get(0).(*domain.UploadCredential)
	return credential, args.Error(1)
}

func (m *MockStorage) GeneratePresignedURLForDownload(ctx context.Context, objectKey string) (string, *time.Time, error) {
	args := m.Called(ctx, objectKey)
	expiresAt, _ := args.Get(1).(*time.Time)
	return args.String(0), expiresAt, args.Error(2)
}

func (m *MockStorage) GetObjectInfo(ctx context.Context, objectKey string) (*domain.StoredObject, error) {
	args := m.Called(ctx, objectKey)
	object, _ := args.Get(0).(*domain.StoredObject)
	return object, args.Error(1)
}

func (m *MockStorage) GetHeaderBytes(ctx context.Context, objectKey string, n int64) ([]byte, error) {
	args := m.Called(ctx, objectKey, n)
	header, _ := args.Get(0).([]byte)
	return header, args.Error(1)
}

func (m *MockStorage) ListObjects(ctx context.Context, prefix string, olderThan time.Time) ([]domain.StoredObject, error) {
	args := m.Called(ctx, prefix, olderThan)
	objects, _ := args.Get(0).([]domain.StoredObject)
	return objects, args.Error(1)
}

func (m *MockStorage) DeleteObject(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}
