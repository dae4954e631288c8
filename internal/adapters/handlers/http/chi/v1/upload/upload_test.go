package upload_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"geomedia/internal/adapters/handlers/http/chi"
	uploadhandler "geomedia/internal/adapters/handlers/http/chi/v1/upload"
	"geomedia/internal/config"
	"geomedia/internal/core/domain"
	uploadservice "geomedia/internal/core/service/upload"
	"io"
	"log/slog"
	httpgo "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newRouter(service *uploadservice.MockUploadService, rateLimit config.RateLimitConfig) httpgo.Handler {
	handler := uploadhandler.NewUploadHandlerV1(service, discardLogger)
	return chi.NewRouter(context.Background(), discardLogger, chi.Handlers{Upload: handler}, rateLimit, "")
}

var relaxed = config.RateLimitConfig{RPS: 100, Burst: 100}

func post(path string, body string) *httpgo.Request {
	req := httptest.NewRequest(httpgo.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRequestUploadCredentialV1(t *testing.T) {

	t.Run("nominal", func(t *testing.T) {
		// Arrange
		service := &uploadservice.MockUploadService{}
		expiresAt := time.Now().Add(10 * time.Minute).UTC()
		credential := &domain.UploadCredential{
			ObjectKey: "original/" + uuid.NewString() + ".jpg",
			URL:       "http://storage/media",
			Fields:    map[string]string{"policy": "abc", "key": "original/x.jpg"},
			ExpiresAt: expiresAt,
		}
		expectedReq := domain.UploadRequest{Filename: "beach.jpg", MimeType: "image/jpeg", Size: 2048}
		service.On("RequestUploadCredential", mock.Anything, expectedReq).Return(credential, nil)
		w := httptest.NewRecorder()

		// Act
		newRouter(service, relaxed).ServeHTTP(w, post("/api/v1/upload/credential", `{"filename":"beach.jpg","mimeType":"image/jpeg","fileSize":2048}`))

		// Assert
		assert.Equal(t, httpgo.StatusOK, w.Code)
		var resp uploadhandler.V1RequestUploadCredentialResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, credential.ObjectKey, resp.ObjectKey)
		assert.Equal(t, credential.URL, resp.PresignedPost.URL)
		assert.Equal(t, "abc", resp.PresignedPost.Fields["policy"])
		assert.WithinDuration(t, expiresAt, resp.ExpiresAt, time.Second)
		service.AssertExpectations(t)
	})

	t.Run("file too big", func(t *testing.T) {
		// Arrange
		service := &uploadservice.MockUploadService{}
		service.On("RequestUploadCredential", mock.Anything, mock.Anything).Return(nil, domain.ErrFileSizeTooBig)
		w := httptest.NewRecorder()

		// Act
		newRouter(service, relaxed).ServeHTTP(w, post("/api/v1/upload/credential", `{"filename":"big.mp4","mimeType":"video/mp4","fileSize":999999999}`))

		// Assert
		assert.Equal(t, httpgo.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"file size too big"}`, w.Body.String())
	})

	t.Run("unsupported type", func(t *testing.T) {
		// Arrange
		service := &uploadservice.MockUploadService{}
		service.On("RequestUploadCredential", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidFileType)
		w := httptest.NewRecorder()

		// Act
		newRouter(service, relaxed).ServeHTTP(w, post("/api/v1/upload/credential", `{"filename":"doc.pdf","mimeType":"application/pdf","fileSize":10}`))

		// Assert
		assert.Equal(t, httpgo.StatusBadRequest, w.Code)
	})

	t.Run("missing filename", func(t *testing.T) {
		// Arrange
		service := &uploadservice.MockUploadService{}
		w := httptest.NewRecorder()

		// Act
		newRouter(service, relaxed).ServeHTTP(w, post("/api/v1/upload/credential", `{"mimeType":"image/png","fileSize":10}`))

		// Assert
		assert.Equal(t, httpgo.StatusBadRequest, w.Code)
		service.AssertNotCalled(t, "RequestUploadCredential", mock.Anything, mock.Anything)
	})

	t.Run("storage failure is not exposed", func(t *testing.T) {
		// Arrange
		service := &uploadservice.MockUploadService{}
		service.On("RequestUploadCredential", mock.Anything, mock.Anything).Return(nil, errors.New("minio: access denied for key AKIA"))
		w := httptest.NewRecorder()

		// Act
		newRouter(service, relaxed).ServeHTTP(w, post("/api/v1/upload/credential", `{"filename":"a.png","mimeType":"image/png","fileSize":10}`))

		// Assert
		assert.Equal(t, httpgo.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "AKIA")
	})

	t.Run("rate limited per client", func(t *testing.T) {
		// Arrange
		service := &uploadservice.MockUploadService{}
		service.On("RequestUploadCredential", mock.Anything, mock.Anything).Return(&domain.UploadCredential{}, nil)
		router := newRouter(service, config.RateLimitConfig{RPS: 0.001, Burst: 2})
		body := `{"filename":"a.png","mimeType":"image/png","fileSize":10}`

		var codes []int
		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			req := post("/api/v1/upload/credential", body)
			req.RemoteAddr = "10.0.0.1:1234"
			router.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}
		other := httptest.NewRecorder()
		otherReq := post("/api/v1/upload/credential", body)
		otherReq.RemoteAddr = "10.0.0.2:1234"

		// Act
		router.ServeHTTP(other, otherReq)

		// Assert
		assert.Equal(t, []int{httpgo.StatusOK, httpgo.StatusOK, httpgo.StatusTooManyRequests}, codes)
		assert.Equal(t, httpgo.StatusOK, other.Code)
	})

	t.Run("rotating forwarded headers does not reset the limit", func(t *testing.T) {
		// Arrange
		service := &uploadservice.MockUploadService{}
		service.On("RequestUploadCredential", mock.Anything, mock.Anything).Return(&domain.UploadCredential{}, nil)
		router := newRouter(service, config.RateLimitConfig{RPS: 0.001, Burst: 1})
		body := `{"filename":"a.png","mimeType":"image/png","fileSize":10}`

		var codes []int
		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			req := post("/api/v1/upload/credential", body)
			req.RemoteAddr = "10.0.0.1:1234"
			req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
			req.Header.Set("X-Real-IP", fmt.Sprintf("198.51.100.%d", i))

			// Act
			router.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		// Assert
		assert.Equal(t, []int{httpgo.StatusOK, httpgo.StatusTooManyRequests, httpgo.StatusTooManyRequests}, codes)
	})

	t.Run("forwarded headers count behind a trusted proxy", func(t *testing.T) {
		// Arrange
		service := &uploadservice.MockUploadService{}
		service.On("RequestUploadCredential", mock.Anything, mock.Anything).Return(&domain.UploadCredential{}, nil)
		router := newRouter(service, config.RateLimitConfig{RPS: 0.001, Burst: 1, TrustProxy: true})
		body := `{"filename":"a.png","mimeType":"image/png","fileSize":10}`

		var codes []int
		for _, client := range []string{"203.0.113.1", "203.0.113.2", "203.0.113.1"} {
			w := httptest.NewRecorder()
			req := post("/api/v1/upload/credential", body)
			req.RemoteAddr = "10.0.0.1:1234"
			req.Header.Set("X-Real-IP", client)

			// Act
			router.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		// Assert
		assert.Equal(t, []int{httpgo.StatusOK, httpgo.StatusOK, httpgo.StatusTooManyRequests}, codes)
	})
}

func TestConfirmUploadV1(t *testing.T) {
	objectKey := "original/" + uuid.NewString() + ".mp4"

	t.Run("nominal", func(t *testing.T) {
		// Arrange
		service := &uploadservice.MockUploadService{}
		capturedAt := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)
		expectedItem := domain.NewMediaItem{
			ObjectKey:        objectKey,
			OriginalFilename: "clip.mp4",
			MimeType:         "video/mp4",
			FileSize:         4096,
			Title:            "sunset",
			Latitude:         -33.9,
			Longitude:        18.4,
			CapturedAt:       &capturedAt,
		}
		evening := domain.TimeOfDayEvening
		created := &domain.MediaItem{
			ID:               uuid.New(),
			ObjectKey:        objectKey,
			MimeType:         "video/mp4",
			MediaType:        domain.MediaTypeVideo,
			ProcessingStatus: domain.ProcessingStatusPending,
			ModerationStatus: domain.ModerationStatusPending,
			Title:            "sunset",
			Latitude:         -33.9,
			Longitude:        18.4,
			CapturedAt:       &capturedAt,
			TimeOfDay:        &evening,
			Tags:             []domain.Tag{{ID: uuid.New(), Name: "sea"}},
		}
		service.On("ConfirmUpload", mock.Anything, expectedItem, []string{"Sea"}).Return(created, nil)
		body := `{"objectKey":"` + objectKey + `","originalFilename":"clip.mp4","mimeType":"video/mp4","fileSize":4096,` +
			`"title":"sunset","latitude":-33.9,"longitude":18.4,"capturedAt":"2025-06-01T18:30:00Z","tagNames":["Sea"]}`
		w := httptest.NewRecorder()

		// Act
		newRouter(service, relaxed).ServeHTTP(w, post("/api/v1/upload/confirm", body))

		// Assert
		assert.Equal(t, httpgo.StatusCreated, w.Code)
		var resp uploadhandler.V1ConfirmUploadResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, created.ID, resp.MediaItem.ID)
		assert.Equal(t, "video", resp.MediaItem.MediaType)
		assert.Equal(t, "pending", resp.MediaItem.ModerationStatus)
		require.NotNil(t, resp.MediaItem.TimeOfDay)
		assert.Equal(t, "evening", *resp.MediaItem.TimeOfDay)
		service.AssertExpectations(t)
	})

	t.Run("missing coordinates", func(t *testing.T) {
		// Arrange
		service := &uploadservice.MockUploadService{}
		w := httptest.NewRecorder()

		// Act
		newRouter(service, relaxed).ServeHTTP(w, post("/api/v1/upload/confirm", `{"objectKey":"`+objectKey+`","title":"x","latitude":10}`))

		// Assert
		assert.Equal(t, httpgo.StatusBadRequest, w.Code)
		service.AssertNotCalled(t, "ConfirmUpload", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero coordinates are valid", func(t *testing.T) {
		// Arrange
		service := &uploadservice.MockUploadService{}
		service.On("ConfirmUpload", mock.Anything, mock.MatchedBy(func(item domain.NewMediaItem) bool {
			return item.Latitude == 0 && item.Longitude == 0
		}), []string(nil)).Return(&domain.MediaItem{ID: uuid.New(), MediaType: domain.MediaTypeImage}, nil)
		w := httptest.NewRecorder()

		// Act
		newRouter(service, relaxed).ServeHTTP(w, post("/api/v1/upload/confirm", `{"objectKey":"`+objectKey+`","title":"null island","latitude":0,"longitude":0}`))

		// Assert
		assert.Equal(t, httpgo.StatusCreated, w.Code)
		service.AssertExpectations(t)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		// Arrange
		service := &uploadservice.MockUploadService{}
		service.On("ConfirmUpload", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCoordinates)
		w := httptest.NewRecorder()

		// Act
		newRouter(service, relaxed).ServeHTTP(w, post("/api/v1/upload/confirm", `{"objectKey":"`+objectKey+`","title":"x","latitude":91,"longitude":0}`))

		// Assert
		assert.Equal(t, httpgo.StatusBadRequest, w.Code)
	})

	t.Run("object never uploaded", func(t *testing.T) {
		// Arrange
		service := &uploadservice.MockUploadService{}
		service.On("ConfirmUpload", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrUploadNotFound)
		w := httptest.NewRecorder()

		// Act
		newRouter(service, relaxed).ServeHTTP(w, post("/api/v1/upload/confirm", `{"objectKey":"`+objectKey+`","title":"x","latitude":1,"longitude":2}`))

		// Assert
		assert.Equal(t, httpgo.StatusConflict, w.Code)
		assert.JSONEq(t, `{"error":"upload not found"}`, w.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		// Arrange
		service := &uploadservice.MockUploadService{}
		w := httptest.NewRecorder()

		// Act
		newRouter(service, relaxed).ServeHTTP(w, post("/api/v1/upload/confirm", `{"title":`))

		// Assert
		assert.Equal(t, httpgo.StatusBadRequest, w.Code)
	})
}
