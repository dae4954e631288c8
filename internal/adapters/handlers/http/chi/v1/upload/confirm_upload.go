package upload

import (
	"geomedia/internal/adapters/handlers/http/chi/v1/media"
	"geomedia/internal/adapters/handlers/http/chi/v1/render"
	"geomedia/internal/adapters/metrics"
	"geomedia/internal/core/domain"
	"net/http"
	"time"
)

// V1ConfirmUploadRequest is phase two of an upload: the metadata of the file that reached storage
type V1ConfirmUploadRequest struct {
	ObjectKey        string     `json:"objectKey"`
	OriginalFilename string     `json:"originalFilename"`
	MimeType         string     `json:"mimeType"`
	FileSize         int64      `json:"fileSize"`
	Title            string     `json:"title"`
	Description      *string    `json:"description"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	CapturedAt       *time.Time `json:"capturedAt"`
	TimeOfDay        *string    `json:"timeOfDay"`
	TagNames         []string   `json:"tagNames"`
}

// V1ConfirmUploadResponse wraps the created media item
type V1ConfirmUploadResponse struct {
	MediaItem media.V1MediaItemResponse `json:"mediaItem"`
}

// ConfirmUploadV1 records a media item for an object uploaded with a credential
func (h *HandlerV1) ConfirmUploadV1(w http.ResponseWriter, r *http.Request) {

	var req V1ConfirmUploadRequest
	if err := render.DecodeJSON(r, &req); err != nil {
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Latitude == nil || req.Longitude == nil {
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, "latitude and longitude are required")
		return
	}

	item := domain.NewMediaItem{
		ObjectKey:        req.ObjectKey,
		OriginalFilename: req.OriginalFilename,
		MimeType:         req.MimeType,
		FileSize:         req.FileSize,
		Title:            req.Title,
		Description:      req.Description,
		Latitude:         *req.Latitude,
		Longitude:        *req.Longitude,
		CapturedAt:       req.CapturedAt,
	}
	if req.TimeOfDay != nil {
		timeOfDay, err := domain.ParseTimeOfDay(*req.TimeOfDay)
		if err != nil {
			render.Error(w, h.logger, err, "invalid time of day")
			return
		}
		item.TimeOfDay = &timeOfDay
	}

	created, err := h.uploadService.ConfirmUpload(r.Context(), item, req.TagNames)
	if err != nil {
		render.Error(w, h.logger, err, "error confirming upload")
		return
	}

	metrics.RecordMediaItemCreated(string(created.MediaType))
	render.JSON(w, h.logger, http.StatusCreated, V1ConfirmUploadResponse{MediaItem: media.ToMediaItemResponse(*created)})
}
