package upload

import (
	"geomedia/internal/adapters/handlers/http/chi/v1/render"
	"geomedia/internal/adapters/metrics"
	"geomedia/internal/core/domain"
	"net/http"
	"time"
)

// V1RequestUploadCredentialRequest describes the file the client is about to upload
type V1RequestUploadCredentialRequest struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	FileSize int64  `json:"fileSize"`
}

// V1PresignedPost is the form a client posts the file with
type V1PresignedPost struct {
	URL    string            `json:"url"`
	Fields map[string]string `json:"fields"`
}

// V1RequestUploadCredentialResponse is phase one of an upload
type V1RequestUploadCredentialResponse struct {
	PresignedPost V1PresignedPost `json:"presignedPost"`
	ObjectKey     string          `json:"objectKey"`
	ExpiresAt     time.Time       `json:"expiresAt"`
}

// RequestUploadCredentialV1 issues a short-lived credential to upload one file directly to storage
func (h *HandlerV1) RequestUploadCredentialV1(w http.ResponseWriter, r *http.Request) {

	var req V1RequestUploadCredentialRequest
	if err := render.DecodeJSON(r, &req); err != nil {
		metrics.RecordUploadCredential(metrics.StatusError)
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Filename == "" || req.MimeType == "" {
		metrics.RecordUploadCredential(metrics.StatusError)
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, "filename and mimeType are required")
		return
	}

	credential, err := h.uploadService.RequestUploadCredential(r.Context(), domain.UploadRequest{
		Filename: req.Filename,
		MimeType: req.MimeType,
		Size:     req.FileSize,
	})
	if err != nil {
		metrics.RecordUploadCredential(metrics.StatusError)
		render.Error(w, h.logger, err, "error issuing upload credential")
		return
	}

	metrics.RecordUploadCredential(metrics.StatusSuccess)
	render.JSON(w, h.logger, http.StatusOK, V1RequestUploadCredentialResponse{
		PresignedPost: V1PresignedPost{
			URL:    credential.URL,
			Fields: credential.Fields,
		},
		ObjectKey: credential.ObjectKey,
		ExpiresAt: credential.ExpiresAt,
	})
}
