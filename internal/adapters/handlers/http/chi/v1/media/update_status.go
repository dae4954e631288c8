package media

import (
	"geomedia/internal/adapters/handlers/http/chi/v1/render"
	"geomedia/internal/core/domain"
	"net/http"
)

// V1UpdateStatusRequest is the body of status updates
type V1UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateProcessingStatusV1 moves the processing status of a media item
func (h *HandlerV1) UpdateProcessingStatusV1(w http.ResponseWriter, r *http.Request) {

	id, err := uuidParam(r, "mediaItemID")
	if err != nil {
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	var req V1UpdateStatusRequest
	if err := render.DecodeJSON(r, &req); err != nil {
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, "invalid request")
		return
	}

	err = h.mediaService.UpdateProcessingStatus(r.Context(), id, domain.ProcessingStatus(req.Status))
	if err != nil {
		render.Error(w, h.logger, err, "error updating processing status")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateModerationStatusV1 moves the moderation status of a media item
func (h *HandlerV1) UpdateModerationStatusV1(w http.ResponseWriter, r *http.Request) {

	id, err := uuidParam(r, "mediaItemID")
	if err != nil {
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	var req V1UpdateStatusRequest
	if err := render.DecodeJSON(r, &req); err != nil {
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, "invalid request")
		return
	}

	err = h.mediaService.UpdateModerationStatus(r.Context(), id, domain.ModerationStatus(req.Status))
	if err != nil {
		render.Error(w, h.logger, err, "error updating moderation status")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
