package media

import (
	"geomedia/internal/adapters/handlers/http/chi/v1/render"
	"geomedia/internal/core/domain"
	"net/http"
)

// V1ListByStatusResponse is the response of status listings
type V1ListByStatusResponse struct {
	Items []V1MediaItemResponse `json:"items"`
}

// SearchV1 returns a page of approved items whose title contains q
func (h *HandlerV1) SearchV1(w http.ResponseWriter, r *http.Request) {

	page, err := pageParam(r)
	if err != nil {
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.mediaService.SearchMediaItems(r.Context(), r.URL.Query().Get("q"), page)
	if err != nil {
		render.Error(w, h.logger, err, "error searching media items")
		return
	}

	render.JSON(w, h.logger, http.StatusOK, toPageResponse(result))
}

// GetByTagV1 returns a page of approved items carrying the tag
func (h *HandlerV1) GetByTagV1(w http.ResponseWriter, r *http.Request) {

	tagID, err := uuidParam(r, "tagID")
	if err != nil {
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	page, err := pageParam(r)
	if err != nil {
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.mediaService.GetMediaItemsByTag(r.Context(), tagID, page)
	if err != nil {
		render.Error(w, h.logger, err, "error listing media items by tag")
		return
	}

	render.JSON(w, h.logger, http.StatusOK, toPageResponse(result))
}

// ListByStatusV1 lists items by processing or moderation status, whatever their visibility.
// Exactly one of the processing and moderation query values is expected.
func (h *HandlerV1) ListByStatusV1(w http.ResponseWriter, r *http.Request) {

	processing := r.URL.Query().Get("processing")
	moderation := r.URL.Query().Get("moderation")

	var items []domain.MediaItem
	var err error
	switch {
	case processing != "" && moderation != "":
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, "only one of processing and moderation can be set")
		return
	case processing != "":
		items, err = h.mediaService.ListByProcessingStatus(r.Context(), domain.ProcessingStatus(processing))
	case moderation != "":
		items, err = h.mediaService.ListByModerationStatus(r.Context(), domain.ModerationStatus(moderation))
	default:
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, "processing or moderation is required")
		return
	}
	if err != nil {
		render.Error(w, h.logger, err, "error listing media items by status")
		return
	}

	render.JSON(w, h.logger, http.StatusOK, V1ListByStatusResponse{Items: toItemResponses(items)})
}
