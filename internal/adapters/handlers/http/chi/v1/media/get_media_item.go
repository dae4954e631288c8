package media

import (
	"geomedia/internal/adapters/handlers/http/chi/v1/render"
	"net/http"
)

// GetMediaItemV1 returns one approved media item with its access url
func (h *HandlerV1) GetMediaItemV1(w http.ResponseWriter, r *http.Request) {

	id, err := uuidParam(r, "mediaItemID")
	if err != nil {
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.mediaService.GetMediaItem(r.Context(), id)
	if err != nil {
		render.Error(w, h.logger, err, "error getting media item")
		return
	}

	render.JSON(w, h.logger, http.StatusOK, toViewResponse(*view))
}
