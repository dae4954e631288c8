package media

import (
	"geomedia/internal/adapters/handlers/http/chi/v1/render"
	"net/http"
)

// DeleteMediaItemV1 deletes a media item and its tag associations
func (h *HandlerV1) DeleteMediaItemV1(w http.ResponseWriter, r *http.Request) {

	id, err := uuidParam(r, "mediaItemID")
	if err != nil {
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.mediaService.DeleteMediaItem(r.Context(), id); err != nil {
		render.Error(w, h.logger, err, "error deleting media item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
