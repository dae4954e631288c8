package tag

import (
	"geomedia/internal/adapters/handlers/http/chi/v1/render"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// DeleteTagV1 deletes a tag and detaches it from every media item
func (h *HandlerV1) DeleteTagV1(w http.ResponseWriter, r *http.Request) {

	tagID, err := uuid.Parse(chi.URLParam(r, "tagID"))
	if err != nil {
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, "tagID must be a uuid")
		return
	}

	if err := h.tagService.DeleteTag(r.Context(), tagID); err != nil {
		render.Error(w, h.logger, err, "error deleting tag")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
