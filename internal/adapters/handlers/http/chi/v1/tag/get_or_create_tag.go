package tag

import (
	"geomedia/internal/adapters/handlers/http/chi/v1/render"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// V1GetOrCreateTagRequest is the body request for get or create tag
type V1GetOrCreateTagRequest struct {
	Name string `json:"name"`
}

// GetOrCreateTagV1 returns the tag with the normalized name, creating it when missing
func (h *HandlerV1) GetOrCreateTagV1(w http.ResponseWriter, r *http.Request) {

	var req V1GetOrCreateTagRequest
	if err := render.DecodeJSON(r, &req); err != nil {
		h.logger.Error("error decoding get or create tag request", "error", err)
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, "invalid request")
		return
	}

	tag, err := h.tagService.GetOrCreateTag(r.Context(), req.Name)
	if err != nil {
		render.Error(w, h.logger, err, "error getting or creating tag")
		return
	}

	render.JSON(w, h.logger, http.StatusOK, tag)
}

// GetTagByNameV1 returns the tag matching the normalized name
func (h *HandlerV1) GetTagByNameV1(w http.ResponseWriter, r *http.Request) {

	tag, err := h.tagService.GetTagByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		render.Error(w, h.logger, err, "error getting tag")
		return
	}

	render.JSON(w, h.logger, http.StatusOK, tag)
}
