package tag

import (
	"geomedia/internal/adapters/handlers/http/chi/v1/render"
	"geomedia/internal/core/domain"
	"net/http"
	"strconv"
)

type V1ListTagsResponse struct {
	Tags       []domain.Tag `json:"tags"`
	NextMarker *string      `json:"nextMarker,omitempty"`
}

// ListAllTagsV1 returns every tag ordered by name
func (h *HandlerV1) ListAllTagsV1(w http.ResponseWriter, r *http.Request) {

	tags, err := h.tagService.ListAllTags(r.Context())
	if err != nil {
		render.Error(w, h.logger, err, "error listing tags")
		return
	}
	if tags == nil {
		tags = []domain.Tag{}
	}

	render.JSON(w, h.logger, http.StatusOK, V1ListTagsResponse{Tags: tags})
}

func (h *HandlerV1) ListTagsV1(w http.ResponseWriter, r *http.Request) {

	limit := r.URL.Query().Get("limit")

	limitInt, err := strconv.Atoi(limit)
	if err != nil {
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, "limit must be an integer")
		return
	}

	if limitInt <= 0 {
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, "limit must be greater than zero")
		return
	}

	var markerPtr *string
	if marker := r.URL.Query().Get("marker"); marker != "" {
		markerPtr = &marker
	}
	tags, nextMarker, err := h.tagService.ListTags(r.Context(), limitInt, markerPtr)
	if err != nil {
		render.Error(w, h.logger, err, "error listing tags")
		return
	}
	if tags == nil {
		tags = []domain.Tag{}
	}

	render.JSON(w, h.logger, http.StatusOK, V1ListTagsResponse{
		Tags:       tags,
		NextMarker: nextMarker,
	})
}
