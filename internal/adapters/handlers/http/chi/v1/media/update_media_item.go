package media

import (
	"geomedia/internal/adapters/handlers/http/chi/v1/render"
	"geomedia/internal/core/domain"
	"net/http"
	"time"
)

// V1UpdateMediaItemRequest is the body of a partial update.
// Absent fields are left unchanged, description and capturedAt accept null to clear them.
// Tags replaces the whole tag set when present, [] clears it.
type V1UpdateMediaItemRequest struct {
	Title       *string             `json:"title"`
	Description Nullable[string]    `json:"description"`
	Latitude    *float64            `json:"latitude"`
	Longitude   *float64            `json:"longitude"`
	CapturedAt  Nullable[time.Time] `json:"capturedAt"`
	TimeOfDay   *string             `json:"timeOfDay"`
	Tags        []string            `json:"tags"`
}

// UpdateMediaItemV1 applies a partial update to a media item
func (h *HandlerV1) UpdateMediaItemV1(w http.ResponseWriter, r *http.Request) {

	id, err := uuidParam(r, "mediaItemID")
	if err != nil {
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	var req V1UpdateMediaItemRequest
	if err := render.DecodeJSON(r, &req); err != nil {
		render.ErrorMessage(w, h.logger, http.StatusBadRequest, "invalid request")
		return
	}

	patch := domain.MediaItemPatch{
		Title:            req.Title,
		Description:      req.Description.Value,
		ClearDescription: req.Description.IsNull(),
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		CapturedAt:       req.CapturedAt.Value,
		ClearCapturedAt:  req.CapturedAt.IsNull(),
	}
	if req.TimeOfDay != nil {
		timeOfDay, parseErr := domain.ParseTimeOfDay(*req.TimeOfDay)
		if parseErr != nil {
			render.Error(w, h.logger, parseErr, "invalid time of day")
			return
		}
		patch.TimeOfDay = &timeOfDay
	}

	item, err := h.mediaService.UpdateMediaItem(r.Context(), id, patch, req.Tags)
	if err != nil {
		render.Error(w, h.logger, err, "error updating media item")
		return
	}

	render.JSON(w, h.logger, http.StatusOK, ToMediaItemResponse(*item))
}
