package media

import (
	"fmt"
	"geomedia/internal/adapters/handlers/http/chi/v1/render"
	"geomedia/internal/adapters/metrics"
	"geomedia/internal/core/domain"
	"math"
	"net/http"
	"net/url"
	"strconv"
)

// V1GetByBoundsResponse is the response of the map query.
// Items is always present, Error only on failure.
type V1GetByBoundsResponse struct {
	Error string                `json:"error,omitempty"`
	Items []V1MediaItemResponse `json:"items"`
}

// GetByBoundsV1 returns the approved items inside the north/south/east/west box
func (h *HandlerV1) GetByBoundsV1(w http.ResponseWriter, r *http.Request) {

	bounds, err := parseBounds(r.URL.Query())
	if err != nil {
		metrics.RecordBoundsQuery(metrics.StatusError, 0)
		render.JSON(w, h.logger, http.StatusBadRequest, V1GetByBoundsResponse{
			Error: "missing or invalid bounds parameters",
			Items: []V1MediaItemResponse{},
		})
		return
	}

	views, err := h.mediaService.GetMediaItemsByBounds(r.Context(), bounds)
	if err != nil {
		metrics.RecordBoundsQuery(metrics.StatusError, 0)
		status, message := render.StatusOf(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("error fetching media items by bounds", "error", err)
			message = "failed to fetch media items"
		}
		render.JSON(w, h.logger, status, V1GetByBoundsResponse{
			Error: message,
			Items: []V1MediaItemResponse{},
		})
		return
	}

	metrics.RecordBoundsQuery(metrics.StatusSuccess, len(views))
	render.JSON(w, h.logger, http.StatusOK, V1GetByBoundsResponse{Items: toViewResponses(views)})
}

func parseBounds(query url.Values) (domain.Bounds, error) {
	var values [4]float64
	for i, name := range []string{"north", "south", "east", "west"} {
		value, err := strconv.ParseFloat(query.Get(name), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return domain.Bounds{}, fmt.Errorf("invalid %s", name)
		}
		values[i] = value
	}
	return domain.Bounds{North: values[0], South: values[1], East: values[2], West: values[3]}, nil
}
