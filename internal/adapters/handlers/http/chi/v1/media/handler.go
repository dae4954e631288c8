package media

import (
	"geomedia/internal/core/port"
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 media routes
type HandlerV1 struct {
	mediaService port.MediaItemService
	logger       *slog.Logger
}

// NewMediaHandlerV1 creates HandlerV1
func NewMediaHandlerV1(service port.MediaItemService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		mediaService: service,
		logger:       logger,
	}
}

// Routes exposes the public read routes, approved items only
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", h.GetByBoundsV1)
	router.Get("/search", h.SearchV1)
	router.Get("/tag/{tagID}", h.GetByTagV1)
	router.Get("/{mediaItemID}", h.GetMediaItemV1)

	return router
}

// AdminRoutes exposes moderation, status and mutation routes for the internal listener
func (h *HandlerV1) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/status", h.ListByStatusV1)
	router.Patch("/{mediaItemID}", h.UpdateMediaItemV1)
	router.Delete("/{mediaItemID}", h.DeleteMediaItemV1)
	router.Put("/{mediaItemID}/processing-status", h.UpdateProcessingStatusV1)
	router.Put("/{mediaItemID}/moderation-status", h.UpdateModerationStatusV1)

	return router
}
