package tag

import (
	"geomedia/internal/core/port"
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 tags routes
type HandlerV1 struct {
	tagService port.TagService
	logger     *slog.Logger
}

// NewTagHandlerV1 creates HandlerV1
func NewTagHandlerV1(service port.TagService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		tagService: service,
		logger:     logger,
	}
}

// Routes exposes public routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", h.ListAllTagsV1)
	router.Post("/", h.GetOrCreateTagV1)
	router.Get("/page", h.ListTagsV1)
	router.Get("/name/{name}", h.GetTagByNameV1)

	return router
}

// AdminRoutes exposes routes for the internal listener
func (h *HandlerV1) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Delete("/{tagID}", h.DeleteTagV1)

	return router
}
