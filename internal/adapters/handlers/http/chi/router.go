package chi

import (
	"context"
	"geomedia/internal/adapters/handlers/http/chi/v1/media"
	"geomedia/internal/adapters/handlers/http/chi/v1/render"
	"geomedia/internal/adapters/handlers/http/chi/v1/tag"
	"geomedia/internal/adapters/handlers/http/chi/v1/upload"
	"geomedia/internal/config"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the v1 handlers mounted by the routers
type Handlers struct {
	Media  *media.HandlerV1
	Upload *upload.HandlerV1
	Tag    *tag.HandlerV1
}

// NewRouter builds the public http.Handler with chi.
// It only serves approved content reads, tags and the upload handshake.
func NewRouter(ctx context.Context, logger *slog.Logger, handlers Handlers, rateLimit config.RateLimitConfig, env string) http.Handler {
	r := chi.NewRouter()

	//handle requestID to facilitate debug (X-Request-ID)
	//It fetches from request if exists, or creates it
	r.Use(middleware.RequestID)
	if rateLimit.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(LoggerMiddleware(logger))
	r.Use(MetricsMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.RequestSize(1 << 20)) //1mb, media bytes never go through the api

	if env != "prod" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	limiter := NewRateLimiter(ctx, rateLimit.RPS, rateLimit.Burst, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/media", handlers.Media.Routes())
		r.With(limiter.Limit).Mount("/upload", handlers.Upload.Routes())
		r.Mount("/tag", handlers.Tag.Routes())
	})

	r.Get("/health", healthHandler(logger))

	return r
}

// NewAdminRouter builds the internal http.Handler: moderation, status changes,
// edits and deletes behind API key auth, plus health and metrics.
func NewAdminRouter(logger *slog.Logger, handlers Handlers, apiKeys []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware(logger))
	r.Use(MetricsMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.RequestSize(1 << 20))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APIKeyAuth(apiKeys, logger))
		r.Mount("/media", handlers.Media.AdminRoutes())
		r.Mount("/tag", handlers.Tag.AdminRoutes())
	})

	r.Get("/health", healthHandler(logger))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func healthHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
		}
		render.JSON(w, logger, http.StatusOK, resp)
	}
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
