package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"geomedia/internal/adapters/eventbroker/nats"
	"geomedia/internal/adapters/handlers/http/chi"
	mediahandler "geomedia/internal/adapters/handlers/http/chi/v1/media"
	"geomedia/internal/adapters/handlers/http/chi/v1/tag"
	uploadhandler "geomedia/internal/adapters/handlers/http/chi/v1/upload"
	"geomedia/internal/adapters/metrics"
	"geomedia/internal/adapters/repository/postgres"
	"geomedia/internal/adapters/storage/minio"
	"geomedia/internal/config"
	"geomedia/internal/core/port"
	"geomedia/internal/core/service/cleanup"
	"geomedia/internal/core/service/media"
	tagservice "geomedia/internal/core/service/tag"
	"geomedia/internal/core/service/upload"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}(db)
	logger.Info("db connection established")

	//storage
	minioAdapter, err := minio.NewAdapter(ctx, cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init minio", "error", err)
		os.Exit(1)
	}

	//events, the publisher reconnects in the background when the broker is down
	publisher, err := nats.NewNATSPublisher(ctx, cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to init NATS publisher", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close NATS publisher", "error", err)
		}
	}()

	//repositories
	tagRepo := postgres.NewSqlTagRepository(db)
	unitOfWork := postgres.NewUnitOfWork(db)

	tagService := tagservice.NewTagService(tagRepo)
	mediaService := media.NewMediaService(unitOfWork, minioAdapter, publisher, cfg.Media, logger)
	uploadService := upload.NewUploadService(minioAdapter, mediaService, cfg.Upload, logger)

	//http
	handlers := chi.Handlers{
		Media:  mediahandler.NewMediaHandlerV1(mediaService, logger),
		Upload: uploadhandler.NewUploadHandlerV1(uploadService, logger),
		Tag:    tag.NewTagHandlerV1(tagService, logger),
	}

	if len(cfg.Admin.APIKeys) == 0 {
		logger.Warn("ADMIN_API_KEYS is empty, every admin API call will be rejected")
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           chi.NewRouter(ctx, logger, handlers, cfg.RateLimit, cfg.Env.Env),
		ReadHeaderTimeout: 10 * time.Second,
	}
	adminServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Admin.Host, cfg.Admin.Port),
		Handler:           chi.NewAdminRouter(logger, handlers, cfg.Admin.APIKeys),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	for name, srv := range map[string]*http.Server{"api": server, "admin": adminServer} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("starting server", "server", name, "addr", srv.Addr)
			servErr := srv.ListenAndServe()
			if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
				logger.Error("failed to start server", "server", name, "error", servErr)
				stop()
			}
		}()
	}

	cleanupService := cleanup.NewCleanupService(unitOfWork, minioAdapter, publisher, cfg.Upload, logger)
	wg.Add(1)
	go func() {
		defer wg.Done()
		initRepublishTask(ctx, cleanupService, cfg.Upload.RepublishEvery, logger)
	}()

	if cfg.Upload.OrphanSweepEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			initOrphanSweepTask(ctx, cleanupService, cfg.Upload.OrphanSweepEvery, logger)
		}()
	}

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	for name, srv := range map[string]*http.Server{"api": server, "admin": adminServer} {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown server", "server", name, "error", err)
		} else {
			logger.Info("server gracefully shutdown complete", "server", name)
		}
	}

	wg.Wait()
	logger.Info("app shutdown complete")

}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}

func initOrphanSweepTask(ctx context.Context, service port.CleanupService, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	logger.Info("orphan sweep task initialized", "interval", every)

	for {
		select {
		case <-ticker.C:
			deleted, err := service.SweepOrphans(ctx, time.Now())
			metrics.RecordOrphansSwept(deleted)
			if err != nil {
				logger.Error("failed to sweep orphan uploads", "error", err)
			}
		case <-ctx.Done():
			logger.Info("orphan sweep task stopped")
			return
		}
	}

}

func initRepublishTask(ctx context.Context, service port.CleanupService, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	logger.Info("pending republish task initialized", "interval", every)

	for {
		select {
		case <-ticker.C:
			published, err := service.RepublishPending(ctx, time.Now())
			metrics.RecordEventsRepublished(published)
			if err != nil {
				logger.Warn("failed to republish pending media items", "error", err)
			}
		case <-ctx.Done():
			logger.Info("pending republish task stopped")
			return
		}
	}
}
