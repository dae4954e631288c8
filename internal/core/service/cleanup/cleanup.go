package cleanup

import (
	"geomedia/internal/config"
	"geomedia/internal/core/port"
	"log/slog"
)

type cleanupService struct {
	uow         port.UnitOfWork
	fileStorage port.FileStorage
	publisher   port.EventPublisher
	cfg         config.FileUploadConfig
	logger      *slog.Logger
}

// NewCleanupService creates a new cleanup service. publisher may be nil, nothing is then republished.
func NewCleanupService(uow port.UnitOfWork, fileStorage port.FileStorage, publisher port.EventPublisher, cfg config.FileUploadConfig, logger *slog.Logger) port.CleanupService {
	return &cleanupService{
		uow:         uow,
		fileStorage: fileStorage,
		publisher:   publisher,
		cfg:         cfg,
		logger:      logger,
	}
}
