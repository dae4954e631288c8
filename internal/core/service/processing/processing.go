package processing

import (
	"geomedia/internal/core/port"
	"log/slog"
)

// headerSize is how many leading bytes are read to sniff the stored content
const headerSize = 3072

type processingService struct {
	storage      port.FileStorage
	uow          port.UnitOfWork
	mediaService port.MediaItemService
	logger       *slog.Logger
}

// NewProcessingService creates the handler of media created events
func NewProcessingService(storage port.FileStorage, uow port.UnitOfWork, mediaService port.MediaItemService, logger *slog.Logger) port.MessageService {
	return &processingService{
		storage:      storage,
		uow:          uow,
		mediaService: mediaService,
		logger:       logger,
	}
}
