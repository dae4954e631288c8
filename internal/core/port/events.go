package port

import (
	"context"
	"geomedia/internal/core/domain"
)

// EventConsumer is an interface to define an event consumer (kafka, nats, ...)
type EventConsumer interface {
	Subscribe(ctx context.Context, handler MessageService) error
	Close() error
}

// EventPublisher publishes domain events
type EventPublisher interface {
	PublishMediaCreated(ctx context.Context, event domain.MediaCreatedEvent) error
}

// MessageService is an interface to define message handling
type MessageService interface {
	HandleMessage(ctx context.Context, data []byte) error
}
