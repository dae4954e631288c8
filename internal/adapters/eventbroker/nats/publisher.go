package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"geomedia/internal/config"
	"geomedia/internal/core/domain"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	// publishTimeout bounds a publish while the broker is unreachable
	publishTimeout = 5 * time.Second
	// streamSetupTimeout bounds the first stream check at startup
	streamSetupTimeout = 5 * time.Second
)

// Publisher publishes domain events on JetStream.
// It keeps reconnecting when the broker is down and sets the stream up on first use.
type Publisher struct {
	logger      *slog.Logger
	conn        *nats.Conn
	js          jetstream.JetStream
	config      config.NATSConfig
	mu          sync.Mutex
	streamReady bool
}

// NewNATSPublisher connects in the background, an unreachable broker is not an error
func NewNATSPublisher(ctx context.Context, cfg config.NATSConfig, logger *slog.Logger) (*Publisher, error) {
	conn, js, err := connect(cfg, cfg.ConsumerName+"-publisher", logger, nats.RetryOnFailedConnect(true))
	if err != nil {
		return nil, err
	}

	p := &Publisher{
		conn:   conn,
		js:     js,
		config: cfg,
		logger: logger,
	}

	setupCtx, cancel := context.WithTimeout(ctx, streamSetupTimeout)
	defer cancel()
	if err := p.ensureStream(setupCtx); err != nil {
		logger.Warn("NATS stream not ready, retrying on publish", "error", err)
	}

	return p, nil
}

func (p *Publisher) ensureStream(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamReady {
		return nil
	}
	if err := ensureStream(ctx, p.js, p.config); err != nil {
		return err
	}
	p.streamReady = true
	return nil
}

// PublishMediaCreated publishes the event, deduplicated by media item id
func (p *Publisher) PublishMediaCreated(ctx context.Context, event domain.MediaCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.ensureStream(ctx); err != nil {
		return err
	}

	ack, err := p.js.Publish(ctx, p.config.Subject, data, jetstream.WithMsgID(event.MediaItemID.String()))
	if err != nil {
		return fmt.Errorf("failed to publish media created event: %w", err)
	}

	p.logger.Debug("media created event published",
		slog.String("mediaItemID", event.MediaItemID.String()),
		slog.Uint64("sequence", ack.Sequence))

	return nil
}

// Close drains pending publishes and closes the connection
func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}
	if !p.conn.IsConnected() {
		p.conn.Close()
		return nil
	}
	return p.conn.Drain()
}
