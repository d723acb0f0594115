package messaging

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/mosaicmarket/collection-indexer/internal/adapter"
	"github.com/mosaicmarket/collection-indexer/internal/config"
	"github.com/mosaicmarket/collection-indexer/internal/domain"
	"github.com/mosaicmarket/collection-indexer/internal/logger"
)

// Publisher publishes work items and job results onto the job stream.
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// EnsureStream creates or updates the job stream
	EnsureStream(ctx context.Context) error
	// PublishWorkItem enqueues one work item. The item's ULID is used as the
	// JetStream message ID, so re-publishing the same item within the
	// deduplication window is a no-op.
	PublishWorkItem(ctx context.Context, item *domain.WorkItem) error
	// PublishResult publishes the outcome of one import attempt
	PublishResult(ctx context.Context, result *domain.JobResult) error
	// Close closes the NATS connection
	Close()
}

type publisher struct {
	nc         adapter.NatsConn
	js         adapter.JetStream
	json       adapter.JSON
	streamName string
}

// NewPublisher creates a NATS JetStream publisher for the job stream
func NewPublisher(cfg *config.NATSConfig, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (Publisher, error) {
	nc, js, err := connect(cfg, natsJS)
	if err != nil {
		return nil, err
	}

	return &publisher{
		nc:         nc,
		js:         js,
		json:       jsonAdapter,
		streamName: cfg.StreamName,
	}, nil
}

// connect dials NATS with the reconnect handlers shared by publisher and
// consumer.
func connect(cfg *config.NATSConfig, natsJS adapter.NatsJetStream) (adapter.NatsConn, adapter.JetStream, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}
	return nc, js, nil
}

// EnsureStream creates or updates the job stream
func (p *publisher) EnsureStream(ctx context.Context) error {
	return ensureStream(ctx, p.js, p.streamName)
}

func ensureStream(ctx context.Context, js adapter.JetStream, streamName string) error {
	_, err := js.CreateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{SubjectWorkItems, SubjectResults},
	})
	if err != nil {
		return fmt.Errorf("failed to create stream %s: %w", streamName, err)
	}
	return nil
}

// PublishWorkItem enqueues one work item
func (p *publisher) PublishWorkItem(ctx context.Context, item *domain.WorkItem) error {
	data, err := p.json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal work item: %w", err)
	}

	_, err = p.js.Publish(ctx, SubjectWorkItems, data, jetstream.WithMsgID(item.ID))
	if err != nil {
		return fmt.Errorf("failed to publish work item: %w", err)
	}

	logger.InfoCtx(ctx, "work item published",
		zap.String("workItemID", item.ID),
		zap.String("contract", item.Contract),
		zap.Int64("chainID", item.ChainID))
	return nil
}

// PublishResult publishes the outcome of one import attempt
func (p *publisher) PublishResult(ctx context.Context, result *domain.JobResult) error {
	data, err := p.json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal job result: %w", err)
	}

	_, err = p.js.Publish(ctx, SubjectResults, data)
	if err != nil {
		return fmt.Errorf("failed to publish job result: %w", err)
	}
	return nil
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
