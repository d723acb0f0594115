package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/mosaicmarket/collection-indexer/internal/adapter"
	"github.com/mosaicmarket/collection-indexer/internal/config"
	"github.com/mosaicmarket/collection-indexer/internal/domain"
	"github.com/mosaicmarket/collection-indexer/internal/jobs"
	"github.com/mosaicmarket/collection-indexer/internal/logger"
)

// Consumer pulls work items from the job stream and dispatches them to a
// jobs.Handler through a bounded worker pool.
//
// JetStream's per-message ack model does not serialize deliveries per
// (contract, chain) by itself; the enqueue side must not hold two live work
// items for the same key. Message-ID deduplication on the item ULID covers
// accidental double publishes inside the dedup window.
type Consumer interface {
	// Run consumes the job stream until the context is cancelled
	Run(ctx context.Context) error
	// Close closes the NATS connection
	Close()
}

type consumer struct {
	nc       adapter.NatsConn
	js       adapter.JetStream
	json     adapter.JSON
	clock    adapter.Clock
	handler  jobs.Handler
	config   *config.NATSConfig
	poolSize int
	pool     pond.Pool
}

// NewConsumer creates a NATS JetStream consumer for the job stream
func NewConsumer(
	cfg *config.NATSConfig,
	poolSize int,
	natsJS adapter.NatsJetStream,
	jsonAdapter adapter.JSON,
	clock adapter.Clock,
	handler jobs.Handler,
) (Consumer, error) {
	nc, js, err := connect(cfg, natsJS)
	if err != nil {
		return nil, err
	}

	if poolSize <= 0 {
		poolSize = 1
	}

	return &consumer{
		nc:       nc,
		js:       js,
		json:     jsonAdapter,
		clock:    clock,
		handler:  handler,
		config:   cfg,
		poolSize: poolSize,
	}, nil
}

// Run consumes the job stream until the context is cancelled
func (c *consumer) Run(ctx context.Context) error {
	logger.InfoCtx(ctx, "starting work item consumer",
		zap.String("stream", c.config.StreamName),
		zap.String("consumer", c.config.ConsumerName),
		zap.Int("poolSize", c.poolSize))

	if err := ensureStream(ctx, c.js, c.config.StreamName); err != nil {
		return err
	}

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       c.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       c.config.AckWait,
		MaxDeliver:    c.config.MaxDeliver,
		FilterSubject: SubjectWorkItems,
	}

	jsConsumer, err := c.js.CreateOrUpdateConsumer(ctx, c.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	c.pool = pond.NewPool(
		c.poolSize,
		pond.WithContext(ctx),
	)
	defer c.pool.StopAndWait()

	msgChan := make(chan adapter.Message, c.poolSize)
	sub, err := jsConsumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "shutting down work item consumer",
				zap.Uint64("submitted", c.pool.SubmittedTasks()),
				zap.Uint64("completed", c.pool.CompletedTasks()))
			return ctx.Err()
		case msg := <-msgChan:
			c.pool.Submit(func() {
				c.handleMessage(ctx, msg)
			})
		}
	}
}

// handleMessage runs one import attempt for a delivered work item and acks,
// naks, or terminates the delivery according to the outcome.
func (c *consumer) handleMessage(ctx context.Context, msg adapter.Message) {
	var item domain.WorkItem
	if err := c.json.Unmarshal(msg.Data(), &item); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "failed to unmarshal work item, terminating delivery"))
		if err := msg.Term(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "failed to terminate message"))
		}
		return
	}

	attempt := uint64(1)
	if metadata, err := msg.Metadata(); err == nil && metadata != nil {
		attempt = metadata.NumDelivered
	}
	if attempt > 1 {
		c.handler.OnResumed(ctx, &item, attempt)
	}

	// Imports routinely outlive the ack wait; keep the delivery alive while
	// the attempt runs. InProgress failing means the server already reclaimed
	// the item.
	done := make(chan struct{})
	defer close(done)
	go c.keepAlive(ctx, msg, &item, done)

	attemptID := uuid.NewString()
	result := c.handler.Handle(ctx, &item, attemptID)

	if err := c.publishResult(ctx, result); err != nil {
		logger.WarnCtx(ctx, "failed to publish job result",
			zap.Error(err),
			zap.String("workItemID", item.ID))
	}

	switch {
	case result.Success:
		if err := msg.Ack(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "failed to ack work item"),
				zap.String("workItemID", item.ID))
		}
	case result.Terminal:
		c.handler.OnFailed(ctx, &item, fmt.Errorf("terminal import failure: %s", result.Error))
		if err := msg.Term(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "failed to terminate work item"),
				zap.String("workItemID", item.ID))
		}
	case c.config.MaxDeliver > 0 && attempt >= uint64(c.config.MaxDeliver):
		c.handler.OnFailed(ctx, &item, fmt.Errorf("retries exhausted after %d deliveries: %s", attempt, result.Error))
		if err := msg.Term(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "failed to terminate work item"),
				zap.String("workItemID", item.ID))
		}
	default:
		logger.WarnCtx(ctx, "import attempt failed, requeueing",
			zap.String("workItemID", item.ID),
			zap.String("error", result.Error),
			zap.Uint64("attempt", attempt))
		if err := msg.Nak(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "failed to nak work item"),
				zap.String("workItemID", item.ID))
		}
	}
}

// keepAlive extends the delivery's ack deadline at half the ack-wait interval
// until done closes.
func (c *consumer) keepAlive(ctx context.Context, msg adapter.Message, item *domain.WorkItem, done <-chan struct{}) {
	interval := c.config.AckWait / 2
	if interval <= 0 {
		interval = time.Minute
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-c.clock.After(interval):
			if err := msg.InProgress(); err != nil {
				c.handler.OnStalled(ctx, item)
				return
			}
		}
	}
}

func (c *consumer) publishResult(ctx context.Context, result *domain.JobResult) error {
	data, err := c.json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal job result: %w", err)
	}

	if _, err := c.js.Publish(ctx, SubjectResults, data); err != nil {
		return fmt.Errorf("failed to publish job result: %w", err)
	}
	return nil
}

// Close closes the NATS connection
func (c *consumer) Close() {
	if c.nc == nil {
		return
	}

	c.nc.Close()
}
