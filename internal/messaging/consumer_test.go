package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaicmarket/collection-indexer/internal/adapter"
	"github.com/mosaicmarket/collection-indexer/internal/config"
	"github.com/mosaicmarket/collection-indexer/internal/domain"
	"github.com/mosaicmarket/collection-indexer/internal/logger"
	"github.com/mosaicmarket/collection-indexer/internal/mocks"
)

func init() {
	// Initialize logger for testing
	_ = logger.Initialize(logger.Config{
		Debug: true,
	})
}

func testNATSConfig() *config.NATSConfig {
	return &config.NATSConfig{
		URL:          "nats://localhost:4222",
		StreamName:   "IMPORTS",
		ConsumerName: "import-worker",
		// Long enough that the keepalive never ticks during a test
		AckWait:    2 * time.Hour,
		MaxDeliver: 5,
	}
}

func testWorkItemJSON(t *testing.T) (*domain.WorkItem, []byte) {
	item := &domain.WorkItem{
		ID:         "01J0000000000000000000TEST",
		Contract:   "0x06012c8cf97BEaD5deAe237070F9587f8E7A266d",
		ChainID:    1,
		CategoryID: 3,
	}
	data, err := adapter.NewJSON().Marshal(item)
	require.NoError(t, err)
	return item, data
}

// newTestConsumer builds a consumer around mocks, with a real JSON codec and
// real clock
func newTestConsumer(js *mocks.MockJetStream, handler *mocks.MockHandler) *consumer {
	return &consumer{
		js:       js,
		json:     adapter.NewJSON(),
		clock:    adapter.NewClock(),
		handler:  handler,
		config:   testNATSConfig(),
		poolSize: 1,
	}
}

func stubMessage(ctrl *gomock.Controller, data []byte, numDelivered uint64) *mocks.MockJetStreamMessage {
	msg := mocks.NewMockJetStreamMessage(ctrl)
	msg.EXPECT().Data().Return(data).AnyTimes()
	msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: numDelivered}, nil).AnyTimes()
	return msg
}

func TestHandleMessageSuccessAcks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	js := mocks.NewMockJetStream(ctrl)
	handler := mocks.NewMockHandler(ctrl)
	c := newTestConsumer(js, handler)

	item, data := testWorkItemJSON(t)
	msg := stubMessage(ctrl, data, 1)

	handler.EXPECT().Handle(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, got *domain.WorkItem, attemptID string) *domain.JobResult {
			assert.Equal(t, item, got)
			assert.NotEmpty(t, attemptID)
			return &domain.JobResult{
				WorkItemID:   got.ID,
				AttemptID:    attemptID,
				Success:      true,
				CollectionID: 42,
				Slug:         "cryptokitties",
			}
		})
	js.EXPECT().Publish(gomock.Any(), SubjectResults, gomock.Any()).Return(&jetstream.PubAck{}, nil)
	msg.EXPECT().Ack().Return(nil)

	c.handleMessage(context.Background(), msg)
}

func TestHandleMessageTerminalFailureTerminates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	js := mocks.NewMockJetStream(ctrl)
	handler := mocks.NewMockHandler(ctrl)
	c := newTestConsumer(js, handler)

	_, data := testWorkItemJSON(t)
	msg := stubMessage(ctrl, data, 1)

	handler.EXPECT().Handle(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.JobResult{
		Error:    "contract supports neither standard",
		Terminal: true,
	})
	js.EXPECT().Publish(gomock.Any(), SubjectResults, gomock.Any()).Return(&jetstream.PubAck{}, nil)
	handler.EXPECT().OnFailed(gomock.Any(), gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, _ *domain.WorkItem, err error) {
			assert.Contains(t, err.Error(), "neither standard")
		})
	msg.EXPECT().Term().Return(nil)

	c.handleMessage(context.Background(), msg)
}

func TestHandleMessageRetryableFailureNaks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	js := mocks.NewMockJetStream(ctrl)
	handler := mocks.NewMockHandler(ctrl)
	c := newTestConsumer(js, handler)

	_, data := testWorkItemJSON(t)
	msg := stubMessage(ctrl, data, 1)

	handler.EXPECT().Handle(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.JobResult{
		Error: "rpc connection refused",
	})
	js.EXPECT().Publish(gomock.Any(), SubjectResults, gomock.Any()).Return(&jetstream.PubAck{}, nil)
	msg.EXPECT().Nak().Return(nil)

	c.handleMessage(context.Background(), msg)
}

func TestHandleMessageRetriesExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	js := mocks.NewMockJetStream(ctrl)
	handler := mocks.NewMockHandler(ctrl)
	c := newTestConsumer(js, handler)

	_, data := testWorkItemJSON(t)
	// Final allowed delivery per MaxDeliver
	msg := stubMessage(ctrl, data, 5)

	handler.EXPECT().OnResumed(gomock.Any(), gomock.Any(), uint64(5))
	handler.EXPECT().Handle(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.JobResult{
		Error: "rpc connection refused",
	})
	js.EXPECT().Publish(gomock.Any(), SubjectResults, gomock.Any()).Return(&jetstream.PubAck{}, nil)
	handler.EXPECT().OnFailed(gomock.Any(), gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, _ *domain.WorkItem, err error) {
			assert.Contains(t, err.Error(), "retries exhausted")
		})
	msg.EXPECT().Term().Return(nil)

	c.handleMessage(context.Background(), msg)
}

func TestHandleMessageRedeliveryNotifiesResume(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	js := mocks.NewMockJetStream(ctrl)
	handler := mocks.NewMockHandler(ctrl)
	c := newTestConsumer(js, handler)

	item, data := testWorkItemJSON(t)
	msg := stubMessage(ctrl, data, 2)

	handler.EXPECT().OnResumed(gomock.Any(), gomock.Any(), uint64(2)).Do(
		func(_ context.Context, got *domain.WorkItem, _ uint64) {
			assert.Equal(t, item.ID, got.ID)
		})
	handler.EXPECT().Handle(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.JobResult{Success: true})
	js.EXPECT().Publish(gomock.Any(), SubjectResults, gomock.Any()).Return(&jetstream.PubAck{}, nil)
	msg.EXPECT().Ack().Return(nil)

	c.handleMessage(context.Background(), msg)
}

func TestHandleMessageMalformedPayloadTerminates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	js := mocks.NewMockJetStream(ctrl)
	handler := mocks.NewMockHandler(ctrl)
	c := newTestConsumer(js, handler)

	msg := mocks.NewMockJetStreamMessage(ctrl)
	msg.EXPECT().Data().Return([]byte("not json")).AnyTimes()
	msg.EXPECT().Term().Return(nil)

	// The handler is never invoked for an undecodable item
	c.handleMessage(context.Background(), msg)
}

func TestHandleMessageResultPublishFailureStillAcks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	js := mocks.NewMockJetStream(ctrl)
	handler := mocks.NewMockHandler(ctrl)
	c := newTestConsumer(js, handler)

	_, data := testWorkItemJSON(t)
	msg := stubMessage(ctrl, data, 1)

	handler.EXPECT().Handle(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.JobResult{Success: true})
	js.EXPECT().Publish(gomock.Any(), SubjectResults, gomock.Any()).
		Return(nil, errors.New("stream unavailable"))
	msg.EXPECT().Ack().Return(nil)

	c.handleMessage(context.Background(), msg)
}

func TestKeepAliveStallNotifiesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	js := mocks.NewMockJetStream(ctrl)
	handler := mocks.NewMockHandler(ctrl)
	clock := mocks.NewMockClock(ctrl)

	c := newTestConsumer(js, handler)
	c.clock = clock

	fired := make(chan time.Time, 1)
	fired <- time.Now()
	clock.EXPECT().After(c.config.AckWait/2).Return(fired)

	item := &domain.WorkItem{ID: "01J0000000000000000000TEST"}
	msg := mocks.NewMockJetStreamMessage(ctrl)
	// The server already reclaimed the delivery
	msg.EXPECT().InProgress().Return(errors.New("message not found"))
	handler.EXPECT().OnStalled(gomock.Any(), item)

	done := make(chan struct{})
	defer close(done)
	c.keepAlive(context.Background(), msg, item, done)
}

func TestKeepAliveExtendsDeadlineUntilDone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	js := mocks.NewMockJetStream(ctrl)
	handler := mocks.NewMockHandler(ctrl)
	clock := mocks.NewMockClock(ctrl)

	c := newTestConsumer(js, handler)
	c.clock = clock

	done := make(chan struct{})

	first := make(chan time.Time, 1)
	first <- time.Now()
	never := make(chan time.Time)
	gomock.InOrder(
		clock.EXPECT().After(c.config.AckWait/2).Return(first),
		clock.EXPECT().After(c.config.AckWait/2).DoAndReturn(func(time.Duration) <-chan time.Time {
			// A successful extension loops back around; end the attempt now
			close(done)
			return never
		}),
	)

	item := &domain.WorkItem{ID: "01J0000000000000000000TEST"}
	msg := mocks.NewMockJetStreamMessage(ctrl)
	msg.EXPECT().InProgress().Return(nil)

	c.keepAlive(context.Background(), msg, item, done)
}

func TestRunConsumesAndDispatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	js := mocks.NewMockJetStream(ctrl)
	handler := mocks.NewMockHandler(ctrl)
	c := newTestConsumer(js, handler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	js.EXPECT().CreateStream(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error) {
			assert.Equal(t, "IMPORTS", cfg.Name)
			assert.ElementsMatch(t, []string{SubjectWorkItems, SubjectResults}, cfg.Subjects)
			return nil, nil
		})

	jsConsumer := mocks.NewMockNatsConsumer(ctrl)
	js.EXPECT().CreateOrUpdateConsumer(gomock.Any(), "IMPORTS", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, cfg jetstream.ConsumerConfig) (adapter.Consumer, error) {
			assert.Equal(t, "import-worker", cfg.Durable)
			assert.Equal(t, jetstream.AckExplicitPolicy, cfg.AckPolicy)
			assert.Equal(t, 2*time.Hour, cfg.AckWait)
			assert.Equal(t, 5, cfg.MaxDeliver)
			assert.Equal(t, SubjectWorkItems, cfg.FilterSubject)
			return jsConsumer, nil
		})

	deliverCh := make(chan adapter.MessageHandler, 1)
	sub := mocks.NewMockConsumeContext(ctrl)
	sub.EXPECT().Stop()
	jsConsumer.EXPECT().Consume(gomock.Any()).DoAndReturn(
		func(handler adapter.MessageHandler, _ ...jetstream.PullConsumeOpt) (adapter.ConsumeContext, error) {
			deliverCh <- handler
			return sub, nil
		})

	_, data := testWorkItemJSON(t)
	msg := stubMessage(ctrl, data, 1)

	handled := make(chan struct{})
	handler.EXPECT().Handle(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.JobResult{Success: true})
	js.EXPECT().Publish(gomock.Any(), SubjectResults, gomock.Any()).Return(&jetstream.PubAck{}, nil)
	msg.EXPECT().Ack().DoAndReturn(func() error {
		close(handled)
		return nil
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.Run(ctx)
	}()

	// Wait for the subscription, then push one delivery through the pool
	var deliver adapter.MessageHandler
	select {
	case deliver = <-deliverCh:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer never subscribed")
	}
	deliver(msg)

	select {
	case <-handled:
	case <-time.After(2 * time.Second):
		t.Fatal("work item was not handled")
	}

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not shut down")
	}
}

func TestNewConsumerConnects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	handler := mocks.NewMockHandler(ctrl)

	natsJS.EXPECT().Connect("nats://localhost:4222", gomock.Any()).Return(nc, js, nil)

	c, err := NewConsumer(testNATSConfig(), 4, natsJS, adapter.NewJSON(), adapter.NewClock(), handler)
	require.NoError(t, err)
	require.NotNil(t, c)

	nc.EXPECT().Close()
	c.Close()
}

func TestNewConsumerConnectFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	handler := mocks.NewMockHandler(ctrl)

	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nil, nil, errors.New("connection refused"))

	_, err := NewConsumer(testNATSConfig(), 4, natsJS, adapter.NewJSON(), adapter.NewClock(), handler)
	assert.Error(t, err)
}
