package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// recordingWriter keeps written messages. With a gate it holds every write
// until the gate is closed.
type recordingWriter struct {
	mu      sync.Mutex
	written []kafka.Message
	calls   int
	err     error
	gate    chan struct{}
	started chan struct{}
	closed  bool
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{started: make(chan struct{}, 16)}
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	select {
	case w.started <- struct{}{}:
	default:
	}
	if w.gate != nil {
		select {
		case <-w.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *recordingWriter) messages() []kafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafka.Message(nil), w.written...)
}

func TestKafkaPublisher_Handle(t *testing.T) {
	writer := newRecordingWriter()
	publisher := NewKafkaPublisher(writer, NewEventSerializer(), zap.NewNop())

	require.NoError(t, publisher.Handle(context.Background(), newTestEvent("ShoppingCartCreated", 77)))
	require.NoError(t, publisher.Close())

	written := writer.messages()
	require.Len(t, written, 1)
	assert.Equal(t, "77", string(written[0].Key))
	assert.Equal(t, "ShoppingCartCreated", string(written[0].Headers[0].Value))

	var env Envelope
	require.NoError(t, json.Unmarshal(written[0].Value, &env))
	assert.Equal(t, "ShoppingCartCreated", env.Type)
	assert.Equal(t, int64(77), env.AggregateID)
	assert.True(t, writer.closed)
}

func TestKafkaPublisher_HandleDoesNotWaitForBroker(t *testing.T) {
	writer := newRecordingWriter()
	writer.gate = make(chan struct{})
	publisher := NewKafkaPublisher(writer, NewEventSerializer(), zap.NewNop())

	require.NoError(t, publisher.Handle(context.Background(), newTestEvent("ProductOrderCreated", 1)))
	select {
	case <-writer.started:
	case <-time.After(time.Second):
		t.Fatal("producer never reached the writer")
	}

	// the writer is stuck; further events must still be accepted at once
	start := time.Now()
	for id := int64(2); id <= 5; id++ {
		require.NoError(t, publisher.Handle(context.Background(), newTestEvent("ProductOrderUpdated", id)))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Empty(t, writer.messages())

	close(writer.gate)
	require.NoError(t, publisher.Close())
	assert.Len(t, writer.messages(), 5)
}

func TestKafkaPublisher_WritesWithDetachedContext(t *testing.T) {
	writer := newRecordingWriter()
	publisher := NewKafkaPublisher(writer, NewEventSerializer(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, publisher.Handle(ctx, newTestEvent("CustomerDetailsDeleted", 9)))
	cancel()

	require.NoError(t, publisher.Close())
	require.Len(t, writer.messages(), 1)
}

func TestKafkaPublisher_QueueFull(t *testing.T) {
	writer := newRecordingWriter()
	writer.gate = make(chan struct{})
	publisher := NewKafkaPublisher(writer, NewEventSerializer(), zap.NewNop(), WithQueueSize(1))

	require.NoError(t, publisher.Handle(context.Background(), newTestEvent("ShoppingCartUpdated", 1)))
	<-writer.started
	require.NoError(t, publisher.Handle(context.Background(), newTestEvent("ShoppingCartUpdated", 2)))

	err := publisher.Handle(context.Background(), newTestEvent("ShoppingCartUpdated", 3))
	require.ErrorIs(t, err, ErrPublisherQueueFull)
	assert.Contains(t, err.Error(), "ShoppingCartUpdated")

	close(writer.gate)
	require.NoError(t, publisher.Close())
	assert.Len(t, writer.messages(), 2)
}

func TestKafkaPublisher_WriteErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	writer := newRecordingWriter()
	writer.err = errors.New("broker down")
	publisher := NewKafkaPublisher(writer, NewEventSerializer(), zap.New(core))

	require.NoError(t, publisher.Handle(context.Background(), newTestEvent("ShoppingCartCreated", 1)))
	require.NoError(t, publisher.Close())

	entries := logs.FilterMessage("Failed to write events to kafka").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "broker down", entries[0].ContextMap()["error"])
}

func TestKafkaPublisher_Close(t *testing.T) {
	writer := newRecordingWriter()
	publisher := NewKafkaPublisher(writer, NewEventSerializer(), zap.NewNop())

	require.NoError(t, publisher.Close())
	require.NoError(t, publisher.Close())

	err := publisher.Handle(context.Background(), newTestEvent("ProductCategoryCreated", 1))
	assert.ErrorIs(t, err, ErrPublisherClosed)
	assert.Equal(t, 0, writer.calls)
}

func TestKafkaPublisher_IsWildcard(t *testing.T) {
	publisher := NewKafkaPublisher(newRecordingWriter(), NewEventSerializer(), zap.NewNop())
	t.Cleanup(func() { _ = publisher.Close() })

	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(publisher)

	assert.Nil(t, publisher.EventTypes())
	assert.Len(t, bus.registry.GetHandlers("Anything"), 1)
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter(config.EventConfig{
		KafkaBrokers: []string{"kafka-1:9092", "kafka-2:9092"},
		KafkaTopic:   "storefront.domain-events",
	})
	defer w.Close()

	assert.Equal(t, "storefront.domain-events", w.Topic)
	assert.NotNil(t, w.Addr)
	assert.Equal(t, defaultKafkaWriteTimeout, w.WriteTimeout)
	assert.Equal(t, defaultKafkaBatchTimeout, w.BatchTimeout)
}
