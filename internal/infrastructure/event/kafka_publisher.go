package event

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	defaultKafkaQueueSize    = 1024
	defaultKafkaWriteTimeout = 10 * time.Second
	defaultKafkaBatchTimeout = 10 * time.Millisecond
	maxKafkaBatch            = 100
)

var (
	// ErrPublisherClosed is returned by Handle after Close
	ErrPublisherClosed = errors.New("kafka publisher is closed")
	// ErrPublisherQueueFull is returned when the producer goroutine has fallen behind
	ErrPublisherQueueFull = errors.New("kafka publish queue is full")
)

// MessageWriter is the subset of *kafka.Writer used by KafkaPublisher
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher forwards every domain event to a Kafka topic.
// Handle only enqueues; a single producer goroutine owns the writer, so request
// goroutines never wait on a broker. Messages are keyed by aggregate ID so events
// of one aggregate stay ordered.
type KafkaPublisher struct {
	writer       MessageWriter
	serializer   *EventSerializer
	logger       *zap.Logger
	writeTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan kafka.Message
	wg     sync.WaitGroup
}

// KafkaPublisherOption configures a KafkaPublisher
type KafkaPublisherOption func(*KafkaPublisher)

// WithQueueSize sets how many messages may wait for the producer
func WithQueueSize(n int) KafkaPublisherOption {
	return func(p *KafkaPublisher) {
		if n > 0 {
			p.queue = make(chan kafka.Message, n)
		}
	}
}

// WithWriteTimeout bounds each write issued by the producer
func WithWriteTimeout(d time.Duration) KafkaPublisherOption {
	return func(p *KafkaPublisher) {
		if d > 0 {
			p.writeTimeout = d
		}
	}
}

// NewKafkaWriter builds a writer for the configured brokers and topic
func NewKafkaWriter(cfg config.EventConfig) *kafka.Writer {
	timeout := cfg.KafkaWriteTimeout
	if timeout <= 0 {
		timeout = defaultKafkaWriteTimeout
	}
	batchTimeout := cfg.KafkaBatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = defaultKafkaBatchTimeout
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: timeout,
		BatchTimeout: batchTimeout,
		BatchSize:    maxKafkaBatch,
	}
}

// NewKafkaPublisher creates a publisher on writer and starts its producer goroutine.
// Close stops it.
func NewKafkaPublisher(writer MessageWriter, serializer *EventSerializer, logger *zap.Logger, opts ...KafkaPublisherOption) *KafkaPublisher {
	p := &KafkaPublisher{
		writer:       writer,
		serializer:   serializer,
		logger:       logger,
		writeTimeout: defaultKafkaWriteTimeout,
		queue:        make(chan kafka.Message, defaultKafkaQueueSize),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.wg.Add(1)
	go p.produce()
	return p
}

// Handle serializes the event and queues it for the producer.
// It never blocks; a full queue drops the event and reports ErrPublisherQueueFull.
func (p *KafkaPublisher) Handle(_ context.Context, event shared.DomainEvent) error {
	value, err := p.serializer.Serialize(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.AggregateID(), 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType())},
			{Key: "aggregate_type", Value: []byte(event.AggregateType())},
		},
		Time: event.OccurredAt(),
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.queue <- msg:
		return nil
	default:
		return fmt.Errorf("%s dropped: %w", event.EventType(), ErrPublisherQueueFull)
	}
}

// produce writes queued messages in batches until the queue is closed and drained
func (p *KafkaPublisher) produce() {
	defer p.wg.Done()

	batch := make([]kafka.Message, 0, maxKafkaBatch)
	for msg := range p.queue {
		batch = append(batch[:0], msg)
	fill:
		for len(batch) < maxKafkaBatch {
			select {
			case next, ok := <-p.queue:
				if !ok {
					break fill
				}
				batch = append(batch, next)
			default:
				break fill
			}
		}
		p.write(batch)
	}
}

func (p *KafkaPublisher) write(batch []kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		p.logger.Error("Failed to write events to kafka",
			zap.Int("count", len(batch)),
			zap.Error(err))
		return
	}
	p.logger.Debug("events written to kafka", zap.Int("count", len(batch)))
}

// EventTypes returns nil so the publisher receives every event
func (p *KafkaPublisher) EventTypes() []string {
	return nil
}

// Close stops accepting events, waits for the queued ones to be written and
// closes the writer. It is safe to call more than once.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
	return p.writer.Close()
}

var _ shared.EventHandler = (*KafkaPublisher)(nil)
