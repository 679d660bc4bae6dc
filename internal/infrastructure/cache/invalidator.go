package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// DefaultInvalidationChannel is the pub/sub channel shared by all instances
	DefaultInvalidationChannel = "storefront:cache:invalidate"

	defaultCloseTimeout = 5 * time.Second
)

// InvalidationMessage tells peer instances to drop a local entry
type InvalidationMessage struct {
	Origin    string `json:"origin"`
	Region    string `json:"region"`
	ID        int64  `json:"id"`
	Timestamp int64  `json:"timestamp"`
}

// InvalidationPublisher announces that an entry changed
type InvalidationPublisher interface {
	PublishInvalidation(ctx context.Context, region string, id int64) error
}

// Invalidator keeps L1 tiers of different instances coherent through Redis pub/sub.
// Each region registers a drop function; messages sent by this instance are ignored.
type Invalidator struct {
	client   *redis.Client
	channel  string
	origin   string
	logger   *zap.Logger
	cancelFn context.CancelFunc
	doneCh   chan struct{}
	doneOnce sync.Once

	mu        sync.RWMutex
	isRunning bool
	droppers  map[string]func(id int64)
}

// InvalidatorOption configures an Invalidator
type InvalidatorOption func(*Invalidator)

// WithInvalidatorChannel sets the pub/sub channel name
func WithInvalidatorChannel(channel string) InvalidatorOption {
	return func(i *Invalidator) {
		if channel != "" {
			i.channel = channel
		}
	}
}

// WithInvalidatorLogger sets the logger
func WithInvalidatorLogger(logger *zap.Logger) InvalidatorOption {
	return func(i *Invalidator) {
		i.logger = logger
	}
}

// NewInvalidator creates an Invalidator on an existing client.
// The caller keeps ownership of the client.
func NewInvalidator(client *redis.Client, opts ...InvalidatorOption) *Invalidator {
	i := &Invalidator{
		client:   client,
		channel:  DefaultInvalidationChannel,
		origin:   uuid.NewString(),
		logger:   zap.NewNop(),
		doneCh:   make(chan struct{}),
		droppers: make(map[string]func(id int64)),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Register installs the drop function for a region
func (i *Invalidator) Register(region string, drop func(id int64)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.droppers[region] = drop
}

// PublishInvalidation broadcasts that region/id changed
func (i *Invalidator) PublishInvalidation(ctx context.Context, region string, id int64) error {
	data, err := json.Marshal(InvalidationMessage{
		Origin:    i.origin,
		Region:    region,
		ID:        id,
		Timestamp: time.Now().UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal invalidation message: %w", err)
	}

	if err := i.client.Publish(ctx, i.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish invalidation message: %w", err)
	}

	i.logger.Debug("Published cache invalidation",
		zap.String("region", region),
		zap.Int64("id", id))
	return nil
}

// Subscribe listens for invalidations from peers until ctx is cancelled or Close is called.
// It blocks, so run it in a goroutine.
func (i *Invalidator) Subscribe(ctx context.Context) error {
	i.mu.Lock()
	if i.isRunning {
		i.mu.Unlock()
		return fmt.Errorf("subscription already running")
	}
	i.isRunning = true
	subCtx, cancel := context.WithCancel(ctx)
	i.cancelFn = cancel
	i.mu.Unlock()

	defer func() {
		i.mu.Lock()
		i.isRunning = false
		i.mu.Unlock()
		i.markDone()
	}()

	pubsub := i.client.Subscribe(subCtx, i.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(subCtx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	i.logger.Info("Subscribed to cache invalidation channel",
		zap.String("channel", i.channel))

	ch := pubsub.Channel()
	for {
		select {
		case <-subCtx.Done():
			i.logger.Info("Cache invalidation subscription stopped")
			return subCtx.Err()
		case msg, ok := <-ch:
			if !ok {
				i.logger.Warn("Cache invalidation channel closed")
				return nil
			}
			i.handle([]byte(msg.Payload))
		}
	}
}

func (i *Invalidator) handle(payload []byte) {
	var msg InvalidationMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		i.logger.Error("Failed to unmarshal cache invalidation message",
			zap.ByteString("payload", payload),
			zap.Error(err))
		return
	}
	if msg.Origin == i.origin {
		return
	}

	i.mu.RLock()
	drop, ok := i.droppers[msg.Region]
	i.mu.RUnlock()
	if !ok {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			i.logger.Error("Panic in cache invalidation handler",
				zap.String("region", msg.Region),
				zap.Any("panic", r))
		}
	}()
	drop(msg.ID)

	i.logger.Debug("Dropped local cache entry",
		zap.String("region", msg.Region),
		zap.Int64("id", msg.ID))
}

func (i *Invalidator) markDone() {
	i.doneOnce.Do(func() {
		close(i.doneCh)
	})
}

// Close stops the subscription, waiting up to five seconds for it to finish
func (i *Invalidator) Close() error {
	i.mu.RLock()
	cancelFn := i.cancelFn
	i.mu.RUnlock()

	if cancelFn == nil {
		return nil
	}
	cancelFn()
	select {
	case <-i.doneCh:
	case <-time.After(defaultCloseTimeout):
		i.logger.Warn("Timeout waiting for subscription to stop")
	}
	return nil
}

var _ InvalidationPublisher = (*Invalidator)(nil)
