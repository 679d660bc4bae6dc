package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Cache regions, one per aggregate
const (
	RegionCustomerDetails = "customer_details"
	RegionProductCategory = "product_category"
	RegionShoppingCart    = "shopping_cart"
	RegionProductOrder    = "product_order"
)

const pingTimeout = 5 * time.Second

// Factory builds the per-region entity caches from configuration.
// With caching disabled every region gets a no-op cache. With Redis enabled
// but unreachable the factory falls back to L1-only caches.
type Factory struct {
	cfg         config.CacheConfig
	redisCfg    config.RedisConfig
	logger      *zap.Logger
	recorder    StatsRecorder
	client      *redis.Client
	ownsClient  bool
	invalidator *Invalidator
}

// FactoryOption configures a Factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory and the caches it builds
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithRecorder exports cache statistics
func WithRecorder(r StatsRecorder) FactoryOption {
	return func(f *Factory) {
		f.recorder = r
	}
}

// WithRedisClient uses an existing client instead of dialing one.
// The caller keeps ownership of the client.
func WithRedisClient(client *redis.Client) FactoryOption {
	return func(f *Factory) {
		f.client = client
	}
}

// NewFactory creates a cache factory
func NewFactory(cfg config.CacheConfig, redisCfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		cfg:      cfg,
		redisCfg: redisCfg,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Connect dials Redis when the shared tier is enabled.
// An unreachable Redis is logged and leaves the factory in L1-only mode.
func (f *Factory) Connect(ctx context.Context) {
	if !f.cfg.Enabled || !f.cfg.RedisEnabled {
		f.client = nil
		f.logger.Info("Redis cache tier disabled",
			zap.Bool("cache_enabled", f.cfg.Enabled))
		return
	}

	if f.client == nil {
		f.client = redis.NewClient(&redis.Options{
			Addr:     f.redisCfg.Addr(),
			Password: f.redisCfg.Password,
			DB:       f.redisCfg.DB,
		})
		f.ownsClient = true
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := f.client.Ping(pingCtx).Err(); err != nil {
		f.logger.Warn("Redis unavailable, falling back to local-only entity cache. "+
			"Instances will not share cached entries.",
			zap.String("addr", f.redisCfg.Addr()),
			zap.Error(err))
		if f.ownsClient {
			_ = f.client.Close()
		}
		f.client = nil
		f.ownsClient = false
		return
	}

	f.invalidator = NewInvalidator(f.client,
		WithInvalidatorChannel(f.cfg.InvalidationChannel),
		WithInvalidatorLogger(f.logger))
	f.logger.Info("Redis cache tier connected", zap.String("addr", f.redisCfg.Addr()))
}

// Start runs the peer invalidation subscription in the background
func (f *Factory) Start(ctx context.Context) {
	if f.invalidator == nil {
		return
	}
	go func() {
		if err := f.invalidator.Subscribe(ctx); err != nil && !errors.Is(err, context.Canceled) {
			f.logger.Error("Cache invalidation subscription failed", zap.Error(err))
		}
	}()
}

// Shared reports whether the Redis tier is in use
func (f *Factory) Shared() bool {
	return f.client != nil
}

// Ping checks the Redis tier. It is a no-op when Redis is not in use.
func (f *Factory) Ping(ctx context.Context) error {
	if f.client == nil {
		return nil
	}
	if err := f.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close stops the subscription and releases the client if the factory dialed it
func (f *Factory) Close() error {
	var lastErr error
	if f.invalidator != nil {
		if err := f.invalidator.Close(); err != nil {
			lastErr = err
		}
	}
	if f.client != nil && f.ownsClient {
		if err := f.client.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// For builds the cache for one region
func For[T any](f *Factory, region string) shared.EntityCache[T] {
	if !f.cfg.Enabled {
		return Noop[T]{}
	}

	l1 := NewLocalCache[T](f.cfg.L1Size, f.cfg.L1TTL)
	opts := []TieredCacheOption[T]{
		WithTieredLogger[T](f.logger.With(zap.String("cache_region", region))),
	}
	if f.recorder != nil {
		opts = append(opts, WithStatsRecorder[T](f.recorder))
	}
	if f.client != nil {
		opts = append(opts,
			WithL2[T](NewRedisCache[T](f.client, f.cfg.KeyPrefix, region, f.cfg.L2TTL, f.logger)),
			WithInvalidationPublisher[T](f.invalidator))
	}

	c := NewTieredCache(region, l1, opts...)
	if f.invalidator != nil {
		f.invalidator.Register(region, c.InvalidateL1)
	}
	return c
}
