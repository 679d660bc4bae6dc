package cache

import (
	"context"
	"sync/atomic"

	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Cache tiers reported to the stats recorder
const (
	TierL1 = "l1"
	TierL2 = "l2"
)

// StatsRecorder receives hit and miss notifications
type StatsRecorder interface {
	RecordCacheHit(ctx context.Context, region, tier string)
	RecordCacheMiss(ctx context.Context, region string)
}

// Stats is a snapshot of a TieredCache's counters
type Stats struct {
	L1Hits      int64
	L1Misses    int64
	L2Hits      int64
	L2Misses    int64
	TotalHits   int64
	TotalMisses int64
	HitRatio    float64
	L1Entries   int
}

// TieredCache implements a two-tier caching strategy for one region.
// L1: local LRU (fast, but local to the instance)
// L2: Redis (slower, but shared across instances)
// Reads go L1 then L2 and populate L1. Writes update both tiers and
// broadcast an invalidation so peers drop their L1 copy.
// L2 is optional; without it the cache is L1-only.
type TieredCache[T any] struct {
	region      string
	l1          *LocalCache[T]
	l2          shared.EntityCache[T]
	invalidator InvalidationPublisher
	recorder    StatsRecorder
	logger      *zap.Logger

	l1Hits   atomic.Int64
	l1Misses atomic.Int64
	l2Hits   atomic.Int64
	l2Misses atomic.Int64
}

// TieredCacheOption configures a TieredCache
type TieredCacheOption[T any] func(*TieredCache[T])

// WithL2 sets the shared tier
func WithL2[T any](l2 shared.EntityCache[T]) TieredCacheOption[T] {
	return func(c *TieredCache[T]) {
		c.l2 = l2
	}
}

// WithInvalidationPublisher sets the peer invalidation channel
func WithInvalidationPublisher[T any](p InvalidationPublisher) TieredCacheOption[T] {
	return func(c *TieredCache[T]) {
		c.invalidator = p
	}
}

// WithStatsRecorder exports hits and misses
func WithStatsRecorder[T any](r StatsRecorder) TieredCacheOption[T] {
	return func(c *TieredCache[T]) {
		c.recorder = r
	}
}

// WithTieredLogger sets the logger
func WithTieredLogger[T any](logger *zap.Logger) TieredCacheOption[T] {
	return func(c *TieredCache[T]) {
		c.logger = logger
	}
}

// NewTieredCache creates a tiered cache for region on top of l1
func NewTieredCache[T any](region string, l1 *LocalCache[T], opts ...TieredCacheOption[T]) *TieredCache[T] {
	c := &TieredCache[T]{
		region: region,
		l1:     l1,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Region returns the region name
func (c *TieredCache[T]) Region() string {
	return c.region
}

// Get looks up L1 then L2. L2 failures are logged and reported as a miss.
func (c *TieredCache[T]) Get(ctx context.Context, id int64) (*T, bool, error) {
	if v, ok, _ := c.l1.Get(ctx, id); ok {
		c.l1Hits.Add(1)
		c.hit(ctx, TierL1)
		return v, true, nil
	}
	c.l1Misses.Add(1)

	if c.l2 == nil {
		c.miss(ctx)
		return nil, false, nil
	}

	v, ok, err := c.l2.Get(ctx, id)
	if err != nil {
		c.logger.Warn("L2 cache error",
			zap.String("region", c.region),
			zap.Int64("id", id),
			zap.Error(err))
		c.l2Misses.Add(1)
		c.miss(ctx)
		return nil, false, nil
	}
	if !ok {
		c.l2Misses.Add(1)
		c.miss(ctx)
		return nil, false, nil
	}

	c.l2Hits.Add(1)
	c.hit(ctx, TierL2)
	_ = c.l1.Set(ctx, id, v)
	return v, true, nil
}

// Set stores entity in both tiers and tells peers to drop their copy
func (c *TieredCache[T]) Set(ctx context.Context, id int64, entity *T) error {
	if c.l2 != nil {
		if err := c.l2.Set(ctx, id, entity); err != nil {
			// A stale L1 must not outlive a failed shared write
			_ = c.l1.Delete(ctx, id)
			return err
		}
	}
	_ = c.l1.Set(ctx, id, entity)
	c.broadcast(ctx, id)
	return nil
}

// Delete removes id from both tiers and tells peers to drop their copy
func (c *TieredCache[T]) Delete(ctx context.Context, id int64) error {
	_ = c.l1.Delete(ctx, id)
	var err error
	if c.l2 != nil {
		err = c.l2.Delete(ctx, id)
	}
	c.broadcast(ctx, id)
	return err
}

// InvalidateL1 drops id from the local tier only
func (c *TieredCache[T]) InvalidateL1(id int64) {
	_ = c.l1.Delete(context.Background(), id)
}

// Stats returns the hit/miss counters
func (c *TieredCache[T]) Stats() Stats {
	s := Stats{
		L1Hits:    c.l1Hits.Load(),
		L1Misses:  c.l1Misses.Load(),
		L2Hits:    c.l2Hits.Load(),
		L2Misses:  c.l2Misses.Load(),
		L1Entries: c.l1.Len(),
	}
	s.TotalHits = s.L1Hits + s.L2Hits
	if c.l2 == nil {
		s.TotalMisses = s.L1Misses
	} else {
		s.TotalMisses = s.L2Misses
	}
	if total := s.TotalHits + s.TotalMisses; total > 0 {
		s.HitRatio = float64(s.TotalHits) / float64(total)
	}
	return s
}

func (c *TieredCache[T]) broadcast(ctx context.Context, id int64) {
	if c.invalidator == nil {
		return
	}
	if err := c.invalidator.PublishInvalidation(ctx, c.region, id); err != nil {
		c.logger.Warn("Failed to publish cache invalidation",
			zap.String("region", c.region),
			zap.Int64("id", id),
			zap.Error(err))
	}
}

func (c *TieredCache[T]) hit(ctx context.Context, tier string) {
	if c.recorder != nil {
		c.recorder.RecordCacheHit(ctx, c.region, tier)
	}
}

func (c *TieredCache[T]) miss(ctx context.Context) {
	if c.recorder != nil {
		c.recorder.RecordCacheMiss(ctx, c.region)
	}
}

var _ shared.EntityCache[struct{}] = (*TieredCache[struct{}])(nil)
