package telemetry

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when a metrics component is built without a meter
var ErrMeterNil = errors.New("meter cannot be nil")

// StoreMetrics counts entity writes and cache lookups.
// It subscribes to every domain event and records cache statistics.
type StoreMetrics struct {
	entityWrites *Counter
	cacheHits    *Counter
	cacheMisses  *Counter
	logger       *zap.Logger
}

// NewStoreMetrics creates the storefront counters on meter
func NewStoreMetrics(meter metric.Meter, logger *zap.Logger) (*StoreMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	writes, err := NewCounter(meter, "storefront.entity.writes",
		"Persisted entity changes by event type", "{write}")
	if err != nil {
		return nil, err
	}
	hits, err := NewCounter(meter, "storefront.cache.hits",
		"Entity cache hits by region and tier", "{hit}")
	if err != nil {
		return nil, err
	}
	misses, err := NewCounter(meter, "storefront.cache.misses",
		"Entity cache misses by region", "{miss}")
	if err != nil {
		return nil, err
	}

	return &StoreMetrics{
		entityWrites: writes,
		cacheHits:    hits,
		cacheMisses:  misses,
		logger:       logger,
	}, nil
}

// Handle counts one write per domain event
func (m *StoreMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	m.entityWrites.Inc(ctx,
		AttrEventType.String(event.EventType()),
		AttrAggregateType.String(event.AggregateType()),
	)
	return nil
}

// EventTypes returns nil so every event is counted
func (m *StoreMetrics) EventTypes() []string {
	return nil
}

// RecordCacheHit counts a hit served by tier
func (m *StoreMetrics) RecordCacheHit(ctx context.Context, region, tier string) {
	m.cacheHits.Inc(ctx, AttrCacheRegion.String(region), AttrCacheTier.String(tier))
}

// RecordCacheMiss counts a lookup that fell through to the database
func (m *StoreMetrics) RecordCacheMiss(ctx context.Context, region string) {
	m.cacheMisses.Inc(ctx, AttrCacheRegion.String(region))
}

var _ shared.EventHandler = (*StoreMetrics)(nil)
