package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockL2 struct {
	mock.Mock
}

func (m *mockL2) Get(ctx context.Context, id int64) (*testEntity, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*testEntity), args.Bool(1), args.Error(2)
}

func (m *mockL2) Set(ctx context.Context, id int64, entity *testEntity) error {
	return m.Called(ctx, id, entity).Error(0)
}

func (m *mockL2) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishInvalidation(ctx context.Context, region string, id int64) error {
	return m.Called(ctx, region, id).Error(0)
}

type recordedStats struct {
	hits   map[string]int
	misses int
}

func (r *recordedStats) RecordCacheHit(_ context.Context, _ string, tier string) {
	if r.hits == nil {
		r.hits = map[string]int{}
	}
	r.hits[tier]++
}

func (r *recordedStats) RecordCacheMiss(context.Context, string) {
	r.misses++
}

func TestTieredCache_L1Only(t *testing.T) {
	rec := &recordedStats{}
	c := NewTieredCache("product_category", NewLocalCache[testEntity](10, time.Minute),
		WithStatsRecorder[testEntity](rec))
	ctx := context.Background()

	_, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, 1, &testEntity{ID: 1, Name: "Books"}))
	v, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Books", v.Name)

	require.NoError(t, c.Delete(ctx, 1))
	_, ok, _ = c.Get(ctx, 1)
	assert.False(t, ok)

	assert.Equal(t, 1, rec.hits[TierL1])
	assert.Equal(t, 2, rec.misses)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.L1Hits)
	assert.Equal(t, int64(2), stats.TotalMisses)
	assert.InDelta(t, 1.0/3.0, stats.HitRatio, 0.001)
}

func TestTieredCache_ReadsThroughToL2AndPopulatesL1(t *testing.T) {
	l2 := new(mockL2)
	rec := &recordedStats{}
	c := NewTieredCache("shopping_cart", NewLocalCache[testEntity](10, time.Minute),
		WithL2[testEntity](l2), WithStatsRecorder[testEntity](rec))
	ctx := context.Background()

	l2.On("Get", ctx, int64(5)).Return(&testEntity{ID: 5, Name: "cart"}, true, nil).Once()

	v, ok, err := c.Get(ctx, 5)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "cart", v.Name)

	// second read is served by L1
	v, ok, err = c.Get(ctx, 5)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "cart", v.Name)

	l2.AssertExpectations(t)
	assert.Equal(t, 1, rec.hits[TierL2])
	assert.Equal(t, 1, rec.hits[TierL1])
}

func TestTieredCache_L2ErrorIsAMiss(t *testing.T) {
	l2 := new(mockL2)
	c := NewTieredCache("shopping_cart", NewLocalCache[testEntity](10, time.Minute), WithL2[testEntity](l2))
	ctx := context.Background()

	l2.On("Get", ctx, int64(5)).Return(nil, false, errors.New("connection refused"))

	v, ok, err := c.Get(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, int64(1), c.Stats().L2Misses)
}

func TestTieredCache_WritesBroadcastInvalidation(t *testing.T) {
	l2 := new(mockL2)
	pub := new(mockPublisher)
	c := NewTieredCache("product_order", NewLocalCache[testEntity](10, time.Minute),
		WithL2[testEntity](l2), WithInvalidationPublisher[testEntity](pub))
	ctx := context.Background()
	entity := &testEntity{ID: 9}

	l2.On("Set", ctx, int64(9), entity).Return(nil)
	l2.On("Delete", ctx, int64(9)).Return(nil)
	pub.On("PublishInvalidation", ctx, "product_order", int64(9)).Return(nil).Twice()

	require.NoError(t, c.Set(ctx, 9, entity))
	require.NoError(t, c.Delete(ctx, 9))

	l2.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestTieredCache_FailedL2SetDropsL1(t *testing.T) {
	l2 := new(mockL2)
	l1 := NewLocalCache[testEntity](10, time.Minute)
	c := NewTieredCache("product_order", l1, WithL2[testEntity](l2))
	ctx := context.Background()

	require.NoError(t, l1.Set(ctx, 9, &testEntity{ID: 9, Name: "stale"}))
	l2.On("Set", ctx, int64(9), mock.Anything).Return(errors.New("timeout"))

	err := c.Set(ctx, 9, &testEntity{ID: 9, Name: "fresh"})
	require.Error(t, err)

	_, ok, _ := l1.Get(ctx, 9)
	assert.False(t, ok)
}

func TestTieredCache_InvalidateL1(t *testing.T) {
	l1 := NewLocalCache[testEntity](10, time.Minute)
	c := NewTieredCache("customer_details", l1)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 3, &testEntity{ID: 3}))
	c.InvalidateL1(3)

	_, ok, _ := l1.Get(ctx, 3)
	assert.False(t, ok)
	assert.Equal(t, "customer_details", c.Region())
}
