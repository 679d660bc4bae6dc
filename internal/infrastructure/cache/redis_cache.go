package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Default L2 settings
const (
	DefaultKeyPrefix = "storefront"
	DefaultL2TTL     = 5 * time.Minute
)

// RedisCache stores JSON-encoded entities in Redis under "<prefix>:<region>:<id>"
type RedisCache[T any] struct {
	client *redis.Client
	prefix string
	region string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache creates a RedisCache on an existing client.
// The client is shared between regions and is not closed by the cache.
func NewRedisCache[T any](client *redis.Client, prefix, region string, ttl time.Duration, logger *zap.Logger) *RedisCache[T] {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = DefaultL2TTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCache[T]{
		client: client,
		prefix: prefix,
		region: region,
		ttl:    ttl,
		logger: logger,
	}
}

// Get loads and decodes the entity. A corrupt entry is deleted and reported as a miss.
func (c *RedisCache[T]) Get(ctx context.Context, id int64) (*T, bool, error) {
	key := c.key(id)
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}

	var entity T
	if err := json.Unmarshal(data, &entity); err != nil {
		c.logger.Warn("Dropping corrupt cache entry",
			zap.String("key", key),
			zap.Error(err))
		_ = c.client.Del(ctx, key).Err()
		return nil, false, nil
	}
	return &entity, true, nil
}

// Set encodes and stores the entity with the configured TTL
func (c *RedisCache[T]) Set(ctx context.Context, id int64, entity *T) error {
	if entity == nil {
		return c.Delete(ctx, id)
	}
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to encode %s cache entry: %w", c.region, err)
	}
	if err := c.client.Set(ctx, c.key(id), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in redis: %w", c.key(id), err)
	}
	return nil
}

// Delete removes the entry for id
func (c *RedisCache[T]) Delete(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s from redis: %w", c.key(id), err)
	}
	return nil
}

func (c *RedisCache[T]) key(id int64) string {
	return c.prefix + ":" + c.region + ":" + strconv.FormatInt(id, 10)
}

var _ shared.EntityCache[struct{}] = (*RedisCache[struct{}])(nil)
