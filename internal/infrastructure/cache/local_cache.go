package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/storefront/backend/internal/domain/shared"
)

// Default L1 settings
const (
	DefaultL1Size = 1000
	DefaultL1TTL  = 30 * time.Second
)

// LocalCache is a process-local LRU cache with per-entry expiry.
// Values are stored by value so callers never share the cached instance.
type LocalCache[T any] struct {
	lru *expirable.LRU[int64, T]
}

// NewLocalCache creates a LocalCache holding at most size entries for ttl each
func NewLocalCache[T any](size int, ttl time.Duration) *LocalCache[T] {
	if size <= 0 {
		size = DefaultL1Size
	}
	if ttl <= 0 {
		ttl = DefaultL1TTL
	}
	return &LocalCache[T]{
		lru: expirable.NewLRU[int64, T](size, nil, ttl),
	}
}

// Get returns a copy of the cached entity
func (c *LocalCache[T]) Get(_ context.Context, id int64) (*T, bool, error) {
	v, ok := c.lru.Get(id)
	if !ok {
		return nil, false, nil
	}
	return &v, true, nil
}

// Set stores a copy of entity. A nil entity removes the entry.
func (c *LocalCache[T]) Set(_ context.Context, id int64, entity *T) error {
	if entity == nil {
		c.lru.Remove(id)
		return nil
	}
	c.lru.Add(id, *entity)
	return nil
}

// Delete drops the entry for id
func (c *LocalCache[T]) Delete(_ context.Context, id int64) error {
	c.lru.Remove(id)
	return nil
}

// Purge drops every entry
func (c *LocalCache[T]) Purge() {
	c.lru.Purge()
}

// Len returns the number of live entries
func (c *LocalCache[T]) Len() int {
	return c.lru.Len()
}

var _ shared.EntityCache[struct{}] = (*LocalCache[struct{}])(nil)
