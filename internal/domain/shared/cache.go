package shared

import "context"

// EntityCache caches aggregates by their identifier.
// Implementations must be safe for concurrent use and return copies,
// so callers may mutate what Get returns.
type EntityCache[T any] interface {
	// Get returns the cached entity and whether it was found
	Get(ctx context.Context, id int64) (*T, bool, error)
	// Set stores the entity under id
	Set(ctx context.Context, id int64, entity *T) error
	// Delete drops the entry for id
	Delete(ctx context.Context, id int64) error
}
