package cache

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
)

// Noop is an EntityCache that stores nothing
type Noop[T any] struct{}

func (Noop[T]) Get(context.Context, int64) (*T, bool, error) { return nil, false, nil }
func (Noop[T]) Set(context.Context, int64, *T) error         { return nil }
func (Noop[T]) Delete(context.Context, int64) error          { return nil }

var _ shared.EntityCache[struct{}] = Noop[struct{}]{}
