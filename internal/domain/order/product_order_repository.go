package order

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
)

// ProductOrderRepository defines the interface for product order persistence.
// The WithRelations variants preload the order's categories.
type ProductOrderRepository interface {
	shared.EagerRepository[ProductOrder]

	// FindByCartID finds all orders placed in a cart
	FindByCartID(ctx context.Context, cartID int64) ([]ProductOrder, error)
}
