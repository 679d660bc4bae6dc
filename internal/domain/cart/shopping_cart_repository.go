package cart

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
)

// ShoppingCartRepository defines the interface for shopping cart persistence
type ShoppingCartRepository interface {
	shared.Repository[ShoppingCart]

	// FindByCustomerDetailsID finds all carts owned by a customer
	FindByCustomerDetailsID(ctx context.Context, customerDetailsID int64) ([]ShoppingCart, error)
}
