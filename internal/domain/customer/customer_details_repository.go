package customer

import (
	"github.com/storefront/backend/internal/domain/shared"
)

// CustomerDetailsRepository defines the interface for customer details persistence.
// The WithRelations variants preload the customer's carts.
type CustomerDetailsRepository interface {
	shared.EagerRepository[CustomerDetails]
}
