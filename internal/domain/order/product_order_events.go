package order

import (
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProductOrder = "ProductOrder"

// Event type constants
const (
	EventTypeProductOrderCreated = "ProductOrderCreated"
	EventTypeProductOrderUpdated = "ProductOrderUpdated"
	EventTypeProductOrderDeleted = "ProductOrderDeleted"
)

// ProductOrderCreatedEvent is published when a product order is created
type ProductOrderCreatedEvent struct {
	shared.BaseDomainEvent
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CartID     *int64          `json:"cart_id,omitempty"`
}

// NewProductOrderCreatedEvent creates a new ProductOrderCreatedEvent
func NewProductOrderCreatedEvent(o *ProductOrder) *ProductOrderCreatedEvent {
	return &ProductOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductOrderCreated, AggregateTypeProductOrder, o.ID),
		Quantity:        o.Quantity,
		TotalPrice:      o.TotalPrice,
		CartID:          o.CartID,
	}
}

// ProductOrderUpdatedEvent is published when a product order is updated
type ProductOrderUpdatedEvent struct {
	shared.BaseDomainEvent
	Quantity      int             `json:"quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	ChangedFields []string        `json:"changed_fields"`
	Version       int             `json:"version"`
}

// NewProductOrderUpdatedEvent creates a new ProductOrderUpdatedEvent
func NewProductOrderUpdatedEvent(o *ProductOrder, changed []string) *ProductOrderUpdatedEvent {
	return &ProductOrderUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductOrderUpdated, AggregateTypeProductOrder, o.ID),
		Quantity:        o.Quantity,
		TotalPrice:      o.TotalPrice,
		ChangedFields:   changed,
		Version:         o.Version,
	}
}

// ProductOrderDeletedEvent is published when a product order is deleted
type ProductOrderDeletedEvent struct {
	shared.BaseDomainEvent
}

// NewProductOrderDeletedEvent creates a new ProductOrderDeletedEvent
func NewProductOrderDeletedEvent(o *ProductOrder) *ProductOrderDeletedEvent {
	return &ProductOrderDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductOrderDeleted, AggregateTypeProductOrder, o.ID),
	}
}
