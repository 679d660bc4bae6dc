package cart

import (
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeShoppingCart = "ShoppingCart"

// Event type constants
const (
	EventTypeShoppingCartCreated = "ShoppingCartCreated"
	EventTypeShoppingCartUpdated = "ShoppingCartUpdated"
	EventTypeShoppingCartDeleted = "ShoppingCartDeleted"
)

// ShoppingCartCreatedEvent is published when a cart is created
type ShoppingCartCreatedEvent struct {
	shared.BaseDomainEvent
	Status     OrderStatus     `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// NewShoppingCartCreatedEvent creates a new ShoppingCartCreatedEvent
func NewShoppingCartCreatedEvent(c *ShoppingCart) *ShoppingCartCreatedEvent {
	return &ShoppingCartCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShoppingCartCreated, AggregateTypeShoppingCart, c.ID),
		Status:          c.Status,
		TotalPrice:      c.TotalPrice,
	}
}

// ShoppingCartUpdatedEvent is published when a cart is updated
type ShoppingCartUpdatedEvent struct {
	shared.BaseDomainEvent
	Status        OrderStatus     `json:"status"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	ChangedFields []string        `json:"changed_fields"`
	Version       int             `json:"version"`
}

// NewShoppingCartUpdatedEvent creates a new ShoppingCartUpdatedEvent
func NewShoppingCartUpdatedEvent(c *ShoppingCart, changed []string) *ShoppingCartUpdatedEvent {
	return &ShoppingCartUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShoppingCartUpdated, AggregateTypeShoppingCart, c.ID),
		Status:          c.Status,
		TotalPrice:      c.TotalPrice,
		ChangedFields:   changed,
		Version:         c.Version,
	}
}

// ShoppingCartDeletedEvent is published when a cart is deleted
type ShoppingCartDeletedEvent struct {
	shared.BaseDomainEvent
}

// NewShoppingCartDeletedEvent creates a new ShoppingCartDeletedEvent
func NewShoppingCartDeletedEvent(c *ShoppingCart) *ShoppingCartDeletedEvent {
	return &ShoppingCartDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShoppingCartDeleted, AggregateTypeShoppingCart, c.ID),
	}
}
