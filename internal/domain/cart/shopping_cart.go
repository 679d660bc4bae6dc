package cart

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/patch"
)

// OrderStatus represents the lifecycle status of a shopping cart
type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusRefunded  OrderStatus = "REFUNDED"
)

// IsValid reports whether s is a known order status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusPaid, OrderStatusPending, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// PaymentMethod represents how a cart is paid
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodIDeal      PaymentMethod = "IDEAL"
)

// IsValid reports whether m is a known payment method
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCreditCard || m == PaymentMethodIDeal
}

// ShoppingCart is a customer's cart with its payment details
type ShoppingCart struct {
	shared.BaseAggregateRoot
	PlacedDate        time.Time
	Status            OrderStatus
	TotalPrice        decimal.Decimal
	PaymentMethod     PaymentMethod
	PaymentReference  *string
	CustomerDetailsID *int64
}

// ShoppingCartPatch carries the fields of a partial update
type ShoppingCartPatch struct {
	ID                *int64
	PlacedDate        *time.Time
	Status            *OrderStatus
	TotalPrice        *decimal.Decimal
	PaymentMethod     *PaymentMethod
	PaymentReference  *string
	CustomerDetailsID *int64
}

// Fields holds the writable fields used by create and full update
type Fields struct {
	PlacedDate        time.Time
	Status            OrderStatus
	TotalPrice        decimal.Decimal
	PaymentMethod     PaymentMethod
	PaymentReference  *string
	CustomerDetailsID *int64
}

// NewShoppingCart creates a new shopping cart
func NewShoppingCart(f Fields) (*ShoppingCart, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	c := &ShoppingCart{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	c.assign(f)
	c.AddDomainEvent(NewShoppingCartCreatedEvent(c))

	return c, nil
}

// Replace overwrites every writable field
func (c *ShoppingCart) Replace(f Fields) error {
	if err := f.validate(); err != nil {
		return err
	}

	c.assign(f)
	c.MarkChanged()
	c.AddDomainEvent(NewShoppingCartUpdatedEvent(c, allFields))

	return nil
}

// ApplyPatch merges the non-nil fields of p and returns the changed field names
func (c *ShoppingCart) ApplyPatch(p ShoppingCartPatch) []string {
	changed := patch.Apply(
		patch.Field("placed_date", &c.PlacedDate, p.PlacedDate),
		patch.Field("status", &c.Status, p.Status),
		patch.Field("total_price", &c.TotalPrice, p.TotalPrice),
		patch.Field("payment_method", &c.PaymentMethod, p.PaymentMethod),
		patch.Nullable("payment_reference", &c.PaymentReference, p.PaymentReference),
		patch.Nullable("customer_details_id", &c.CustomerDetailsID, p.CustomerDetailsID),
	)
	if len(changed) == 0 {
		return nil
	}

	c.MarkChanged()
	c.AddDomainEvent(NewShoppingCartUpdatedEvent(c, changed))

	return changed
}

// Validate checks the cart's current field values
func (c *ShoppingCart) Validate() error {
	return c.fields().validate()
}

// MarkDeleted records the deletion event
func (c *ShoppingCart) MarkDeleted() {
	c.AddDomainEvent(NewShoppingCartDeletedEvent(c))
}

var allFields = []string{"placed_date", "status", "total_price", "payment_method", "payment_reference", "customer_details_id"}

func (c *ShoppingCart) assign(f Fields) {
	c.PlacedDate = f.PlacedDate
	c.Status = f.Status
	c.TotalPrice = f.TotalPrice
	c.PaymentMethod = f.PaymentMethod
	c.PaymentReference = f.PaymentReference
	c.CustomerDetailsID = f.CustomerDetailsID
}

func (c *ShoppingCart) fields() Fields {
	return Fields{
		PlacedDate:        c.PlacedDate,
		Status:            c.Status,
		TotalPrice:        c.TotalPrice,
		PaymentMethod:     c.PaymentMethod,
		PaymentReference:  c.PaymentReference,
		CustomerDetailsID: c.CustomerDetailsID,
	}
}

func (f Fields) validate() error {
	if f.PlacedDate.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Placed date is required")
	}
	if !f.Status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+string(f.Status))
	}
	if f.TotalPrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Total price cannot be negative")
	}
	if !f.PaymentMethod.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method: "+string(f.PaymentMethod))
	}
	return nil
}
