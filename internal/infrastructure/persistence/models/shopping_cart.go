package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
)

// ShoppingCartModel is the persistence model for the ShoppingCart domain entity.
type ShoppingCartModel struct {
	AggregateModel
	PlacedDate        time.Time          `gorm:"not null"`
	Status            cart.OrderStatus   `gorm:"type:varchar(20);not null"`
	TotalPrice        decimal.Decimal    `gorm:"type:decimal(21,2);not null"`
	PaymentMethod     cart.PaymentMethod `gorm:"type:varchar(20);not null"`
	PaymentReference  *string            `gorm:"type:varchar(255)"`
	CustomerDetailsID *int64             `gorm:"index"`
}

// TableName returns the table name for GORM
func (ShoppingCartModel) TableName() string {
	return "shopping_cart"
}

// ToDomain converts the persistence model to a domain ShoppingCart entity.
func (m *ShoppingCartModel) ToDomain() *cart.ShoppingCart {
	return &cart.ShoppingCart{
		BaseAggregateRoot: m.root(),
		PlacedDate:        m.PlacedDate,
		Status:            m.Status,
		TotalPrice:        m.TotalPrice,
		PaymentMethod:     m.PaymentMethod,
		PaymentReference:  m.PaymentReference,
		CustomerDetailsID: m.CustomerDetailsID,
	}
}

// FromDomain populates the persistence model from a domain ShoppingCart entity.
func (m *ShoppingCartModel) FromDomain(c *cart.ShoppingCart) {
	m.fillFrom(&c.BaseAggregateRoot)
	m.PlacedDate = c.PlacedDate
	m.Status = c.Status
	m.TotalPrice = c.TotalPrice
	m.PaymentMethod = c.PaymentMethod
	m.PaymentReference = c.PaymentReference
	m.CustomerDetailsID = c.CustomerDetailsID
}

// ShoppingCartModelFromDomain creates a new persistence model from a domain entity.
func ShoppingCartModelFromDomain(c *cart.ShoppingCart) *ShoppingCartModel {
	m := &ShoppingCartModel{}
	m.FromDomain(c)
	return m
}
