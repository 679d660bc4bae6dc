package models

import (
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/customer"
)

// CustomerDetailsModel is the persistence model for the CustomerDetails domain entity.
type CustomerDetailsModel struct {
	AggregateModel
	Gender       customer.Gender     `gorm:"type:varchar(10);not null"`
	Phone        string              `gorm:"type:varchar(32);not null"`
	AddressLine1 string              `gorm:"column:address_line1;type:varchar(255);not null"`
	AddressLine2 *string             `gorm:"column:address_line2;type:varchar(255)"`
	City         string              `gorm:"type:varchar(100);not null"`
	Country      string              `gorm:"type:varchar(100);not null"`
	Carts        []ShoppingCartModel `gorm:"foreignKey:CustomerDetailsID"`
}

// TableName returns the table name for GORM
func (CustomerDetailsModel) TableName() string {
	return "customer_details"
}

// ToDomain converts the persistence model to a domain CustomerDetails entity.
// Carts are only set when they were preloaded.
func (m *CustomerDetailsModel) ToDomain() *customer.CustomerDetails {
	c := &customer.CustomerDetails{
		BaseAggregateRoot: m.root(),
		Gender:            m.Gender,
		Phone:             m.Phone,
		AddressLine1:      m.AddressLine1,
		AddressLine2:      m.AddressLine2,
		City:              m.City,
		Country:           m.Country,
	}
	if m.Carts != nil {
		c.Carts = make([]cart.ShoppingCart, len(m.Carts))
		for i := range m.Carts {
			c.Carts[i] = *m.Carts[i].ToDomain()
		}
	}
	return c
}

// FromDomain populates the persistence model from a domain CustomerDetails entity.
// Carts are owned by the cart side of the relation and are not written from here.
func (m *CustomerDetailsModel) FromDomain(c *customer.CustomerDetails) {
	m.fillFrom(&c.BaseAggregateRoot)
	m.Gender = c.Gender
	m.Phone = c.Phone
	m.AddressLine1 = c.AddressLine1
	m.AddressLine2 = c.AddressLine2
	m.City = c.City
	m.Country = c.Country
}

// CustomerDetailsModelFromDomain creates a new persistence model from a domain entity.
func CustomerDetailsModelFromDomain(c *customer.CustomerDetails) *CustomerDetailsModel {
	m := &CustomerDetailsModel{}
	m.FromDomain(c)
	return m
}
