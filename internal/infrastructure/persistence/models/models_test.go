package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "product_category", ProductCategoryModel{}.TableName())
	assert.Equal(t, "customer_details", CustomerDetailsModel{}.TableName())
	assert.Equal(t, "shopping_cart", ShoppingCartModel{}.TableName())
	assert.Equal(t, "product_order", ProductOrderModel{}.TableName())
	assert.Equal(t, "rel_product_order__category", ProductOrderCategoryModel{}.TableName())
}

func TestShoppingCartModel_RoundTrip(t *testing.T) {
	ref := "PAY-42"
	customerID := int64(3)
	c, err := cart.NewShoppingCart(cart.Fields{
		PlacedDate:        time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Status:            cart.OrderStatusPaid,
		TotalPrice:        decimal.RequireFromString("99.95"),
		PaymentMethod:     cart.PaymentMethodCreditCard,
		PaymentReference:  &ref,
		CustomerDetailsID: &customerID,
	})
	require.NoError(t, err)
	c.ID = 12

	model := ShoppingCartModelFromDomain(c)
	assert.Equal(t, int64(12), model.ID)
	assert.Equal(t, 1, model.Version)

	back := model.ToDomain()
	assert.Equal(t, c.ID, back.ID)
	assert.Equal(t, c.Status, back.Status)
	assert.True(t, c.TotalPrice.Equal(back.TotalPrice))
	assert.Equal(t, "PAY-42", *back.PaymentReference)
	assert.Empty(t, back.PendingEvents())
}

func TestCustomerDetailsModel_ToDomain(t *testing.T) {
	now := time.Now()

	t.Run("carts not loaded stay nil", func(t *testing.T) {
		model := &CustomerDetailsModel{
			AggregateModel: AggregateModel{ID: 1, CreatedAt: now, UpdatedAt: now, Version: 3},
			Gender:         customer.GenderMale,
			Phone:          "555",
			AddressLine1:   "Main St 1",
			City:           "Utrecht",
			Country:        "NL",
		}

		c := model.ToDomain()
		assert.Equal(t, int64(1), c.ID)
		assert.Equal(t, 3, c.Version)
		assert.Nil(t, c.Carts)
	})

	t.Run("preloaded carts are converted", func(t *testing.T) {
		model := &CustomerDetailsModel{
			AggregateModel: AggregateModel{ID: 1},
			Carts: []ShoppingCartModel{
				{AggregateModel: AggregateModel{ID: 10}, Status: cart.OrderStatusPending},
				{AggregateModel: AggregateModel{ID: 11}, Status: cart.OrderStatusPaid},
			},
		}

		c := model.ToDomain()
		require.Len(t, c.Carts, 2)
		assert.Equal(t, int64(11), c.Carts[1].ID)
	})
}

func TestProductOrderModel_ToDomain(t *testing.T) {
	t.Run("categories not loaded leave ids nil", func(t *testing.T) {
		model := &ProductOrderModel{AggregateModel: AggregateModel{ID: 4}, Quantity: 2}

		o := model.ToDomain()
		assert.Nil(t, o.CategoryIDs)
		assert.Nil(t, o.Categories)
	})

	t.Run("preloaded categories populate ids", func(t *testing.T) {
		model := &ProductOrderModel{
			AggregateModel: AggregateModel{ID: 4},
			Categories: []ProductCategoryModel{
				{AggregateModel: AggregateModel{ID: 9}, Name: "Toys"},
				{AggregateModel: AggregateModel{ID: 2}, Name: "Books"},
			},
		}

		o := model.ToDomain()
		assert.Equal(t, []int64{2, 9}, o.CategoryIDs)
		require.Len(t, o.Categories, 2)
		assert.Equal(t, "Toys", o.Categories[0].Name)
	})
}

func TestProductOrderCategoryRows(t *testing.T) {
	rows := ProductOrderCategoryRows(7, []int64{1, 3})

	assert.Equal(t, []ProductOrderCategoryModel{
		{ProductOrderID: 7, ProductCategoryID: 1},
		{ProductOrderID: 7, ProductCategoryID: 3},
	}, rows)
	assert.Empty(t, ProductOrderCategoryRows(7, nil))
}

func TestProductOrderModelFromDomain(t *testing.T) {
	o, err := order.NewProductOrder(order.Fields{Quantity: 1, TotalPrice: decimal.NewFromInt(3), CategoryIDs: []int64{1}})
	require.NoError(t, err)

	model := ProductOrderModelFromDomain(o)
	assert.Equal(t, 1, model.Quantity)
	assert.Nil(t, model.Categories)
}
