package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupStorefrontTestDB opens an in-memory SQLite database with every table migrated
func setupStorefrontTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(&config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate())
	return db.DB
}

func ptr[T any](v T) *T { return &v }

func saveCategory(t *testing.T, repo *GormProductCategoryRepository, name string) *catalog.ProductCategory {
	t.Helper()
	c, err := catalog.NewProductCategory(name, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}

func saveCustomer(t *testing.T, repo *GormCustomerDetailsRepository, city string) *customer.CustomerDetails {
	t.Helper()
	c, err := customer.NewCustomerDetails(customer.Fields{
		Gender:       customer.GenderFemale,
		Phone:        "+31 20 123 4567",
		AddressLine1: "Damrak 1",
		City:         city,
		Country:      "NL",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}

func saveCart(t *testing.T, repo *GormShoppingCartRepository, customerID *int64, status cart.OrderStatus) *cart.ShoppingCart {
	t.Helper()
	c, err := cart.NewShoppingCart(cart.Fields{
		PlacedDate:        time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Status:            status,
		TotalPrice:        decimal.RequireFromString("42.50"),
		PaymentMethod:     cart.PaymentMethodIDeal,
		CustomerDetailsID: customerID,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}
