package persistence

import (
	"context"
	"testing"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCustomerDetailsRepository_Relations(t *testing.T) {
	db := setupStorefrontTestDB(t)
	repo := NewGormCustomerDetailsRepository(db)
	carts := NewGormShoppingCartRepository(db)
	ctx := context.Background()

	withCarts := saveCustomer(t, repo, "Amsterdam")
	withoutCarts := saveCustomer(t, repo, "Rotterdam")
	saveCart(t, carts, &withCarts.ID, cart.OrderStatusPending)
	saveCart(t, carts, &withCarts.ID, cart.OrderStatusPaid)

	t.Run("FindByID does not load carts", func(t *testing.T) {
		found, err := repo.FindByID(ctx, withCarts.ID)
		require.NoError(t, err)
		assert.Nil(t, found.Carts)
		assert.Equal(t, "Amsterdam", found.City)
		assert.Equal(t, customer.GenderFemale, found.Gender)
	})

	t.Run("FindByIDWithRelations loads carts in id order", func(t *testing.T) {
		found, err := repo.FindByIDWithRelations(ctx, withCarts.ID)
		require.NoError(t, err)
		require.Len(t, found.Carts, 2)
		assert.Less(t, found.Carts[0].ID, found.Carts[1].ID)
	})

	t.Run("loaded customer without carts has an empty list", func(t *testing.T) {
		found, err := repo.FindByIDWithRelations(ctx, withoutCarts.ID)
		require.NoError(t, err)
		assert.NotNil(t, found.Carts)
		assert.Empty(t, found.Carts)
	})

	t.Run("FindAllWithRelations", func(t *testing.T) {
		items, err := repo.FindAllWithRelations(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Len(t, items[0].Carts, 2)
		assert.Empty(t, items[1].Carts)
	})

	t.Run("city filter", func(t *testing.T) {
		count, err := repo.Count(ctx, shared.Filter{Filters: map[string]interface{}{"city": "Rotterdam"}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestGormCustomerDetailsRepository_SaveIgnoresCarts(t *testing.T) {
	db := setupStorefrontTestDB(t)
	repo := NewGormCustomerDetailsRepository(db)
	carts := NewGormShoppingCartRepository(db)
	ctx := context.Background()

	c := saveCustomer(t, repo, "Leiden")
	saveCart(t, carts, &c.ID, cart.OrderStatusPending)

	loaded, err := repo.FindByIDWithRelations(ctx, c.ID)
	require.NoError(t, err)
	loaded.Carts = nil
	loaded.ApplyPatch(customer.CustomerDetailsPatch{City: ptr("Haarlem")})
	require.NoError(t, repo.Save(ctx, loaded))

	reloaded, err := repo.FindByIDWithRelations(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Haarlem", reloaded.City)
	assert.Len(t, reloaded.Carts, 1)
}

func TestGormCustomerDetailsRepository_Delete(t *testing.T) {
	db := setupStorefrontTestDB(t)
	repo := NewGormCustomerDetailsRepository(db)
	carts := NewGormShoppingCartRepository(db)
	ctx := context.Background()

	c := saveCustomer(t, repo, "Delft")
	owned := saveCart(t, carts, &c.ID, cart.OrderStatusPending)

	require.NoError(t, repo.Delete(ctx, c.ID))

	found, err := carts.FindByID(ctx, owned.ID)
	require.NoError(t, err)
	assert.Nil(t, found.CustomerDetailsID)

	exists, err := repo.ExistsByID(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
