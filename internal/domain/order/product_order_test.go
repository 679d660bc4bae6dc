package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T) *ProductOrder {
	t.Helper()
	cartID := int64(2)
	o, err := NewProductOrder(Fields{
		Quantity:    3,
		TotalPrice:  decimal.RequireFromString("29.97"),
		CartID:      &cartID,
		CategoryIDs: []int64{4, 1, 4},
	})
	require.NoError(t, err)
	o.ID = 9
	o.PullEvents()
	return o
}

func TestNewProductOrder(t *testing.T) {
	t.Run("normalizes category ids", func(t *testing.T) {
		o := newOrder(t)
		assert.Equal(t, []int64{1, 4}, o.CategoryIDs)
		assert.Equal(t, 3, o.Quantity)
	})

	t.Run("nil categories become empty", func(t *testing.T) {
		o, err := NewProductOrder(Fields{Quantity: 1, TotalPrice: decimal.NewFromInt(5)})
		require.NoError(t, err)
		assert.NotNil(t, o.CategoryIDs)
		assert.Empty(t, o.CategoryIDs)
		require.Len(t, o.PendingEvents(), 1)
		assert.Equal(t, EventTypeProductOrderCreated, o.PendingEvents()[0].EventType())
	})

	t.Run("fails with negative quantity", func(t *testing.T) {
		_, err := NewProductOrder(Fields{Quantity: -1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Quantity cannot be negative")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProductOrder(Fields{Quantity: 1, TotalPrice: decimal.NewFromInt(-2)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Total price cannot be negative")
	})
}

func TestProductOrder_ApplyPatch(t *testing.T) {
	t.Run("nil category ids leave association untouched", func(t *testing.T) {
		o := newOrder(t)
		qty := 5

		changed := o.ApplyPatch(ProductOrderPatch{Quantity: &qty})

		assert.Equal(t, []string{"quantity"}, changed)
		assert.Equal(t, []int64{1, 4}, o.CategoryIDs)
		assert.Equal(t, 5, o.Quantity)
		assert.Equal(t, int64(2), *o.CartID)
	})

	t.Run("empty category ids clear association", func(t *testing.T) {
		o := newOrder(t)

		changed := o.ApplyPatch(ProductOrderPatch{CategoryIDs: []int64{}})

		assert.Equal(t, []string{"category_ids"}, changed)
		assert.Empty(t, o.CategoryIDs)
	})

	t.Run("reordered duplicate ids are not a change", func(t *testing.T) {
		o := newOrder(t)

		changed := o.ApplyPatch(ProductOrderPatch{CategoryIDs: []int64{4, 1, 1}})

		assert.Nil(t, changed)
		assert.Equal(t, 1, o.Version)
	})

	t.Run("changing categories drops loaded categories", func(t *testing.T) {
		o := newOrder(t)
		o.Categories = []catalog.ProductCategory{{BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: shared.BaseEntity{ID: 1}}}}

		changed := o.ApplyPatch(ProductOrderPatch{CategoryIDs: []int64{7}})

		assert.Equal(t, []string{"category_ids"}, changed)
		assert.Equal(t, []int64{7}, o.CategoryIDs)
		assert.Nil(t, o.Categories)

		events := o.PendingEvents()
		require.Len(t, events, 1)
		updated, ok := events[0].(*ProductOrderUpdatedEvent)
		require.True(t, ok)
		assert.Equal(t, 2, updated.Version)
	})

	t.Run("identifier-only patch changes nothing", func(t *testing.T) {
		o := newOrder(t)
		id := int64(9)

		assert.Nil(t, o.ApplyPatch(ProductOrderPatch{ID: &id}))
		assert.Empty(t, o.PendingEvents())
	})
}

func TestProductOrder_SyncCategoryIDs(t *testing.T) {
	o := &ProductOrder{}
	for _, id := range []int64{8, 3} {
		c := catalog.ProductCategory{}
		c.ID = id
		o.Categories = append(o.Categories, c)
	}

	o.SyncCategoryIDs()

	assert.Equal(t, []int64{3, 8}, o.CategoryIDs)
}

func TestProductOrder_Replace(t *testing.T) {
	o := newOrder(t)

	require.NoError(t, o.Replace(Fields{Quantity: 1, TotalPrice: decimal.NewFromInt(10)}))

	assert.Nil(t, o.CartID)
	assert.Empty(t, o.CategoryIDs)
	assert.NotNil(t, o.CategoryIDs)
	assert.Equal(t, 2, o.Version)
}
