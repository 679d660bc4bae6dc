package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewProductCategory(t *testing.T) {
	t.Run("creates category with valid inputs", func(t *testing.T) {
		category, err := NewProductCategory("Electronics", strPtr("Gadgets and devices"))
		require.NoError(t, err)
		require.NotNil(t, category)

		assert.Equal(t, "Electronics", category.Name)
		assert.Equal(t, "Gadgets and devices", *category.Description)
		assert.Equal(t, 1, category.Version)
		assert.True(t, category.IsNew())
	})

	t.Run("publishes ProductCategoryCreated event", func(t *testing.T) {
		category, err := NewProductCategory("Books", nil)
		require.NoError(t, err)

		events := category.PendingEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCategoryCreated, events[0].EventType())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProductCategory("", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with name too long", func(t *testing.T) {
		_, err := NewProductCategory(strings.Repeat("a", MaxNameLength+1), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 100 characters")
	})

	t.Run("fails with description too long", func(t *testing.T) {
		_, err := NewProductCategory("Books", strPtr(strings.Repeat("a", MaxDescriptionLength+1)))
		require.Error(t, err)
	})
}

func TestProductCategory_ApplyPatch(t *testing.T) {
	newCategory := func(t *testing.T) *ProductCategory {
		t.Helper()
		c, err := NewProductCategory("Electronics", strPtr("Old"))
		require.NoError(t, err)
		c.ID = 1
		c.PullEvents()
		return c
	}

	t.Run("overwrites present fields and keeps absent ones", func(t *testing.T) {
		c := newCategory(t)
		id := int64(1)

		changed := c.ApplyPatch(ProductCategoryPatch{ID: &id, Name: strPtr("Gadgets")})

		assert.Equal(t, []string{"name"}, changed)
		assert.Equal(t, int64(1), c.ID)
		assert.Equal(t, "Gadgets", c.Name)
		assert.Equal(t, "Old", *c.Description)
		assert.Equal(t, 2, c.Version)

		events := c.PendingEvents()
		require.Len(t, events, 1)
		updated, ok := events[0].(*ProductCategoryUpdatedEvent)
		require.True(t, ok)
		assert.Equal(t, []string{"name"}, updated.ChangedFields)
		assert.Equal(t, int64(1), updated.AggregateID())
	})

	t.Run("identifier-only patch is a no-op", func(t *testing.T) {
		c := newCategory(t)
		before := *c
		id := int64(1)

		changed := c.ApplyPatch(ProductCategoryPatch{ID: &id})

		assert.Nil(t, changed)
		assert.Equal(t, before.Name, c.Name)
		assert.Equal(t, before.Description, c.Description)
		assert.Equal(t, before.Version, c.Version)
		assert.Equal(t, before.UpdatedAt, c.UpdatedAt)
		assert.Empty(t, c.PendingEvents())
	})

	t.Run("applying the same patch twice bumps version once", func(t *testing.T) {
		c := newCategory(t)
		p := ProductCategoryPatch{Name: strPtr("Gadgets"), Description: strPtr("New")}

		first := c.ApplyPatch(p)
		second := c.ApplyPatch(p)

		assert.ElementsMatch(t, []string{"name", "description"}, first)
		assert.Nil(t, second)
		assert.Equal(t, 2, c.Version)
		assert.Len(t, c.PendingEvents(), 1)
	})
}

func TestProductCategory_Replace(t *testing.T) {
	c, err := NewProductCategory("Electronics", strPtr("Old"))
	require.NoError(t, err)
	c.PullEvents()

	t.Run("replaces every field", func(t *testing.T) {
		require.NoError(t, c.Replace("Gadgets", nil))
		assert.Equal(t, "Gadgets", c.Name)
		assert.Nil(t, c.Description)
		assert.Equal(t, 2, c.Version)
		require.Len(t, c.PendingEvents(), 1)
		assert.Equal(t, EventTypeProductCategoryUpdated, c.PendingEvents()[0].EventType())
	})

	t.Run("rejects invalid name", func(t *testing.T) {
		err := c.Replace("", nil)
		require.Error(t, err)
		assert.Equal(t, "Gadgets", c.Name)
	})
}

func TestProductCategory_MarkDeleted(t *testing.T) {
	c, err := NewProductCategory("Electronics", nil)
	require.NoError(t, err)
	c.ID = 7
	c.PullEvents()

	c.MarkDeleted()

	events := c.PendingEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeProductCategoryDeleted, events[0].EventType())
	assert.Equal(t, int64(7), events[0].AggregateID())
}
