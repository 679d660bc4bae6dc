package order

import (
	"slices"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/patch"
)

// ProductOrder is a single order line placed in a shopping cart.
//
// CategoryIDs is the writable side of the category association. A nil slice
// means the association was not loaded and is left untouched on save; an
// empty slice clears it. Categories is only populated when loaded with relations.
type ProductOrder struct {
	shared.BaseAggregateRoot
	Quantity    int
	TotalPrice  decimal.Decimal
	CartID      *int64
	CategoryIDs []int64
	Categories  []catalog.ProductCategory
}

// ProductOrderPatch carries the fields of a partial update
type ProductOrderPatch struct {
	ID          *int64
	Quantity    *int
	TotalPrice  *decimal.Decimal
	CartID      *int64
	CategoryIDs []int64
}

// Fields holds the writable fields used by create and full update
type Fields struct {
	Quantity    int
	TotalPrice  decimal.Decimal
	CartID      *int64
	CategoryIDs []int64
}

// NewProductOrder creates a new product order
func NewProductOrder(f Fields) (*ProductOrder, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	o := &ProductOrder{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	o.assign(f)
	if o.CategoryIDs == nil {
		o.CategoryIDs = []int64{}
	}
	o.AddDomainEvent(NewProductOrderCreatedEvent(o))

	return o, nil
}

// Replace overwrites every writable field. A nil category list clears the association.
func (o *ProductOrder) Replace(f Fields) error {
	if err := f.validate(); err != nil {
		return err
	}

	o.assign(f)
	if o.CategoryIDs == nil {
		o.CategoryIDs = []int64{}
	}
	o.Categories = nil
	o.MarkChanged()
	o.AddDomainEvent(NewProductOrderUpdatedEvent(o, []string{"quantity", "total_price", "cart_id", "category_ids"}))

	return nil
}

// ApplyPatch merges the non-nil fields of p and returns the changed field names
func (o *ProductOrder) ApplyPatch(p ProductOrderPatch) []string {
	var ids []int64
	if p.CategoryIDs != nil {
		ids = normalizeIDs(p.CategoryIDs)
	}

	changed := patch.Apply(
		patch.Field("quantity", &o.Quantity, p.Quantity),
		patch.Field("total_price", &o.TotalPrice, p.TotalPrice),
		patch.Nullable("cart_id", &o.CartID, p.CartID),
		patch.Slice("category_ids", &o.CategoryIDs, ids),
	)
	if len(changed) == 0 {
		return nil
	}
	if slices.Contains(changed, "category_ids") {
		o.Categories = nil
	}

	o.MarkChanged()
	o.AddDomainEvent(NewProductOrderUpdatedEvent(o, changed))

	return changed
}

// Validate checks the current field values
func (o *ProductOrder) Validate() error {
	return Fields{Quantity: o.Quantity, TotalPrice: o.TotalPrice}.validate()
}

// MarkDeleted records the deletion event
func (o *ProductOrder) MarkDeleted() {
	o.AddDomainEvent(NewProductOrderDeletedEvent(o))
}

// SyncCategoryIDs derives CategoryIDs from loaded Categories
func (o *ProductOrder) SyncCategoryIDs() {
	ids := make([]int64, 0, len(o.Categories))
	for _, c := range o.Categories {
		ids = append(ids, c.ID)
	}
	o.CategoryIDs = normalizeIDs(ids)
}

func (o *ProductOrder) assign(f Fields) {
	o.Quantity = f.Quantity
	o.TotalPrice = f.TotalPrice
	o.CartID = f.CartID
	if f.CategoryIDs != nil {
		o.CategoryIDs = normalizeIDs(f.CategoryIDs)
	} else {
		o.CategoryIDs = nil
	}
}

func (f Fields) validate() error {
	if f.Quantity < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity cannot be negative")
	}
	if f.TotalPrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Total price cannot be negative")
	}
	return nil
}

// normalizeIDs sorts and de-duplicates ids so that equal sets compare equal
func normalizeIDs(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
