package order

import (
	"time"

	"github.com/shopspring/decimal"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// CreateProductOrderRequest represents a request to create a product order
type CreateProductOrderRequest struct {
	ID          *int64          `json:"id"`
	Quantity    int             `json:"quantity" binding:"min=0"`
	TotalPrice  decimal.Decimal `json:"total_price" binding:"decimal_gte0"`
	CartID      *int64          `json:"cart_id" binding:"omitempty,min=1"`
	CategoryIDs []int64         `json:"category_ids" binding:"omitempty,dive,min=1"`
}

// ToFields converts the request into the domain's writable fields
func (r CreateProductOrderRequest) ToFields() order.Fields {
	return order.Fields{
		Quantity:    r.Quantity,
		TotalPrice:  r.TotalPrice,
		CartID:      r.CartID,
		CategoryIDs: r.CategoryIDs,
	}
}

// UpdateProductOrderRequest represents a full update of a product order.
// An absent category list clears the order's categories.
type UpdateProductOrderRequest CreateProductOrderRequest

// ToFields converts the request into the domain's writable fields
func (r UpdateProductOrderRequest) ToFields() order.Fields {
	return CreateProductOrderRequest(r).ToFields()
}

// PatchProductOrderRequest represents a partial update; nil fields are left unchanged.
// An empty category list clears the categories, an absent one keeps them.
type PatchProductOrderRequest struct {
	ID          *int64           `json:"id"`
	Quantity    *int             `json:"quantity" binding:"omitempty,min=0"`
	TotalPrice  *decimal.Decimal `json:"total_price" binding:"omitempty,decimal_gte0"`
	CartID      *int64           `json:"cart_id" binding:"omitempty,min=1"`
	CategoryIDs []int64          `json:"category_ids" binding:"omitempty,dive,min=1"`
}

// ToPatch converts the request into the domain patch
func (r PatchProductOrderRequest) ToPatch() order.ProductOrderPatch {
	return order.ProductOrderPatch{
		ID:          r.ID,
		Quantity:    r.Quantity,
		TotalPrice:  r.TotalPrice,
		CartID:      r.CartID,
		CategoryIDs: r.CategoryIDs,
	}
}

// ProductOrderListFilter holds list query parameters
type ProductOrderListFilter struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
	CartID    int64  `form:"cart_id" binding:"omitempty,min=1"`
	Eagerload bool   `form:"eagerload"`
}

// ToFilter converts the query into a repository filter with defaults applied
func (f ProductOrderListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	if f.CartID > 0 {
		filter.Filters["cart_id"] = f.CartID
	}
	return filter
}

// ProductOrderResponse represents a product order in API responses.
// CategoryIDs and Categories are present only when the association was loaded.
type ProductOrderResponse struct {
	ID          int64                                `json:"id"`
	Quantity    int                                  `json:"quantity"`
	TotalPrice  decimal.Decimal                      `json:"total_price"`
	CartID      *int64                               `json:"cart_id"`
	CategoryIDs []int64                              `json:"category_ids,omitempty"`
	Categories  []catalogapp.ProductCategoryResponse `json:"categories,omitempty"`
	Version     int                                  `json:"version"`
	CreatedAt   time.Time                            `json:"created_at"`
	UpdatedAt   time.Time                            `json:"updated_at"`
}

// ToProductOrderResponse converts a domain ProductOrder to a response
func ToProductOrderResponse(o *order.ProductOrder) ProductOrderResponse {
	resp := ProductOrderResponse{
		ID:          o.ID,
		Quantity:    o.Quantity,
		TotalPrice:  o.TotalPrice,
		CartID:      o.CartID,
		CategoryIDs: o.CategoryIDs,
		Version:     o.Version,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if o.Categories != nil {
		resp.Categories = catalogapp.ToProductCategoryResponses(o.Categories)
	}
	return resp
}

// ToProductOrderResponses converts a slice of orders to responses
func ToProductOrderResponses(orders []order.ProductOrder) []ProductOrderResponse {
	out := make([]ProductOrderResponse, len(orders))
	for i := range orders {
		out[i] = ToProductOrderResponse(&orders[i])
	}
	return out
}
