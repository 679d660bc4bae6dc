package cart

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
)

// CreateShoppingCartRequest represents a request to create a shopping cart
type CreateShoppingCartRequest struct {
	ID                *int64          `json:"id"`
	PlacedDate        time.Time       `json:"placed_date" binding:"required"`
	Status            string          `json:"status" binding:"required,oneof=COMPLETED PAID PENDING CANCELLED REFUNDED"`
	TotalPrice        decimal.Decimal `json:"total_price" binding:"decimal_gte0"`
	PaymentMethod     string          `json:"payment_method" binding:"required,oneof=CREDIT_CARD IDEAL"`
	PaymentReference  *string         `json:"payment_reference" binding:"omitempty,max=255"`
	CustomerDetailsID *int64          `json:"customer_details_id" binding:"omitempty,min=1"`
}

// ToFields converts the request into the domain's writable fields
func (r CreateShoppingCartRequest) ToFields() cart.Fields {
	return cart.Fields{
		PlacedDate:        r.PlacedDate,
		Status:            cart.OrderStatus(r.Status),
		TotalPrice:        r.TotalPrice,
		PaymentMethod:     cart.PaymentMethod(r.PaymentMethod),
		PaymentReference:  r.PaymentReference,
		CustomerDetailsID: r.CustomerDetailsID,
	}
}

// UpdateShoppingCartRequest represents a full update of a shopping cart
type UpdateShoppingCartRequest CreateShoppingCartRequest

// ToFields converts the request into the domain's writable fields
func (r UpdateShoppingCartRequest) ToFields() cart.Fields {
	return CreateShoppingCartRequest(r).ToFields()
}

// PatchShoppingCartRequest represents a partial update; nil fields are left unchanged
type PatchShoppingCartRequest struct {
	ID                *int64           `json:"id"`
	PlacedDate        *time.Time       `json:"placed_date"`
	Status            *string          `json:"status" binding:"omitempty,oneof=COMPLETED PAID PENDING CANCELLED REFUNDED"`
	TotalPrice        *decimal.Decimal `json:"total_price" binding:"omitempty,decimal_gte0"`
	PaymentMethod     *string          `json:"payment_method" binding:"omitempty,oneof=CREDIT_CARD IDEAL"`
	PaymentReference  *string          `json:"payment_reference" binding:"omitempty,max=255"`
	CustomerDetailsID *int64           `json:"customer_details_id" binding:"omitempty,min=1"`
}

// ToPatch converts the request into the domain patch
func (r PatchShoppingCartRequest) ToPatch() cart.ShoppingCartPatch {
	p := cart.ShoppingCartPatch{
		ID:                r.ID,
		PlacedDate:        r.PlacedDate,
		TotalPrice:        r.TotalPrice,
		PaymentReference:  r.PaymentReference,
		CustomerDetailsID: r.CustomerDetailsID,
	}
	if r.Status != nil {
		status := cart.OrderStatus(*r.Status)
		p.Status = &status
	}
	if r.PaymentMethod != nil {
		method := cart.PaymentMethod(*r.PaymentMethod)
		p.PaymentMethod = &method
	}
	return p
}

// ShoppingCartListFilter holds list query parameters
type ShoppingCartListFilter struct {
	Page              int    `form:"page" binding:"omitempty,min=1"`
	PageSize          int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy           string `form:"order_by"`
	OrderDir          string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
	Status            string `form:"status" binding:"omitempty,oneof=COMPLETED PAID PENDING CANCELLED REFUNDED"`
	CustomerDetailsID int64  `form:"customer_details_id" binding:"omitempty,min=1"`
}

// ToFilter converts the query into a repository filter with defaults applied
func (f ShoppingCartListFilter) ToFilter() shared.Filter {
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
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.CustomerDetailsID > 0 {
		filter.Filters["customer_details_id"] = f.CustomerDetailsID
	}
	return filter
}

// ShoppingCartResponse represents a shopping cart in API responses
type ShoppingCartResponse struct {
	ID                int64           `json:"id"`
	PlacedDate        time.Time       `json:"placed_date"`
	Status            string          `json:"status"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	PaymentMethod     string          `json:"payment_method"`
	PaymentReference  *string         `json:"payment_reference"`
	CustomerDetailsID *int64          `json:"customer_details_id"`
	Version           int             `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToShoppingCartResponse converts a domain ShoppingCart to a response
func ToShoppingCartResponse(c *cart.ShoppingCart) ShoppingCartResponse {
	return ShoppingCartResponse{
		ID:                c.ID,
		PlacedDate:        c.PlacedDate,
		Status:            string(c.Status),
		TotalPrice:        c.TotalPrice,
		PaymentMethod:     string(c.PaymentMethod),
		PaymentReference:  c.PaymentReference,
		CustomerDetailsID: c.CustomerDetailsID,
		Version:           c.Version,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// ToShoppingCartResponses converts a slice of carts to responses
func ToShoppingCartResponses(carts []cart.ShoppingCart) []ShoppingCartResponse {
	out := make([]ShoppingCartResponse, len(carts))
	for i := range carts {
		out[i] = ToShoppingCartResponse(&carts[i])
	}
	return out
}
