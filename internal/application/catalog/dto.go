package catalog

import (
	"time"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CreateProductCategoryRequest represents a request to create a product category.
// ID must be absent; it is accepted only to reject clients that send one.
type CreateProductCategoryRequest struct {
	ID          *int64  `json:"id"`
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// UpdateProductCategoryRequest represents a full update of a product category
type UpdateProductCategoryRequest struct {
	ID          *int64  `json:"id"`
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// PatchProductCategoryRequest represents a partial update; nil fields are left unchanged
type PatchProductCategoryRequest struct {
	ID          *int64  `json:"id"`
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// ToPatch converts the request into the domain patch
func (r PatchProductCategoryRequest) ToPatch() catalog.ProductCategoryPatch {
	return catalog.ProductCategoryPatch{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
	}
}

// ProductCategoryListFilter holds list query parameters
type ProductCategoryListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
	Name     string `form:"name"`
}

// ToFilter converts the query into a repository filter with defaults applied
func (f ProductCategoryListFilter) ToFilter() shared.Filter {
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
	if f.Name != "" {
		filter.Filters["name"] = f.Name
	}
	return filter
}

// ProductCategoryResponse represents a product category in API responses
type ProductCategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToProductCategoryResponse converts a domain ProductCategory to a response
func ToProductCategoryResponse(c *catalog.ProductCategory) ProductCategoryResponse {
	return ProductCategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Version:     c.Version,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToProductCategoryResponses converts a slice of categories to responses
func ToProductCategoryResponses(categories []catalog.ProductCategory) []ProductCategoryResponse {
	out := make([]ProductCategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToProductCategoryResponse(&categories[i])
	}
	return out
}
