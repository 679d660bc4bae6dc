package customer

import (
	"time"

	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
)

// CreateCustomerDetailsRequest represents a request to create customer details
type CreateCustomerDetailsRequest struct {
	ID           *int64  `json:"id"`
	Gender       string  `json:"gender" binding:"required,oneof=MALE FEMALE OTHER"`
	Phone        string  `json:"phone" binding:"required,min=1,max=32"`
	AddressLine1 string  `json:"address_line1" binding:"required,min=1,max=255"`
	AddressLine2 *string `json:"address_line2" binding:"omitempty,max=255"`
	City         string  `json:"city" binding:"required,min=1,max=100"`
	Country      string  `json:"country" binding:"required,min=1,max=100"`
}

// ToFields converts the request into the domain's writable fields
func (r CreateCustomerDetailsRequest) ToFields() customer.Fields {
	return customer.Fields{
		Gender:       customer.Gender(r.Gender),
		Phone:        r.Phone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		Country:      r.Country,
	}
}

// UpdateCustomerDetailsRequest represents a full update of customer details
type UpdateCustomerDetailsRequest CreateCustomerDetailsRequest

// ToFields converts the request into the domain's writable fields
func (r UpdateCustomerDetailsRequest) ToFields() customer.Fields {
	return CreateCustomerDetailsRequest(r).ToFields()
}

// PatchCustomerDetailsRequest represents a partial update; nil fields are left unchanged
type PatchCustomerDetailsRequest struct {
	ID           *int64  `json:"id"`
	Gender       *string `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	Phone        *string `json:"phone" binding:"omitempty,min=1,max=32"`
	AddressLine1 *string `json:"address_line1" binding:"omitempty,min=1,max=255"`
	AddressLine2 *string `json:"address_line2" binding:"omitempty,max=255"`
	City         *string `json:"city" binding:"omitempty,min=1,max=100"`
	Country      *string `json:"country" binding:"omitempty,min=1,max=100"`
}

// ToPatch converts the request into the domain patch
func (r PatchCustomerDetailsRequest) ToPatch() customer.CustomerDetailsPatch {
	p := customer.CustomerDetailsPatch{
		ID:           r.ID,
		Phone:        r.Phone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		Country:      r.Country,
	}
	if r.Gender != nil {
		g := customer.Gender(*r.Gender)
		p.Gender = &g
	}
	return p
}

// CustomerDetailsListFilter holds list query parameters
type CustomerDetailsListFilter struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
	Gender    string `form:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	City      string `form:"city"`
	Country   string `form:"country"`
	Eagerload bool   `form:"eagerload"`
}

// ToFilter converts the query into a repository filter with defaults applied
func (f CustomerDetailsListFilter) ToFilter() shared.Filter {
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
	for key, value := range map[string]string{"gender": f.Gender, "city": f.City, "country": f.Country} {
		if value != "" {
			filter.Filters[key] = value
		}
	}
	return filter
}

// CustomerDetailsResponse represents customer details in API responses.
// Carts is present only when relations were loaded.
type CustomerDetailsResponse struct {
	ID           int64                          `json:"id"`
	Gender       string                         `json:"gender"`
	Phone        string                         `json:"phone"`
	AddressLine1 string                         `json:"address_line1"`
	AddressLine2 *string                        `json:"address_line2"`
	City         string                         `json:"city"`
	Country      string                         `json:"country"`
	Carts        []cartapp.ShoppingCartResponse `json:"carts,omitempty"`
	Version      int                            `json:"version"`
	CreatedAt    time.Time                      `json:"created_at"`
	UpdatedAt    time.Time                      `json:"updated_at"`
}

// ToCustomerDetailsResponse converts domain CustomerDetails to a response
func ToCustomerDetailsResponse(c *customer.CustomerDetails) CustomerDetailsResponse {
	resp := CustomerDetailsResponse{
		ID:           c.ID,
		Gender:       string(c.Gender),
		Phone:        c.Phone,
		AddressLine1: c.AddressLine1,
		AddressLine2: c.AddressLine2,
		City:         c.City,
		Country:      c.Country,
		Version:      c.Version,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if c.Carts != nil {
		resp.Carts = cartapp.ToShoppingCartResponses(c.Carts)
	}
	return resp
}

// ToCustomerDetailsResponses converts a slice of customer details to responses
func ToCustomerDetailsResponses(customers []customer.CustomerDetails) []CustomerDetailsResponse {
	out := make([]CustomerDetailsResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerDetailsResponse(&customers[i])
	}
	return out
}
