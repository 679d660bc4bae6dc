package catalog

import (
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProductCategory = "ProductCategory"

// Event type constants
const (
	EventTypeProductCategoryCreated = "ProductCategoryCreated"
	EventTypeProductCategoryUpdated = "ProductCategoryUpdated"
	EventTypeProductCategoryDeleted = "ProductCategoryDeleted"
)

// ProductCategoryCreatedEvent is published when a new category is created
type ProductCategoryCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewProductCategoryCreatedEvent creates a new ProductCategoryCreatedEvent
func NewProductCategoryCreatedEvent(c *ProductCategory) *ProductCategoryCreatedEvent {
	return &ProductCategoryCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCategoryCreated, AggregateTypeProductCategory, c.ID),
		Name:            c.Name,
	}
}

// ProductCategoryUpdatedEvent is published when a category is updated
type ProductCategoryUpdatedEvent struct {
	shared.BaseDomainEvent
	Name          string   `json:"name"`
	ChangedFields []string `json:"changed_fields"`
	Version       int      `json:"version"`
}

// NewProductCategoryUpdatedEvent creates a new ProductCategoryUpdatedEvent
func NewProductCategoryUpdatedEvent(c *ProductCategory, changed []string) *ProductCategoryUpdatedEvent {
	return &ProductCategoryUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCategoryUpdated, AggregateTypeProductCategory, c.ID),
		Name:            c.Name,
		ChangedFields:   changed,
		Version:         c.Version,
	}
}

// ProductCategoryDeletedEvent is published when a category is deleted
type ProductCategoryDeletedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewProductCategoryDeletedEvent creates a new ProductCategoryDeletedEvent
func NewProductCategoryDeletedEvent(c *ProductCategory) *ProductCategoryDeletedEvent {
	return &ProductCategoryDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCategoryDeleted, AggregateTypeProductCategory, c.ID),
		Name:            c.Name,
	}
}
