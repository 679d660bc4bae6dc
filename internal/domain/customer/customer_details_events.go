package customer

import (
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCustomerDetails = "CustomerDetails"

// Event type constants
const (
	EventTypeCustomerDetailsCreated = "CustomerDetailsCreated"
	EventTypeCustomerDetailsUpdated = "CustomerDetailsUpdated"
	EventTypeCustomerDetailsDeleted = "CustomerDetailsDeleted"
)

// CustomerDetailsCreatedEvent is published when customer details are created
type CustomerDetailsCreatedEvent struct {
	shared.BaseDomainEvent
	City    string `json:"city"`
	Country string `json:"country"`
}

// NewCustomerDetailsCreatedEvent creates a new CustomerDetailsCreatedEvent
func NewCustomerDetailsCreatedEvent(c *CustomerDetails) *CustomerDetailsCreatedEvent {
	return &CustomerDetailsCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerDetailsCreated, AggregateTypeCustomerDetails, c.ID),
		City:            c.City,
		Country:         c.Country,
	}
}

// CustomerDetailsUpdatedEvent is published when customer details are updated
type CustomerDetailsUpdatedEvent struct {
	shared.BaseDomainEvent
	ChangedFields []string `json:"changed_fields"`
	Version       int      `json:"version"`
}

// NewCustomerDetailsUpdatedEvent creates a new CustomerDetailsUpdatedEvent
func NewCustomerDetailsUpdatedEvent(c *CustomerDetails, changed []string) *CustomerDetailsUpdatedEvent {
	return &CustomerDetailsUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerDetailsUpdated, AggregateTypeCustomerDetails, c.ID),
		ChangedFields:   changed,
		Version:         c.Version,
	}
}

// CustomerDetailsDeletedEvent is published when customer details are deleted
type CustomerDetailsDeletedEvent struct {
	shared.BaseDomainEvent
}

// NewCustomerDetailsDeletedEvent creates a new CustomerDetailsDeletedEvent
func NewCustomerDetailsDeletedEvent(c *CustomerDetails) *CustomerDetailsDeletedEvent {
	return &CustomerDetailsDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerDetailsDeleted, AggregateTypeCustomerDetails, c.ID),
	}
}
