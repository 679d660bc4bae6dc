package event

import (
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// factoryOf builds an EventFactory for the event struct E
func factoryOf[E any, P interface {
	*E
	shared.DomainEvent
}]() EventFactory {
	return func() shared.DomainEvent { return P(new(E)) }
}

var storefrontEvents = map[string]EventFactory{
	catalog.EventTypeProductCategoryCreated: factoryOf[catalog.ProductCategoryCreatedEvent](),
	catalog.EventTypeProductCategoryUpdated: factoryOf[catalog.ProductCategoryUpdatedEvent](),
	catalog.EventTypeProductCategoryDeleted: factoryOf[catalog.ProductCategoryDeletedEvent](),

	customer.EventTypeCustomerDetailsCreated: factoryOf[customer.CustomerDetailsCreatedEvent](),
	customer.EventTypeCustomerDetailsUpdated: factoryOf[customer.CustomerDetailsUpdatedEvent](),
	customer.EventTypeCustomerDetailsDeleted: factoryOf[customer.CustomerDetailsDeletedEvent](),

	cart.EventTypeShoppingCartCreated: factoryOf[cart.ShoppingCartCreatedEvent](),
	cart.EventTypeShoppingCartUpdated: factoryOf[cart.ShoppingCartUpdatedEvent](),
	cart.EventTypeShoppingCartDeleted: factoryOf[cart.ShoppingCartDeletedEvent](),

	order.EventTypeProductOrderCreated: factoryOf[order.ProductOrderCreatedEvent](),
	order.EventTypeProductOrderUpdated: factoryOf[order.ProductOrderUpdatedEvent](),
	order.EventTypeProductOrderDeleted: factoryOf[order.ProductOrderDeletedEvent](),
}

// RegisterAllEvents registers every storefront domain event with the serializer
func RegisterAllEvents(serializer *EventSerializer) {
	for eventType, factory := range storefrontEvents {
		serializer.Register(eventType, factory)
	}
}
