package cart

import (
	"context"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// mockRepository is a mock implementation of the generic repository methods
type mockRepository[T any] struct {
	mock.Mock
}

func (m *mockRepository[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *mockRepository[T]) FindByIDWithRelations(ctx context.Context, id int64) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *mockRepository[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]T), args.Error(1)
}

func (m *mockRepository[T]) FindAllWithRelations(ctx context.Context, filter shared.Filter) ([]T, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]T), args.Error(1)
}

func (m *mockRepository[T]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository[T]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository[T]) Save(ctx context.Context, entity *T) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *mockRepository[T]) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockShoppingCartRepository is a mock implementation of ShoppingCartRepository
type MockShoppingCartRepository struct {
	mockRepository[cart.ShoppingCart]
}

func (m *MockShoppingCartRepository) FindByCustomerDetailsID(ctx context.Context, customerDetailsID int64) ([]cart.ShoppingCart, error) {
	args := m.Called(ctx, customerDetailsID)
	return args.Get(0).([]cart.ShoppingCart), args.Error(1)
}

// MockCustomerDetailsRepository is a mock implementation of CustomerDetailsRepository
type MockCustomerDetailsRepository struct {
	mockRepository[customer.CustomerDetails]
}

// MockProductOrderRepository is a mock implementation of ProductOrderRepository
type MockProductOrderRepository struct {
	mockRepository[order.ProductOrder]
}

func (m *MockProductOrderRepository) FindByCartID(ctx context.Context, cartID int64) ([]order.ProductOrder, error) {
	args := m.Called(ctx, cartID)
	return args.Get(0).([]order.ProductOrder), args.Error(1)
}

// MockEntityCache is a mock implementation of EntityCache
type MockEntityCache[T any] struct {
	mock.Mock
}

func (m *MockEntityCache[T]) Get(ctx context.Context, id int64) (*T, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*T), args.Bool(1), args.Error(2)
}

func (m *MockEntityCache[T]) Set(ctx context.Context, id int64, entity *T) error {
	args := m.Called(ctx, id, entity)
	return args.Error(0)
}

func (m *MockEntityCache[T]) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
