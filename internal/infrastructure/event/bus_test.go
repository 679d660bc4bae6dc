package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// testEvent implements DomainEvent for testing
type testEvent struct {
	shared.BaseDomainEvent
	Data string `json:"data"`
}

func newTestEvent(eventType string, aggregateID int64) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", aggregateID),
		Data:            "test data",
	}
}

// testHandler records what it handles
type testHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panicMsg   string
	mu         sync.Mutex
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	if h.panicMsg != "" {
		panic(h.panicMsg)
	}
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) getHandled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("ShoppingCartCreated")
	bus.Subscribe(handler)

	event := newTestEvent("ShoppingCartCreated", 1)
	require.NoError(t, bus.Publish(context.Background(), event))

	require.Len(t, handler.getHandled(), 1)
	assert.Equal(t, event, handler.getHandled()[0])
}

func TestInMemoryEventBus_Publish_MultipleEventsAndHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h1 := newTestHandler()
	h2 := newTestHandler()
	bus.Subscribe(h1, "ProductOrderCreated")
	bus.Subscribe(h2, "ProductOrderCreated")

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("ProductOrderCreated", 1),
		newTestEvent("ProductOrderCreated", 2)))

	assert.Len(t, h1.getHandled(), 2)
	assert.Len(t, h2.getHandled(), 2)
}

func TestInMemoryEventBus_Publish_WildcardHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	wildcard := newTestHandler()
	bus.Subscribe(wildcard)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("AnyEventType", 1)))

	assert.Len(t, wildcard.getHandled(), 1)
}

func TestInMemoryEventBus_Publish_HandlerErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	failing := newTestHandler("CustomerDetailsDeleted")
	failing.err = errors.New("handler error")
	healthy := newTestHandler("CustomerDetailsDeleted")
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("CustomerDetailsDeleted", 3))

	require.NoError(t, err)
	assert.Len(t, failing.getHandled(), 1)
	assert.Len(t, healthy.getHandled(), 1)
	entries := logs.FilterMessage("Event handler failed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(3), fields["id"])
	assert.Equal(t, "CustomerDetailsDeleted", fields["event_type"])
	assert.Equal(t, "handler error", fields["error"])
}

func TestInMemoryEventBus_Publish_HandlerPanicIsRecovered(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	panicking := newTestHandler()
	panicking.panicMsg = "boom"
	after := newTestHandler()
	bus.Subscribe(panicking)
	bus.Subscribe(after)

	assert.NotPanics(t, func() {
		_ = bus.Publish(context.Background(), newTestEvent("ProductCategoryUpdated", 1))
	})
	assert.Len(t, after.getHandled(), 1)
	entries := logs.FilterMessage("Event handler failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "handler panicked: boom", entries[0].ContextMap()["error"])
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("TestEvent")
	bus.Subscribe(handler)

	_ = bus.Publish(context.Background(), newTestEvent("TestEvent", 1))
	bus.Unsubscribe(handler)
	_ = bus.Publish(context.Background(), newTestEvent("TestEvent", 2))

	assert.Len(t, handler.getHandled(), 1)
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, bus.Start(ctx))
	assert.True(t, bus.Running())

	require.NoError(t, bus.Stop(ctx))
	assert.False(t, bus.Running())
}
