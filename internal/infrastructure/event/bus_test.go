package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
)

// testEvent implements DomainEvent for testing
type testEvent struct {
	shared.BaseDomainEvent
	Data string `json:"data"`
}

func newTestEvent(eventType, aggregateID string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Order", aggregateID),
		Data:            "test data",
	}
}

// testHandler implements EventHandler for testing
type testHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panics     bool
	mu         sync.Mutex
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.panics {
		panic("boom")
	}
	h.handled = append(h.handled, event)
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("PaymentSucceeded")
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(),
		newTestEvent("PaymentSucceeded", "o1"),
		newTestEvent("PaymentFailed", "o2"),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, handler.count())
}

func TestInMemoryEventBus_Publish_WildcardHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	typed := newTestHandler("PaymentSucceeded")
	wildcard := newTestHandler()
	bus.Subscribe(typed)
	bus.Subscribe(wildcard)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("PaymentSucceeded", "o1"),
		newTestEvent("PaymentPending", "o1"),
	))

	assert.Equal(t, 1, typed.count())
	assert.Equal(t, 2, wildcard.count())
}

func TestInMemoryEventBus_Publish_ExplicitTypesOverrideHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("PaymentSucceeded")
	bus.Subscribe(handler, "PaymentFailed")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("PaymentSucceeded", "o1")))
	assert.Equal(t, 0, handler.count())

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("PaymentFailed", "o1")))
	assert.Equal(t, 1, handler.count())
}

func TestInMemoryEventBus_Publish_HandlerFailuresAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	failing := newTestHandler()
	failing.err = errors.New("downstream unavailable")
	panicking := newTestHandler()
	panicking.panics = true
	healthy := newTestHandler()

	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("PaymentSucceeded", "o1"))
	require.NoError(t, err)

	assert.Equal(t, 1, healthy.count())
	assert.Equal(t, 1, logs.FilterMessage("handler failed to process event").Len())
	assert.Equal(t, 1, logs.FilterMessage("handler panicked").Len())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("PaymentSucceeded", "PaymentFailed")
	other := newTestHandler("PaymentSucceeded")
	bus.Subscribe(handler)
	bus.Subscribe(other)

	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("PaymentSucceeded", "o1"),
		newTestEvent("PaymentFailed", "o1"),
	))
	assert.Equal(t, 0, handler.count())
	assert.Equal(t, 1, other.count())
	assert.NotContains(t, bus.handlers, "PaymentFailed")
}

func TestLoggingHandler(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	bus := NewInMemoryEventBus(zap.New(core))
	bus.Subscribe(NewLoggingHandler(zap.New(core)))

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("PaymentPending", "o-42")))

	entries := logs.FilterMessage("domain event").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "PaymentPending", fields["event_type"])
	assert.Equal(t, "o-42", fields["aggregate_id"])
}
