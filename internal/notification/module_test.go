package notification

import (
	"context"
	"testing"

	"storefront/internal/events"
	"storefront/internal/notification/inapp"
	"storefront/platform/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type testNotificationConfig struct{ buffer int }

func (c testNotificationConfig) GetNotificationBuffer() int { return c.buffer }

type testRecorder struct{ dropped int }

func (r *testRecorder) ToastDropped() { r.dropped++ }

func newTestModule(buffer int) (*Module, *testRecorder) {
	rec := &testRecorder{}
	return New(testNotificationConfig{buffer: buffer}, rec, logger.Discard()), rec
}

func TestHandleMapsEventsToToasts(t *testing.T) {
	tests := []struct {
		name    string
		event   events.Event
		level   inapp.Level
		message string
	}{
		{"added", events.CartItemAdded{ProductID: 1, Quantity: 1}, inapp.LevelSuccess, "Producto añadido al carrito!"},
		{"merged", events.CartItemAdded{ProductID: 1, Quantity: 3, Merged: true}, inapp.LevelSuccess, "Producto añadido al carrito!"},
		{"removed", events.CartItemRemoved{ProductID: 1}, inapp.LevelInfo, "Producto eliminado del carrito"},
		{"checkout", events.CheckoutCompleted{OrderReference: uuid.New(), Total: decimal.RequireFromString("25.50"), ItemCount: 3}, inapp.LevelSuccess, "¡Gracias por tu compra!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModule(10)
			if err := m.Handle(context.Background(), tt.event); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			toasts := m.Feed().Drain()
			if len(toasts) != 1 {
				t.Fatalf("expected one toast, got %d", len(toasts))
			}
			if toasts[0].Level != tt.level || toasts[0].Message != tt.message {
				t.Fatalf("unexpected toast %+v", toasts[0])
			}
		})
	}
}

func TestQuietEventsProduceNoToast(t *testing.T) {
	m, _ := newTestModule(10)

	_ = m.Handle(context.Background(), events.CartQuantityUpdated{ProductID: 1, Quantity: 2})
	_ = m.Handle(context.Background(), events.CartCleared{})

	if m.Feed().Len() != 0 {
		t.Fatalf("expected no toasts, got %d", m.Feed().Len())
	}
}

func TestFullFeedCountsDrops(t *testing.T) {
	m, rec := newTestModule(1)

	_ = m.Handle(context.Background(), events.CartItemAdded{ProductID: 1})
	_ = m.Handle(context.Background(), events.CartItemRemoved{ProductID: 1})

	if rec.dropped != 1 {
		t.Fatalf("expected one drop, got %d", rec.dropped)
	}
	toasts := m.Feed().Drain()
	if len(toasts) != 1 || toasts[0].Message != "Producto eliminado del carrito" {
		t.Fatalf("expected newest toast kept, got %+v", toasts)
	}
}

func TestSubscribesThroughBus(t *testing.T) {
	m, _ := newTestModule(10)
	bus := events.NewInMemoryBus(logger.Discard())
	m.RegisterHandlers(bus)

	if err := bus.PublishSync(context.Background(), events.CartItemAdded{BaseEvent: events.NewBaseEvent(), ProductID: 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bus.PublishSync(context.Background(), events.CartCleared{BaseEvent: events.NewBaseEvent()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Feed().Len() != 1 {
		t.Fatalf("expected one toast from the bus, got %d", m.Feed().Len())
	}
}
