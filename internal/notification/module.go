// Package notification turns cart and checkout events into toasts.
// Domain modules publish events; this module decides what the shopper sees,
// so the cart store never emits UI side effects itself.
package notification

import (
	"context"

	"storefront/internal/events"
	apphttp "storefront/internal/http"
	notifhandler "storefront/internal/notification/handler"
	"storefront/internal/notification/inapp"
	"storefront/internal/notification/sse"
	"storefront/platform/config"
	"storefront/platform/logger"
)

const (
	msgItemAdded   = "Producto añadido al carrito!"
	msgItemRemoved = "Producto eliminado del carrito"
	msgThanks      = "¡Gracias por tu compra!"
)

// Recorder receives notification counters.
type Recorder interface {
	ToastDropped()
}

// Module handles domain events and exposes the toast feed.
type Module struct {
	feed     *inapp.Feed
	sse      *sse.Service
	handler  *notifhandler.HTTPHandler
	recorder Recorder
	log      *logger.Logger
}

// New creates the notification module. recorder may be nil.
func New(cfg config.NotificationConfig, recorder Recorder, log *logger.Logger) *Module {
	m := &Module{
		feed:     inapp.NewFeed(cfg.GetNotificationBuffer()),
		recorder: recorder,
		log:      log,
	}
	m.sse = sse.New(cfg.GetNotificationBuffer(), m.dropped, log)
	m.handler = notifhandler.NewHTTPHandler(m.feed, m.sse)
	return m
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notification"
}

// Feed returns the pending toast feed.
func (m *Module) Feed() *inapp.Feed {
	return m.feed
}

// SSE returns the toast stream service.
func (m *Module) SSE() *sse.Service {
	return m.sse
}

// RegisterRoutes mounts the toast endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Pages.Group("/notifications"))
}

// RegisterHandlers subscribes the module to the events that produce toasts.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.CartItemAdded{}.EventName(), m)
	bus.Subscribe(events.CartItemRemoved{}.EventName(), m)
	bus.Subscribe(events.CheckoutCompleted{}.EventName(), m)
}

// Handle routes events to the appropriate toast.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.CartItemAdded:
		m.notify(ctx, inapp.NewToast(inapp.LevelSuccess, msgItemAdded))
	case events.CartItemRemoved:
		m.notify(ctx, inapp.NewToast(inapp.LevelInfo, msgItemRemoved))
	case events.CheckoutCompleted:
		m.log.WithContext(ctx).Debug("checkout toast", "orderReference", e.OrderReference.String())
		m.notify(ctx, inapp.NewToast(inapp.LevelSuccess, msgThanks))
	}
	return nil
}

// Close disconnects stream clients.
func (m *Module) Close() {
	m.sse.Close()
}

func (m *Module) notify(ctx context.Context, toast inapp.Toast) {
	if !m.feed.Push(toast) {
		m.dropped()
	}
	m.sse.Publish(sse.Event{Type: sse.EventToast, Data: toast})
	m.log.WithContext(ctx).Debug("toast emitted", "level", string(toast.Level), "message", toast.Message)
}

func (m *Module) dropped() {
	if m.recorder != nil {
		m.recorder.ToastDropped()
	}
}

// Compile-time checks
var (
	_ apphttp.Module = (*Module)(nil)
	_ events.Handler = (*Module)(nil)
)
