// Package cart provides the cart bounded context module.
package cart

import (
	"context"

	"storefront/internal/cart/domain"
	"storefront/internal/cart/handler"
	"storefront/internal/cart/ports"
	"storefront/internal/cart/service"
	"storefront/internal/events"
	apphttp "storefront/internal/http"
	"storefront/platform/config"
	"storefront/platform/kv"
	"storefront/platform/logger"
	"storefront/platform/validator"
)

// Module is the cart bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule hydrates the cart from sink and wires its service and handlers.
func NewModule(ctx context.Context, cfg config.CartConfig, sink kv.Store, products ports.ProductReader, bus events.Bus, recorder ports.Recorder, val *validator.Validator, log *logger.Logger) *Module {
	store, loaded := domain.Open(ctx, sink, cfg.GetCartKey(), log)
	log.Info("cart hydrated", "status", string(loaded.Status), "items", loaded.Items, "sink", cfg.GetCartStore())

	svc := service.New(store, products, bus, recorder, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "cart"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts cart routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Pages.Group("/cart")
	group.GET("", m.handler.View)
	group.GET("/summary", m.handler.Summary)
	group.POST("/items", m.handler.AddItem)
	group.PATCH("/items/:id", m.handler.UpdateQuantity)
	group.DELETE("/items/:id", m.handler.RemoveItem)
	group.DELETE("", m.handler.Clear)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
