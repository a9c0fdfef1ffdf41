// Package checkout provides the simulated checkout bounded context module.
package checkout

import (
	"fmt"

	"storefront/internal/checkout/handler"
	"storefront/internal/checkout/ports"
	"storefront/internal/checkout/service"
	"storefront/internal/events"
	apphttp "storefront/internal/http"
	"storefront/platform/logger"
	"storefront/platform/validator"
)

// Module is the checkout bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule registers the checkout validation rules on val and wires the module.
func NewModule(cart ports.CartReader, bus events.Bus, val *validator.Validator, recorder ports.Recorder, log *logger.Logger) (*Module, error) {
	if err := service.RegisterValidations(val); err != nil {
		return nil, fmt.Errorf("register checkout validations: %w", err)
	}

	svc := service.New(cart, bus, val, recorder, log)
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "checkout"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts checkout routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Pages.GET("/checkout", m.handler.Page)
	ctx.Pages.POST("/checkout", m.handler.Confirm)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
