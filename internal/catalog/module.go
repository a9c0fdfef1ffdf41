// Package catalog provides the catalog bounded context module.
package catalog

import (
	"storefront/internal/catalog/client"
	"storefront/internal/catalog/handler"
	"storefront/internal/catalog/service"
	apphttp "storefront/internal/http"
	"storefront/platform/config"
	"storefront/platform/logger"
	"storefront/platform/validator"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	fetcher Fetcher
}

// NewModule creates and initializes the catalog module.
func NewModule(cfg config.CatalogConfig, val *validator.Validator, log *logger.Logger) *Module {
	return NewModuleWithFetcher(client.New(cfg, log), cfg, val, log)
}

// NewModuleWithFetcher builds the module around an existing fetcher.
func NewModuleWithFetcher(fetcher Fetcher, cfg config.CatalogConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(fetcher, cfg.GetCatalogCategories(), cfg.GetCatalogMaxConcurrent(), log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		fetcher: fetcher,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Fetcher returns the catalog fetcher so other domains can resolve products.
func (m *Module) Fetcher() Fetcher {
	return m.fetcher
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Pages.GET("/", m.handler.Browse)
	ctx.Pages.GET("/products", m.handler.ListProducts)
	ctx.Pages.GET("/categories", m.handler.ListCategories)
	ctx.Pages.GET("/product/:id", m.handler.GetProduct)
}

// Compile-time checks
var (
	_ apphttp.Module = (*Module)(nil)
	_ Fetcher        = (*client.Client)(nil)
)
