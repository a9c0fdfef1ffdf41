// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"storefront/internal/events"
	"storefront/platform/config"
	"storefront/platform/logger"
	"storefront/platform/validator"

	"github.com/gin-gonic/gin"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	IsDevelopment() bool
}

// MetricsProvider instruments requests and serves the scrape endpoint.
type MetricsProvider interface {
	Middleware() gin.HandlerFunc
	Handler() gin.HandlerFunc
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration.
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness checks (persistence sink ping). Optional.
	Health HealthChecker
	// EventBus is the domain event bus for cross-module communication.
	EventBus events.Bus
	// Validator is shared by every module's handlers.
	Validator *validator.Validator
	// Metrics instruments requests and serves /metrics. Optional.
	Metrics MetricsProvider
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
