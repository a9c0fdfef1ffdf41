package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apphttp "storefront/internal/http"
	"storefront/internal/metrics"
	"storefront/platform/logger"
	"storefront/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	origins []string
	rps     float64
	burst   int
}

func (c testConfig) GetHTTPAddr() string      { return ":0" }
func (c testConfig) GetCORSOrigins() []string { return c.origins }
func (c testConfig) GetRateLimitRPS() float64 { return c.rps }
func (c testConfig) GetRateLimitBurst() int   { return c.burst }
func (c testConfig) IsDevelopment() bool      { return true }

type pingModule struct{}

func (pingModule) Name() string { return "ping" }

func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Pages.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
}

type stubHealth struct{ err error }

func (s stubHealth) Ping(context.Context) error { return s.err }

func newApp(health apphttp.HealthChecker) *apphttp.App {
	return &apphttp.App{
		Config:    testConfig{origins: []string{"http://localhost:5173"}},
		Logger:    logger.Discard(),
		Health:    health,
		Validator: validator.New(),
		Metrics:   metrics.New(),
		Modules:   []apphttp.Module{pingModule{}},
	}
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestModuleRoutesAreMounted(t *testing.T) {
	engine := New(newApp(nil))

	rec := serve(engine, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestUnknownRouteReturnsNotFoundPage(t *testing.T) {
	engine := New(newApp(nil))

	rec := serve(engine, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "404 - Página no encontrada", body["error"])
}

func TestHealthz(t *testing.T) {
	t.Run("healthy sink", func(t *testing.T) {
		rec := serve(New(newApp(stubHealth{})), httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no sink configured", func(t *testing.T) {
		rec := serve(New(newApp(nil)), httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("sink down", func(t *testing.T) {
		rec := serve(New(newApp(stubHealth{err: errors.New("connection refused")})), httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "degraded")
	})
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	engine := New(newApp(nil))
	serve(engine, httptest.NewRequest(http.MethodGet, "/ping", nil))

	rec := serve(engine, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `route="/ping"`), "expected /ping to be instrumented")
}

func TestCORSPreflightAllowsConfiguredOrigin(t *testing.T) {
	engine := New(newApp(nil))

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := serve(engine, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitApplies(t *testing.T) {
	app := newApp(nil)
	app.Config = testConfig{origins: []string{"*"}, rps: 1, burst: 1}
	engine := New(app)

	first := serve(engine, httptest.NewRequest(http.MethodGet, "/ping", nil))
	second := serve(engine, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
