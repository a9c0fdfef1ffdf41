package checkout_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/adapters"
	"storefront/internal/cart"
	carttransport "storefront/internal/cart/transport"
	"storefront/internal/catalog"
	"storefront/internal/catalog/catalogtest"
	"storefront/internal/checkout"
	checkouttransport "storefront/internal/checkout/transport"
	"storefront/internal/events"
	apphttp "storefront/internal/http"
	"storefront/internal/http/router"
	"storefront/internal/notification"
	notifhandler "storefront/internal/notification/handler"
	"storefront/platform/kv"
	"storefront/platform/logger"
	"storefront/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storefrontConfig struct {
	catalogURL string
}

func (c storefrontConfig) GetHTTPAddr() string              { return ":0" }
func (c storefrontConfig) GetCORSOrigins() []string         { return []string{"*"} }
func (c storefrontConfig) GetRateLimitRPS() float64         { return 0 }
func (c storefrontConfig) GetRateLimitBurst() int           { return 0 }
func (c storefrontConfig) IsDevelopment() bool              { return true }
func (c storefrontConfig) GetCatalogBaseURL() string        { return c.catalogURL }
func (c storefrontConfig) GetCatalogTimeout() time.Duration { return 2 * time.Second }
func (c storefrontConfig) GetCatalogRateLimit() float64     { return 0 }
func (c storefrontConfig) GetCatalogRateBurst() int         { return 0 }
func (c storefrontConfig) GetCatalogMaxConcurrent() int     { return 2 }
func (c storefrontConfig) GetCatalogCategories() []string   { return nil }
func (c storefrontConfig) GetCartStore() string             { return "memory" }
func (c storefrontConfig) GetCartKey() string               { return "cart" }
func (c storefrontConfig) GetCartTTL() time.Duration        { return 0 }
func (c storefrontConfig) GetNotificationBuffer() int       { return 10 }

type storefront struct {
	engine *gin.Engine
	bus    *events.InMemoryBus
	sink   *kv.MemoryStore
}

func newStorefront(t *testing.T) *storefront {
	t.Helper()
	log := logger.Discard()
	srv := catalogtest.NewServer(t,
		catalogtest.Product(1, "Fjallraven Backpack", "10.00", "men's clothing"),
		catalogtest.Product(2, "Solid Gold Petite", "5.50", "jewelery"),
	)
	cfg := storefrontConfig{catalogURL: srv.URL}

	bus := events.NewInMemoryBus(log)
	val := validator.New()
	sink := kv.NewMemoryStore()

	notificationModule := notification.New(cfg, nil, log)
	notificationModule.RegisterHandlers(bus)
	t.Cleanup(notificationModule.Close)

	catalogModule := catalog.NewModule(cfg, val, log)
	cartModule := cart.NewModule(context.Background(), cfg, sink, adapters.NewCatalogProductReader(catalogModule.Fetcher()), bus, nil, val, log)
	checkoutModule, err := checkout.NewModule(adapters.NewCheckoutCartReader(cartModule.Service()), bus, val, nil, log)
	require.NoError(t, err)

	engine := router.New(&apphttp.App{
		Config:    cfg,
		Logger:    log,
		EventBus:  bus,
		Validator: val,
		Modules:   []apphttp.Module{catalogModule, cartModule, checkoutModule, notificationModule},
	})
	return &storefront{engine: engine, bus: bus, sink: sink}
}

func (s *storefront) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func checkoutForm() map[string]string {
	return map[string]string{
		"firstName":  "Ana",
		"lastName":   "García",
		"email":      "ana@example.com",
		"address":    "Calle Mayor 1",
		"city":       "Madrid",
		"postalCode": "28013",
		"cardNumber": "4111 1111 1111 4242",
	}
}

func TestShopperFlowEndsWithEmptyCart(t *testing.T) {
	s := newStorefront(t)

	rec := s.do(t, http.MethodPost, "/cart/items", map[string]any{"productId": 1, "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "added", decode[carttransport.MutationResponse](t, rec).Outcome)

	rec = s.do(t, http.MethodPost, "/cart/items", map[string]any{"productId": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	summary := decode[carttransport.SummaryView](t, s.do(t, http.MethodGet, "/cart/summary", nil))
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, "25.50", summary.Total.StringFixed(2))

	_, err := s.sink.Get(context.Background(), "cart")
	require.NoError(t, err, "cart snapshot should be persisted")

	page := decode[checkouttransport.CheckoutPage](t, s.do(t, http.MethodGet, "/checkout", nil))
	assert.False(t, page.Empty)
	assert.Equal(t, "Confirmar Compra", page.Submit)

	rec = s.do(t, http.MethodPost, "/checkout", checkoutForm())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	conf := decode[checkouttransport.Confirmation](t, rec)
	assert.Equal(t, "¡Gracias por tu compra!", conf.Message)
	assert.Equal(t, "25.50", conf.Total.StringFixed(2))
	assert.Equal(t, "4242", conf.CardLast4)

	view := decode[carttransport.CartView](t, s.do(t, http.MethodGet, "/cart", nil))
	assert.True(t, view.Empty)
	_, err = s.sink.Get(context.Background(), "cart")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	s.bus.Wait()
	toasts := decode[notifhandler.ToastList](t, s.do(t, http.MethodGet, "/notifications", nil))
	var messages []string
	for _, toast := range toasts.Items {
		messages = append(messages, toast.Message)
	}
	assert.ElementsMatch(t, []string{
		"Producto añadido al carrito!",
		"Producto añadido al carrito!",
		"¡Gracias por tu compra!",
	}, messages)
}

func TestCheckoutRejectsEmptyCartAndBadForm(t *testing.T) {
	s := newStorefront(t)

	rec := s.do(t, http.MethodPost, "/checkout", checkoutForm())
	assert.Equal(t, http.StatusConflict, rec.Code)

	s.do(t, http.MethodPost, "/cart/items", map[string]any{"productId": 1})
	form := checkoutForm()
	form["email"] = "ana"
	rec = s.do(t, http.MethodPost, "/checkout", form)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	summary := decode[carttransport.SummaryView](t, s.do(t, http.MethodGet, "/cart/summary", nil))
	assert.Equal(t, 1, summary.Count, "a rejected form must leave the cart intact")
}

func TestAddingUnknownProductIsNotFound(t *testing.T) {
	s := newStorefront(t)

	rec := s.do(t, http.MethodPost, "/cart/items", map[string]any{"productId": 99})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Producto no encontrado")
}

func TestCartQuantityBounds(t *testing.T) {
	s := newStorefront(t)

	rec := s.do(t, http.MethodPost, "/cart/items", map[string]any{"productId": 1, "quantity": carttransport.MaxQuantity + 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/cart/items", map[string]any{"productId": 1, "quantity": carttransport.MaxQuantity})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPatch, "/cart/items/1", map[string]any{"quantity": carttransport.MaxQuantity + 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPatch, "/cart/items/1", map[string]any{"quantity": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rejected", decode[carttransport.MutationResponse](t, rec).Outcome)

	summary := decode[carttransport.SummaryView](t, s.do(t, http.MethodGet, "/cart/summary", nil))
	assert.Equal(t, carttransport.MaxQuantity, summary.Count)
}
