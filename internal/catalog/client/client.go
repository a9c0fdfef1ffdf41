// Package client provides the HTTP client for the remote catalog API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"storefront/internal/catalog/transport"
	"storefront/platform/apperr"
	"storefront/platform/config"
	"storefront/platform/logger"
	"storefront/platform/sanitize"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const (
	msgProductNotFound = "Producto no encontrado"
	msgCatalogFailed   = "Error al cargar los productos"
)

var errNotFound = errors.New("catalog: not found")

// Client is the HTTP client for the catalog API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	log        *logger.Logger
}

// New creates a new catalog API client.
func New(cfg config.CatalogConfig, log *logger.Logger) *Client {
	limit := rate.Limit(cfg.GetCatalogRateLimit())
	if limit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.GetCatalogRateBurst()
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.GetCatalogTimeout()},
		baseURL:    cfg.GetCatalogBaseURL(),
		limiter:    rate.NewLimiter(limit, burst),
		log:        log,
	}
}

// ListProducts fetches every product.
func (c *Client) ListProducts(ctx context.Context) ([]transport.Product, error) {
	return c.getProducts(ctx, "/products")
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int64) (transport.Product, error) {
	var api *apiProduct
	err := c.get(ctx, "/products/"+strconv.FormatInt(id, 10), &api)
	if errors.Is(err, errNotFound) || (err == nil && api == nil) {
		return transport.Product{}, apperr.NotFound(msgProductNotFound).WithOp("catalog.GetProduct")
	}
	if err != nil {
		return transport.Product{}, err
	}
	return api.toTransport(), nil
}

// ListByCategory fetches the products of one category.
// The category is path-escaped so values like "men's clothing" arrive intact.
func (c *Client) ListByCategory(ctx context.Context, category string) ([]transport.Product, error) {
	return c.getProducts(ctx, "/products/category/"+url.PathEscape(category))
}

// ListCategories fetches the category names.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.get(ctx, "/products/categories", &categories); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, unavailable("/products/categories", err)
		}
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func (c *Client) getProducts(ctx context.Context, endpoint string) ([]transport.Product, error) {
	var apiProducts []apiProduct
	if err := c.get(ctx, endpoint, &apiProducts); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, unavailable(endpoint, err)
		}
		return nil, err
	}

	products := make([]transport.Product, 0, len(apiProducts))
	for _, api := range apiProducts {
		products = append(products, api.toTransport())
	}
	return products, nil
}

// get performs a rate-limited GET and decodes the body into out.
// A 404 or an empty body yields errNotFound.
func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return unavailable(endpoint, fmt.Errorf("rate limit wait: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return unavailable(endpoint, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.CatalogError(endpoint, 0, err)
		return unavailable(endpoint, fmt.Errorf("http request: %w", err))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Success - continue to decode
	case http.StatusNotFound:
		c.log.Debug("catalog entry not found", "endpoint", endpoint)
		return errNotFound
	default:
		err := fmt.Errorf("upstream error: status %d", resp.StatusCode)
		c.log.CatalogError(endpoint, resp.StatusCode, err)
		return unavailable(endpoint, err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.CatalogError(endpoint, resp.StatusCode, err)
		return unavailable(endpoint, fmt.Errorf("read body: %w", err))
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errNotFound
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.log.CatalogError(endpoint, resp.StatusCode, err)
		return unavailable(endpoint, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func unavailable(endpoint string, err error) error {
	return apperr.Wrap(apperr.KindUnavailable, msgCatalogFailed, err).WithOp("catalog " + endpoint)
}

// apiProduct is the raw product shape returned by the catalog API.
type apiProduct struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Rating      struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	} `json:"rating"`
}

func (a apiProduct) toTransport() transport.Product {
	return transport.Product{
		ID:          a.ID,
		Title:       sanitize.Text(a.Title),
		Price:       a.Price,
		Description: sanitize.Text(a.Description),
		Image:       a.Image,
		Category:    a.Category,
		Rating: transport.Rating{
			Rate:  a.Rating.Rate,
			Count: a.Rating.Count,
		},
	}
}
