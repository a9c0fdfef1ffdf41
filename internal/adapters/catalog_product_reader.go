package adapters

import (
	"context"
	"fmt"

	"storefront/internal/cart/domain"
	"storefront/internal/cart/ports"
	"storefront/internal/catalog/transport"
)

// CatalogProductFetcher is the catalog surface needed to resolve cart products.
type CatalogProductFetcher interface {
	GetProduct(ctx context.Context, id int64) (transport.Product, error)
}

// CatalogProductReader adapts the catalog fetcher for the cart domain.
// Only the fields a line item keeps are copied; the rating stays in the catalog.
type CatalogProductReader struct {
	fetcher CatalogProductFetcher
}

// NewCatalogProductReader creates a new catalog reader adapter.
func NewCatalogProductReader(fetcher CatalogProductFetcher) *CatalogProductReader {
	return &CatalogProductReader{fetcher: fetcher}
}

// GetProduct fetches the product and converts it into cart domain terms.
func (a *CatalogProductReader) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	p, err := a.fetcher.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("catalog adapter: get product %d: %w", id, err)
	}

	return domain.Product{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
	}, nil
}

var _ ports.ProductReader = (*CatalogProductReader)(nil)
