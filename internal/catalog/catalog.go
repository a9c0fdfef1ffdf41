// Package catalog provides the catalog bounded context.
// This file defines the public interfaces exposed to other domains.
package catalog

import (
	"context"

	"storefront/internal/catalog/transport"
)

// Fetcher reads product data from the remote catalog API.
// Other domains should depend on this interface, not the concrete client.
type Fetcher interface {
	// ListProducts returns every product in the catalog.
	ListProducts(ctx context.Context) ([]transport.Product, error)

	// GetProduct returns one product. Returns an apperr NotFound error when
	// the catalog has no product with that id.
	GetProduct(ctx context.Context, id int64) (transport.Product, error)

	// ListByCategory returns the products of one category.
	ListByCategory(ctx context.Context, category string) ([]transport.Product, error)

	// ListCategories returns the catalog's category names.
	ListCategories(ctx context.Context) ([]string, error)
}
