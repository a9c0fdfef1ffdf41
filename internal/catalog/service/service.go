// Package service provides the catalog use-cases behind the listing and detail pages.
package service

import (
	"context"

	"storefront/internal/catalog/transport"
	"storefront/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Fetcher is the catalog API surface the service reads from.
type Fetcher interface {
	ListProducts(ctx context.Context) ([]transport.Product, error)
	GetProduct(ctx context.Context, id int64) (transport.Product, error)
	ListByCategory(ctx context.Context, category string) ([]transport.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// Service reads the catalog for the view layer.
type Service struct {
	fetcher       Fetcher
	categories    []string
	maxConcurrent int
	log           *logger.Logger
}

// New creates a new catalog service. An empty categories list means the
// listing page discovers categories from the catalog on every browse.
func New(fetcher Fetcher, categories []string, maxConcurrent int, log *logger.Logger) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &Service{
		fetcher:       fetcher,
		categories:    append([]string(nil), categories...),
		maxConcurrent: maxConcurrent,
		log:           log,
	}
}

// Browse builds the listing page. When category is set only that section is
// fetched. Sections follow category order and the page fails as a whole when
// any category fetch fails.
func (s *Service) Browse(ctx context.Context, category string) (transport.BrowseResponse, error) {
	categories := s.categories
	if category != "" {
		categories = []string{category}
	}
	if len(categories) == 0 {
		discovered, err := s.fetcher.ListCategories(ctx)
		if err != nil {
			return transport.BrowseResponse{}, err
		}
		categories = discovered
	}

	sections := make([]transport.Section, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for i, name := range categories {
		g.Go(func() error {
			products, err := s.fetcher.ListByCategory(gctx, name)
			if err != nil {
				return err
			}
			sections[i] = transport.Section{Category: name, Products: products}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.WithContext(ctx).Warn("catalog browse failed", "categories", len(categories), "error", err)
		return transport.BrowseResponse{}, err
	}

	return transport.BrowseResponse{Sections: sections}, nil
}

// ListProducts returns the flat product list.
func (s *Service) ListProducts(ctx context.Context) (transport.ProductListResponse, error) {
	products, err := s.fetcher.ListProducts(ctx)
	if err != nil {
		return transport.ProductListResponse{}, err
	}
	return transport.ProductListResponse{Items: products, Total: len(products)}, nil
}

// ListCategories returns the category names.
func (s *Service) ListCategories(ctx context.Context) (transport.CategoriesResponse, error) {
	categories, err := s.fetcher.ListCategories(ctx)
	if err != nil {
		return transport.CategoriesResponse{}, err
	}
	return transport.CategoriesResponse{Categories: categories}, nil
}

// GetProduct returns one product for the detail page.
func (s *Service) GetProduct(ctx context.Context, id int64) (transport.Product, error) {
	return s.fetcher.GetProduct(ctx, id)
}
