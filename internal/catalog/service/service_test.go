package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"storefront/internal/catalog/transport"
	"storefront/platform/apperr"
	"storefront/platform/logger"
)

type fakeFetcher struct {
	mu          sync.Mutex
	byCategory  map[string][]transport.Product
	failing     map[string]error
	categories  []string
	calls       []string
	categoryErr error
}

func (f *fakeFetcher) ListProducts(context.Context) ([]transport.Product, error) {
	var all []transport.Product
	for _, name := range f.categories {
		all = append(all, f.byCategory[name]...)
	}
	return all, nil
}

func (f *fakeFetcher) GetProduct(_ context.Context, id int64) (transport.Product, error) {
	for _, products := range f.byCategory {
		for _, p := range products {
			if p.ID == id {
				return p, nil
			}
		}
	}
	return transport.Product{}, apperr.NotFound("Producto no encontrado")
}

func (f *fakeFetcher) ListByCategory(_ context.Context, category string) ([]transport.Product, error) {
	f.mu.Lock()
	f.calls = append(f.calls, category)
	f.mu.Unlock()

	if err, ok := f.failing[category]; ok {
		return nil, err
	}
	return f.byCategory[category], nil
}

func (f *fakeFetcher) ListCategories(context.Context) ([]string, error) {
	if f.categoryErr != nil {
		return nil, f.categoryErr
	}
	return f.categories, nil
}

func newFetcher() *fakeFetcher {
	return &fakeFetcher{
		byCategory: map[string][]transport.Product{
			"electronics":    {{ID: 9, Title: "SSD", Category: "electronics"}},
			"jewelery":       {{ID: 5, Title: "Ring", Category: "jewelery"}},
			"men's clothing": {{ID: 1, Title: "Backpack", Category: "men's clothing"}},
		},
		failing:    map[string]error{},
		categories: []string{"electronics", "jewelery", "men's clothing"},
	}
}

func TestBrowseKeepsCategoryOrder(t *testing.T) {
	f := newFetcher()
	svc := New(f, []string{"men's clothing", "jewelery", "electronics"}, 2, logger.Discard())

	page, err := svc.Browse(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"men's clothing", "jewelery", "electronics"}
	if len(page.Sections) != len(want) {
		t.Fatalf("expected %d sections, got %d", len(want), len(page.Sections))
	}
	for i, name := range want {
		if page.Sections[i].Category != name {
			t.Fatalf("section %d: expected %q, got %q", i, name, page.Sections[i].Category)
		}
		if len(page.Sections[i].Products) != 1 {
			t.Fatalf("section %q: expected 1 product", name)
		}
	}
}

func TestBrowseIsAllOrNothing(t *testing.T) {
	f := newFetcher()
	f.failing["electronics"] = apperr.Unavailable("Error al cargar los productos")
	svc := New(f, []string{"electronics", "jewelery"}, 4, logger.Discard())

	page, err := svc.Browse(context.Background(), "")
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if len(page.Sections) != 0 {
		t.Fatalf("expected no partial sections, got %+v", page.Sections)
	}
}

func TestBrowseDiscoversCategories(t *testing.T) {
	f := newFetcher()
	svc := New(f, nil, 4, logger.Discard())

	page, err := svc.Browse(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Sections) != 3 || page.Sections[0].Category != "electronics" {
		t.Fatalf("expected discovered sections, got %+v", page.Sections)
	}
}

func TestBrowseDiscoveryFailure(t *testing.T) {
	f := newFetcher()
	f.categoryErr = errors.New("down")
	svc := New(f, nil, 4, logger.Discard())

	if _, err := svc.Browse(context.Background(), ""); err == nil {
		t.Fatal("expected error when categories cannot be discovered")
	}
}

func TestBrowseSingleCategory(t *testing.T) {
	f := newFetcher()
	svc := New(f, []string{"electronics", "jewelery"}, 4, logger.Discard())

	page, err := svc.Browse(context.Background(), "jewelery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Sections) != 1 || page.Sections[0].Category != "jewelery" {
		t.Fatalf("expected only jewelery, got %+v", page.Sections)
	}
	if len(f.calls) != 1 {
		t.Fatalf("expected a single category fetch, got %v", f.calls)
	}
}

func TestListProductsCountsItems(t *testing.T) {
	svc := New(newFetcher(), nil, 4, logger.Discard())

	list, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.Total != 3 || len(list.Items) != 3 {
		t.Fatalf("expected 3 products, got %+v", list)
	}
}
