// Package catalogtest provides an in-process fake of the remote catalog API
// for tests that exercise the real HTTP client.
package catalogtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"storefront/internal/catalog/transport"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Server is a fake catalog API backed by a fixed product list.
type Server struct {
	*httptest.Server

	mu             sync.Mutex
	products       []transport.Product
	failCategories map[string]bool
	emptyProducts  map[int64]bool
	categoryHits   []string
	requests       int
}

// NewServer starts a fake catalog serving products. It is closed on test cleanup.
func NewServer(t testing.TB, products ...transport.Product) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		products:       products,
		failCategories: make(map[string]bool),
		emptyProducts:  make(map[int64]bool),
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		s.mu.Lock()
		s.requests++
		s.mu.Unlock()
		c.Next()
	})
	r.GET("/products", s.listProducts)
	r.GET("/products/categories", s.listCategories)
	r.GET("/products/category/:category", s.listByCategory)
	r.GET("/products/:id", s.getProduct)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// FailCategory makes the category endpoint answer 500 for category.
func (s *Server) FailCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCategories[category] = true
}

// EmptyProduct makes the product endpoint answer 200 with an empty body for id.
func (s *Server) EmptyProduct(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emptyProducts[id] = true
}

// CategoryHits returns the category values received by the server, in order.
func (s *Server) CategoryHits() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.categoryHits...)
}

// Requests returns how many requests the server handled.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func (s *Server) listProducts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, toWire(s.products))
}

func (s *Server) listCategories(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) listByCategory(c *gin.Context) {
	category := c.Param("category")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoryHits = append(s.categoryHits, category)

	if s.failCategories[category] {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
		return
	}

	matched := make([]transport.Product, 0)
	for _, p := range s.products {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	c.JSON(http.StatusOK, toWire(matched))
}

func (s *Server) getProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emptyProducts[id] {
		c.Status(http.StatusOK)
		return
	}
	for _, p := range s.products {
		if p.ID == id {
			c.JSON(http.StatusOK, wireProduct(p))
			return
		}
	}
	c.Status(http.StatusNotFound)
}

// Product builds a catalog product with a decimal price parsed from price.
func Product(id int64, title, price, category string) transport.Product {
	return transport.Product{
		ID:          id,
		Title:       title,
		Price:       decimal.RequireFromString(price),
		Description: title + " description",
		Image:       "https://example.test/img/" + strconv.FormatInt(id, 10) + ".jpg",
		Category:    category,
		Rating:      transport.Rating{Rate: 4.1, Count: 120},
	}
}

// wireProduct renders a product the way the real API does, with a numeric price.
func wireProduct(p transport.Product) gin.H {
	return gin.H{
		"id":          p.ID,
		"title":       p.Title,
		"price":       json.Number(p.Price.String()),
		"description": p.Description,
		"image":       p.Image,
		"category":    p.Category,
		"rating":      gin.H{"rate": p.Rating.Rate, "count": p.Rating.Count},
	}
}

func toWire(products []transport.Product) []gin.H {
	out := make([]gin.H, 0, len(products))
	for _, p := range products {
		out = append(out, wireProduct(p))
	}
	return out
}
