package transport

import "github.com/shopspring/decimal"

// Product is a catalog entry as shown to the shopper. Read-only.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Rating      Rating          `json:"rating"`
}

// Rating is the catalog's review summary, display only.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Section groups the products of one category on the listing page.
type Section struct {
	Category string    `json:"category"`
	Products []Product `json:"products"`
}

// BrowseRequest narrows the listing page to one category.
type BrowseRequest struct {
	Category string `form:"category" validate:"omitempty,max=100"`
}

// BrowseResponse is the listing page view model.
type BrowseResponse struct {
	Sections []Section `json:"sections"`
}

// ProductListResponse is the flat product list view model.
type ProductListResponse struct {
	Items []Product `json:"items"`
	Total int       `json:"total"`
}

// CategoriesResponse lists the catalog categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
