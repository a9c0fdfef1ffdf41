package transport

import "github.com/shopspring/decimal"

// MaxQuantity caps a single request's quantity. The lower bound is left to
// the store so values below 1 come back as a rejected outcome.
const MaxQuantity = 9999

// AddItemRequest adds a product by id. Quantity defaults to 1.
type AddItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  *int  `json:"quantity" validate:"omitempty,lte=9999"`
}

// UpdateQuantityRequest sets a line item's quantity.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,lte=9999"`
}

// LineItemView is one cart row.
type LineItemView struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartView is the cart page view model.
type CartView struct {
	Items []LineItemView  `json:"items"`
	Lines int             `json:"lines"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
	Empty bool            `json:"empty"`
}

// SummaryView feeds the header badge.
type SummaryView struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// MutationResponse reports what a cart mutation did plus the resulting cart.
type MutationResponse struct {
	Outcome   string   `json:"outcome"`
	ProductID int64    `json:"productId,omitempty"`
	Quantity  int      `json:"quantity"`
	Persisted bool     `json:"persisted"`
	Cart      CartView `json:"cart"`
}

// DrainedCart is what checkout receives when it empties the cart.
type DrainedCart struct {
	Items []LineItemView
	Count int
	Total decimal.Decimal
}
