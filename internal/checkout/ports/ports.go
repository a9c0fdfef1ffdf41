// Package ports defines the interfaces the checkout domain needs from other domains.
package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderLine is one cart row as checkout sees it.
type OrderLine struct {
	ProductID int64
	Title     string
	Quantity  int
	Price     decimal.Decimal
	Subtotal  decimal.Decimal
}

// Order is the cart contents at checkout time.
type Order struct {
	Lines     []OrderLine
	ItemCount int
	Total     decimal.Decimal
}

// CartReader gives checkout read access to the cart plus an atomic drain.
type CartReader interface {
	// Review returns the current cart without changing it.
	Review(ctx context.Context) Order
	// Drain empties the cart and returns what it held. Returns an apperr
	// Conflict error when the cart is empty.
	Drain(ctx context.Context) (Order, error)
}

// Recorder receives checkout counters.
type Recorder interface {
	CheckoutCompleted()
}
