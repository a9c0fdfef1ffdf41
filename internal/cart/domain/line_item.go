// Package domain provides the cart store: the single owner of the shopper's
// line items, their merge rules, totals and persistence.
package domain

import "github.com/shopspring/decimal"

// Product is the catalog data the cart copies into a line item.
type Product struct {
	ID          int64
	Title       string
	Price       decimal.Decimal
	Description string
	Image       string
	Category    string
}

// LineItem is one product in the cart with its quantity. Quantity is always >= 1.
type LineItem struct {
	ID          int64
	Title       string
	Price       decimal.Decimal
	Description string
	Image       string
	Category    string
	Quantity    int
}

func newLineItem(p Product, quantity int) LineItem {
	return LineItem{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
		Quantity:    quantity,
	}
}

// Subtotal returns price × quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
