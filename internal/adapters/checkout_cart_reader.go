package adapters

import (
	"context"

	carttransport "storefront/internal/cart/transport"
	"storefront/internal/checkout/ports"
)

// CartService is the cart surface checkout needs.
type CartService interface {
	View() carttransport.CartView
	Drain(ctx context.Context) (carttransport.DrainedCart, error)
}

// CheckoutCartReader adapts the cart service for the checkout domain.
type CheckoutCartReader struct {
	cart CartService
}

// NewCheckoutCartReader creates a new checkout cart adapter.
func NewCheckoutCartReader(cart CartService) *CheckoutCartReader {
	return &CheckoutCartReader{cart: cart}
}

// Review returns the current cart as a checkout order.
func (a *CheckoutCartReader) Review(_ context.Context) ports.Order {
	view := a.cart.View()
	return ports.Order{
		Lines:     toOrderLines(view.Items),
		ItemCount: view.Count,
		Total:     view.Total,
	}
}

// Drain empties the cart and returns what it held.
func (a *CheckoutCartReader) Drain(ctx context.Context) (ports.Order, error) {
	drained, err := a.cart.Drain(ctx)
	if err != nil {
		return ports.Order{}, err
	}
	return ports.Order{
		Lines:     toOrderLines(drained.Items),
		ItemCount: drained.Count,
		Total:     drained.Total,
	}, nil
}

func toOrderLines(items []carttransport.LineItemView) []ports.OrderLine {
	lines := make([]ports.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, ports.OrderLine{
			ProductID: item.ID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Subtotal:  item.Subtotal,
		})
	}
	return lines
}

var _ ports.CartReader = (*CheckoutCartReader)(nil)
