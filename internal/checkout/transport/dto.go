package transport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutRequest is the simulated checkout form.
type CheckoutRequest struct {
	FirstName  string `json:"firstName" validate:"required,max=100"`
	LastName   string `json:"lastName" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Address    string `json:"address" validate:"required,max=200"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postalCode" validate:"required,max=20"`
	CardNumber string `json:"cardNumber" validate:"required,cardnumber"`
}

// OrderLineView is one row of the order summary.
type OrderLineView struct {
	ProductID int64           `json:"productId"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// FormField describes one input of the checkout form.
type FormField struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder,omitempty"`
}

// CheckoutPage is the checkout form view model.
type CheckoutPage struct {
	Lines     []OrderLineView `json:"lines"`
	ItemCount int             `json:"itemCount"`
	Total     decimal.Decimal `json:"total"`
	Empty     bool            `json:"empty"`
	Fields    []FormField     `json:"fields"`
	Submit    string          `json:"submit"`
}

// Confirmation is returned after "Confirmar Compra".
type Confirmation struct {
	OrderReference uuid.UUID       `json:"orderReference"`
	Total          decimal.Decimal `json:"total"`
	ItemCount      int             `json:"itemCount"`
	CardLast4      string          `json:"cardLast4"`
	Message        string          `json:"message"`
	Detail         string          `json:"detail"`
}
