// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"storefront/platform/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Cart Domain Events
// =============================================================================

// CartItemAdded is published when a product is added to the cart.
// Merged is true when the product was already present and its quantity grew.
type CartItemAdded struct {
	BaseEvent
	ProductID int64  `json:"productId"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	Merged    bool   `json:"merged"`
}

func (e CartItemAdded) EventName() string { return "cart.item.added" }

// CartItemRemoved is published when a line item leaves the cart.
type CartItemRemoved struct {
	BaseEvent
	ProductID int64 `json:"productId"`
}

func (e CartItemRemoved) EventName() string { return "cart.item.removed" }

// CartQuantityUpdated is published when a line item's quantity is set.
type CartQuantityUpdated struct {
	BaseEvent
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

func (e CartQuantityUpdated) EventName() string { return "cart.item.quantity_updated" }

// CartCleared is published when the cart is emptied.
type CartCleared struct {
	BaseEvent
}

func (e CartCleared) EventName() string { return "cart.cleared" }

// =============================================================================
// Checkout Domain Events
// =============================================================================

// CheckoutCompleted is published after the checkout form is confirmed.
type CheckoutCompleted struct {
	BaseEvent
	OrderReference uuid.UUID       `json:"orderReference"`
	Total          decimal.Decimal `json:"total"`
	ItemCount      int             `json:"itemCount"`
}

func (e CheckoutCompleted) EventName() string { return "checkout.completed" }
