// Package service provides the cart use-cases: resolve products through the
// catalog, mutate the cart store, and announce changes on the event bus.
package service

import (
	"context"

	"storefront/internal/cart/domain"
	"storefront/internal/cart/ports"
	"storefront/internal/cart/transport"
	"storefront/internal/events"
	"storefront/platform/apperr"
	"storefront/platform/logger"

	"github.com/shopspring/decimal"
)

const msgEmptyCart = "Tu carrito está vacío"

// Service handles cart operations.
type Service struct {
	store    *domain.Store
	products ports.ProductReader
	bus      events.Bus
	recorder ports.Recorder
	log      *logger.Logger
}

// New creates a new cart service. recorder may be nil.
func New(store *domain.Store, products ports.ProductReader, bus events.Bus, recorder ports.Recorder, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		products: products,
		bus:      bus,
		recorder: recorder,
		log:      log,
	}
}

// AddProduct resolves productID through the catalog and adds quantity units.
// The price always comes from the catalog.
func (s *Service) AddProduct(ctx context.Context, productID int64, quantity int) (transport.MutationResponse, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return transport.MutationResponse{}, err
	}

	change := s.store.AddItem(ctx, product, quantity)
	s.record(change)

	if change.Outcome.Changed() {
		s.bus.Publish(ctx, events.CartItemAdded{
			BaseEvent: events.NewBaseEvent(),
			ProductID: product.ID,
			Title:     product.Title,
			Quantity:  change.Quantity,
			Merged:    change.Outcome == domain.OutcomeMerged,
		})
	}
	return toMutation(change), nil
}

// Remove deletes a line item.
func (s *Service) Remove(ctx context.Context, productID int64) transport.MutationResponse {
	change := s.store.RemoveItem(ctx, productID)
	s.record(change)

	if change.Outcome.Changed() {
		s.bus.Publish(ctx, events.CartItemRemoved{
			BaseEvent: events.NewBaseEvent(),
			ProductID: productID,
		})
	}
	return toMutation(change)
}

// SetQuantity sets a line item's quantity. Values below 1 leave the cart unchanged.
func (s *Service) SetQuantity(ctx context.Context, productID int64, quantity int) transport.MutationResponse {
	change := s.store.UpdateQuantity(ctx, productID, quantity)
	s.record(change)

	if change.Outcome.Changed() {
		s.bus.Publish(ctx, events.CartQuantityUpdated{
			BaseEvent: events.NewBaseEvent(),
			ProductID: productID,
			Quantity:  change.Quantity,
		})
	}
	return toMutation(change)
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) transport.MutationResponse {
	change := s.store.Clear(ctx)
	s.record(change)

	s.bus.Publish(ctx, events.CartCleared{BaseEvent: events.NewBaseEvent()})
	return toMutation(change)
}

// Drain empties the cart for checkout and returns what it held.
// An empty cart is a conflict.
func (s *Service) Drain(ctx context.Context) (transport.DrainedCart, error) {
	items, change := s.store.Drain(ctx)
	if len(items) == 0 {
		return transport.DrainedCart{}, apperr.Conflict(msgEmptyCart).WithOp("cart.Drain")
	}
	s.record(change)
	s.bus.Publish(ctx, events.CartCleared{BaseEvent: events.NewBaseEvent()})

	view := buildView(items)
	return transport.DrainedCart{Items: view.Items, Count: view.Count, Total: view.Total}, nil
}

// View returns the cart page.
func (s *Service) View() transport.CartView {
	return buildView(s.store.Items())
}

// Summary returns the header badge data.
func (s *Service) Summary() transport.SummaryView {
	return transport.SummaryView{Count: s.store.Count(), Total: s.store.Total()}
}

func (s *Service) record(change domain.Change) {
	if s.recorder == nil {
		return
	}
	s.recorder.CartOperation(string(change.Op), string(change.Outcome))
	if change.Persist.Failed() {
		s.recorder.PersistFailure(string(change.Persist.Action))
	}
}

func toMutation(change domain.Change) transport.MutationResponse {
	return transport.MutationResponse{
		Outcome:   string(change.Outcome),
		ProductID: change.ProductID,
		Quantity:  change.Quantity,
		Persisted: change.Persist.Action != domain.PersistNone && !change.Persist.Failed(),
		Cart:      buildView(change.Items),
	}
}

func buildView(items []domain.LineItem) transport.CartView {
	view := transport.CartView{
		Items: make([]transport.LineItemView, 0, len(items)),
		Lines: len(items),
		Total: decimal.Zero,
	}
	for _, item := range items {
		subtotal := item.Subtotal()
		view.Items = append(view.Items, transport.LineItemView{
			ID:          item.ID,
			Title:       item.Title,
			Price:       item.Price,
			Description: item.Description,
			Image:       item.Image,
			Category:    item.Category,
			Quantity:    item.Quantity,
			Subtotal:    subtotal,
		})
		view.Count += item.Quantity
		view.Total = view.Total.Add(subtotal)
	}
	view.Empty = len(items) == 0
	return view
}
