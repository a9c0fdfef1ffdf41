package domain

import (
	"context"
	"math"
	"sync"

	"storefront/platform/kv"
	"storefront/platform/logger"

	"github.com/shopspring/decimal"
)

// DefaultKey is the sink key the cart snapshot lives under.
const DefaultKey = "cart"

// Store owns the cart. Mutations are serialized and each one is mirrored to
// the sink before the lock is released, so snapshots land in mutation order.
// Sink failures are logged and reported on the Change; the in-memory cart
// stays authoritative.
type Store struct {
	mu    sync.RWMutex
	items []LineItem
	sink  kv.Store
	key   string
	log   *logger.Logger
}

// Open creates the store and hydrates it from sink. It never fails: a missing,
// malformed or unreachable snapshot yields an empty cart.
func Open(ctx context.Context, sink kv.Store, key string, log *logger.Logger) (*Store, LoadResult) {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = logger.Discard()
	}

	s := &Store{
		items: make([]LineItem, 0),
		sink:  sink,
		key:   key,
		log:   log,
	}
	result := s.load(ctx)
	return s, result
}

// AddItem adds quantity units of p. An existing line item keeps its fields
// and only grows in quantity. Quantities below 1 are rejected, as is a merge
// whose sum would overflow.
func (s *Store) AddItem(ctx context.Context, p Product, quantity int) Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	change := Change{Op: OpAdd, ProductID: p.ID}
	if quantity < 1 {
		return s.refuse(change, OutcomeRejected)
	}

	if i := s.indexOf(p.ID); i >= 0 {
		if quantity > math.MaxInt-s.items[i].Quantity {
			change.Quantity = s.items[i].Quantity
			return s.refuse(change, OutcomeRejected)
		}
		s.items[i].Quantity += quantity
		change.Outcome = OutcomeMerged
		change.Quantity = s.items[i].Quantity
	} else {
		s.items = append(s.items, newLineItem(p, quantity))
		change.Outcome = OutcomeAdded
		change.Quantity = quantity
	}

	change.Persist = s.write(ctx)
	change.Items = s.snapshot()
	return change
}

// RemoveItem deletes the line item for id. Removing an absent id is a no-op.
func (s *Store) RemoveItem(ctx context.Context, id int64) Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	change := Change{Op: OpRemove, ProductID: id}
	i := s.indexOf(id)
	if i < 0 {
		return s.refuse(change, OutcomeAbsent)
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	change.Outcome = OutcomeRemoved
	change.Persist = s.write(ctx)
	change.Items = s.snapshot()
	return change
}

// UpdateQuantity sets the quantity of id to exactly quantity. Values below 1
// are rejected and never remove the line item.
func (s *Store) UpdateQuantity(ctx context.Context, id int64, quantity int) Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	change := Change{Op: OpUpdateQuantity, ProductID: id}
	i := s.indexOf(id)
	if quantity < 1 {
		if i >= 0 {
			change.Quantity = s.items[i].Quantity
		}
		return s.refuse(change, OutcomeRejected)
	}
	if i < 0 {
		return s.refuse(change, OutcomeAbsent)
	}

	s.items[i].Quantity = quantity
	change.Outcome = OutcomeUpdated
	change.Quantity = quantity
	change.Persist = s.write(ctx)
	change.Items = s.snapshot()
	return change
}

// Clear empties the cart and deletes the persisted record.
func (s *Store) Clear(ctx context.Context) Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]LineItem, 0)
	return Change{
		Op:      OpClear,
		Outcome: OutcomeCleared,
		Items:   s.snapshot(),
		Persist: s.remove(ctx),
	}
}

// Drain atomically empties a non-empty cart, deletes the persisted record and
// returns the line items it held. An empty cart is left untouched.
func (s *Store) Drain(ctx context.Context) ([]LineItem, Change) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return nil, s.refuse(Change{Op: OpClear}, OutcomeAbsent)
	}

	drained := s.items
	s.items = make([]LineItem, 0)
	return drained, Change{
		Op:      OpClear,
		Outcome: OutcomeCleared,
		Items:   s.snapshot(),
		Persist: s.remove(ctx),
	}
}

// Total returns the sum of price × quantity over every line item.
func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Items returns a copy of the line items in cart order.
func (s *Store) Items() []LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Len returns the number of distinct line items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Count returns the total number of units across all line items.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Quantity returns the quantity of id, or 0 when it is not in the cart.
func (s *Store) Quantity(id int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i].Quantity
	}
	return 0
}

func (s *Store) refuse(change Change, outcome Outcome) Change {
	change.Outcome = outcome
	change.Items = s.snapshot()
	change.Persist = PersistResult{Action: PersistNone}
	if outcome == OutcomeAbsent {
		change.Quantity = 0
	}
	return change
}

func (s *Store) indexOf(id int64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}
