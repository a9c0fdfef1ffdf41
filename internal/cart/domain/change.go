package domain

// Op names a cart mutation.
type Op string

const (
	OpAdd            Op = "add"
	OpRemove         Op = "remove"
	OpUpdateQuantity Op = "update_quantity"
	OpClear          Op = "clear"
)

// Outcome is what a mutation did to the cart.
type Outcome string

const (
	OutcomeAdded    Outcome = "added"
	OutcomeMerged   Outcome = "merged"
	OutcomeRemoved  Outcome = "removed"
	OutcomeUpdated  Outcome = "updated"
	OutcomeCleared  Outcome = "cleared"
	OutcomeRejected Outcome = "rejected"
	OutcomeAbsent   Outcome = "absent"
)

// Changed reports whether the outcome modified cart state.
func (o Outcome) Changed() bool {
	switch o {
	case OutcomeAdded, OutcomeMerged, OutcomeRemoved, OutcomeUpdated, OutcomeCleared:
		return true
	default:
		return false
	}
}

// PersistAction is the sink operation a mutation triggered.
type PersistAction string

const (
	PersistNone   PersistAction = "none"
	PersistWrite  PersistAction = "write"
	PersistDelete PersistAction = "delete"
)

// PersistResult reports the sink operation and its error, if any.
// A failed write never rolls back the in-memory cart.
type PersistResult struct {
	Action PersistAction
	Err    error
}

// Failed reports whether the sink operation returned an error.
func (p PersistResult) Failed() bool {
	return p.Err != nil
}

// Change describes one applied (or refused) mutation.
type Change struct {
	Op        Op
	Outcome   Outcome
	ProductID int64
	// Quantity is the line item's quantity after the mutation; 0 when it is gone.
	Quantity int
	// Items is a copy of the cart after the mutation.
	Items   []LineItem
	Persist PersistResult
}

// LoadStatus is how the cart was hydrated at startup.
type LoadStatus string

const (
	LoadRestored    LoadStatus = "restored"
	LoadMissing     LoadStatus = "missing"
	LoadMalformed   LoadStatus = "malformed"
	LoadUnavailable LoadStatus = "unavailable"
)

// LoadResult reports the startup hydration. Every status other than
// LoadRestored leaves the cart empty.
type LoadResult struct {
	Status LoadStatus
	Items  int
	Err    error
}
