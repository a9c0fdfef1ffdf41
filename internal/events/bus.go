package events

import (
	platformevents "storefront/platform/events"
	"storefront/platform/logger"
)

// InMemoryBus is the process-local bus the storefront modules share.
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus creates the bus the composition root hands to the cart,
// checkout and notification modules.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
