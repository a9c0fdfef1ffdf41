// Package ports defines the interfaces the cart domain needs from other domains.
package ports

import (
	"context"

	"storefront/internal/cart/domain"
)

// ProductReader resolves a product id to the catalog data copied into a line item.
// Implementations return an apperr NotFound error for unknown ids.
type ProductReader interface {
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
}

// Recorder receives cart operation counters.
type Recorder interface {
	CartOperation(op, outcome string)
	PersistFailure(action string)
}
