// Package ports defines the contracts between the dispatch core and its
// adapters: repositories for the domain aggregates and the notifier gateway
// for the messaging channel. These interfaces establish dependency
// inversion so the core can be exercised against in-memory fakes.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its actor id.
	// Returns errs.ObjectNotFoundError when no such courier exists.
	Get(ctx context.Context, id kernel.ActorID) (*courier.Courier, error)

	// FindOrCreate retrieves the courier with the given id, creating a new
	// online one when none exists. The operation is idempotent: repeated
	// calls with the same id return the same courier and never duplicate
	// it.
	FindOrCreate(ctx context.Context, id kernel.ActorID, displayName string) (*courier.Courier, error)

	// Remove deletes a courier permanently. Callers must release or
	// requeue the courier's order first.
	Remove(ctx context.Context, id kernel.ActorID) error

	// GetAll retrieves every known courier, stable order.
	GetAll(ctx context.Context) ([]*courier.Courier, error)

	// GetAllAvailable retrieves couriers that can take an order
	// (online or assigned, not blocked).
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)
}
