package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Remove deletes an order permanently. Only pool orders are ever
	// removed; terminal orders are archived instead.
	Remove(ctx context.Context, id kernel.UUID) error

	// GetAllByStatuses retrieves non-archived orders in any of the given
	// statuses, oldest first. Used to render the admin pool, active and
	// completed views.
	GetAllByStatuses(ctx context.Context, statuses []order.Status) ([]*order.Order, error)

	// GetAllArchived retrieves archived orders, oldest first.
	GetAllArchived(ctx context.Context) ([]*order.Order, error)

	// GetActiveByCourier retrieves the active order worked by the given
	// courier. Returns errs.ObjectNotFoundError when the courier has none.
	GetActiveByCourier(ctx context.Context, courierID kernel.ActorID) (*order.Order, error)

	// GetLastByRequester retrieves the most recently created order of the
	// requester. Returns errs.ObjectNotFoundError when they have none.
	GetLastByRequester(ctx context.Context, requesterID string) (*order.Order, error)
}
