// Package memstore provides mutex-guarded in-memory implementations of the
// repository ports. It is the default storage when no database is
// configured and the backing store for the application tests. Aggregates
// are stored as snapshots and restored on read so callers never share
// mutable state with the store.
package memstore

import (
	"context"
	"sort"
	"sync"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository keeps order snapshots in memory.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]order.Snapshot
}

// NewOrderRepository creates an empty order store.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[kernel.UUID]order.Snapshot)}
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[aggregate.ID()]; ok {
		return errs.NewValueIsInvalidError("order already exists")
	}
	r.orders[aggregate.ID()] = aggregate.Snapshot()
	return nil
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}
	r.orders[aggregate.ID()] = aggregate.Snapshot()
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.mu.RLock()
	s, ok := r.orders[id]
	r.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return order.RestoreOrder(s)
}

func (r *OrderRepository) Remove(_ context.Context, id kernel.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return errs.NewObjectNotFoundError("order", id)
	}
	delete(r.orders, id)
	return nil
}

func (r *OrderRepository) GetAllByStatuses(_ context.Context, statuses []order.Status) ([]*order.Order, error) {
	wanted := make(map[order.Status]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}

	return r.collect(func(s order.Snapshot) bool {
		return wanted[s.Status] && !s.Archived
	})
}

func (r *OrderRepository) GetAllArchived(_ context.Context) ([]*order.Order, error) {
	return r.collect(func(s order.Snapshot) bool {
		return s.Archived
	})
}

func (r *OrderRepository) GetActiveByCourier(_ context.Context, courierID kernel.ActorID) (*order.Order, error) {
	matches, err := r.collect(func(s order.Snapshot) bool {
		return s.CourierID != nil && *s.CourierID == courierID && s.Status.IsActive()
	})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, errs.NewObjectNotFoundError("active order of courier", courierID)
	}
	return matches[0], nil
}

func (r *OrderRepository) GetLastByRequester(_ context.Context, requesterID string) (*order.Order, error) {
	matches, err := r.collect(func(s order.Snapshot) bool {
		return s.RequesterID == requesterID
	})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, errs.NewObjectNotFoundError("order of requester", requesterID)
	}
	return matches[len(matches)-1], nil
}

// collect restores every snapshot the filter accepts, oldest first.
func (r *OrderRepository) collect(filter func(order.Snapshot) bool) ([]*order.Order, error) {
	r.mu.RLock()
	snapshots := make([]order.Snapshot, 0, len(r.orders))
	for _, s := range r.orders {
		if filter(s) {
			snapshots = append(snapshots, s)
		}
	}
	r.mu.RUnlock()

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].CreatedAt.Before(snapshots[j].CreatedAt)
	})

	out := make([]*order.Order, 0, len(snapshots))
	for _, s := range snapshots {
		aggregate, err := order.RestoreOrder(s)
		if err != nil {
			return nil, err
		}
		out = append(out, aggregate)
	}
	return out, nil
}
