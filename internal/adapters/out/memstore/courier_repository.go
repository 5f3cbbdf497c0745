package memstore

import (
	"context"
	"sort"
	"sync"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var _ ports.CourierRepository = (*CourierRepository)(nil)

// CourierRepository keeps courier snapshots in memory.
type CourierRepository struct {
	mu       sync.RWMutex
	couriers map[kernel.ActorID]courier.Snapshot
}

// NewCourierRepository creates an empty courier store.
func NewCourierRepository() *CourierRepository {
	return &CourierRepository{couriers: make(map[kernel.ActorID]courier.Snapshot)}
}

func (r *CourierRepository) Update(_ context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.couriers[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("courier", aggregate.ID())
	}
	r.couriers[aggregate.ID()] = aggregate.Snapshot()
	return nil
}

func (r *CourierRepository) Get(_ context.Context, id kernel.ActorID) (*courier.Courier, error) {
	r.mu.RLock()
	s, ok := r.couriers[id]
	r.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("courier", id)
	}
	return courier.RestoreCourier(s)
}

func (r *CourierRepository) FindOrCreate(_ context.Context, id kernel.ActorID, displayName string) (*courier.Courier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.couriers[id]; ok {
		return courier.RestoreCourier(s)
	}

	created, err := courier.NewCourier(id, displayName)
	if err != nil {
		return nil, err
	}
	r.couriers[id] = created.Snapshot()
	return created, nil
}

func (r *CourierRepository) Remove(_ context.Context, id kernel.ActorID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.couriers[id]; !ok {
		return errs.NewObjectNotFoundError("courier", id)
	}
	delete(r.couriers, id)
	return nil
}

func (r *CourierRepository) GetAll(_ context.Context) ([]*courier.Courier, error) {
	return r.collect(func(courier.Snapshot) bool { return true })
}

func (r *CourierRepository) GetAllAvailable(_ context.Context) ([]*courier.Courier, error) {
	return r.collect(func(s courier.Snapshot) bool {
		return s.Status == courier.StatusOnline || s.Status.IsWorking()
	})
}

func (r *CourierRepository) collect(filter func(courier.Snapshot) bool) ([]*courier.Courier, error) {
	r.mu.RLock()
	snapshots := make([]courier.Snapshot, 0, len(r.couriers))
	for _, s := range r.couriers {
		if filter(s) {
			snapshots = append(snapshots, s)
		}
	}
	r.mu.RUnlock()

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ID < snapshots[j].ID
	})

	out := make([]*courier.Courier, 0, len(snapshots))
	for _, s := range snapshots {
		aggregate, err := courier.RestoreCourier(s)
		if err != nil {
			return nil, err
		}
		out = append(out, aggregate)
	}
	return out, nil
}
