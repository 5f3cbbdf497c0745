package memstore

import (
	"context"
	"sync"

	"dispatch/internal/core/domain/model/requester"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var _ ports.RequesterRepository = (*RequesterRepository)(nil)

// RequesterRepository keeps requester snapshots in memory.
type RequesterRepository struct {
	mu         sync.RWMutex
	requesters map[string]requester.Snapshot
}

// NewRequesterRepository creates an empty requester store.
func NewRequesterRepository() *RequesterRepository {
	return &RequesterRepository{requesters: make(map[string]requester.Snapshot)}
}

func (r *RequesterRepository) Update(_ context.Context, aggregate *requester.Requester) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requesters[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("requester", aggregate.ID())
	}
	r.requesters[aggregate.ID()] = aggregate.Snapshot()
	return nil
}

func (r *RequesterRepository) Get(_ context.Context, id string) (*requester.Requester, error) {
	r.mu.RLock()
	s, ok := r.requesters[id]
	r.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("requester", id)
	}
	return requester.RestoreRequester(s)
}

func (r *RequesterRepository) FindOrCreate(_ context.Context, id, displayName string) (*requester.Requester, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.requesters[id]; ok {
		return requester.RestoreRequester(s)
	}

	created, err := requester.NewRequester(id, displayName)
	if err != nil {
		return nil, err
	}
	r.requesters[id] = created.Snapshot()
	return created, nil
}

func (r *RequesterRepository) FindByDisplayName(_ context.Context, name string) (*requester.Requester, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.requesters {
		if s.DisplayName == name {
			return requester.RestoreRequester(s)
		}
	}
	return nil, errs.NewObjectNotFoundError("requester", name)
}
