package memstore

import (
	"context"
	"sync"

	"dispatch/internal/core/domain/model/artifact"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var _ ports.ArtifactRepository = (*ArtifactRepository)(nil)

// ArtifactRepository keeps QR snapshots in memory, insertion ordered.
type ArtifactRepository struct {
	mu  sync.RWMutex
	qrs []artifact.Snapshot
}

// NewArtifactRepository creates an empty QR store.
func NewArtifactRepository() *ArtifactRepository {
	return &ArtifactRepository{}
}

func (r *ArtifactRepository) Add(_ context.Context, qr *artifact.QR) error {
	if err := qr.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.qrs {
		if s.ID.IsEqual(qr.ID()) {
			return errs.NewValueIsInvalidError("QR already exists")
		}
	}
	r.qrs = append(r.qrs, qr.Snapshot())
	return nil
}

func (r *ArtifactRepository) Get(_ context.Context, id kernel.UUID) (*artifact.QR, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.qrs {
		if s.ID.IsEqual(id) {
			return artifact.RestoreQR(s)
		}
	}
	return nil, errs.NewObjectNotFoundError("QR", id)
}

func (r *ArtifactRepository) Remove(_ context.Context, id kernel.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.qrs {
		if s.ID.IsEqual(id) {
			r.qrs = append(r.qrs[:i], r.qrs[i+1:]...)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("QR", id)
}

func (r *ArtifactRepository) GetAll(_ context.Context) ([]*artifact.QR, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*artifact.QR, 0, len(r.qrs))
	for _, s := range r.qrs {
		qr, err := artifact.RestoreQR(s)
		if err != nil {
			return nil, err
		}
		out = append(out, qr)
	}
	return out, nil
}
