package ports

import (
	"context"

	"dispatch/internal/core/domain/model/artifact"
	"dispatch/internal/core/domain/model/kernel"
)

// ArtifactRepository defines the persistence contract for payment QRs.
type ArtifactRepository interface {
	// Add persists a new QR.
	Add(ctx context.Context, qr *artifact.QR) error

	// Get retrieves a QR by id.
	// Returns errs.ObjectNotFoundError when no such QR exists.
	Get(ctx context.Context, id kernel.UUID) (*artifact.QR, error)

	// Remove deletes a QR permanently.
	Remove(ctx context.Context, id kernel.UUID) error

	// GetAll retrieves every stored QR, oldest first. The first one is the
	// code offered to requesters paying by QR.
	GetAll(ctx context.Context) ([]*artifact.QR, error)
}
