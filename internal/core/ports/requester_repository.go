package ports

import (
	"context"

	"dispatch/internal/core/domain/model/requester"
)

// RequesterRepository defines the persistence contract for requesters.
type RequesterRepository interface {
	// Update persists changes to an existing requester.
	Update(ctx context.Context, aggregate *requester.Requester) error

	// Get retrieves a requester by id.
	// Returns errs.ObjectNotFoundError when no such requester exists.
	Get(ctx context.Context, id string) (*requester.Requester, error)

	// FindOrCreate retrieves the requester with the given id, creating one
	// lazily on first contact. Idempotent.
	FindOrCreate(ctx context.Context, id, displayName string) (*requester.Requester, error)

	// FindByDisplayName retrieves a requester by their visible name. Used
	// when an admin forwards a requester's message and only the name
	// survives the forward. Returns errs.ObjectNotFoundError when unknown.
	FindByDisplayName(ctx context.Context, name string) (*requester.Requester, error)
}
