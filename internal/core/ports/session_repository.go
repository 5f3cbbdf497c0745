package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/session"
)

// SessionRepository defines the persistence contract for conversational
// sessions, keyed by actor id.
type SessionRepository interface {
	// Get retrieves the actor's session. A missing session is not an
	// error: the zero session (ModeNone) is returned.
	Get(ctx context.Context, actorID string) (session.Session, error)

	// Set merges the patch into the actor's stored session, creating it if
	// absent, and refreshes its activity timestamp.
	Set(ctx context.Context, actorID string, patch session.Patch) error

	// Clear removes the actor's session. Clearing a missing session is a
	// no-op.
	Clear(ctx context.Context, actorID string) error

	// DeleteExpired removes sessions inactive for longer than ttl and
	// returns how many were swept.
	DeleteExpired(ctx context.Context, now time.Time, ttl time.Duration) (int, error)
}
