package memstore

import (
	"context"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/session"
	"dispatch/internal/core/ports"
)

var _ ports.SessionRepository = (*SessionRepository)(nil)

// SessionRepository keeps conversational sessions in memory.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
	now      func() time.Time
}

// NewSessionRepository creates an empty session store.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]session.Session),
		now:      time.Now,
	}
}

func (r *SessionRepository) Get(_ context.Context, actorID string) (session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := r.sessions[actorID]; ok {
		return s, nil
	}
	return session.Session{ActorID: actorID}, nil
}

func (r *SessionRepository) Set(_ context.Context, actorID string, patch session.Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[actorID]
	if !ok {
		s = session.Session{ActorID: actorID}
	}
	r.sessions[actorID] = s.Apply(patch, r.now())
	return nil
}

func (r *SessionRepository) Clear(_ context.Context, actorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, actorID)
	return nil
}

func (r *SessionRepository) DeleteExpired(_ context.Context, now time.Time, ttl time.Duration) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	swept := 0
	for actorID, s := range r.sessions {
		if s.IsExpiredAt(now, ttl) {
			delete(r.sessions, actorID)
			swept++
		}
	}
	return swept, nil
}
