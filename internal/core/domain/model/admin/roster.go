// Package admin holds the operator roster: the set of actor ids allowed to
// manage orders, couriers and settings. The roster is seeded from
// configuration with one primary admin who can never be removed, and may
// grow or shrink at runtime through the settings menu.
package admin

import (
	"errors"
	"sync"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/i18n"
)

var (
	// ErrPrimaryAdminIsImmutable is returned when removing the primary
	// admin, who anchors the roster.
	ErrPrimaryAdminIsImmutable = errors.New("the primary admin cannot be removed")

	// ErrAdminAlreadyExists is returned when adding an actor who is already
	// an admin.
	ErrAdminAlreadyExists = errors.New("actor is already an admin")
)

// Roster is the thread-safe set of admins with their interface language
// preferences. All dispatch decisions consult it to authorize operator
// actions and to fan out notifications.
type Roster struct {
	mu      sync.RWMutex
	primary kernel.ActorID
	ids     []kernel.ActorID
	locales map[kernel.ActorID]i18n.Locale
}

// NewRoster creates a roster seeded with the given admins; the first one is
// the primary.
func NewRoster(ids []kernel.ActorID) (*Roster, error) {
	if len(ids) == 0 {
		return nil, errs.NewValueIsRequiredError("ids")
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
	}

	r := &Roster{
		primary: ids[0],
		locales: make(map[kernel.ActorID]i18n.Locale),
	}
	for _, id := range ids {
		if !r.contains(id) {
			r.ids = append(r.ids, id)
		}
	}
	return r, nil
}

// IsAdmin reports whether the actor is on the roster.
func (r *Roster) IsAdmin(id kernel.ActorID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.contains(id)
}

// Primary returns the anchor admin.
func (r *Roster) Primary() kernel.ActorID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.primary
}

// All returns a copy of the roster in insertion order.
func (r *Roster) All() []kernel.ActorID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]kernel.ActorID, len(r.ids))
	copy(out, r.ids)
	return out
}

// Add puts a new admin on the roster.
func (r *Roster) Add(id kernel.ActorID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.contains(id) {
		return ErrAdminAlreadyExists
	}
	r.ids = append(r.ids, id)
	return nil
}

// Remove takes an admin off the roster. The primary admin is protected.
func (r *Roster) Remove(id kernel.ActorID) error {
	if id == r.Primary() {
		return ErrPrimaryAdminIsImmutable
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.ids {
		if existing == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			delete(r.locales, id)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("admin", id)
}

// Locale returns the admin's interface language, defaulting to English.
func (r *Roster) Locale(id kernel.ActorID) i18n.Locale {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if loc, ok := r.locales[id]; ok {
		return loc
	}
	return i18n.LocaleEN
}

// SetLocale records the admin's interface language.
func (r *Roster) SetLocale(id kernel.ActorID, loc i18n.Locale) error {
	if err := loc.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.contains(id) {
		return errs.NewObjectNotFoundError("admin", id)
	}
	r.locales[id] = loc
	return nil
}

func (r *Roster) contains(id kernel.ActorID) bool {
	for _, existing := range r.ids {
		if existing == id {
			return true
		}
	}
	return false
}
