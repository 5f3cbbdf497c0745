// Package requester holds the customer-side participant of the dispatch
// workflow. Requesters are created lazily on their first inbound message
// and identified by the chat id string of the messaging channel.
package requester

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
	"dispatch/internal/pkg/i18n"
)

// ErrRequesterIsNotConstructed is returned when a Requester instance was
// not created through NewRequester or RestoreRequester.
var ErrRequesterIsNotConstructed = errors.New("Requester must be created via NewRequester or RestoreRequester")

// Requester is a customer ordering deliveries.
type Requester struct {
	id          string
	displayName string
	locale      i18n.Locale

	guard guard.ConstructorGuard
}

// Snapshot is the flattened persistent form of a Requester.
type Snapshot struct {
	ID          string
	DisplayName string
	Locale      i18n.Locale
}

// NewRequester creates a requester with no language preference yet; the
// self-service flow asks for one on first contact.
func NewRequester(id, displayName string) (*Requester, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("id")
	}
	if displayName == "" {
		displayName = id
	}

	return &Requester{
		id:          id,
		displayName: displayName,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreRequester reconstructs a requester from its persistent snapshot.
func RestoreRequester(s Snapshot) (*Requester, error) {
	r, err := NewRequester(s.ID, s.DisplayName)
	if err != nil {
		return nil, err
	}
	r.locale = s.Locale
	return r, nil
}

// Validate ensures the Requester was created through a constructor.
func (r *Requester) Validate() error {
	if r == nil {
		return ErrRequesterIsNotConstructed
	}
	return r.guard.Validate(ErrRequesterIsNotConstructed)
}

// Snapshot returns the persistent form of the requester.
func (r *Requester) Snapshot() Snapshot {
	return Snapshot{ID: r.id, DisplayName: r.displayName, Locale: r.locale}
}

func (r *Requester) ID() string          { return r.id }
func (r *Requester) DisplayName() string { return r.displayName }

// Locale returns the requester's language preference, i18n.LocaleUnset if
// they have not chosen one yet.
func (r *Requester) Locale() i18n.Locale {
	return r.locale
}

// SetLocale records the requester's language choice.
func (r *Requester) SetLocale(loc i18n.Locale) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	r.locale = loc
	return nil
}

// SetDisplayName updates the requester's visible name.
func (r *Requester) SetDisplayName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("displayName")
	}
	r.displayName = name
	return nil
}
