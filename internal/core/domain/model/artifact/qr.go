// Package artifact holds the payment QR codes admins upload through the
// settings menu. A QR is an opaque media reference plus a title; the
// dispatch flow forwards the first available QR to requesters who choose
// QR payment.
package artifact

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrQRIsNotConstructed is returned when a QR instance was not created
// through NewQR or RestoreQR.
var ErrQRIsNotConstructed = errors.New("QR must be created via NewQR or RestoreQR")

// QR is an uploaded payment code.
type QR struct {
	id       kernel.UUID
	title    string
	mediaRef string

	guard guard.ConstructorGuard
}

// Snapshot is the flattened persistent form of a QR.
type Snapshot struct {
	ID       kernel.UUID
	Title    string
	MediaRef string
}

// NewQR creates a payment code from an uploaded media reference.
func NewQR(id kernel.UUID, title, mediaRef string) (*QR, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, errs.NewValueIsRequiredError("title")
	}
	if mediaRef == "" {
		return nil, errs.NewValueIsRequiredError("mediaRef")
	}

	return &QR{
		id:       id,
		title:    title,
		mediaRef: mediaRef,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// RestoreQR reconstructs a QR from its persistent snapshot.
func RestoreQR(s Snapshot) (*QR, error) {
	return NewQR(s.ID, s.Title, s.MediaRef)
}

// Validate ensures the QR was created through a constructor.
func (q *QR) Validate() error {
	if q == nil {
		return ErrQRIsNotConstructed
	}
	return q.guard.Validate(ErrQRIsNotConstructed)
}

// Snapshot returns the persistent form of the QR.
func (q *QR) Snapshot() Snapshot {
	return Snapshot{ID: q.id, Title: q.title, MediaRef: q.mediaRef}
}

func (q *QR) ID() kernel.UUID  { return q.id }
func (q *QR) Title() string    { return q.title }
func (q *QR) MediaRef() string { return q.mediaRef }
