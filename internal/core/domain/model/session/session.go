// Package session holds the short-lived conversational state that makes
// multi-step flows possible over a stateless message channel: "the next
// text from this actor is the cash amount", "this admin is editing the
// items of order X", and so on. Sessions are keyed by actor id, merged on
// write, and swept after a period of inactivity.
package session

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Mode names the multi-step flow an actor is in the middle of.
type Mode int

const (
	// ModeNone means no flow is pending; plain routing applies.
	ModeNone Mode = iota

	// ModeOnlineOrderStart awaits the requester's language choice.
	ModeOnlineOrderStart

	// ModeOnlineOrderItems awaits the requester's item description.
	ModeOnlineOrderItems

	// ModeOnlineOrderLocation awaits the requester's location.
	ModeOnlineOrderLocation

	// ModeCustomerCashGiven awaits the cash amount the requester will hand
	// to the courier.
	ModeCustomerCashGiven

	// ModeEdit awaits the new value for an order field an admin is editing.
	ModeEdit

	// ModeAddQRPhoto awaits the QR image upload.
	ModeAddQRPhoto

	// ModeAddQRTitle awaits the title for the uploaded QR image.
	ModeAddQRTitle

	// ModeAddAdmin awaits the actor id of the admin being added.
	ModeAddAdmin

	// ModeShareLocation awaits the live location a courier forwards to the
	// requester.
	ModeShareLocation
)

func getModeStrings() map[Mode]string {
	return map[Mode]string{
		ModeNone:                "none",
		ModeOnlineOrderStart:    "online_order_start",
		ModeOnlineOrderItems:    "online_order_items",
		ModeOnlineOrderLocation: "online_order_location",
		ModeCustomerCashGiven:   "customer_cash_given",
		ModeEdit:                "edit",
		ModeAddQRPhoto:          "add_qr_photo",
		ModeAddQRTitle:          "add_qr_title",
		ModeAddAdmin:            "add_admin",
		ModeShareLocation:       "share_location_to_customer",
	}
}

// ModeFromString maps the persistence form back to a Mode.
func ModeFromString(s string) (Mode, error) {
	for mode, str := range getModeStrings() {
		if str == s {
			return mode, nil
		}
	}
	return ModeNone, errs.NewValueIsInvalidErrorWithCause("mode", fmt.Errorf("%q is not a known session mode", s))
}

// String returns the persistence form of the mode.
func (m Mode) String() string {
	if str, ok := getModeStrings()[m]; ok {
		return str
	}
	return "none"
}

// Session is the pending flow state for one actor. Only one session per
// actor exists at a time; starting a new flow overwrites the old one.
type Session struct {
	// ActorID is the session key: one actor, one pending flow.
	ActorID string

	Mode Mode

	// OrderID links edit and payment flows to their order.
	OrderID *kernel.UUID

	// Field names the order attribute being edited in ModeEdit.
	Field string

	// MediaRef carries the uploaded image between the photo and title
	// steps of the add-QR flow.
	MediaRef string

	// Payload carries free-form text between flow steps, such as the item
	// description collected before the location of an online order.
	Payload string

	// UpdatedAt drives expiry: stale sessions are swept so an abandoned
	// flow does not swallow an actor's later messages.
	UpdatedAt time.Time
}

// IsZero reports whether the session carries no pending flow.
func (s Session) IsZero() bool {
	return s.Mode == ModeNone
}

// IsExpiredAt reports whether the session has been inactive for longer
// than ttl as of now.
func (s Session) IsExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.UpdatedAt) > ttl
}

// Patch is a partial session update. Nil fields keep the stored value, so
// multi-step flows can accumulate state across writes.
type Patch struct {
	Mode     *Mode
	OrderID  **kernel.UUID
	Field    *string
	MediaRef *string
	Payload  *string
}

// Apply merges the patch into the session and refreshes UpdatedAt.
func (s Session) Apply(p Patch, now time.Time) Session {
	if p.Mode != nil {
		s.Mode = *p.Mode
	}
	if p.OrderID != nil {
		s.OrderID = *p.OrderID
	}
	if p.Field != nil {
		s.Field = *p.Field
	}
	if p.MediaRef != nil {
		s.MediaRef = *p.MediaRef
	}
	if p.Payload != nil {
		s.Payload = *p.Payload
	}
	s.UpdatedAt = now
	return s
}

// NewPatch starts an empty patch.
func NewPatch() Patch {
	return Patch{}
}

// WithMode sets the pending flow mode.
func (p Patch) WithMode(m Mode) Patch {
	p.Mode = &m
	return p
}

// WithOrderID links the session to an order; pass nil to unlink.
func (p Patch) WithOrderID(id *kernel.UUID) Patch {
	p.OrderID = &id
	return p
}

// WithField names the order attribute being edited.
func (p Patch) WithField(field string) Patch {
	p.Field = &field
	return p
}

// WithMediaRef carries an uploaded media reference.
func (p Patch) WithMediaRef(ref string) Patch {
	p.MediaRef = &ref
	return p
}

// WithPayload carries free-form text between flow steps.
func (p Patch) WithPayload(text string) Patch {
	p.Payload = &text
	return p
}
