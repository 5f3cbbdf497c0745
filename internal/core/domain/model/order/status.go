package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow
// the dispatch workflow:
//
//	draft ──┐
//	new ────┼──> active_ready ──> active_pickedup ──> arrived ──> completed
//	new_online   (dispatch)        (pickup)       └──> completed
//	    ▲                                (arrive may repeat)
//	    └── reopen (cancellation of an active order approved)
//
// cancel reaches cancelled from any non-terminal status. completed and
// cancelled are terminal; archived orders keep their terminal status and
// only leave the active views.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Draft is an order being composed by an admin, not yet in the pool.
	Draft

	// New is an order accepted into the pool via admin intake.
	New

	// NewOnline is an order submitted by a requester through the
	// self-service flow.
	NewOnline

	// ActiveReady is dispatched to a courier who has not picked it up yet.
	ActiveReady

	// ActivePickedUp is carried by the courier toward the requester.
	ActivePickedUp

	// Arrived means the courier is waiting at the destination.
	Arrived

	// Completed is a terminal state: the order was delivered.
	Completed

	// Cancelled is a terminal state: the order was abandoned.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Draft:          "draft",
		New:            "new",
		NewOnline:      "new_online",
		ActiveReady:    "active_ready",
		ActivePickedUp: "active_pickedup",
		Arrived:        "arrived",
		Completed:      "completed",
		Cancelled:      "cancelled",
	}
}

// StatusFromString maps the wire/persistence form back to a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// String returns the wire form of the status ("new_online", "arrived", ...).
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsPreDispatch reports whether the order is still in the intake pool
// (draft, new or new_online) and has no active courier.
func (s Status) IsPreDispatch() bool {
	return s == Draft || s == New || s == NewOnline
}

// IsActive reports whether a courier is working the order.
func (s Status) IsActive() bool {
	return s == ActiveReady || s == ActivePickedUp || s == Arrived
}

// IsTerminal reports whether no further lifecycle transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ValidateCanHaveCourier checks the consistency between status and active
// courier assignment: exactly the active statuses carry a courier.
func (s Status) ValidateCanHaveCourier(hasCourier bool) error {
	if hasCourier && !s.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a courier", s),
		)
	}
	if !hasCourier && s.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no courier", s),
		)
	}
	return nil
}

// Dispatch transitions a pool order to ActiveReady.
func (s Status) Dispatch() (Status, error) {
	if !s.IsPreDispatch() {
		return 0, transitionError(s, "dispatch")
	}
	return ActiveReady, nil
}

// Pickup transitions ActiveReady to ActivePickedUp.
func (s Status) Pickup() (Status, error) {
	if s != ActiveReady {
		return 0, transitionError(s, "pickup")
	}
	return ActivePickedUp, nil
}

// Arrive transitions ActivePickedUp to Arrived. Repeating Arrive while
// already Arrived is allowed so the courier can re-notify the requester.
func (s Status) Arrive() (Status, error) {
	if s != ActivePickedUp && s != Arrived {
		return 0, transitionError(s, "arrive")
	}
	return Arrived, nil
}

// Complete transitions ActivePickedUp or Arrived to Completed.
func (s Status) Complete() (Status, error) {
	if s != ActivePickedUp && s != Arrived {
		return 0, transitionError(s, "complete")
	}
	return Completed, nil
}

// Cancel transitions any non-terminal status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return 0, transitionError(s, "cancel")
	}
	return Cancelled, nil
}

// Reopen returns an active order to the pool as New. Used when an admin
// approves a courier's cancellation request.
func (s Status) Reopen() (Status, error) {
	if !s.IsActive() {
		return 0, transitionError(s, "reopen")
	}
	return New, nil
}

// SaveDraft parks a pool order as Draft.
func (s Status) SaveDraft() (Status, error) {
	if !s.IsPreDispatch() {
		return 0, transitionError(s, "save as draft")
	}
	return Draft, nil
}

func transitionError(s Status, op string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%s is not a valid status to %s", s, op),
	)
}
