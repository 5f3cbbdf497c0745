package courier

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the availability state of a courier.
//
// offline <-> online -> assigned -> busy -> online
//
// blocked is reachable from every state by an admin and overrides
// everything: a blocked courier cannot register or take orders until an
// admin unblocks them back to online.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusOffline means the courier is disconnected from the shift.
	StatusOffline

	// StatusOnline means the courier is free and may receive orders.
	StatusOnline

	// StatusAssigned means the courier has a dispatched order not yet
	// picked up.
	StatusAssigned

	// StatusBusy means the courier is carrying an order.
	StatusBusy

	// StatusBlocked means an admin suspended the courier.
	StatusBlocked
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "unknown",
		StatusOffline:  "offline",
		StatusOnline:   "online",
		StatusAssigned: "assigned",
		StatusBusy:     "busy",
		StatusBlocked:  "blocked",
	}
}

// StatusFromString maps the persistence form back to a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// String returns the persistence form of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the status is one of the defined states.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusBlocked {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsWorking reports whether the courier holds an order (assigned or busy).
func (s Status) IsWorking() bool {
	return s == StatusAssigned || s == StatusBusy
}

// IsBlocked reports whether the courier is suspended by an admin.
func (s Status) IsBlocked() bool {
	return s == StatusBlocked
}

// ValidateCanHaveOrder checks the consistency between status and the
// current order cross-reference: exactly assigned and busy carry one.
func (s Status) ValidateCanHaveOrder(hasOrder bool) error {
	if hasOrder && !s.IsWorking() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a current order", s),
		)
	}
	if !hasOrder && s.IsWorking() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no current order", s),
		)
	}
	return nil
}

func transitionError(s Status, op string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%s is not a valid status to %s", s, op),
	)
}
