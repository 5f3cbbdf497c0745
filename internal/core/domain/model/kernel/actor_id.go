package kernel

import (
	"strconv"

	"dispatch/internal/pkg/errs"
)

// ErrActorIDIsRequired indicates a zero ActorID where a real identity was
// expected.
var ErrActorIDIsRequired = errs.NewValueIsRequiredError("actor id")

// ActorID is the stable external identity of a messaging participant
// (courier, requester or admin). It is assigned by the transport and never
// changes for a given account. Zero is not a valid identity.
type ActorID int64

// ParseActorID converts the decimal wire form into an ActorID.
func ParseActorID(s string) (ActorID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("actor id", err)
	}
	id := ActorID(n)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// String returns the decimal wire form used in interaction tokens.
func (a ActorID) String() string {
	return strconv.FormatInt(int64(a), 10)
}

// Validate rejects the zero value.
func (a ActorID) Validate() error {
	if a == 0 {
		return ErrActorIDIsRequired
	}
	return nil
}
