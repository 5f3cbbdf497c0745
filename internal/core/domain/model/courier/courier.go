package courier

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrCourierIsNotConstructed is returned when a Courier instance was not
	// created through NewCourier or RestoreCourier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")

	// ErrCourierIsBlocked is returned when a blocked courier tries to use a
	// self-service operation (register, take orders).
	ErrCourierIsBlocked = errors.New("courier is blocked by an admin")

	// ErrCourierIsWorking is returned when a courier with an order in
	// progress tries to disconnect without admin approval.
	ErrCourierIsWorking = errors.New("courier has an order in progress")
)

// Courier is the aggregate root for a delivery worker. It tracks shift
// availability and the cross-reference to the order currently worked.
//
// Invariant: currentOrderID is set exactly while the status is assigned or
// busy.
type Courier struct {
	id          kernel.ActorID
	displayName string
	status      Status

	currentOrderID *kernel.UUID

	guard guard.ConstructorGuard
}

// Snapshot is the flattened persistent form of a Courier.
type Snapshot struct {
	ID             kernel.ActorID
	DisplayName    string
	Status         Status
	CurrentOrderID *kernel.UUID
}

// NewCourier registers a new courier, immediately online.
func NewCourier(id kernel.ActorID, displayName string) (*Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if displayName == "" {
		return nil, errs.NewValueIsRequiredError("displayName")
	}

	return &Courier{
		id:          id,
		displayName: displayName,
		status:      StatusOnline,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreCourier reconstructs a courier from its persistent snapshot,
// re-checking the status/order consistency invariant.
func RestoreCourier(s Snapshot) (*Courier, error) {
	if err := s.ID.Validate(); err != nil {
		return nil, err
	}
	if s.DisplayName == "" {
		return nil, errs.NewValueIsRequiredError("displayName")
	}
	if err := s.Status.Validate(); err != nil {
		return nil, err
	}
	if err := s.Status.ValidateCanHaveOrder(s.CurrentOrderID != nil); err != nil {
		return nil, err
	}

	return &Courier{
		id:             s.ID,
		displayName:    s.DisplayName,
		status:         s.Status,
		currentOrderID: s.CurrentOrderID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// Snapshot returns the persistent form of the courier.
func (c *Courier) Snapshot() Snapshot {
	return Snapshot{
		ID:             c.id,
		DisplayName:    c.displayName,
		Status:         c.status,
		CurrentOrderID: c.currentOrderID,
	}
}

func (c *Courier) ID() kernel.ActorID  { return c.id }
func (c *Courier) DisplayName() string { return c.displayName }
func (c *Courier) Status() Status      { return c.status }

// CurrentOrderID returns the order being worked, nil when free.
func (c *Courier) CurrentOrderID() *kernel.UUID {
	return c.currentOrderID
}

// IsEqual compares two couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id == other.id
}

// SetDisplayName updates the courier's visible name.
func (c *Courier) SetDisplayName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("displayName")
	}
	c.displayName = name
	return nil
}

// Register connects the courier to the shift. Registering while already on
// shift is a no-op; blocked couriers are rejected.
func (c *Courier) Register() error {
	if c.status.IsBlocked() {
		return ErrCourierIsBlocked
	}
	if c.status == StatusOffline {
		c.status = StatusOnline
	}
	return nil
}

// Disconnect takes the courier off shift. A courier with an order in
// progress cannot disconnect on their own; the caller must obtain admin
// approval and then use ForceDisconnect.
func (c *Courier) Disconnect() error {
	if c.status.IsBlocked() {
		return ErrCourierIsBlocked
	}
	if c.status.IsWorking() {
		return ErrCourierIsWorking
	}
	c.status = StatusOffline
	return nil
}

// ForceDisconnect takes the courier off shift regardless of workload,
// returning the abandoned order id (if any) so the caller can requeue it.
// Used when an admin approves or denies a disconnect request.
func (c *Courier) ForceDisconnect() (abandoned *kernel.UUID, err error) {
	if c.status.IsBlocked() {
		return nil, ErrCourierIsBlocked
	}
	abandoned = c.currentOrderID
	c.status = StatusOffline
	c.currentOrderID = nil
	return abandoned, nil
}

// AssignOrder gives the courier an order to work. A free courier becomes
// assigned; reassigning an already-working courier swaps the order and
// returns the previous one so the caller can requeue or hand it over.
func (c *Courier) AssignOrder(orderID kernel.UUID) (previous *kernel.UUID, err error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if c.status.IsBlocked() {
		return nil, ErrCourierIsBlocked
	}
	if c.status == StatusOffline {
		return nil, transitionError(c.status, "take an order")
	}

	previous = c.currentOrderID
	c.currentOrderID = &orderID
	if !c.status.IsWorking() {
		c.status = StatusAssigned
	}
	return previous, nil
}

// MarkBusy records that the courier picked the order up.
func (c *Courier) MarkBusy() error {
	if c.status != StatusAssigned && c.status != StatusBusy {
		return transitionError(c.status, "start carrying an order")
	}
	c.status = StatusBusy
	return nil
}

// Release frees the courier after their order completed, was cancelled or
// was reassigned. The courier returns to the online pool.
func (c *Courier) Release() error {
	if !c.status.IsWorking() {
		return transitionError(c.status, "release")
	}
	c.status = StatusOnline
	c.currentOrderID = nil
	return nil
}

// Block suspends the courier. Any order in progress is dropped and its id
// returned so the caller can requeue it.
func (c *Courier) Block() (abandoned *kernel.UUID, err error) {
	if c.status.IsBlocked() {
		return nil, nil
	}
	abandoned = c.currentOrderID
	c.status = StatusBlocked
	c.currentOrderID = nil
	return abandoned, nil
}

// Unblock lifts an admin suspension, returning the courier online.
func (c *Courier) Unblock() error {
	if !c.status.IsBlocked() {
		return transitionError(c.status, "unblock")
	}
	c.status = StatusOnline
	return nil
}
