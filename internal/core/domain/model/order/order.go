package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrNoCourierSelected is returned by Dispatch when no courier has been
	// selected for the order yet. The caller surfaces this as a user-visible
	// warning and leaves the order untouched.
	ErrNoCourierSelected = errors.New("select a courier before dispatching the order")

	// ErrFeedbackAlreadyRecorded is returned when a feedback score arrives
	// for an order that already has one. The first score wins; repeated
	// scores must not re-trigger notifications.
	ErrFeedbackAlreadyRecorded = errors.New("feedback has already been recorded for this order")

	// ErrRequesterIsRequired is returned when creating an order without an
	// owning requester.
	ErrRequesterIsRequired = errs.NewValueIsRequiredError("requester")
)

const (
	minFeedbackScore = 1
	maxFeedbackScore = 5
)

// Order is the aggregate root for a dispatch order. It owns the lifecycle
// status, the courier cross-reference, and the payment capture fields.
//
// Invariants maintained by this type:
//   - courier is set exactly while the status is active
//     (active_ready / active_pickedup / arrived)
//   - a courier selected before dispatch is only a candidate; Dispatch
//     promotes the selection to the active assignment
//   - cashChange is defined only when both totalAmount and cashGiven are
//     set, and equals cashGiven - totalAmount
//   - feedback is recorded at most once, range 1..5
//   - terminal statuses never transition again (archive only hides the
//     order from active views)
type Order struct {
	id          kernel.UUID
	requesterID string
	status      Status

	// selectedCourierID is the admin's pre-dispatch choice of courier.
	selectedCourierID *kernel.ActorID
	// courierID is the active assignment; set only while status is active.
	courierID *kernel.ActorID

	locationLink string
	items        string

	paymentMethod PaymentMethod
	paymentStatus PaymentStatus
	totalAmount   *decimal.Decimal
	cashGiven     *decimal.Decimal
	cashChange    *decimal.Decimal

	feedback  int
	createdAt time.Time
	archived  bool

	guard guard.ConstructorGuard
}

// Snapshot is the flattened persistent form of an Order, used by repository
// adapters to restore aggregates.
type Snapshot struct {
	ID                kernel.UUID
	RequesterID       string
	Status            Status
	SelectedCourierID *kernel.ActorID
	CourierID         *kernel.ActorID
	LocationLink      string
	Items             string
	PaymentMethod     PaymentMethod
	PaymentStatus     PaymentStatus
	TotalAmount       *decimal.Decimal
	CashGiven         *decimal.Decimal
	CashChange        *decimal.Decimal
	Feedback          int
	CreatedAt         time.Time
	Archived          bool
}

// NewOrder creates an order in one of the intake pool statuses
// (draft, new or new_online). Items and locationLink may still be empty at
// creation; intake flows fill them in before dispatch.
func NewOrder(id kernel.UUID, requesterID string, status Status, items, locationLink string) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if requesterID == "" {
		return nil, ErrRequesterIsRequired
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if !status.IsPreDispatch() {
		return nil, transitionError(status, "create")
	}

	return &Order{
		id:           id,
		requesterID:  requesterID,
		status:       status,
		items:        items,
		locationLink: locationLink,
		createdAt:    time.Now(),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an order from its persistent snapshot,
// re-checking the status/courier consistency invariant.
func RestoreOrder(s Snapshot) (*Order, error) {
	if err := s.ID.Validate(); err != nil {
		return nil, err
	}
	if s.RequesterID == "" {
		return nil, ErrRequesterIsRequired
	}
	if err := s.Status.Validate(); err != nil {
		return nil, err
	}
	if err := s.Status.ValidateCanHaveCourier(s.CourierID != nil); err != nil {
		return nil, err
	}

	return &Order{
		id:                s.ID,
		requesterID:       s.RequesterID,
		status:            s.Status,
		selectedCourierID: s.SelectedCourierID,
		courierID:         s.CourierID,
		locationLink:      s.LocationLink,
		items:             s.Items,
		paymentMethod:     s.PaymentMethod,
		paymentStatus:     s.PaymentStatus,
		totalAmount:       s.TotalAmount,
		cashGiven:         s.CashGiven,
		cashChange:        s.CashChange,
		feedback:          s.Feedback,
		createdAt:         s.CreatedAt,
		archived:          s.Archived,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// Snapshot returns the persistent form of the order.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                o.id,
		RequesterID:       o.requesterID,
		Status:            o.status,
		SelectedCourierID: o.selectedCourierID,
		CourierID:         o.courierID,
		LocationLink:      o.locationLink,
		Items:             o.items,
		PaymentMethod:     o.paymentMethod,
		PaymentStatus:     o.paymentStatus,
		TotalAmount:       o.totalAmount,
		CashGiven:         o.cashGiven,
		CashChange:        o.cashChange,
		Feedback:          o.feedback,
		CreatedAt:         o.createdAt,
		Archived:          o.archived,
	}
}

func (o *Order) ID() kernel.UUID              { return o.id }
func (o *Order) RequesterID() string          { return o.requesterID }
func (o *Order) Status() Status               { return o.status }
func (o *Order) LocationLink() string         { return o.locationLink }
func (o *Order) Items() string                { return o.items }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) Feedback() int                { return o.feedback }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) Archived() bool               { return o.archived }

// CourierID returns the active courier assignment, nil while the order is
// not active.
func (o *Order) CourierID() *kernel.ActorID {
	return o.courierID
}

// SelectedCourierID returns the pre-dispatch courier choice, nil if none.
func (o *Order) SelectedCourierID() *kernel.ActorID {
	return o.selectedCourierID
}

// TotalAmount returns the order total, nil if not set yet.
func (o *Order) TotalAmount() *decimal.Decimal { return o.totalAmount }

// CashGiven returns the cash amount announced by the requester, nil if none.
func (o *Order) CashGiven() *decimal.Decimal { return o.cashGiven }

// CashChange returns cashGiven - totalAmount, nil unless both are set.
func (o *Order) CashChange() *decimal.Decimal { return o.cashChange }

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// SelectCourier records the courier choice for the order.
//
// On a pool order (draft/new/new_online) the choice is only a candidate and
// the status does not change; Dispatch promotes it later. On an active order
// the assignment is swapped immediately and the previous courier is
// returned so the caller can free them. Terminal orders reject selection.
func (o *Order) SelectCourier(courierID kernel.ActorID) (previous *kernel.ActorID, err error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	switch {
	case o.status.IsPreDispatch():
		o.selectedCourierID = &courierID
		return nil, nil
	case o.status.IsActive():
		previous = o.courierID
		o.courierID = &courierID
		return previous, nil
	default:
		return nil, transitionError(o.status, "select a courier for")
	}
}

// Dispatch sends the order to the selected courier: the selection becomes
// the active assignment and the status moves to active_ready. Without a
// prior selection the order is left untouched and ErrNoCourierSelected is
// returned.
func (o *Order) Dispatch() error {
	if o.selectedCourierID == nil {
		return ErrNoCourierSelected
	}

	newStatus, err := o.status.Dispatch()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = o.selectedCourierID
	o.selectedCourierID = nil
	return nil
}

// Pickup marks the order as picked up by its courier.
func (o *Order) Pickup() error {
	newStatus, err := o.status.Pickup()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Arrive marks the courier as waiting at the destination.
func (o *Order) Arrive() error {
	newStatus, err := o.status.Arrive()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Complete finishes the order and clears the courier assignment. The
// released courier id is returned so the caller can move the courier back
// to the free pool. Completing an already-completed order fails, which is
// how repeated terminal events stay side-effect free.
func (o *Order) Complete() (released *kernel.ActorID, err error) {
	newStatus, err := o.status.Complete()
	if err != nil {
		return nil, err
	}

	released = o.courierID
	o.status = newStatus
	o.courierID = nil
	return released, nil
}

// Cancel abandons a non-terminal order, clearing any selection or active
// assignment. The released courier id (if any) is returned.
func (o *Order) Cancel() (released *kernel.ActorID, err error) {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return nil, err
	}

	released = o.courierID
	o.status = newStatus
	o.courierID = nil
	o.selectedCourierID = nil
	return released, nil
}

// Reopen returns an active order to the pool as new, releasing its courier.
// Used when an admin approves a courier's cancellation request.
func (o *Order) Reopen() (released *kernel.ActorID, err error) {
	newStatus, err := o.status.Reopen()
	if err != nil {
		return nil, err
	}

	released = o.courierID
	o.status = newStatus
	o.courierID = nil
	return released, nil
}

// SaveDraft parks a pool order as a draft.
func (o *Order) SaveDraft() error {
	newStatus, err := o.status.SaveDraft()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Archive hides a terminal order from the active views. Archiving is the
// only mutation allowed after a terminal status.
func (o *Order) Archive() error {
	if !o.status.IsTerminal() {
		return transitionError(o.status, "archive")
	}
	o.archived = true
	return nil
}

// SetItems replaces the item description.
func (o *Order) SetItems(items string) {
	o.items = items
}

// SetLocationLink replaces the delivery location link.
func (o *Order) SetLocationLink(link string) {
	o.locationLink = link
}

// SetPaymentMethod records how the requester intends to pay.
func (o *Order) SetPaymentMethod(method PaymentMethod) {
	o.paymentMethod = method
}

// MarkPaid marks the order as settled.
func (o *Order) MarkPaid() {
	o.paymentStatus = PaymentPaid
}

// SetTotalAmount records the order total and recomputes the cash change
// when a cash amount was already announced.
func (o *Order) SetTotalAmount(total decimal.Decimal) error {
	if total.IsNegative() {
		return errs.NewValueIsInvalidError("total amount")
	}
	o.totalAmount = &total
	o.recomputeChange()
	return nil
}

// SetCashGiven records the cash amount the requester will hand over. It
// implies the cash payment method, marks the order as not yet paid, and
// computes the change when the total is known.
func (o *Order) SetCashGiven(given decimal.Decimal) error {
	if given.IsNegative() {
		return errs.NewValueIsInvalidError("cash given amount")
	}
	o.cashGiven = &given
	o.paymentMethod = PaymentCash
	o.paymentStatus = PaymentNotPaid
	o.recomputeChange()
	return nil
}

// SetFeedback records the requester's delivery score. Only the first score
// is accepted; repeats return ErrFeedbackAlreadyRecorded so callers skip
// the broadcast side effects.
func (o *Order) SetFeedback(score int) error {
	if score < minFeedbackScore || score > maxFeedbackScore {
		return errs.NewValueIsOutOfRangeError("feedback score", score, minFeedbackScore, maxFeedbackScore)
	}
	if o.feedback != 0 {
		return ErrFeedbackAlreadyRecorded
	}
	o.feedback = score
	return nil
}

func (o *Order) recomputeChange() {
	if o.totalAmount == nil || o.cashGiven == nil {
		o.cashChange = nil
		return
	}
	change := o.cashGiven.Sub(*o.totalAmount)
	o.cashChange = &change
}
