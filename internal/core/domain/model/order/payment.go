package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// PaymentMethod is how the requester intends to settle the order.
type PaymentMethod int

const (
	PaymentMethodUnset PaymentMethod = iota
	PaymentCash
	PaymentQR
)

// ParsePaymentMethod maps the wire form ("CASH"/"QR") to a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case "CASH":
		return PaymentCash, nil
	case "QR":
		return PaymentQR, nil
	default:
		return PaymentMethodUnset, errs.NewValueIsInvalidErrorWithCause(
			"payment method",
			fmt.Errorf("%q is not a known payment method", s),
		)
	}
}

func (m PaymentMethod) String() string {
	switch m {
	case PaymentCash:
		return "CASH"
	case PaymentQR:
		return "QR"
	default:
		return ""
	}
}

// PaymentStatus tracks whether the order has been settled.
type PaymentStatus int

const (
	PaymentStatusUnset PaymentStatus = iota
	PaymentPaid
	PaymentNotPaid
)

func (s PaymentStatus) String() string {
	switch s {
	case PaymentPaid:
		return "PAID"
	case PaymentNotPaid:
		return "NOT_PAID"
	default:
		return ""
	}
}
