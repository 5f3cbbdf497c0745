// Package orderrepo persists order aggregates in PostgreSQL via GORM.
// It maps between the domain aggregate and a flat relational row, indexed
// for the queries the dispatch views need: by status, by courier and by
// requester.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the database row for an order aggregate.
type OrderDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequesterID       string    `gorm:"index"`
	Status            string    `gorm:"index"`
	SelectedCourierID *int64
	CourierID         *int64 `gorm:"index"`
	LocationLink      string
	Items             string
	PaymentMethod     string
	PaymentStatus     string
	TotalAmount       *decimal.Decimal `gorm:"type:numeric"`
	CashGiven         *decimal.Decimal `gorm:"type:numeric"`
	CashChange        *decimal.Decimal `gorm:"type:numeric"`
	Feedback          int
	CreatedAt         time.Time `gorm:"index"`
	Archived          bool      `gorm:"index"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()

	return OrderDTO{
		ID:                s.ID.Bytes(),
		RequesterID:       s.RequesterID,
		Status:            s.Status.String(),
		SelectedCourierID: actorToColumn(s.SelectedCourierID),
		CourierID:         actorToColumn(s.CourierID),
		LocationLink:      s.LocationLink,
		Items:             s.Items,
		PaymentMethod:     s.PaymentMethod.String(),
		PaymentStatus:     s.PaymentStatus.String(),
		TotalAmount:       s.TotalAmount,
		CashGiven:         s.CashGiven,
		CashChange:        s.CashChange,
		Feedback:          s.Feedback,
		CreatedAt:         s.CreatedAt,
		Archived:          s.Archived,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromString(dto.ID.String())
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentMethod, err := paymentMethodFromColumn(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                id,
		RequesterID:       dto.RequesterID,
		Status:            status,
		SelectedCourierID: actorFromColumn(dto.SelectedCourierID),
		CourierID:         actorFromColumn(dto.CourierID),
		LocationLink:      dto.LocationLink,
		Items:             dto.Items,
		PaymentMethod:     paymentMethod,
		PaymentStatus:     paymentStatusFromColumn(dto.PaymentStatus),
		TotalAmount:       dto.TotalAmount,
		CashGiven:         dto.CashGiven,
		CashChange:        dto.CashChange,
		Feedback:          dto.Feedback,
		CreatedAt:         dto.CreatedAt,
		Archived:          dto.Archived,
	})
}

func actorToColumn(id *kernel.ActorID) *int64 {
	if id == nil {
		return nil
	}
	raw := int64(*id)
	return &raw
}

func actorFromColumn(raw *int64) *kernel.ActorID {
	if raw == nil {
		return nil
	}
	id := kernel.ActorID(*raw)
	return &id
}

func paymentMethodFromColumn(s string) (order.PaymentMethod, error) {
	if s == "" {
		return order.PaymentMethodUnset, nil
	}
	return order.ParsePaymentMethod(s)
}

func paymentStatusFromColumn(s string) order.PaymentStatus {
	switch s {
	case order.PaymentPaid.String():
		return order.PaymentPaid
	case order.PaymentNotPaid.String():
		return order.PaymentNotPaid
	default:
		return order.PaymentStatusUnset
	}
}
