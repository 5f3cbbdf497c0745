// Package courierrepo persists courier aggregates in PostgreSQL via GORM.
package courierrepo

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO is the database row for a courier aggregate. The primary key
// is the courier's messaging actor id, not a surrogate.
type CourierDTO struct {
	ID             int64 `gorm:"primaryKey;autoIncrement:false"`
	DisplayName    string
	Status         string     `gorm:"index"`
	CurrentOrderID *uuid.UUID `gorm:"type:uuid"`
}

// TableName overrides GORM's default naming to use "couriers".
func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	s := aggregate.Snapshot()

	var orderID *uuid.UUID
	if s.CurrentOrderID != nil {
		raw := s.CurrentOrderID.Bytes()
		orderID = &raw
	}

	return CourierDTO{
		ID:             int64(s.ID),
		DisplayName:    s.DisplayName,
		Status:         s.Status.String(),
		CurrentOrderID: orderID,
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	status, err := courier.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.CurrentOrderID != nil {
		id, orderErr := kernel.UUIDFromString(dto.CurrentOrderID.String())
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &id
	}

	return courier.RestoreCourier(courier.Snapshot{
		ID:             kernel.ActorID(dto.ID),
		DisplayName:    dto.DisplayName,
		Status:         status,
		CurrentOrderID: orderID,
	})
}
