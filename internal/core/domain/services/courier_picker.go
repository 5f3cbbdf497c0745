package services

import (
	"errors"
	"sort"

	"dispatch/internal/core/domain/model/courier"
)

// ErrCourierNotFound is returned when no courier is available to suggest.
// This occurs when either no couriers are provided or every provided
// courier is offline or blocked.
var ErrCourierNotFound = errors.New("courier not found")

// CourierPicker is a domain service that ranks couriers by how suitable
// they are to take another order. Idle couriers rank above working ones,
// since handing an order to a busy courier delays both deliveries.
type CourierPicker struct{}

// NewCourierPicker creates a new CourierPicker instance.
func NewCourierPicker() CourierPicker {
	return CourierPicker{}
}

// Suggest returns the most suitable courier for a new order.
// Returns ErrCourierNotFound when nobody can take one.
func (p CourierPicker) Suggest(couriers []*courier.Courier) (*courier.Courier, error) {
	ranked := p.Rank(couriers)
	if len(ranked) == 0 {
		return nil, ErrCourierNotFound
	}
	return ranked[0], nil
}

// Rank filters out couriers that cannot take an order and sorts the rest
// by suitability: idle first, then lightly loaded, ties broken by actor id
// so the order is stable across renders.
func (p CourierPicker) Rank(couriers []*courier.Courier) []*courier.Courier {
	eligible := make([]*courier.Courier, 0, len(couriers))
	for _, c := range couriers {
		if c.Validate() != nil {
			continue
		}
		if c.Status() == courier.StatusOnline || c.Status().IsWorking() {
			eligible = append(eligible, c)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		left, right := p.load(eligible[i]), p.load(eligible[j])
		if left != right {
			return left < right
		}
		return eligible[i].ID() < eligible[j].ID()
	})

	return eligible
}

func (p CourierPicker) load(c *courier.Courier) int {
	switch c.Status() {
	case courier.StatusOnline:
		return 0
	case courier.StatusAssigned:
		return 1
	case courier.StatusBusy:
		return 2
	default:
		return 3
	}
}
