// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS
// architecture. Queries return flat read models for the monitoring API;
// they go through the repository ports so both storage backends serve
// them.
package queries

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// OrdersView names a slice of the order board.
type OrdersView string

const (
	// ViewSaved lists drafts parked by admins.
	ViewSaved OrdersView = "saved"

	// ViewPool lists orders waiting for a courier.
	ViewPool OrdersView = "pool"

	// ViewActive lists orders a courier is working.
	ViewActive OrdersView = "active"

	// ViewCompleted lists terminal orders that are not archived yet.
	ViewCompleted OrdersView = "completed"

	// ViewArchived lists archived orders.
	ViewArchived OrdersView = "archived"
)

// ParseOrdersView maps the wire form to an OrdersView.
func ParseOrdersView(s string) (OrdersView, error) {
	switch v := OrdersView(s); v {
	case ViewSaved, ViewPool, ViewActive, ViewCompleted, ViewArchived:
		return v, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("view", fmt.Errorf("%q is not a known orders view", s))
	}
}

// GetOrdersQuery retrieves one view of the order board.
type GetOrdersQuery struct {
	view OrdersView

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query for the given board view.
func NewGetOrdersQuery(view OrdersView) (GetOrdersQuery, error) {
	if _, err := ParseOrdersView(string(view)); err != nil {
		return GetOrdersQuery{}, err
	}

	return GetOrdersQuery{
		view:  view,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersQueryIsNotConstructed if validation fails.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// View returns the requested board view.
func (q GetOrdersQuery) View() OrdersView {
	return q.view
}

// GetOrdersQueryResponse is the flat read model of one order.
type GetOrdersQueryResponse struct {
	ID            string    `json:"id"`
	RequesterID   string    `json:"requester_id"`
	Status        string    `json:"status"`
	CourierID     *int64    `json:"courier_id,omitempty"`
	Items         string    `json:"items"`
	LocationLink  string    `json:"location_link,omitempty"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	PaymentStatus string    `json:"payment_status,omitempty"`
	TotalAmount   *string   `json:"total_amount,omitempty"`
	Feedback      int       `json:"feedback,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
