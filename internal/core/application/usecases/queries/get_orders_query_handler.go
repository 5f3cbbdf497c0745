package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// GetOrdersQueryHandler retrieves order board views through the order
// repository port.
type GetOrdersQueryHandler struct {
	orders ports.OrderRepository
}

// NewGetOrdersQueryHandler creates a handler for order board queries.
func NewGetOrdersQueryHandler(orders ports.OrderRepository) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{orders: orders}
}

// Handle executes the query and returns the orders of the requested view,
// oldest first.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		found []*order.Order
		err   error
	)
	if query.View() == ViewArchived {
		found, err = h.orders.GetAllArchived(ctx)
	} else {
		found, err = h.orders.GetAllByStatuses(ctx, viewStatuses(query.View()))
	}
	if err != nil {
		return nil, err
	}

	response := make([]GetOrdersQueryResponse, 0, len(found))
	for _, o := range found {
		response = append(response, toReadModel(o))
	}
	return response, nil
}

func viewStatuses(view OrdersView) []order.Status {
	switch view {
	case ViewSaved:
		return []order.Status{order.Draft}
	case ViewPool:
		return []order.Status{order.New, order.NewOnline}
	case ViewActive:
		return []order.Status{order.ActiveReady, order.ActivePickedUp, order.Arrived}
	case ViewCompleted:
		return []order.Status{order.Completed, order.Cancelled}
	default:
		return nil
	}
}

func toReadModel(o *order.Order) GetOrdersQueryResponse {
	resp := GetOrdersQueryResponse{
		ID:            o.ID().String(),
		RequesterID:   o.RequesterID(),
		Status:        o.Status().String(),
		Items:         o.Items(),
		LocationLink:  o.LocationLink(),
		PaymentMethod: o.PaymentMethod().String(),
		PaymentStatus: o.PaymentStatus().String(),
		Feedback:      o.Feedback(),
		CreatedAt:     o.CreatedAt(),
	}

	if id := o.CourierID(); id != nil {
		raw := int64(*id)
		resp.CourierID = &raw
	}
	if total := o.TotalAmount(); total != nil {
		s := total.String()
		resp.TotalAmount = &s
	}
	return resp
}
