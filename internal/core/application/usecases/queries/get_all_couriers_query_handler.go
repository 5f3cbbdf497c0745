package queries

import (
	"context"

	"dispatch/internal/core/ports"
)

// GetAllCouriersQueryHandler retrieves the courier roster through the
// courier repository port.
type GetAllCouriersQueryHandler struct {
	couriers ports.CourierRepository
}

// NewGetAllCouriersQueryHandler creates a handler for courier retrieval
// queries.
func NewGetAllCouriersQueryHandler(couriers ports.CourierRepository) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{couriers: couriers}
}

// Handle executes the query to retrieve all couriers, ordered by actor id.
func (h GetAllCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCouriersQuery,
) ([]GetAllCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.couriers.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]GetAllCouriersQueryResponse, 0, len(found))
	for _, c := range found {
		resp := GetAllCouriersQueryResponse{
			ID:          int64(c.ID()),
			DisplayName: c.DisplayName(),
			Status:      c.Status().String(),
		}
		if id := c.CurrentOrderID(); id != nil {
			s := id.String()
			resp.CurrentOrderID = &s
		}
		response = append(response, resp)
	}

	return response, nil
}
