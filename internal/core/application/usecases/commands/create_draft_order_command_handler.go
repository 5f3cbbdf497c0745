package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// unassignedRequester is the synthetic requester id carried by orders that
// are not tied to a reachable customer yet.
const unassignedRequester = "unassigned"

// CreateDraftOrderCommandHandler handles the business logic for draft
// creation. Drafts belong to the synthetic "unassigned" requester until an
// admin binds a real customer through the edit menu.
type CreateDraftOrderCommandHandler struct {
	orders ports.OrderRepository
}

// NewCreateDraftOrderCommandHandler creates a handler for draft creation.
func NewCreateDraftOrderCommandHandler(orders ports.OrderRepository) CreateDraftOrderCommandHandler {
	return CreateDraftOrderCommandHandler{
		orders: orders,
	}
}

// Handle processes the draft creation command.
func (h *CreateDraftOrderCommandHandler) Handle(ctx context.Context, cmd CreateDraftOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	draft, err := order.NewOrder(cmd.OrderID(), unassignedRequester, order.Draft, cmd.Items(), cmd.LocationLink())
	if err != nil {
		return err
	}

	return h.orders.Add(ctx, draft)
}
