// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. The interactive dispatch workflow goes through the event
// router; commands cover the REST surface used by external integrations.
package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateDraftOrderCommandIsNotConstructed = errors.New(
		"CreateDraftOrderCommand must be created via NewCreateDraftOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("items are required")
)

// CreateDraftOrderCommand represents a request to park a new order as a
// draft. Drafts created through the API show up in the admins' saved list
// the same way drafts composed in chat do.
type CreateDraftOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	items        string
	locationLink string

	guard guard.ConstructorGuard
}

// NewCreateDraftOrderCommand creates a command to register a draft order.
// The item description is mandatory; the location link may be filled in
// later through the edit menu.
func NewCreateDraftOrderCommand(orderID kernel.UUID, items, locationLink string) (CreateDraftOrderCommand, error) {
	cmd := CreateDraftOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
	); err != nil {
		return CreateDraftOrderCommand{}, err
	}
	cmd.locationLink = locationLink

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateDraftOrderCommandIsNotConstructed if validation fails.
func (c CreateDraftOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateDraftOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateDraftOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the item description of the draft.
func (c CreateDraftOrderCommand) Items() string {
	return c.items
}

// LocationLink returns the optional delivery location link.
func (c CreateDraftOrderCommand) LocationLink() string {
	return c.locationLink
}

func (c *CreateDraftOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateDraftOrderCommand) setItems(items string) error {
	if items == "" {
		return ErrItemsAreRequired
	}

	c.items = items
	return nil
}
