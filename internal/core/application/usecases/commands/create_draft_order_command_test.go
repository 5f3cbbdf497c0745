package commands_test

import (
	"context"
	"testing"

	"dispatch/internal/adapters/out/memstore"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateDraftOrderCommand(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		id := kernel.NewUUID()

		cmd, err := commands.NewCreateDraftOrderCommand(id, "2x coffee", "https://maps.example/x")
		require.NoError(t, err)

		assert.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(id))
		assert.Equal(t, "2x coffee", cmd.Items())
		assert.Equal(t, "https://maps.example/x", cmd.LocationLink())
	})

	t.Run("location link is optional", func(t *testing.T) {
		_, err := commands.NewCreateDraftOrderCommand(kernel.NewUUID(), "2x coffee", "")
		assert.NoError(t, err)
	})

	t.Run("items are required", func(t *testing.T) {
		_, err := commands.NewCreateDraftOrderCommand(kernel.NewUUID(), "", "")
		assert.ErrorIs(t, err, commands.ErrItemsAreRequired)
	})

	t.Run("zero order id is rejected", func(t *testing.T) {
		_, err := commands.NewCreateDraftOrderCommand(kernel.UUID{}, "2x coffee", "")
		assert.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.CreateDraftOrderCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateDraftOrderCommandIsNotConstructed)
	})
}

func TestCreateDraftOrderCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()
	orders := memstore.NewOrderRepository()
	handler := commands.NewCreateDraftOrderCommandHandler(orders)

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateDraftOrderCommand(id, "2x coffee", "")
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	created, err := orders.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, order.Draft, created.Status())
	assert.Equal(t, "unassigned", created.RequesterID())
	assert.Equal(t, "2x coffee", created.Items())
}

func TestCreateDraftOrderCommandHandler_RejectsUnconstructedCommand(t *testing.T) {
	handler := commands.NewCreateDraftOrderCommandHandler(memstore.NewOrderRepository())

	var cmd commands.CreateDraftOrderCommand
	err := handler.Handle(context.Background(), cmd)

	assert.ErrorIs(t, err, commands.ErrCreateDraftOrderCommandIsNotConstructed)
}
