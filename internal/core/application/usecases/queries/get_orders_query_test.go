package queries_test

import (
	"context"
	"testing"

	"dispatch/internal/adapters/out/memstore"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrdersView(t *testing.T) {
	for _, valid := range []string{"saved", "pool", "active", "completed", "archived"} {
		view, err := queries.ParseOrdersView(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, string(view))
	}

	_, err := queries.ParseOrdersView("everything")
	assert.Error(t, err)
}

func TestGetOrdersQuery_Validate(t *testing.T) {
	var zero queries.GetOrdersQuery
	assert.ErrorIs(t, zero.Validate(), queries.ErrGetOrdersQueryIsNotConstructed)

	q, err := queries.NewGetOrdersQuery(queries.ViewPool)
	require.NoError(t, err)
	assert.NoError(t, q.Validate())
}

func TestGetOrdersQueryHandler_Handle(t *testing.T) {
	ctx := context.Background()
	orders := memstore.NewOrderRepository()
	handler := queries.NewGetOrdersQueryHandler(orders)

	draft, err := order.NewOrder(kernel.NewUUID(), "unassigned", order.Draft, "bread", "")
	require.NoError(t, err)
	require.NoError(t, orders.Add(ctx, draft))

	pooled, err := order.NewOrder(kernel.NewUUID(), "5000", order.NewOnline, "coffee", "")
	require.NoError(t, err)
	require.NoError(t, pooled.SetTotalAmount(decimal.NewFromInt(150)))
	require.NoError(t, orders.Add(ctx, pooled))

	active, err := order.NewOrder(kernel.NewUUID(), "5001", order.New, "cake", "")
	require.NoError(t, err)
	_, err = active.SelectCourier(kernel.ActorID(100))
	require.NoError(t, err)
	require.NoError(t, active.Dispatch())
	require.NoError(t, orders.Add(ctx, active))

	t.Run("pool view", func(t *testing.T) {
		q, err := queries.NewGetOrdersQuery(queries.ViewPool)
		require.NoError(t, err)

		got, err := handler.Handle(ctx, q)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, pooled.ID().String(), got[0].ID)
		assert.Equal(t, "new_online", got[0].Status)
		require.NotNil(t, got[0].TotalAmount)
		assert.Equal(t, "150", *got[0].TotalAmount)
		assert.Nil(t, got[0].CourierID)
	})

	t.Run("active view carries the courier", func(t *testing.T) {
		q, err := queries.NewGetOrdersQuery(queries.ViewActive)
		require.NoError(t, err)

		got, err := handler.Handle(ctx, q)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.NotNil(t, got[0].CourierID)
		assert.Equal(t, int64(100), *got[0].CourierID)
	})

	t.Run("saved view", func(t *testing.T) {
		q, err := queries.NewGetOrdersQuery(queries.ViewSaved)
		require.NoError(t, err)

		got, err := handler.Handle(ctx, q)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, draft.ID().String(), got[0].ID)
	})

	t.Run("archived view is empty", func(t *testing.T) {
		q, err := queries.NewGetOrdersQuery(queries.ViewArchived)
		require.NoError(t, err)

		got, err := handler.Handle(ctx, q)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unconstructed query is rejected", func(t *testing.T) {
		var q queries.GetOrdersQuery
		_, err := handler.Handle(ctx, q)
		assert.ErrorIs(t, err, queries.ErrGetOrdersQueryIsNotConstructed)
	})
}

func TestGetAllCouriersQueryHandler_Handle(t *testing.T) {
	ctx := context.Background()
	couriers := memstore.NewCourierRepository()
	handler := queries.NewGetAllCouriersQueryHandler(couriers)

	_, err := couriers.FindOrCreate(ctx, kernel.ActorID(100), "Idle")
	require.NoError(t, err)

	working, err := couriers.FindOrCreate(ctx, kernel.ActorID(200), "Working")
	require.NoError(t, err)
	orderID := kernel.NewUUID()
	_, err = working.AssignOrder(orderID)
	require.NoError(t, err)
	require.NoError(t, couriers.Update(ctx, working))

	got, err := handler.Handle(ctx, queries.NewGetAllCouriersQuery())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(100), got[0].ID)
	assert.Equal(t, "online", got[0].Status)
	assert.Nil(t, got[0].CurrentOrderID)

	assert.Equal(t, int64(200), got[1].ID)
	assert.Equal(t, "assigned", got[1].Status)
	require.NotNil(t, got[1].CurrentOrderID)
	assert.Equal(t, orderID.String(), *got[1].CurrentOrderID)
}
