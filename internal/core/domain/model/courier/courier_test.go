package courier_test

import (
	"testing"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourier(t *testing.T) *courier.Courier {
	t.Helper()
	id, err := kernel.ParseActorID("100")
	require.NoError(t, err)
	c, err := courier.NewCourier(id, "Timur")
	require.NoError(t, err)
	return c
}

func assigned(t *testing.T) (*courier.Courier, kernel.UUID) {
	t.Helper()
	c := newCourier(t)
	orderID := kernel.NewUUID()
	_, err := c.AssignOrder(orderID)
	require.NoError(t, err)
	return c, orderID
}

func TestNewCourier(t *testing.T) {
	t.Run("starts_online", func(t *testing.T) {
		c := newCourier(t)
		require.NoError(t, c.Validate())
		assert.Equal(t, courier.StatusOnline, c.Status())
		assert.Nil(t, c.CurrentOrderID())
	})

	t.Run("requires_display_name", func(t *testing.T) {
		id, err := kernel.ParseActorID("100")
		require.NoError(t, err)
		_, err = courier.NewCourier(id, "")
		require.Error(t, err)
	})

	t.Run("zero_value_fails_guard", func(t *testing.T) {
		var c courier.Courier
		assert.ErrorIs(t, c.Validate(), courier.ErrCourierIsNotConstructed)
	})
}

func TestRestoreCourier(t *testing.T) {
	t.Run("round_trips_through_snapshot", func(t *testing.T) {
		c, orderID := assigned(t)
		require.NoError(t, c.MarkBusy())

		restored, err := courier.RestoreCourier(c.Snapshot())
		require.NoError(t, err)
		assert.True(t, c.IsEqual(restored))
		assert.Equal(t, courier.StatusBusy, restored.Status())
		require.NotNil(t, restored.CurrentOrderID())
		assert.True(t, orderID.IsEqual(*restored.CurrentOrderID()))
	})

	t.Run("rejects_order_on_free_courier", func(t *testing.T) {
		s := newCourier(t).Snapshot()
		orderID := kernel.NewUUID()
		s.CurrentOrderID = &orderID

		_, err := courier.RestoreCourier(s)
		require.Error(t, err)
	})

	t.Run("rejects_working_courier_without_order", func(t *testing.T) {
		c, _ := assigned(t)
		s := c.Snapshot()
		s.CurrentOrderID = nil

		_, err := courier.RestoreCourier(s)
		require.Error(t, err)
	})
}

func TestCourierShift(t *testing.T) {
	t.Run("disconnect_and_register", func(t *testing.T) {
		c := newCourier(t)
		require.NoError(t, c.Disconnect())
		assert.Equal(t, courier.StatusOffline, c.Status())

		require.NoError(t, c.Register())
		assert.Equal(t, courier.StatusOnline, c.Status())
	})

	t.Run("register_while_online_is_noop", func(t *testing.T) {
		c := newCourier(t)
		require.NoError(t, c.Register())
		assert.Equal(t, courier.StatusOnline, c.Status())
	})

	t.Run("working_courier_cannot_self_disconnect", func(t *testing.T) {
		c, _ := assigned(t)
		err := c.Disconnect()
		assert.ErrorIs(t, err, courier.ErrCourierIsWorking)
		assert.Equal(t, courier.StatusAssigned, c.Status())
	})

	t.Run("force_disconnect_abandons_order", func(t *testing.T) {
		c, orderID := assigned(t)
		abandoned, err := c.ForceDisconnect()
		require.NoError(t, err)
		require.NotNil(t, abandoned)
		assert.True(t, orderID.IsEqual(*abandoned))
		assert.Equal(t, courier.StatusOffline, c.Status())
		assert.Nil(t, c.CurrentOrderID())
	})
}

func TestCourierAssignment(t *testing.T) {
	t.Run("assignment_from_online", func(t *testing.T) {
		c, orderID := assigned(t)
		assert.Equal(t, courier.StatusAssigned, c.Status())
		require.NotNil(t, c.CurrentOrderID())
		assert.True(t, orderID.IsEqual(*c.CurrentOrderID()))
	})

	t.Run("reassignment_returns_previous_order", func(t *testing.T) {
		c, first := assigned(t)
		second := kernel.NewUUID()

		previous, err := c.AssignOrder(second)
		require.NoError(t, err)
		require.NotNil(t, previous)
		assert.True(t, first.IsEqual(*previous))
		assert.True(t, second.IsEqual(*c.CurrentOrderID()))
	})

	t.Run("busy_courier_keeps_busy_on_reassignment", func(t *testing.T) {
		c, _ := assigned(t)
		require.NoError(t, c.MarkBusy())

		_, err := c.AssignOrder(kernel.NewUUID())
		require.NoError(t, err)
		assert.Equal(t, courier.StatusBusy, c.Status())
	})

	t.Run("offline_courier_cannot_take_orders", func(t *testing.T) {
		c := newCourier(t)
		require.NoError(t, c.Disconnect())

		_, err := c.AssignOrder(kernel.NewUUID())
		require.Error(t, err)
	})

	t.Run("release_returns_courier_to_pool", func(t *testing.T) {
		c, _ := assigned(t)
		require.NoError(t, c.MarkBusy())
		require.NoError(t, c.Release())
		assert.Equal(t, courier.StatusOnline, c.Status())
		assert.Nil(t, c.CurrentOrderID())
	})

	t.Run("release_requires_work_in_progress", func(t *testing.T) {
		c := newCourier(t)
		require.Error(t, c.Release())
	})

	t.Run("pickup_requires_assignment", func(t *testing.T) {
		c := newCourier(t)
		require.Error(t, c.MarkBusy())
	})
}

func TestCourierBlocking(t *testing.T) {
	t.Run("block_abandons_current_order", func(t *testing.T) {
		c, orderID := assigned(t)
		abandoned, err := c.Block()
		require.NoError(t, err)
		require.NotNil(t, abandoned)
		assert.True(t, orderID.IsEqual(*abandoned))
		assert.Equal(t, courier.StatusBlocked, c.Status())
		assert.Nil(t, c.CurrentOrderID())
	})

	t.Run("block_is_idempotent", func(t *testing.T) {
		c := newCourier(t)
		_, err := c.Block()
		require.NoError(t, err)
		abandoned, err := c.Block()
		require.NoError(t, err)
		assert.Nil(t, abandoned)
	})

	t.Run("blocked_courier_rejects_self_service", func(t *testing.T) {
		c := newCourier(t)
		_, err := c.Block()
		require.NoError(t, err)

		assert.ErrorIs(t, c.Register(), courier.ErrCourierIsBlocked)
		assert.ErrorIs(t, c.Disconnect(), courier.ErrCourierIsBlocked)
		_, err = c.AssignOrder(kernel.NewUUID())
		assert.ErrorIs(t, err, courier.ErrCourierIsBlocked)
	})

	t.Run("unblock_returns_online", func(t *testing.T) {
		c := newCourier(t)
		_, err := c.Block()
		require.NoError(t, err)
		require.NoError(t, c.Unblock())
		assert.Equal(t, courier.StatusOnline, c.Status())

		require.Error(t, c.Unblock())
	})
}
