package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourierWithStatus(t *testing.T, id int64, status courier.Status) *courier.Courier {
	t.Helper()

	c, err := courier.NewCourier(kernel.ActorID(id), "Courier")
	require.NoError(t, err)

	switch status {
	case courier.StatusOffline:
		require.NoError(t, c.Disconnect())
	case courier.StatusAssigned:
		_, err = c.AssignOrder(kernel.NewUUID())
		require.NoError(t, err)
	case courier.StatusBusy:
		_, err = c.AssignOrder(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, c.MarkBusy())
	case courier.StatusBlocked:
		_, err = c.Block()
		require.NoError(t, err)
	}
	return c
}

func TestCourierPicker_RankPrefersIdleCouriers(t *testing.T) {
	picker := services.NewCourierPicker()

	busy := newCourierWithStatus(t, 1, courier.StatusBusy)
	idle := newCourierWithStatus(t, 2, courier.StatusOnline)
	assigned := newCourierWithStatus(t, 3, courier.StatusAssigned)

	ranked := picker.Rank([]*courier.Courier{busy, idle, assigned})

	require.Len(t, ranked, 3)
	assert.Equal(t, idle.ID(), ranked[0].ID())
	assert.Equal(t, assigned.ID(), ranked[1].ID())
	assert.Equal(t, busy.ID(), ranked[2].ID())
}

func TestCourierPicker_RankExcludesOfflineAndBlocked(t *testing.T) {
	picker := services.NewCourierPicker()

	offline := newCourierWithStatus(t, 1, courier.StatusOffline)
	blocked := newCourierWithStatus(t, 2, courier.StatusBlocked)
	idle := newCourierWithStatus(t, 3, courier.StatusOnline)

	ranked := picker.Rank([]*courier.Courier{offline, blocked, idle})

	require.Len(t, ranked, 1)
	assert.Equal(t, idle.ID(), ranked[0].ID())
}

func TestCourierPicker_RankBreaksTiesByActorID(t *testing.T) {
	picker := services.NewCourierPicker()

	second := newCourierWithStatus(t, 20, courier.StatusOnline)
	first := newCourierWithStatus(t, 10, courier.StatusOnline)

	ranked := picker.Rank([]*courier.Courier{second, first})

	require.Len(t, ranked, 2)
	assert.Equal(t, first.ID(), ranked[0].ID())
	assert.Equal(t, second.ID(), ranked[1].ID())
}

func TestCourierPicker_Suggest(t *testing.T) {
	picker := services.NewCourierPicker()

	t.Run("returns the best candidate", func(t *testing.T) {
		busy := newCourierWithStatus(t, 1, courier.StatusBusy)
		idle := newCourierWithStatus(t, 2, courier.StatusOnline)

		suggested, err := picker.Suggest([]*courier.Courier{busy, idle})
		require.NoError(t, err)
		assert.Equal(t, idle.ID(), suggested.ID())
	})

	t.Run("errors when nobody can take an order", func(t *testing.T) {
		offline := newCourierWithStatus(t, 1, courier.StatusOffline)

		_, err := picker.Suggest([]*courier.Courier{offline})
		assert.ErrorIs(t, err, services.ErrCourierNotFound)
	})
}
