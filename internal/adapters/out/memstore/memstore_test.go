package memstore_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/memstore"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/session"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, requesterID string, status order.Status) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), requesterID, status, "items", "link")
	require.NoError(t, err)
	return o
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("add_get_update", func(t *testing.T) {
		repo := memstore.NewOrderRepository()
		o := newOrder(t, "r1", order.New)

		require.NoError(t, repo.Add(ctx, o))
		require.Error(t, repo.Add(ctx, o), "double add is rejected")

		got, err := repo.Get(ctx, o.ID())
		require.NoError(t, err)
		assert.True(t, o.IsEqual(got))

		got.SetItems("changed")
		require.NoError(t, repo.Update(ctx, got))

		reread, err := repo.Get(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, "changed", reread.Items())
	})

	t.Run("get_missing_is_not_found", func(t *testing.T) {
		repo := memstore.NewOrderRepository()
		_, err := repo.Get(ctx, kernel.NewUUID())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("reads_return_copies", func(t *testing.T) {
		repo := memstore.NewOrderRepository()
		o := newOrder(t, "r1", order.New)
		require.NoError(t, repo.Add(ctx, o))

		got, err := repo.Get(ctx, o.ID())
		require.NoError(t, err)
		got.SetItems("mutated locally")

		reread, err := repo.Get(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, "items", reread.Items())
	})

	t.Run("status_views_skip_archived", func(t *testing.T) {
		repo := memstore.NewOrderRepository()

		pool := newOrder(t, "r1", order.New)
		require.NoError(t, repo.Add(ctx, pool))

		done := newOrder(t, "r2", order.New)
		_, err := done.Cancel()
		require.NoError(t, err)
		require.NoError(t, done.Archive())
		require.NoError(t, repo.Add(ctx, done))

		visible, err := repo.GetAllByStatuses(ctx, []order.Status{order.New, order.Cancelled})
		require.NoError(t, err)
		require.Len(t, visible, 1)
		assert.True(t, pool.IsEqual(visible[0]))

		archived, err := repo.GetAllArchived(ctx)
		require.NoError(t, err)
		require.Len(t, archived, 1)
		assert.True(t, done.IsEqual(archived[0]))
	})

	t.Run("active_lookup_by_courier", func(t *testing.T) {
		repo := memstore.NewOrderRepository()
		courierID, err := kernel.ParseActorID("100")
		require.NoError(t, err)

		o := newOrder(t, "r1", order.New)
		_, err = o.SelectCourier(courierID)
		require.NoError(t, err)
		require.NoError(t, o.Dispatch())
		require.NoError(t, repo.Add(ctx, o))

		got, err := repo.GetActiveByCourier(ctx, courierID)
		require.NoError(t, err)
		assert.True(t, o.IsEqual(got))

		other, err := kernel.ParseActorID("200")
		require.NoError(t, err)
		_, err = repo.GetActiveByCourier(ctx, other)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestCourierRepositoryFindOrCreate(t *testing.T) {
	ctx := context.Background()
	repo := memstore.NewCourierRepository()
	id, err := kernel.ParseActorID("100")
	require.NoError(t, err)

	first, err := repo.FindOrCreate(ctx, id, "Timur")
	require.NoError(t, err)

	// repeated calls must return the stored courier, not reset it
	require.NoError(t, first.Disconnect())
	require.NoError(t, repo.Update(ctx, first))

	second, err := repo.FindOrCreate(ctx, id, "Other Name")
	require.NoError(t, err)
	assert.True(t, first.IsEqual(second))
	assert.Equal(t, "Timur", second.DisplayName())
	assert.Equal(t, first.Status(), second.Status())

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRequesterRepository(t *testing.T) {
	ctx := context.Background()
	repo := memstore.NewRequesterRepository()

	created, err := repo.FindOrCreate(ctx, "chat-1", "Alice")
	require.NoError(t, err)

	again, err := repo.FindOrCreate(ctx, "chat-1", "ignored")
	require.NoError(t, err)
	assert.Equal(t, created.ID(), again.ID())
	assert.Equal(t, "Alice", again.DisplayName())

	byName, err := repo.FindByDisplayName(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, "chat-1", byName.ID())

	_, err = repo.FindByDisplayName(ctx, "Bob")
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("missing_session_is_zero", func(t *testing.T) {
		repo := memstore.NewSessionRepository()
		s, err := repo.Get(ctx, "100")
		require.NoError(t, err)
		assert.True(t, s.IsZero())
	})

	t.Run("set_merges_patches", func(t *testing.T) {
		repo := memstore.NewSessionRepository()
		require.NoError(t, repo.Set(ctx, "100",
			session.NewPatch().WithMode(session.ModeAddQRPhoto).WithMediaRef("file-1")))
		require.NoError(t, repo.Set(ctx, "100",
			session.NewPatch().WithMode(session.ModeAddQRTitle)))

		s, err := repo.Get(ctx, "100")
		require.NoError(t, err)
		assert.Equal(t, session.ModeAddQRTitle, s.Mode)
		assert.Equal(t, "file-1", s.MediaRef)
	})

	t.Run("clear_and_sweep", func(t *testing.T) {
		repo := memstore.NewSessionRepository()
		require.NoError(t, repo.Set(ctx, "100", session.NewPatch().WithMode(session.ModeEdit)))
		require.NoError(t, repo.Set(ctx, "200", session.NewPatch().WithMode(session.ModeEdit)))

		require.NoError(t, repo.Clear(ctx, "100"))
		s, err := repo.Get(ctx, "100")
		require.NoError(t, err)
		assert.True(t, s.IsZero())

		swept, err := repo.DeleteExpired(ctx, time.Now().Add(time.Hour), 30*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 1, swept)
	})
}
