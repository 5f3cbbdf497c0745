package dispatch

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"dispatch/internal/adapters/out/memstore"
	"dispatch/internal/core/domain/model/admin"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/session"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopNotifier struct{}

func (nopNotifier) SendText(context.Context, string, string, *ports.ButtonLayout) (string, error) {
	return "m-1", nil
}

func (nopNotifier) SendMedia(context.Context, string, string, string, *ports.ButtonLayout) (string, error) {
	return "m-1", nil
}

func (nopNotifier) EditMessage(context.Context, string, string, string, *ports.ButtonLayout) error {
	return nil
}

func (nopNotifier) AnswerInteraction(context.Context, string, string) error {
	return nil
}

func newLockKeysRouter(t *testing.T) *Router {
	t.Helper()

	roster, err := admin.NewRoster([]kernel.ActorID{10})
	require.NoError(t, err)

	r, err := NewRouter(RouterParams{
		Orders:           memstore.NewOrderRepository(),
		Couriers:         memstore.NewCourierRepository(),
		Requesters:       memstore.NewRequesterRepository(),
		Artifacts:        memstore.NewArtifactRepository(),
		Sessions:         memstore.NewSessionRepository(),
		Roster:           roster,
		Notifier:         nopNotifier{},
		Logger:           slog.New(slog.DiscardHandler),
		ReminderInterval: time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r
}

func seedLockKeysOrder(t *testing.T, r *Router, selected *kernel.ActorID) kernel.UUID {
	t.Helper()
	ctx := context.Background()

	o, err := order.NewOrder(kernel.NewUUID(), "5000", order.New, "2x plov", "")
	require.NoError(t, err)
	if selected != nil {
		_, err = o.SelectCourier(*selected)
		require.NoError(t, err)
	}
	require.NoError(t, r.orders.Add(ctx, o))
	return o.ID()
}

func TestLockKeysIncludeSessionOrder(t *testing.T) {
	r := newLockKeysRouter(t)
	ctx := context.Background()

	orderID := seedLockKeysOrder(t, r, nil)
	require.NoError(t, r.sessions.Set(ctx, "10", session.NewPatch().
		WithMode(session.ModeEdit).
		WithField("total").
		WithOrderID(&orderID)))

	keys := r.lockKeys(ctx, TextMessage{Actor: Actor{ID: "10"}, Text: "150"})

	assert.Contains(t, keys, "actor/10")
	assert.Contains(t, keys, "order/"+orderID.String())
}

func TestLockKeysIncludeSessionOrderForLocation(t *testing.T) {
	r := newLockKeysRouter(t)
	ctx := context.Background()

	orderID := seedLockKeysOrder(t, r, nil)
	require.NoError(t, r.sessions.Set(ctx, "100", session.NewPatch().
		WithMode(session.ModeShareLocation).
		WithOrderID(&orderID)))

	keys := r.lockKeys(ctx, LocationMessage{Actor: Actor{ID: "100"}, Lat: 41.3, Lng: 69.2})

	assert.Contains(t, keys, "order/"+orderID.String())
}

func TestLockKeysIncludeCourierOfTargetOrder(t *testing.T) {
	r := newLockKeysRouter(t)
	ctx := context.Background()

	courierID := kernel.ActorID(100)
	orderID := seedLockKeysOrder(t, r, &courierID)

	keys := r.lockKeys(ctx, InteractionEvent{
		Actor: Actor{ID: "10"},
		Token: "go:" + orderID.String(),
	})

	assert.Contains(t, keys, "actor/10")
	assert.Contains(t, keys, "order/"+orderID.String())
	assert.Contains(t, keys, "actor/100", "dispatch serializes against the courier's own events")
}

func TestLockKeysIncludeAssignTargetCourier(t *testing.T) {
	r := newLockKeysRouter(t)
	ctx := context.Background()

	orderID := seedLockKeysOrder(t, r, nil)

	keys := r.lockKeys(ctx, InteractionEvent{
		Actor: Actor{ID: "10"},
		Token: "assign:100:" + orderID.String(),
	})

	assert.Contains(t, keys, "order/"+orderID.String())
	assert.Contains(t, keys, "actor/100")
}

func TestLockKeysIncludeCourierTargetAndTheirOrder(t *testing.T) {
	r := newLockKeysRouter(t)
	ctx := context.Background()

	courierID := kernel.ActorID(100)
	orderID := seedLockKeysOrder(t, r, nil)

	c, err := r.couriers.FindOrCreate(ctx, courierID, "Timur")
	require.NoError(t, err)
	require.NoError(t, c.Register())
	_, err = c.AssignOrder(orderID)
	require.NoError(t, err)
	require.NoError(t, r.couriers.Update(ctx, c))

	keys := r.lockKeys(ctx, InteractionEvent{
		Actor: Actor{ID: "10"},
		Token: "disconnect:approve:100",
	})

	assert.Contains(t, keys, "actor/100")
	assert.Contains(t, keys, "order/"+orderID.String(), "requeueing holds the abandoned order")
}
