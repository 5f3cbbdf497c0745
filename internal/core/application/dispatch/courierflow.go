package dispatch

import (
	"context"
	"fmt"

	"dispatch/internal/core/application/layouts"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/session"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/i18n"
)

// registerCourier handles /register: the courier joins the shift, created
// on first contact.
func (r *Router) registerCourier(ctx context.Context, ev TextMessage) error {
	id, err := kernel.ParseActorID(ev.Actor.ID)
	if err != nil {
		return err
	}
	name := ev.Actor.DisplayName
	if name == "" {
		name = ev.Actor.ID
	}

	c, err := r.couriers.FindOrCreate(ctx, id, name)
	if err != nil {
		return err
	}
	if err := c.Register(); err != nil {
		return err
	}
	if err := r.couriers.Update(ctx, c); err != nil {
		return err
	}

	r.gateway.Send(ctx, ev.Actor.ID, "🟢 You are online. Wait for deliveries.", nil)
	r.gateway.Broadcast(ctx, r.roster.All(),
		fmt.Sprintf("🟢 Driver %s is now online.", c.DisplayName()), nil)
	return nil
}

// disconnectCourier handles /disconnect. A free courier goes offline at
// once; a working one needs admin approval, requested with a repeating
// prompt until some admin responds.
func (r *Router) disconnectCourier(ctx context.Context, ev TextMessage) error {
	id, err := kernel.ParseActorID(ev.Actor.ID)
	if err != nil {
		return err
	}
	c, err := r.couriers.Get(ctx, id)
	if err != nil {
		return err
	}

	if c.Status() == courier.StatusOffline {
		r.gateway.Send(ctx, ev.Actor.ID, "You are already disconnected.", nil)
		return nil
	}

	if !c.Status().IsWorking() {
		if err := c.Disconnect(); err != nil {
			return err
		}
		if err := r.couriers.Update(ctx, c); err != nil {
			return err
		}
		r.gateway.Send(ctx, ev.Actor.ID, "You are now disconnected.", nil)
		return nil
	}

	prompt := fmt.Sprintf("Driver %s wants to disconnect but has an active order. Approve?", c.DisplayName())
	layout := layouts.DisconnectApproval(c.ID())
	r.gateway.Broadcast(ctx, r.roster.All(), prompt, layout)
	r.gateway.Send(ctx, ev.Actor.ID,
		"You have an active order. An admin must approve your disconnection. This prompt will repeat until an admin responds.", nil)

	admins := r.roster.All()
	r.reminders.Start(c.ID(), func(ctx context.Context) {
		r.gateway.Broadcast(ctx, admins, prompt, layout)
	})
	return nil
}

// resolveDisconnect handles disconnect:<approve|deny>:<courierId> pressed
// by an admin. Both outcomes take the courier offline and requeue their
// order; only the messaging differs. The first response wins and stops the
// reminder.
func (r *Router) resolveDisconnect(ctx context.Context, ev InteractionEvent, a Action) error {
	if !r.isAdmin(ev.Actor.ID) {
		return nil
	}
	id, err := kernel.ParseActorID(a.TargetID)
	if err != nil {
		return err
	}
	c, err := r.couriers.Get(ctx, id)
	if err != nil {
		return err
	}

	if !r.reminders.Stop(c.ID()) && c.Status() == courier.StatusOffline {
		r.gateway.Send(ctx, ev.Actor.ID, "Already resolved.", nil)
		return nil
	}

	abandoned, err := c.ForceDisconnect()
	if err != nil {
		return err
	}
	if err := r.couriers.Update(ctx, c); err != nil {
		return err
	}
	if abandoned != nil {
		r.requeueOrder(ctx, *abandoned)
	}

	switch a.SubVerb {
	case "approve":
		r.gateway.Send(ctx, ev.Actor.ID, fmt.Sprintf("%s disconnected.", c.DisplayName()), nil)
		r.gateway.Send(ctx, c.ID().String(),
			"Your disconnection was approved. You are now offline.", nil)
	case "deny":
		r.gateway.Send(ctx, ev.Actor.ID, fmt.Sprintf("%s disconnected with penalty.", c.DisplayName()), nil)
		r.gateway.Send(ctx, c.ID().String(),
			"Your disconnection was denied but you have been set to offline. A penalty may be applied.", nil)
	default:
		return errs.NewValueIsInvalidError("disconnect resolution")
	}
	return nil
}

// courierAction handles driver:<sub>:<orderId>. The progression shortcuts
// are shared with admins, who can drive an order forward on the courier's
// behalf; anyone else replaying a token is ignored.
func (r *Router) courierAction(ctx context.Context, ev InteractionEvent, a Action) error {
	switch a.SubVerb {
	case "cancel_approve":
		return r.withAdmin(r.isAdmin(ev.Actor.ID), func() error {
			return r.courierCancelApprove(ctx, ev, a.TargetID)
		})
	case "cancel_deny":
		return r.withAdmin(r.isAdmin(ev.Actor.ID), func() error {
			return r.courierCancelDeny(ctx, ev, a.TargetID)
		})
	case "save", "cancel_edit":
		r.gateway.Send(ctx, ev.Actor.ID, "Done.", nil)
		return nil
	}

	o, err := r.getOrder(ctx, a.TargetID)
	if err != nil {
		return err
	}
	if !r.mayDriveOrder(o, ev.Actor.ID) {
		return nil
	}

	switch a.SubVerb {
	case "pickup":
		return r.pickupOrder(ctx, ev, o)
	case "arrived":
		return r.markArrived(ctx, ev, o)
	case "completed":
		return r.completeOrder(ctx, ev, o)
	case "delay":
		r.gateway.Send(ctx, ev.Actor.ID, "How long is the delay?", layouts.Delay(o.ID()))
		return nil
	case "location":
		orderID := o.ID()
		err = r.sessions.Set(ctx, ev.Actor.ID, session.NewPatch().
			WithMode(session.ModeShareLocation).
			WithOrderID(&orderID))
		if err != nil {
			return err
		}
		r.gateway.Send(ctx, ev.Actor.ID, "Share your live location:",
			layouts.LocationRequest(i18n.LocaleEN))
		return nil
	case "cancel_request":
		return r.courierCancelRequest(ctx, ev, o)
	case "active_order_detail":
		r.gateway.Send(ctx, ev.Actor.ID, r.renderOrderDetail(ctx, o), layouts.CourierActions(o))
		return nil
	case "edit":
		r.gateway.Send(ctx, ev.Actor.ID, "Reply with your note, then save:", layouts.CourierEdit(o.ID()))
		return nil
	default:
		return errs.NewValueIsInvalidError("driver action")
	}
}

// mayDriveOrder reports whether the actor can move the delivery: the
// order's assigned courier, or an admin acting on their behalf. Tokens
// replayed by anyone else are dropped without a reply, the same way the
// operator buttons treat non-admins.
func (r *Router) mayDriveOrder(o *order.Order, actorID string) bool {
	if r.isAdmin(actorID) {
		return true
	}
	id, err := kernel.ParseActorID(actorID)
	if err != nil {
		return false
	}
	assigned := o.CourierID()
	return assigned != nil && *assigned == id
}

func (r *Router) pickupOrder(ctx context.Context, ev InteractionEvent, o *order.Order) error {
	if err := o.Pickup(); err != nil {
		return err
	}
	if err := r.orders.Update(ctx, o); err != nil {
		return err
	}

	if id := o.CourierID(); id != nil {
		if c, err := r.couriers.Get(ctx, *id); err == nil {
			if err := c.MarkBusy(); err == nil {
				if err := r.couriers.Update(ctx, c); err != nil {
					return err
				}
			}
		}
	}

	r.gateway.Send(ctx, ev.Actor.ID, "🛍️ Picked up. Drive safe!", layouts.CourierActions(o))
	r.notifyRequesterLocalized(ctx, o, func(loc i18n.Locale, name string) (string, *ports.ButtonLayout) {
		return i18n.Translate(i18n.KeyOrderOnTheWay, loc, name), layouts.Ping(o.ID(), loc)
	})
	return nil
}

func (r *Router) markArrived(ctx context.Context, ev InteractionEvent, o *order.Order) error {
	if err := o.Arrive(); err != nil {
		return err
	}
	if err := r.orders.Update(ctx, o); err != nil {
		return err
	}

	r.gateway.Send(ctx, ev.Actor.ID, "🏁 Customer notified.", layouts.CourierActions(o))
	r.notifyRequesterLocalized(ctx, o, func(loc i18n.Locale, _ string) (string, *ports.ButtonLayout) {
		return i18n.Translate(i18n.KeyCourierArrived, loc, o.ID().String()), nil
	})
	return nil
}

// completeOrder finishes the delivery: the order terminates, the courier
// returns to the pool, the requester is asked for feedback and the admins
// are told. Pressing the button twice fails the second transition, so the
// side effects fire exactly once.
func (r *Router) completeOrder(ctx context.Context, ev InteractionEvent, o *order.Order) error {
	released, err := o.Complete()
	if err != nil {
		return err
	}
	if err := r.orders.Update(ctx, o); err != nil {
		return err
	}

	if released != nil {
		r.releaseCourier(ctx, *released)
		r.gateway.Send(ctx, released.String(), "✅ Delivery completed. You are back online.", nil)
	}

	r.notifyRequesterLocalized(ctx, o, func(loc i18n.Locale, _ string) (string, *ports.ButtonLayout) {
		return i18n.Translate(i18n.KeyOrderCompleted, loc, o.ID().String()), layouts.Feedback(o.ID())
	})
	r.gateway.Broadcast(ctx, r.roster.All(),
		fmt.Sprintf("✅ Order %s completed.", o.ID()), nil)
	return nil
}

// courierNotifiedDelay handles delay:<lt5|lt2|gt10>:<orderId>: the chosen
// notice goes to the requester in their language.
func (r *Router) courierNotifiedDelay(ctx context.Context, ev InteractionEvent, a Action) error {
	o, err := r.getOrder(ctx, a.TargetID)
	if err != nil {
		return err
	}
	if !r.mayDriveOrder(o, ev.Actor.ID) {
		return nil
	}

	var key string
	switch a.SubVerb {
	case "lt5":
		key = i18n.KeyDelayShort
	case "lt2":
		key = i18n.KeyDelayCouple
	case "gt10":
		key = i18n.KeyDelayLong
	default:
		return errs.NewValueIsInvalidError("delay notice")
	}

	r.notifyRequesterLocalized(ctx, o, func(loc i18n.Locale, _ string) (string, *ports.ButtonLayout) {
		return i18n.Translate(key, loc), nil
	})
	r.gateway.Send(ctx, ev.Actor.ID, "Customer notified.", layouts.CourierActions(o))
	return nil
}

// courierCancelRequest asks the admins to release the courier from the
// order.
func (r *Router) courierCancelRequest(ctx context.Context, ev InteractionEvent, o *order.Order) error {
	name := ev.Actor.DisplayName
	if name == "" {
		name = ev.Actor.ID
	}
	id := o.ID().String()
	r.gateway.Broadcast(ctx, r.roster.All(),
		fmt.Sprintf("❗ Driver %s asks to cancel order %s.", name, id),
		ports.NewButtonLayout([]ports.Button{
			{Label: "Approve", Token: "driver:cancel_approve:" + id},
			{Label: "Deny", Token: "driver:cancel_deny:" + id},
		}))
	r.gateway.Send(ctx, ev.Actor.ID, "Your cancellation request was sent to the admins.", nil)
	return nil
}

// courierCancelApprove reopens the order into the pool and frees the
// courier.
func (r *Router) courierCancelApprove(ctx context.Context, ev InteractionEvent, targetID string) error {
	o, err := r.getOrder(ctx, targetID)
	if err != nil {
		return err
	}
	released, err := o.Reopen()
	if err != nil {
		return err
	}
	if err := r.orders.Update(ctx, o); err != nil {
		return err
	}

	if released != nil {
		r.releaseCourier(ctx, *released)
		r.gateway.Send(ctx, released.String(),
			"Your cancellation was approved. The order is back in the pool.", nil)
	}
	r.gateway.Broadcast(ctx, r.roster.All(),
		fmt.Sprintf("♻️ Order %s is back in the pool.", o.ID()), nil)
	return nil
}

func (r *Router) courierCancelDeny(ctx context.Context, ev InteractionEvent, targetID string) error {
	o, err := r.getOrder(ctx, targetID)
	if err != nil {
		return err
	}
	if id := o.CourierID(); id != nil {
		r.gateway.Send(ctx, id.String(),
			"Your cancellation request was denied. Please finish the delivery.", nil)
	}
	r.gateway.Send(ctx, ev.Actor.ID, "Denied. The driver keeps the order.", nil)
	return nil
}

// pingCourier handles customer_ping:<orderId> from the requester (or an
// admin nudging on their behalf).
func (r *Router) pingCourier(ctx context.Context, ev InteractionEvent, a Action) error {
	o, err := r.getOrder(ctx, a.TargetID)
	if err != nil {
		return err
	}
	id := o.CourierID()
	if id == nil {
		return errs.NewObjectNotFoundError("driver of order", o.ID())
	}

	r.gateway.Send(ctx, id.String(),
		fmt.Sprintf("📍 The customer is asking about order %s. Please give them an update.", o.ID()), nil)

	loc := i18n.LocaleEN
	if req, err := r.requesters.Get(ctx, ev.Actor.ID); err == nil {
		loc = req.Locale()
	}
	r.gateway.Send(ctx, ev.Actor.ID, i18n.Translate(i18n.KeyCourierPinged, loc), nil)
	return nil
}

// notifyRequesterLocalized renders and delivers a message to the order's
// requester in their language, skipping synthetic requester ids.
func (r *Router) notifyRequesterLocalized(ctx context.Context, o *order.Order,
	render func(loc i18n.Locale, displayName string) (string, *ports.ButtonLayout)) {

	req, err := r.requesters.Get(ctx, o.RequesterID())
	if err != nil || !isReachable(req.ID()) {
		return
	}
	text, layout := render(req.Locale(), req.DisplayName())
	r.gateway.Send(ctx, req.ID(), text, layout)
}
