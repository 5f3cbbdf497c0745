package dispatch

import (
	"context"
	"fmt"
	"strings"

	"dispatch/internal/core/application/layouts"
	"dispatch/internal/core/domain/model/artifact"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/session"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/i18n"

	"github.com/shopspring/decimal"
)

// adminText handles operator menu commands and free-form intake. Forwarded
// requester messages and plain text both open orders; the menu words render
// the list views.
func (r *Router) adminText(ctx context.Context, ev TextMessage) error {
	switch normalizeMenuCommand(ev.Text) {
	case "NEW DRAFT":
		return r.createDraft(ctx, ev)
	case "SAVED", "DRAFT":
		return r.showOrderList(ctx, ev, "💾 Saved drafts", []order.Status{order.Draft})
	case "ACTIVE":
		return r.showOrderList(ctx, ev, "⚡ Active orders",
			[]order.Status{order.ActiveReady, order.ActivePickedUp, order.Arrived})
	case "COMPLETED":
		return r.showOrderList(ctx, ev, "✅ Completed orders", []order.Status{order.Completed})
	case "ONLINE", "ORDERS":
		return r.showOrderList(ctx, ev, "🆕 Order pool", []order.Status{order.New, order.NewOnline})
	case "DRIVERS":
		return r.showManageCouriers(ctx, interactionFrom(ev))
	case "SETTINGS":
		return r.showSettings(ctx, interactionFrom(ev))
	}

	return r.intake(ctx, ev)
}

func normalizeMenuCommand(text string) string {
	cleaned := strings.Map(func(c rune) rune {
		if c < 128 {
			return c
		}
		return -1
	}, text)
	return strings.ToUpper(strings.TrimSpace(cleaned))
}

// interactionFrom adapts a text message into the interaction shape the
// menu renderers take, with no press to acknowledge.
func interactionFrom(ev TextMessage) InteractionEvent {
	return InteractionEvent{Actor: ev.Actor}
}

// intake opens an order from a free-form admin message. A forwarded
// message is opened on behalf of its original author; otherwise the order
// starts unowned until the admin sets the customer.
func (r *Router) intake(ctx context.Context, ev TextMessage) error {
	fields, err := parseIntake(ev.Text)
	if err != nil {
		return err
	}

	requesterID := "unassigned"
	requesterName := "Unknown customer"
	if ev.ForwardedFrom != "" {
		requesterName = ev.ForwardedFrom
		if req, err := r.requesters.FindByDisplayName(ctx, ev.ForwardedFrom); err == nil {
			requesterID = req.ID()
		} else {
			// Forwards strip the author's chat id; key the requester by
			// name until they contact the service themselves.
			requesterID = "name:" + ev.ForwardedFrom
		}
	}
	req, err := r.requesters.FindOrCreate(ctx, requesterID, requesterName)
	if err != nil {
		return err
	}

	o, err := order.NewOrder(kernel.NewUUID(), req.ID(), order.New, fields.Items, fields.LocationLink)
	if err != nil {
		return err
	}
	if err := r.orders.Add(ctx, o); err != nil {
		return err
	}

	r.gateway.Send(ctx, ev.Actor.ID, r.renderOrderDetail(ctx, o), layouts.AdminActions(o))
	return nil
}

func (r *Router) createDraft(ctx context.Context, ev TextMessage) error {
	req, err := r.requesters.FindOrCreate(ctx, "unassigned", "Unknown customer")
	if err != nil {
		return err
	}

	o, err := order.NewOrder(kernel.NewUUID(), req.ID(), order.Draft, "", "")
	if err != nil {
		return err
	}
	if err := r.orders.Add(ctx, o); err != nil {
		return err
	}

	r.gateway.Send(ctx, ev.Actor.ID, r.renderOrderDetail(ctx, o),
		layouts.AdminEdit(o, req.Locale() != i18n.LocaleUnset))
	return nil
}

func (r *Router) showOrderList(ctx context.Context, ev TextMessage, title string, statuses []order.Status) error {
	all, err := r.orders.GetAllByStatuses(ctx, statuses)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		r.gateway.Send(ctx, ev.Actor.ID, title+": empty", nil)
		return nil
	}

	l := &ports.ButtonLayout{}
	for _, o := range all {
		l.Rows = append(l.Rows, layouts.OrderListRow(o))
	}
	r.gateway.Send(ctx, ev.Actor.ID, title, l)
	return nil
}

func (r *Router) showMainMenu(ctx context.Context, ev InteractionEvent) error {
	r.gateway.Send(ctx, ev.Actor.ID, "Main menu", layouts.AdminMainMenu())
	return nil
}

func (r *Router) showSettings(ctx context.Context, ev InteractionEvent) error {
	id, err := kernel.ParseActorID(ev.Actor.ID)
	if err != nil {
		return err
	}
	r.gateway.Send(ctx, ev.Actor.ID, "⚙️ Settings", layouts.AdminSettings(r.roster.Locale(id)))
	return nil
}

func (r *Router) setAdminLanguage(ctx context.Context, ev InteractionEvent, lang string) error {
	id, err := kernel.ParseActorID(ev.Actor.ID)
	if err != nil {
		return err
	}
	if err := r.roster.SetLocale(id, i18n.ParseLocale(lang)); err != nil {
		return err
	}
	return r.showSettings(ctx, ev)
}

// dispatchOrder sends the order to its selected courier ("GO"). A courier
// who is already out on another delivery cannot take a second one: the
// dispatch is refused and the admin is told to pick someone else.
func (r *Router) dispatchOrder(ctx context.Context, ev InteractionEvent, targetID string) error {
	o, err := r.getOrder(ctx, targetID)
	if err != nil {
		return err
	}

	var c *courier.Courier
	if selected := o.SelectedCourierID(); selected != nil {
		if c, err = r.couriers.Get(ctx, *selected); err != nil {
			return err
		}
		if !courierFree(c, o.ID()) {
			r.warnCourierTaken(ctx, ev.Actor.ID, c)
			return nil
		}
	}

	if err := o.Dispatch(); err != nil {
		return err
	}

	courierID := *o.CourierID()
	if _, err := c.AssignOrder(o.ID()); err != nil {
		return err
	}

	if err := r.orders.Update(ctx, o); err != nil {
		return err
	}
	if err := r.couriers.Update(ctx, c); err != nil {
		return err
	}

	r.gateway.Send(ctx, courierID.String(),
		"🛵 New delivery for you:\n"+r.renderOrderDetail(ctx, o), layouts.CourierActions(o))
	r.notifyRequesterApproved(ctx, o)
	r.gateway.Send(ctx, ev.Actor.ID, "Order dispatched to "+c.DisplayName(), nil)
	return nil
}

func (r *Router) notifyRequesterApproved(ctx context.Context, o *order.Order) {
	req, err := r.requesters.Get(ctx, o.RequesterID())
	if err != nil || !isReachable(req.ID()) {
		return
	}

	total := "—"
	if o.TotalAmount() != nil {
		total = o.TotalAmount().String()
	}
	r.gateway.Send(ctx, req.ID(),
		i18n.Translate(i18n.KeyOrderApproved, req.Locale(), req.DisplayName(), total),
		layouts.RequesterPayment(o.ID()))
}

// isReachable filters the synthetic requester ids that only exist for
// bookkeeping (unassigned drafts, forward-by-name customers).
func isReachable(requesterID string) bool {
	return requesterID != "unassigned" && !strings.HasPrefix(requesterID, "name:")
}

// assignCourier records the courier choice: assign:<courierId>:<orderId>.
// On a pool order this is a selection only; on an active order the swap
// happens immediately and both couriers are updated.
func (r *Router) assignCourier(ctx context.Context, ev InteractionEvent, a Action) error {
	courierID, err := kernel.ParseActorID(a.SubVerb)
	if err != nil {
		return err
	}
	o, err := r.getOrder(ctx, a.TargetID)
	if err != nil {
		return err
	}
	c, err := r.couriers.Get(ctx, courierID)
	if err != nil {
		return err
	}
	if c.Status().IsBlocked() {
		return errs.NewValueIsInvalidError("courier is blocked")
	}

	wasActive := o.Status().IsActive()
	if wasActive && !courierFree(c, o.ID()) {
		r.warnCourierTaken(ctx, ev.Actor.ID, c)
		return nil
	}

	previous, err := o.SelectCourier(courierID)
	if err != nil {
		return err
	}

	if wasActive {
		if _, err := c.AssignOrder(o.ID()); err != nil {
			return err
		}
		if err := r.couriers.Update(ctx, c); err != nil {
			return err
		}
		if previous != nil {
			r.releaseCourier(ctx, *previous)
			r.gateway.Send(ctx, previous.String(), "You were unassigned from your current order.", nil)
		}
		r.gateway.Send(ctx, courierID.String(),
			"🛵 Order reassigned to you:\n"+r.renderOrderDetail(ctx, o), layouts.CourierActions(o))
	}

	if err := r.orders.Update(ctx, o); err != nil {
		return err
	}
	r.gateway.Send(ctx, ev.Actor.ID,
		fmt.Sprintf("Driver %s set for the order.", c.DisplayName()), layouts.AdminActions(o))
	return nil
}

// courierFree reports whether the courier can take the order right now:
// not working, or already holding this very order.
func courierFree(c *courier.Courier, orderID kernel.UUID) bool {
	cur := c.CurrentOrderID()
	return !c.Status().IsWorking() || (cur != nil && cur.IsEqual(orderID))
}

func (r *Router) warnCourierTaken(ctx context.Context, adminID string, c *courier.Courier) {
	r.gateway.Send(ctx, adminID,
		fmt.Sprintf("🚫 %s is already on another delivery. Choose a different driver.", c.DisplayName()), nil)
}

// releaseCourier frees a courier after their order ended, best effort.
func (r *Router) releaseCourier(ctx context.Context, id kernel.ActorID) {
	c, err := r.couriers.Get(ctx, id)
	if err != nil {
		r.logger.Warn("released courier not found", "courier_id", id)
		return
	}
	if err := c.Release(); err != nil {
		r.logger.Warn("courier release rejected", "courier_id", id, "error", err)
		return
	}
	if err := r.couriers.Update(ctx, c); err != nil {
		r.logger.Error("courier release not persisted", "courier_id", id, "error", err)
	}
}

func (r *Router) cancelOrder(ctx context.Context, ev InteractionEvent, targetID string) error {
	o, err := r.getOrder(ctx, targetID)
	if err != nil {
		return err
	}
	released, err := o.Cancel()
	if err != nil {
		return err
	}
	if err := r.orders.Update(ctx, o); err != nil {
		return err
	}

	if released != nil {
		r.releaseCourier(ctx, *released)
		r.gateway.Send(ctx, released.String(), "❌ Your order was cancelled by an admin.", nil)
	}
	r.gateway.Send(ctx, ev.Actor.ID, "Order cancelled.", nil)
	return nil
}

func (r *Router) saveOrderDraft(ctx context.Context, ev InteractionEvent, targetID string) error {
	o, err := r.getOrder(ctx, targetID)
	if err != nil {
		return err
	}
	if err := o.SaveDraft(); err != nil {
		return err
	}
	if err := r.orders.Update(ctx, o); err != nil {
		return err
	}
	r.gateway.Send(ctx, ev.Actor.ID, "💾 Saved as draft.", nil)
	return nil
}

func (r *Router) showOrderDetail(ctx context.Context, ev InteractionEvent, targetID string) error {
	o, err := r.getOrder(ctx, targetID)
	if err != nil {
		return err
	}
	r.gateway.Send(ctx, ev.Actor.ID, r.renderOrderDetail(ctx, o), layouts.AdminActions(o))
	return nil
}

func (r *Router) showEditMenu(ctx context.Context, ev InteractionEvent, targetID string) error {
	o, err := r.getOrder(ctx, targetID)
	if err != nil {
		return err
	}
	hasLocale := false
	if req, err := r.requesters.Get(ctx, o.RequesterID()); err == nil {
		hasLocale = req.Locale() != i18n.LocaleUnset
	}
	r.gateway.Send(ctx, ev.Actor.ID, r.renderOrderDetail(ctx, o), layouts.AdminEdit(o, hasLocale))
	return nil
}

// startFieldEdit handles edit:<field>:<orderId>. Most fields open a text
// session; driver and payment jump to their own pickers, and lang_ru is an
// immediate toggle.
func (r *Router) startFieldEdit(ctx context.Context, ev InteractionEvent, a Action) error {
	o, err := r.getOrder(ctx, a.TargetID)
	if err != nil {
		return err
	}

	switch a.SubVerb {
	case "driver":
		available, err := r.couriers.GetAllAvailable(ctx)
		if err != nil {
			return err
		}
		r.gateway.Send(ctx, ev.Actor.ID, "Choose a driver:", layouts.ConnectedCouriers(r.picker.Rank(available), o.ID()))
		return nil

	case "payment":
		r.gateway.Send(ctx, ev.Actor.ID, "Payment:", layouts.Payment(o.ID()))
		return nil

	case "lang_ru":
		req, err := r.requesters.Get(ctx, o.RequesterID())
		if err != nil {
			return err
		}
		if err := req.SetLocale(i18n.LocaleRU); err != nil {
			return err
		}
		if err := r.requesters.Update(ctx, req); err != nil {
			return err
		}
		r.gateway.Send(ctx, ev.Actor.ID, "Customer language set to Russian.", nil)
		return nil

	case "customer", "location", "items", "total":
		orderID := o.ID()
		err := r.sessions.Set(ctx, ev.Actor.ID, session.NewPatch().
			WithMode(session.ModeEdit).
			WithField(a.SubVerb).
			WithOrderID(&orderID))
		if err != nil {
			return err
		}
		r.gateway.Send(ctx, ev.Actor.ID, fmt.Sprintf("Send the new %s:", a.SubVerb), nil)
		return nil

	default:
		return errs.NewValueIsInvalidError("edit field")
	}
}

// applyFieldEdit consumes the admin's next message in an edit session.
func (r *Router) applyFieldEdit(ctx context.Context, ev TextMessage, s session.Session) error {
	if s.OrderID == nil {
		return errs.NewValueIsRequiredError("edit session order")
	}
	o, err := r.orders.Get(ctx, *s.OrderID)
	if err != nil {
		return err
	}

	switch s.Field {
	case "items":
		o.SetItems(ev.Text)
	case "location":
		o.SetLocationLink(strings.TrimSpace(ev.Text))
	case "total":
		total, err := decimal.NewFromString(strings.TrimSpace(ev.Text))
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("total amount", err)
		}
		if err := o.SetTotalAmount(total); err != nil {
			return err
		}
	case "customer":
		name := strings.TrimSpace(ev.Text)
		req, err := r.requesters.FindByDisplayName(ctx, name)
		if err != nil {
			req, err = r.requesters.FindOrCreate(ctx, "name:"+name, name)
			if err != nil {
				return err
			}
		}
		snapshot := o.Snapshot()
		snapshot.RequesterID = req.ID()
		reassigned, err := order.RestoreOrder(snapshot)
		if err != nil {
			return err
		}
		o = reassigned
	default:
		return errs.NewValueIsInvalidError("edit field")
	}

	if err := r.orders.Update(ctx, o); err != nil {
		return err
	}
	if err := r.sessions.Clear(ctx, ev.Actor.ID); err != nil {
		return err
	}
	r.gateway.Send(ctx, ev.Actor.ID, r.renderOrderDetail(ctx, o), layouts.AdminActions(o))
	return nil
}

// adminSetPayment handles payment:<CASH|QR|PAID>:<orderId>.
func (r *Router) adminSetPayment(ctx context.Context, ev InteractionEvent, a Action) error {
	o, err := r.getOrder(ctx, a.TargetID)
	if err != nil {
		return err
	}

	if a.SubVerb == "PAID" {
		o.MarkPaid()
	} else {
		method, err := order.ParsePaymentMethod(a.SubVerb)
		if err != nil {
			return err
		}
		o.SetPaymentMethod(method)
	}

	if err := r.orders.Update(ctx, o); err != nil {
		return err
	}
	r.gateway.Send(ctx, ev.Actor.ID, r.renderOrderDetail(ctx, o), layouts.AdminActions(o))
	return nil
}

// orderQuickAction handles the list-row shortcuts
// order_action:<sub>:<orderId>.
func (r *Router) orderQuickAction(ctx context.Context, ev InteractionEvent, a Action) error {
	switch a.SubVerb {
	case "delete":
		id, err := kernel.UUIDFromString(a.TargetID)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("order id", err)
		}
		if err := r.orders.Remove(ctx, id); err != nil {
			return err
		}
		r.gateway.Send(ctx, ev.Actor.ID, "Order deleted.", nil)
		return nil

	case "cancel":
		return r.cancelOrder(ctx, ev, a.TargetID)

	case "go":
		return r.dispatchOrder(ctx, ev, a.TargetID)

	case "assign", "change_driver":
		o, err := r.getOrder(ctx, a.TargetID)
		if err != nil {
			return err
		}
		available, err := r.couriers.GetAllAvailable(ctx)
		if err != nil {
			return err
		}
		r.gateway.Send(ctx, ev.Actor.ID, "Choose a driver:", layouts.ConnectedCouriers(r.picker.Rank(available), o.ID()))
		return nil

	case "arrived":
		o, err := r.getOrder(ctx, a.TargetID)
		if err != nil {
			return err
		}
		return r.markArrived(ctx, ev, o)

	case "completed":
		o, err := r.getOrder(ctx, a.TargetID)
		if err != nil {
			return err
		}
		return r.completeOrder(ctx, ev, o)

	case "archive":
		return r.archiveOrder(ctx, ev, a.TargetID)

	default:
		return errs.NewValueIsInvalidError("order action")
	}
}

func (r *Router) archiveOrder(ctx context.Context, ev InteractionEvent, targetID string) error {
	o, err := r.getOrder(ctx, targetID)
	if err != nil {
		return err
	}
	if err := o.Archive(); err != nil {
		return err
	}
	if err := r.orders.Update(ctx, o); err != nil {
		return err
	}
	r.gateway.Send(ctx, ev.Actor.ID, "🗃️ Archived.", nil)
	return nil
}

// adminArchive serves both shapes of the verb: with an order id it
// archives that order, without one it lists the archive.
func (r *Router) adminArchive(ctx context.Context, ev InteractionEvent, a Action) error {
	if a.SubVerb != "" {
		return r.archiveOrder(ctx, ev, a.SubVerb)
	}

	archived, err := r.orders.GetAllArchived(ctx)
	if err != nil {
		return err
	}
	if len(archived) == 0 {
		r.gateway.Send(ctx, ev.Actor.ID, "🗄️ Archive is empty.", nil)
		return nil
	}

	var b strings.Builder
	b.WriteString("🗄️ Archive:\n")
	for _, o := range archived {
		fmt.Fprintf(&b, "• %s — %s (%s)\n", o.ID(), o.Items(), o.Status())
	}
	r.gateway.Send(ctx, ev.Actor.ID, b.String(), nil)
	return nil
}

// --- QR management ---

func (r *Router) showManageQRs(ctx context.Context, ev InteractionEvent) error {
	qrs, err := r.artifacts.GetAll(ctx)
	if err != nil {
		return err
	}
	r.gateway.Send(ctx, ev.Actor.ID, "💳 Payment QR codes:", layouts.ManageQRs(qrs))
	return nil
}

func (r *Router) startAddQR(ctx context.Context, ev InteractionEvent) error {
	err := r.sessions.Set(ctx, ev.Actor.ID, session.NewPatch().WithMode(session.ModeAddQRPhoto))
	if err != nil {
		return err
	}
	r.gateway.Send(ctx, ev.Actor.ID, "Send the QR code image.", nil)
	return nil
}

func (r *Router) qrPhotoReceived(ctx context.Context, ev MediaMessage) error {
	err := r.sessions.Set(ctx, ev.Actor.ID, session.NewPatch().
		WithMode(session.ModeAddQRTitle).
		WithMediaRef(ev.MediaRef))
	if err != nil {
		return err
	}
	r.gateway.Send(ctx, ev.Actor.ID, "Got it. Now send a title for this QR code.", nil)
	return nil
}

func (r *Router) qrTitleReceived(ctx context.Context, ev TextMessage, s session.Session) error {
	qr, err := artifact.NewQR(kernel.NewUUID(), strings.TrimSpace(ev.Text), s.MediaRef)
	if err != nil {
		return err
	}
	if err := r.artifacts.Add(ctx, qr); err != nil {
		return err
	}
	if err := r.sessions.Clear(ctx, ev.Actor.ID); err != nil {
		return err
	}
	return r.showManageQRs(ctx, interactionFrom(ev))
}

func (r *Router) qrAction(ctx context.Context, ev InteractionEvent, a Action) error {
	id, err := kernel.UUIDFromString(a.TargetID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("QR id", err)
	}

	switch a.SubVerb {
	case "view":
		qr, err := r.artifacts.Get(ctx, id)
		if err != nil {
			return err
		}
		r.gateway.SendMedia(ctx, ev.Actor.ID, qr.MediaRef(), qr.Title(), nil)
		return nil
	case "delete":
		if err := r.artifacts.Remove(ctx, id); err != nil {
			return err
		}
		return r.showManageQRs(ctx, ev)
	default:
		return errs.NewValueIsInvalidError("QR action")
	}
}

// --- admin roster management ---

func (r *Router) showManageAdmins(ctx context.Context, ev InteractionEvent) error {
	r.gateway.Send(ctx, ev.Actor.ID, "👥 Admins:",
		layouts.ManageAdmins(r.roster.All(), r.roster.Primary()))
	return nil
}

func (r *Router) startAddAdmin(ctx context.Context, ev InteractionEvent) error {
	err := r.sessions.Set(ctx, ev.Actor.ID, session.NewPatch().WithMode(session.ModeAddAdmin))
	if err != nil {
		return err
	}
	r.gateway.Send(ctx, ev.Actor.ID, "Send the user id of the new admin.", nil)
	return nil
}

func (r *Router) adminIDReceived(ctx context.Context, ev TextMessage) error {
	id, err := kernel.ParseActorID(strings.TrimSpace(ev.Text))
	if err != nil {
		return err
	}
	if err := r.roster.Add(id); err != nil {
		return err
	}
	if err := r.sessions.Clear(ctx, ev.Actor.ID); err != nil {
		return err
	}
	r.gateway.Send(ctx, id.String(), "You are now an admin.", layouts.AdminMainMenu())
	return r.showManageAdmins(ctx, interactionFrom(ev))
}

func (r *Router) adminRosterAction(ctx context.Context, ev InteractionEvent, a Action) error {
	switch a.SubVerb {
	case "remove":
		id, err := kernel.ParseActorID(a.TargetID)
		if err != nil {
			return err
		}
		if err := r.roster.Remove(id); err != nil {
			return err
		}
		return r.showManageAdmins(ctx, ev)
	case "view":
		return r.showManageAdmins(ctx, ev)
	default:
		return errs.NewValueIsInvalidError("admin action")
	}
}

// --- courier management ---

func (r *Router) showManageCouriers(ctx context.Context, ev InteractionEvent) error {
	all, err := r.couriers.GetAll(ctx)
	if err != nil {
		return err
	}
	r.gateway.Send(ctx, ev.Actor.ID, "🚗 Drivers:", layouts.ManageCouriers(all))
	return nil
}

// courierAdminAction handles driver_admin:<block|unblock|remove>:<id>.
// Blocking a working courier requeues their order back to the pool.
func (r *Router) courierAdminAction(ctx context.Context, ev InteractionEvent, a Action) error {
	id, err := kernel.ParseActorID(a.TargetID)
	if err != nil {
		return err
	}
	c, err := r.couriers.Get(ctx, id)
	if err != nil {
		return err
	}

	switch a.SubVerb {
	case "block":
		abandoned, err := c.Block()
		if err != nil {
			return err
		}
		if err := r.couriers.Update(ctx, c); err != nil {
			return err
		}
		if abandoned != nil {
			r.requeueOrder(ctx, *abandoned)
		}
		r.gateway.Send(ctx, id.String(), "⛔ You have been blocked by an admin.", nil)

	case "unblock":
		if err := c.Unblock(); err != nil {
			return err
		}
		if err := r.couriers.Update(ctx, c); err != nil {
			return err
		}
		r.gateway.Send(ctx, id.String(), "▶️ You have been unblocked. You are online.", nil)

	case "remove":
		if abandoned := c.CurrentOrderID(); abandoned != nil {
			r.requeueOrder(ctx, *abandoned)
		}
		if err := r.couriers.Remove(ctx, id); err != nil {
			return err
		}

	default:
		return errs.NewValueIsInvalidError("driver action")
	}

	return r.showManageCouriers(ctx, ev)
}

// requeueOrder returns an active order to the pool after its courier was
// taken away, best effort.
func (r *Router) requeueOrder(ctx context.Context, id kernel.UUID) {
	o, err := r.orders.Get(ctx, id)
	if err != nil {
		r.logger.Warn("requeued order not found", "order_id", id)
		return
	}
	if _, err := o.Reopen(); err != nil {
		r.logger.Warn("order requeue rejected", "order_id", id, "error", err)
		return
	}
	if err := r.orders.Update(ctx, o); err != nil {
		r.logger.Error("order requeue not persisted", "order_id", id, "error", err)
		return
	}
	r.gateway.Broadcast(ctx, r.roster.All(),
		fmt.Sprintf("♻️ Order %s is back in the pool.", o.ID()), nil)
}

// renderOrderDetail builds the admin-facing order card.
func (r *Router) renderOrderDetail(ctx context.Context, o *order.Order) string {
	customer := o.RequesterID()
	if req, err := r.requesters.Get(ctx, o.RequesterID()); err == nil {
		customer = req.DisplayName()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📦 Order %s\n", o.ID())
	fmt.Fprintf(&b, "Status: %s\n", o.Status())
	fmt.Fprintf(&b, "Customer: %s\n", customer)
	if o.Items() != "" {
		fmt.Fprintf(&b, "Items: %s\n", o.Items())
	}
	if o.LocationLink() != "" {
		fmt.Fprintf(&b, "Location: %s\n", o.LocationLink())
	}
	if id := o.CourierID(); id != nil {
		if c, err := r.couriers.Get(ctx, *id); err == nil {
			fmt.Fprintf(&b, "Driver: %s\n", c.DisplayName())
		}
	} else if id := o.SelectedCourierID(); id != nil {
		if c, err := r.couriers.Get(ctx, *id); err == nil {
			fmt.Fprintf(&b, "Driver (selected): %s\n", c.DisplayName())
		}
	}
	if o.PaymentMethod() != order.PaymentMethodUnset {
		fmt.Fprintf(&b, "Payment: %s", o.PaymentMethod())
		if o.PaymentStatus() != order.PaymentStatusUnset {
			fmt.Fprintf(&b, " (%s)", o.PaymentStatus())
		}
		b.WriteString("\n")
	}
	if o.TotalAmount() != nil {
		fmt.Fprintf(&b, "Total: %s\n", o.TotalAmount())
	}
	if o.CashGiven() != nil {
		fmt.Fprintf(&b, "Cash given: %s", o.CashGiven())
		if o.CashChange() != nil {
			fmt.Fprintf(&b, ", change: %s", o.CashChange())
		}
		b.WriteString("\n")
	}
	if o.Feedback() != 0 {
		fmt.Fprintf(&b, "Feedback: %d⭐\n", o.Feedback())
	}
	return strings.TrimRight(b.String(), "\n")
}
