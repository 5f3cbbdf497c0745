// Package dispatch is the application core: it decodes inbound messaging
// events, serializes them per participant and per order, drives the order
// and courier state machines, and fans out notifications through the
// gateway.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/admin"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/session"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/keymutex"
)

// Router routes inbound events to their workflow handlers.
type Router struct {
	orders     ports.OrderRepository
	couriers   ports.CourierRepository
	requesters ports.RequesterRepository
	artifacts  ports.ArtifactRepository
	sessions   ports.SessionRepository
	roster     *admin.Roster
	gateway    *Gateway
	picker     services.CourierPicker
	locks      *keymutex.KeyedMutex
	reminders  *reminderSet
	logger     *slog.Logger
}

// RouterParams collects the router's dependencies.
type RouterParams struct {
	Orders     ports.OrderRepository
	Couriers   ports.CourierRepository
	Requesters ports.RequesterRepository
	Artifacts  ports.ArtifactRepository
	Sessions   ports.SessionRepository
	Roster     *admin.Roster
	Notifier   ports.Notifier
	Logger     *slog.Logger

	// ReminderInterval paces the repeating disconnect prompts to admins.
	ReminderInterval time.Duration
}

// NewRouter wires the router.
func NewRouter(p RouterParams) (*Router, error) {
	if p.Orders == nil || p.Couriers == nil || p.Requesters == nil ||
		p.Artifacts == nil || p.Sessions == nil {
		return nil, errs.NewValueIsRequiredError("repositories")
	}
	if p.Roster == nil {
		return nil, errs.NewValueIsRequiredError("roster")
	}
	if p.Notifier == nil {
		return nil, errs.NewValueIsRequiredError("notifier")
	}
	if p.Logger == nil {
		p.Logger = slog.Default()
	}
	if p.ReminderInterval <= 0 {
		p.ReminderInterval = time.Minute
	}

	return &Router{
		orders:     p.Orders,
		couriers:   p.Couriers,
		requesters: p.Requesters,
		artifacts:  p.Artifacts,
		sessions:   p.Sessions,
		roster:     p.Roster,
		gateway:    NewGateway(p.Notifier, p.Logger),
		picker:     services.NewCourierPicker(),
		locks:      keymutex.New(),
		reminders:  newReminderSet(p.ReminderInterval),
		logger:     p.Logger,
	}, nil
}

// Close stops the router's background timers.
func (r *Router) Close() {
	r.reminders.StopAll()
}

// HandleEvent processes one inbound event to completion. Events of the
// same actor, and events touching the same order, are serialized; events
// of unrelated participants run concurrently. A panic or unclassified
// error never escapes: it is logged, reported to the admins, and the
// router stays available for the next event.
func (r *Router) HandleEvent(ctx context.Context, ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			r.reportInternal(ctx, fmt.Errorf("panic: %v", rec))
		}
	}()

	unlock := r.locks.Lock(r.lockKeys(ctx, ev)...)
	defer unlock()

	var err error
	switch e := ev.(type) {
	case InteractionEvent:
		err = r.handleInteraction(ctx, e)
	case TextMessage:
		err = r.handleText(ctx, e)
	case LocationMessage:
		err = r.handleLocation(ctx, e)
	case MediaMessage:
		err = r.handleMedia(ctx, e)
	default:
		err = errs.NewValueIsInvalidError("event type")
	}

	if err == nil {
		return
	}

	// Domain rejections and stale references are user mistakes, not
	// faults: tell the actor and move on. Everything else crosses the
	// fault barrier.
	if isUserFacing(err) {
		r.gateway.Send(ctx, ev.EventActorID(), userMessage(err), nil)
		return
	}
	r.reportInternal(ctx, err)
}

// lockKeys derives the serialization domains of the event: always the
// sender, plus every aggregate the event can mutate. A pending session
// binds the sender's next text or location to its order; interaction
// tokens name their order or courier target outright, and the target's
// own references are peeked so dispatching, requeueing and disconnects
// serialize against the courier's events too. The peeks run before the
// locks are taken, so every handler still re-checks state after loading.
func (r *Router) lockKeys(ctx context.Context, ev Event) []string {
	keys := []string{actorKey(ev.EventActorID())}

	if s, err := r.sessions.Get(ctx, ev.EventActorID()); err == nil && s.OrderID != nil {
		keys = append(keys, orderKey(*s.OrderID))
	}

	e, ok := ev.(InteractionEvent)
	if !ok {
		return keys
	}
	a, err := DecodeAction(e.Token)
	if err != nil || a.TargetID == "" {
		return keys
	}

	if id, err := kernel.UUIDFromString(a.TargetID); err == nil {
		keys = append(keys, orderKey(id))
		if o, err := r.orders.Get(ctx, id); err == nil {
			if cid := o.SelectedCourierID(); cid != nil {
				keys = append(keys, actorKey(cid.String()))
			}
			if cid := o.CourierID(); cid != nil {
				keys = append(keys, actorKey(cid.String()))
			}
		}
	} else if cid, err := kernel.ParseActorID(a.TargetID); err == nil {
		// disconnect and driver_admin steer a courier directly and may
		// requeue the order that courier is holding.
		keys = append(keys, actorKey(cid.String()))
		if c, err := r.couriers.Get(ctx, cid); err == nil {
			if oid := c.CurrentOrderID(); oid != nil {
				keys = append(keys, orderKey(*oid))
			}
		}
	}

	if a.Verb == VerbAssign {
		if cid, err := kernel.ParseActorID(a.SubVerb); err == nil {
			keys = append(keys, actorKey(cid.String()))
		}
	}
	return keys
}

func actorKey(actorID string) string { return "actor/" + actorID }

func orderKey(id kernel.UUID) string { return "order/" + id.String() }

func (r *Router) reportInternal(ctx context.Context, err error) {
	r.logger.Error("unhandled dispatch failure", "error", err)
	r.gateway.Broadcast(ctx, r.roster.All(),
		"⚠️ Internal error while processing an update. Check the logs.", nil)
}

// isUserFacing classifies the error taxonomy: malformed input, missing
// entities and state machine rejections are answered to the actor;
// anything else is an internal fault.
func isUserFacing(err error) bool {
	return errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) ||
		errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, order.ErrNoCourierSelected) ||
		errors.Is(err, order.ErrFeedbackAlreadyRecorded)
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return "Not found. It may have been removed already."
	case errors.Is(err, order.ErrNoCourierSelected):
		return "Assign a driver first."
	case errors.Is(err, order.ErrFeedbackAlreadyRecorded):
		return "Feedback was already recorded, thank you!"
	default:
		return "That action is not possible right now."
	}
}

// handleInteraction decodes the token and dispatches on the verb. Unknown
// verbs acknowledge silently so stale buttons die quietly.
func (r *Router) handleInteraction(ctx context.Context, ev InteractionEvent) error {
	a, err := DecodeAction(ev.Token)
	if err != nil {
		return err
	}
	defer r.gateway.Ack(ctx, ev.InteractionID, "")

	isAdmin := r.isAdmin(ev.Actor.ID)

	switch a.Verb {
	case VerbNone:
		return nil

	// requester side
	case VerbLang:
		return r.requesterChoseLanguage(ctx, ev, a)
	case VerbCustomerPay:
		return r.requesterChosePayment(ctx, ev, a)
	case VerbCustomerPing:
		return r.pingCourier(ctx, ev, a)
	case VerbFeedback:
		return r.requesterScoredDelivery(ctx, ev, a)

	// courier side
	case VerbDriver:
		return r.courierAction(ctx, ev, a)
	case VerbDelay:
		return r.courierNotifiedDelay(ctx, ev, a)
	case VerbDisconnect:
		return r.resolveDisconnect(ctx, ev, a)

	// admin side
	case VerbGo:
		return r.withAdmin(isAdmin, func() error { return r.dispatchOrder(ctx, ev, a.TargetID) })
	case VerbAssign:
		return r.withAdmin(isAdmin, func() error { return r.assignCourier(ctx, ev, a) })
	case VerbCancel:
		return r.withAdmin(isAdmin, func() error { return r.cancelOrder(ctx, ev, a.TargetID) })
	case VerbSave:
		return r.withAdmin(isAdmin, func() error { return r.saveOrderDraft(ctx, ev, a.TargetID) })
	case VerbDetail, VerbViewDetail:
		return r.withAdmin(isAdmin, func() error { return r.showOrderDetail(ctx, ev, a.TargetID) })
	case VerbEditMenu:
		return r.withAdmin(isAdmin, func() error { return r.showEditMenu(ctx, ev, a.TargetID) })
	case VerbEdit:
		return r.withAdmin(isAdmin, func() error { return r.startFieldEdit(ctx, ev, a) })
	case VerbPayment:
		return r.withAdmin(isAdmin, func() error { return r.adminSetPayment(ctx, ev, a) })
	case VerbOrderAction:
		return r.withAdmin(isAdmin, func() error { return r.orderQuickAction(ctx, ev, a) })
	case VerbQR:
		return r.withAdmin(isAdmin, func() error { return r.qrAction(ctx, ev, a) })
	case VerbAdmin:
		return r.withAdmin(isAdmin, func() error { return r.adminRosterAction(ctx, ev, a) })
	case VerbDriverAdmin:
		return r.withAdmin(isAdmin, func() error { return r.courierAdminAction(ctx, ev, a) })

	// admin menus
	case VerbAdminMainMenu:
		return r.withAdmin(isAdmin, func() error { return r.showMainMenu(ctx, ev) })
	case VerbAdminSettings:
		return r.withAdmin(isAdmin, func() error { return r.showSettings(ctx, ev) })
	case VerbAdminArchive:
		return r.withAdmin(isAdmin, func() error { return r.adminArchive(ctx, ev, a) })
	case VerbAdminManageQRs:
		return r.withAdmin(isAdmin, func() error { return r.showManageQRs(ctx, ev) })
	case VerbAdminAddQR:
		return r.withAdmin(isAdmin, func() error { return r.startAddQR(ctx, ev) })
	case VerbAdminManageAdmins:
		return r.withAdmin(isAdmin, func() error { return r.showManageAdmins(ctx, ev) })
	case VerbAdminAddAdmin:
		return r.withAdmin(isAdmin, func() error { return r.startAddAdmin(ctx, ev) })
	case VerbAdminManageDrivers:
		return r.withAdmin(isAdmin, func() error { return r.showManageCouriers(ctx, ev) })
	case VerbAdminSetLangRU:
		return r.withAdmin(isAdmin, func() error { return r.setAdminLanguage(ctx, ev, "ru") })
	case VerbAdminSetLangEN:
		return r.withAdmin(isAdmin, func() error { return r.setAdminLanguage(ctx, ev, "en") })

	default:
		r.logger.Debug("ignoring unknown interaction verb", "verb", a.Verb)
		return nil
	}
}

// withAdmin gates operator-only verbs. Non-admins get silence, not an
// error: the button should never have been visible to them.
func (r *Router) withAdmin(isAdmin bool, fn func() error) error {
	if !isAdmin {
		return nil
	}
	return fn()
}

func (r *Router) isAdmin(actorID string) bool {
	id, err := kernel.ParseActorID(actorID)
	if err != nil {
		return false
	}
	return r.roster.IsAdmin(id)
}

// handleText routes a plain message: a pending session consumes it first,
// then slash commands, then the admin menus and intake. Requester text
// outside any flow starts the self-service order.
func (r *Router) handleText(ctx context.Context, ev TextMessage) error {
	s, err := r.sessions.Get(ctx, ev.Actor.ID)
	if err != nil {
		return err
	}
	if !s.IsZero() {
		handled, err := r.continueSession(ctx, ev, s)
		if err != nil || handled {
			return err
		}
	}

	switch ev.Text {
	case "/start":
		return r.startCommand(ctx, ev)
	case "/register":
		return r.registerCourier(ctx, ev)
	case "/disconnect":
		return r.disconnectCourier(ctx, ev)
	}

	if r.isAdmin(ev.Actor.ID) {
		return r.adminText(ctx, ev)
	}
	if r.isKnownCourier(ctx, ev.Actor.ID) {
		return nil
	}
	return r.requesterText(ctx, ev)
}

func (r *Router) handleLocation(ctx context.Context, ev LocationMessage) error {
	point, err := kernel.NewGeoPoint(ev.Lat, ev.Lng)
	if err != nil {
		return err
	}

	s, err := r.sessions.Get(ctx, ev.Actor.ID)
	if err != nil {
		return err
	}
	switch s.Mode {
	case session.ModeOnlineOrderLocation, session.ModeShareLocation:
		return r.locationReceived(ctx, ev, s, point)
	}

	// An admin sharing a point outside any flow opens an order there, the
	// same as pasting the map link.
	if r.isAdmin(ev.Actor.ID) {
		return r.intake(ctx, TextMessage{Actor: ev.Actor, Text: point.MapLink()})
	}
	return nil
}

func (r *Router) handleMedia(ctx context.Context, ev MediaMessage) error {
	s, err := r.sessions.Get(ctx, ev.Actor.ID)
	if err != nil {
		return err
	}
	if s.Mode == session.ModeAddQRPhoto && r.isAdmin(ev.Actor.ID) {
		return r.qrPhotoReceived(ctx, ev)
	}
	// A captioned photo from an admin is intake like any other message;
	// the caption alone can carry the items.
	if r.isAdmin(ev.Actor.ID) && strings.TrimSpace(ev.Caption) != "" {
		return r.intake(ctx, TextMessage{Actor: ev.Actor, Text: ev.Caption})
	}
	return nil
}

func (r *Router) isKnownCourier(ctx context.Context, actorID string) bool {
	id, err := kernel.ParseActorID(actorID)
	if err != nil {
		return false
	}
	_, err = r.couriers.Get(ctx, id)
	return err == nil
}

// getOrder loads an order by its token target.
func (r *Router) getOrder(ctx context.Context, targetID string) (*order.Order, error) {
	id, err := kernel.UUIDFromString(targetID)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("order id", err)
	}
	return r.orders.Get(ctx, id)
}
