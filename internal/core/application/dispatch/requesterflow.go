package dispatch

import (
	"context"
	"fmt"
	"strings"

	"dispatch/internal/core/application/layouts"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/session"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/i18n"

	"github.com/shopspring/decimal"
)

// startCommand handles /start for all three roles.
func (r *Router) startCommand(ctx context.Context, ev TextMessage) error {
	if r.isAdmin(ev.Actor.ID) {
		r.gateway.Send(ctx, ev.Actor.ID, "Welcome back!", layouts.AdminMainMenu())
		return nil
	}
	if r.isKnownCourier(ctx, ev.Actor.ID) {
		r.gateway.Send(ctx, ev.Actor.ID, "Use /register to go online and /disconnect to go offline.", nil)
		return nil
	}
	return r.startOnlineOrder(ctx, ev)
}

// requesterText is any non-command text from a customer outside a pending
// flow: it opens the self-service order conversation.
func (r *Router) requesterText(ctx context.Context, ev TextMessage) error {
	return r.startOnlineOrder(ctx, ev)
}

// startOnlineOrder begins the self-service flow. Customers without a
// language preference choose one first; returning customers go straight to
// the item question.
func (r *Router) startOnlineOrder(ctx context.Context, ev TextMessage) error {
	name := ev.Actor.DisplayName
	if name == "" {
		name = ev.Actor.ID
	}
	req, err := r.requesters.FindOrCreate(ctx, ev.Actor.ID, name)
	if err != nil {
		return err
	}

	if req.Locale() == i18n.LocaleUnset {
		err := r.sessions.Set(ctx, ev.Actor.ID, session.NewPatch().WithMode(session.ModeOnlineOrderStart))
		if err != nil {
			return err
		}
		r.gateway.Send(ctx, ev.Actor.ID,
			i18n.Translate(i18n.KeyChooseLanguage, i18n.LocaleEN), layouts.Language())
		return nil
	}
	return r.askItems(ctx, ev.Actor.ID, req.Locale(), req.DisplayName())
}

func (r *Router) askItems(ctx context.Context, actorID string, loc i18n.Locale, displayName string) error {
	err := r.sessions.Set(ctx, actorID, session.NewPatch().WithMode(session.ModeOnlineOrderItems))
	if err != nil {
		return err
	}
	r.gateway.Send(ctx, actorID,
		i18n.Translate(i18n.KeyWelcomeAskItems, loc, displayName), nil)
	return nil
}

// requesterChoseLanguage handles lang:<en|ru>.
func (r *Router) requesterChoseLanguage(ctx context.Context, ev InteractionEvent, a Action) error {
	loc := i18n.ParseLocale(a.SubVerb)
	if err := loc.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("language", err)
	}

	name := ev.Actor.DisplayName
	if name == "" {
		name = ev.Actor.ID
	}
	req, err := r.requesters.FindOrCreate(ctx, ev.Actor.ID, name)
	if err != nil {
		return err
	}
	if err := req.SetLocale(loc); err != nil {
		return err
	}
	if err := r.requesters.Update(ctx, req); err != nil {
		return err
	}
	return r.askItems(ctx, ev.Actor.ID, loc, req.DisplayName())
}

// continueSession consumes a text message claimed by a pending flow.
// Returns false when the session does not want text, so plain routing
// proceeds.
func (r *Router) continueSession(ctx context.Context, ev TextMessage, s session.Session) (bool, error) {
	switch s.Mode {
	case session.ModeEdit:
		if !r.isAdmin(ev.Actor.ID) {
			return false, nil
		}
		return true, r.applyFieldEdit(ctx, ev, s)

	case session.ModeAddQRTitle:
		if !r.isAdmin(ev.Actor.ID) {
			return false, nil
		}
		return true, r.qrTitleReceived(ctx, ev, s)

	case session.ModeAddAdmin:
		if !r.isAdmin(ev.Actor.ID) {
			return false, nil
		}
		return true, r.adminIDReceived(ctx, ev)

	case session.ModeAddQRPhoto:
		r.gateway.Send(ctx, ev.Actor.ID, "Please send the QR code as an image.", nil)
		return true, nil

	case session.ModeOnlineOrderStart:
		r.gateway.Send(ctx, ev.Actor.ID,
			i18n.Translate(i18n.KeyChooseLanguage, i18n.LocaleEN), layouts.Language())
		return true, nil

	case session.ModeOnlineOrderItems:
		return true, r.itemsReceived(ctx, ev)

	case session.ModeOnlineOrderLocation:
		// A pasted map link is as good as a shared location.
		if link := urlPattern.FindString(ev.Text); link != "" {
			return true, r.finalizeOnlineOrder(ctx, ev.Actor.ID, s, link)
		}
		req, err := r.requesters.Get(ctx, ev.Actor.ID)
		loc := i18n.LocaleEN
		if err == nil {
			loc = req.Locale()
		}
		r.gateway.Send(ctx, ev.Actor.ID,
			i18n.Translate(i18n.KeyAskLocation, loc), layouts.LocationRequest(loc))
		return true, nil

	case session.ModeCustomerCashGiven:
		return true, r.cashReceived(ctx, ev, s)

	default:
		return false, nil
	}
}

// itemsReceived stores the item description and asks for the delivery
// location.
func (r *Router) itemsReceived(ctx context.Context, ev TextMessage) error {
	items := strings.TrimSpace(ev.Text)
	if items == "" {
		return errs.NewValueIsRequiredError("order items")
	}

	err := r.sessions.Set(ctx, ev.Actor.ID, session.NewPatch().
		WithMode(session.ModeOnlineOrderLocation).
		WithPayload(items))
	if err != nil {
		return err
	}

	req, err := r.requesters.Get(ctx, ev.Actor.ID)
	if err != nil {
		return err
	}
	r.gateway.Send(ctx, ev.Actor.ID,
		i18n.Translate(i18n.KeyAskLocation, req.Locale()), layouts.LocationRequest(req.Locale()))
	return nil
}

// finalizeOnlineOrder opens the order once the location is known and
// forwards it to the admins.
func (r *Router) finalizeOnlineOrder(ctx context.Context, actorID string, s session.Session, locationLink string) error {
	o, err := order.NewOrder(kernel.NewUUID(), actorID, order.NewOnline, s.Payload, locationLink)
	if err != nil {
		return err
	}
	if err := r.orders.Add(ctx, o); err != nil {
		return err
	}
	if err := r.sessions.Clear(ctx, actorID); err != nil {
		return err
	}

	req, err := r.requesters.Get(ctx, actorID)
	if err != nil {
		return err
	}
	r.gateway.Send(ctx, actorID, i18n.Translate(i18n.KeyOrderForwarded, req.Locale()), nil)
	r.gateway.Broadcast(ctx, r.roster.All(),
		"🆕 New online order:\n"+r.renderOrderDetail(ctx, o), layouts.AdminActions(o))
	return nil
}

// requesterChosePayment handles customer_pay:<CASH|QR|QR_DONE>:<orderId>.
func (r *Router) requesterChosePayment(ctx context.Context, ev InteractionEvent, a Action) error {
	o, err := r.getOrder(ctx, a.TargetID)
	if err != nil {
		return err
	}

	loc := i18n.LocaleEN
	if req, err := r.requesters.Get(ctx, ev.Actor.ID); err == nil {
		loc = req.Locale()
	}

	switch a.SubVerb {
	case "CASH":
		o.SetPaymentMethod(order.PaymentCash)
		if err := r.orders.Update(ctx, o); err != nil {
			return err
		}
		orderID := o.ID()
		err := r.sessions.Set(ctx, ev.Actor.ID, session.NewPatch().
			WithMode(session.ModeCustomerCashGiven).
			WithOrderID(&orderID))
		if err != nil {
			return err
		}
		r.gateway.Send(ctx, ev.Actor.ID, i18n.Translate(i18n.KeyAskCashAmount, loc), nil)
		return nil

	case "QR":
		qrs, err := r.artifacts.GetAll(ctx)
		if err != nil {
			return err
		}
		if len(qrs) == 0 {
			r.gateway.Send(ctx, ev.Actor.ID, i18n.Translate(i18n.KeyQRUnavailable, loc), nil)
			return nil
		}
		o.SetPaymentMethod(order.PaymentQR)
		if err := r.orders.Update(ctx, o); err != nil {
			return err
		}
		r.gateway.SendMedia(ctx, ev.Actor.ID, qrs[0].MediaRef(),
			i18n.Translate(i18n.KeyScanToPay, loc), nil)
		r.gateway.Send(ctx, ev.Actor.ID,
			i18n.Translate(i18n.KeyClickDoneWhenPaid, loc), layouts.QRDone(o.ID()))
		return nil

	case "QR_DONE":
		o.MarkPaid()
		if err := r.orders.Update(ctx, o); err != nil {
			return err
		}
		r.gateway.Send(ctx, ev.Actor.ID, i18n.Translate(i18n.KeyThanksForPayment, loc), nil)
		r.gateway.Broadcast(ctx, r.roster.All(),
			fmt.Sprintf("💲 Order %s marked as paid by the customer.", o.ID()), nil)
		return nil

	default:
		return errs.NewValueIsInvalidError("payment choice")
	}
}

// cashReceived records the announced cash amount and tells the courier how
// much change to bring.
func (r *Router) cashReceived(ctx context.Context, ev TextMessage, s session.Session) error {
	if s.OrderID == nil {
		return errs.NewValueIsRequiredError("cash session order")
	}
	given, err := decimal.NewFromString(strings.TrimSpace(ev.Text))
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("cash amount", err)
	}

	o, err := r.orders.Get(ctx, *s.OrderID)
	if err != nil {
		return err
	}
	if err := o.SetCashGiven(given); err != nil {
		return err
	}
	if err := r.orders.Update(ctx, o); err != nil {
		return err
	}
	if err := r.sessions.Clear(ctx, ev.Actor.ID); err != nil {
		return err
	}

	loc := i18n.LocaleEN
	if req, err := r.requesters.Get(ctx, ev.Actor.ID); err == nil {
		loc = req.Locale()
	}
	r.gateway.Send(ctx, ev.Actor.ID, i18n.Translate(i18n.KeyCashNoted, loc), nil)

	if id := o.CourierID(); id != nil {
		msg := fmt.Sprintf("💵 Customer will pay %s in cash for order %s.", given, o.ID())
		if o.CashChange() != nil {
			msg += fmt.Sprintf(" Bring %s in change.", o.CashChange())
		}
		r.gateway.Send(ctx, id.String(), msg, nil)
	}
	return nil
}

// requesterScoredDelivery handles fb:<1..5>:<orderId>. Only the first
// score lands; repeats answer politely without re-broadcasting.
func (r *Router) requesterScoredDelivery(ctx context.Context, ev InteractionEvent, a Action) error {
	score := 0
	if _, err := fmt.Sscanf(a.SubVerb, "%d", &score); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("feedback score", err)
	}

	o, err := r.getOrder(ctx, a.TargetID)
	if err != nil {
		return err
	}
	if err := o.SetFeedback(score); err != nil {
		return err
	}
	if err := r.orders.Update(ctx, o); err != nil {
		return err
	}

	loc := i18n.LocaleEN
	if req, err := r.requesters.Get(ctx, ev.Actor.ID); err == nil {
		loc = req.Locale()
	}
	r.gateway.Send(ctx, ev.Actor.ID, i18n.Translate(i18n.KeyFeedbackThanks, loc, score), nil)
	r.gateway.Broadcast(ctx, r.roster.All(),
		fmt.Sprintf("⭐ Order %s rated %d/5.", o.ID(), score), nil)
	return nil
}

// locationReceived routes a shared location by the pending session.
func (r *Router) locationReceived(ctx context.Context, ev LocationMessage, s session.Session, point kernel.GeoPoint) error {
	switch s.Mode {
	case session.ModeOnlineOrderLocation:
		return r.finalizeOnlineOrder(ctx, ev.Actor.ID, s, point.MapLink())

	case session.ModeShareLocation:
		if s.OrderID == nil {
			return errs.NewValueIsRequiredError("location session order")
		}
		o, err := r.orders.Get(ctx, *s.OrderID)
		if err != nil {
			return err
		}
		if err := r.sessions.Clear(ctx, ev.Actor.ID); err != nil {
			return err
		}
		r.notifyRequesterLocalized(ctx, o, func(i18n.Locale, string) (string, *ports.ButtonLayout) {
			return "🚩 " + point.MapLink(), nil
		})
		r.gateway.Send(ctx, ev.Actor.ID, "Location sent to the customer.", nil)
		return nil

	default:
		return nil
	}
}
