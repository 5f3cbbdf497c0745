// Package layouts builds the button grids attached to outbound messages.
// Every function is a pure render: state in, ports.ButtonLayout out. The
// interaction tokens embedded in the buttons are the ones the action
// decoder understands.
package layouts

import (
	"fmt"

	"dispatch/internal/core/domain/model/artifact"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/i18n"
)

func token(parts ...string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += ":" + p
	}
	return out
}

// AdminMainMenu is the persistent operator menu pinned next to the input
// field.
func AdminMainMenu() *ports.ButtonLayout {
	l := ports.NewButtonLayout(
		[]ports.Button{{Label: "💾 SAVED"}, {Label: "⚡ ACTIVE"}, {Label: "✅ COMPLETED"}},
		[]ports.Button{{Label: "🆕 ONLINE"}, {Label: "⚙️ SETTINGS"}, {Label: "➕ New Draft"}},
	)
	l.Persistent = true
	return l
}

// AdminActions renders the per-order operator actions shown under an order
// detail view. The rows depend on the lifecycle stage.
func AdminActions(o *order.Order) *ports.ButtonLayout {
	id := o.ID().String()

	actionRow := []ports.Button{{Label: "✏️ Edit", Token: token("edit_menu", id)}}
	if !o.Status().IsPreDispatch() {
		actionRow = append(actionRow, ports.Button{Label: "❌ Cancel", Token: token("cancel", id)})
	}
	if o.Status() == order.Completed {
		actionRow = append(actionRow, ports.Button{Label: "🗃️ Archive", Token: token("admin_archive", id)})
	}

	l := ports.NewButtonLayout(actionRow)

	if o.Status().IsActive() {
		l.Rows = append(l.Rows, []ports.Button{
			{Label: "🏁 Arrived", Token: token("driver", "arrived", id)},
			{Label: "✅ Completed", Token: token("driver", "completed", id)},
			{Label: "Ping Driver", Token: token("customer_ping", id)},
		})
	}
	if o.Status().IsPreDispatch() {
		l.Rows = append(l.Rows, []ports.Button{{Label: "⚡ GO", Token: token("go", id)}})
	}
	return l
}

// AdminEdit renders the field editing menu for an order. The "Russian
// customer" shortcut appears only while the requester has no language
// preference yet.
func AdminEdit(o *order.Order, requesterHasLocale bool) *ports.ButtonLayout {
	id := o.ID().String()

	row3 := []ports.Button{
		{Label: "📃 Items", Token: token("edit", "items", id)},
		{Label: "💳 Payment", Token: token("edit", "payment", id)},
	}
	if !requesterHasLocale {
		row3 = append(row3, ports.Button{Label: "🇷🇺 Russian customer", Token: token("edit", "lang_ru", id)})
	}

	return ports.NewButtonLayout(
		[]ports.Button{
			{Label: "👤 Customer", Token: token("edit", "customer", id)},
			{Label: "📍 Location", Token: token("edit", "location", id)},
		},
		[]ports.Button{
			{Label: "🚀 Driver", Token: token("edit", "driver", id)},
			{Label: "💸 Total", Token: token("edit", "total", id)},
		},
		row3,
		[]ports.Button{
			{Label: "💾 Save", Token: token("save", id)},
			{Label: "❌ Cancel", Token: token("cancel", id)},
			{Label: "⬅️ Back", Token: token("detail", id)},
		},
	)
}

// Payment renders the admin-side payment controls of an order.
func Payment(orderID kernel.UUID) *ports.ButtonLayout {
	id := orderID.String()
	return ports.NewButtonLayout(
		[]ports.Button{
			{Label: "💳 CASH", Token: token("payment", "CASH", id)},
			{Label: "💳 QR", Token: token("payment", "QR", id)},
		},
		[]ports.Button{{Label: "💲 Mark as PAID", Token: token("payment", "PAID", id)}},
		[]ports.Button{{Label: "⬅️ Back", Token: token("edit_menu", id)}},
	)
}

// ConnectedCouriers lists couriers available for assignment to the order,
// one per row. An empty pool renders an inert notice button.
func ConnectedCouriers(couriers []*courier.Courier, orderID kernel.UUID) *ports.ButtonLayout {
	id := orderID.String()
	available := make([]*courier.Courier, 0, len(couriers))
	for _, c := range couriers {
		if c.Status() == courier.StatusOnline || c.Status().IsWorking() {
			available = append(available, c)
		}
	}

	if len(available) == 0 {
		return ports.NewButtonLayout([]ports.Button{{Label: "No drivers online", Token: "none"}})
	}

	l := &ports.ButtonLayout{}
	for _, c := range available {
		l.Rows = append(l.Rows, []ports.Button{{
			Label: fmt.Sprintf("%s %s", statusEmoji(c.Status()), c.DisplayName()),
			Token: token("assign", c.ID().String(), id),
		}})
	}
	l.Rows = append(l.Rows, []ports.Button{{Label: "Back to Order", Token: token("edit_menu", id)}})
	return l
}

// CourierActions renders the courier's controls for their active order.
func CourierActions(o *order.Order) *ports.ButtonLayout {
	id := o.ID().String()

	switch o.Status() {
	case order.ActiveReady:
		return ports.NewButtonLayout(
			[]ports.Button{{Label: "🛍️ Pick-up", Token: token("driver", "pickup", id)}},
		)
	case order.ActivePickedUp, order.Arrived:
		return ports.NewButtonLayout(
			[]ports.Button{
				{Label: "🏁 Arrived", Token: token("driver", "arrived", id)},
				{Label: "✅ Completed", Token: token("driver", "completed", id)},
			},
			[]ports.Button{
				{Label: "🚩 location", Token: token("driver", "location", id)},
				{Label: "⏰ Notify Delay", Token: token("driver", "delay", id)},
				{Label: "❌ Cancel", Token: token("driver", "cancel_request", id)},
			},
		)
	default:
		return &ports.ButtonLayout{}
	}
}

// CourierEdit renders the save/cancel controls of the courier note editor.
func CourierEdit(orderID kernel.UUID) *ports.ButtonLayout {
	id := orderID.String()
	return ports.NewButtonLayout([]ports.Button{
		{Label: "💾 Save", Token: token("driver", "save", id)},
		{Label: "❌ Cancel", Token: token("driver", "cancel_edit", id)},
	})
}

// RequesterPayment asks the requester to choose a payment method.
func RequesterPayment(orderID kernel.UUID) *ports.ButtonLayout {
	id := orderID.String()
	return ports.NewButtonLayout([]ports.Button{
		{Label: "💳 CASH", Token: token("customer_pay", "CASH", id)},
		{Label: "💳 QR", Token: token("customer_pay", "QR", id)},
	})
}

// QRDone lets the requester confirm a completed QR payment.
func QRDone(orderID kernel.UUID) *ports.ButtonLayout {
	return ports.NewButtonLayout([]ports.Button{
		{Label: "Done", Token: token("customer_pay", "QR_DONE", orderID.String())},
	})
}

// Ping gives the requester a button to nudge the courier.
func Ping(orderID kernel.UUID, loc i18n.Locale) *ports.ButtonLayout {
	label := "Ping Driver"
	if loc == i18n.LocaleRU {
		label = "📍 Пинг водителя"
	}
	return ports.NewButtonLayout([]ports.Button{
		{Label: label, Token: token("customer_ping", orderID.String())},
	})
}

// Language asks for a language preference.
func Language() *ports.ButtonLayout {
	return ports.NewButtonLayout(
		[]ports.Button{{Label: "English 🇬🇧", Token: token("lang", "en")}},
		[]ports.Button{{Label: "Russian 🇷🇺", Token: token("lang", "ru")}},
	)
}

// LocationRequest asks the client to share coordinates.
func LocationRequest(loc i18n.Locale) *ports.ButtonLayout {
	label := "📍 Share Location"
	if loc == i18n.LocaleRU {
		label = "📍 Поделиться местоположением"
	}
	l := ports.NewButtonLayout([]ports.Button{{Label: label, RequestLocation: true}})
	l.Persistent = true
	return l
}

// Delay lets the courier pick a delay notice for the requester.
func Delay(orderID kernel.UUID) *ports.ButtonLayout {
	id := orderID.String()
	return ports.NewButtonLayout(
		[]ports.Button{{Label: "⌛ <5mn", Token: token("delay", "lt5", id)}},
		[]ports.Button{{Label: "🏁 <2mn", Token: token("delay", "lt2", id)}},
		[]ports.Button{{Label: "🚧 >10mn", Token: token("delay", "gt10", id)}},
		[]ports.Button{{Label: "⬅️ Back", Token: token("driver", "active_order_detail", id)}},
	)
}

// Feedback renders the 1..5 star score row.
func Feedback(orderID kernel.UUID) *ports.ButtonLayout {
	id := orderID.String()
	row := make([]ports.Button, 0, 5)
	for score := 1; score <= 5; score++ {
		row = append(row, ports.Button{
			Label: fmt.Sprintf("%d⭐", score),
			Token: token("fb", fmt.Sprintf("%d", score), id),
		})
	}
	return ports.NewButtonLayout(row)
}

// DisconnectApproval asks admins to approve or deny a working courier's
// disconnect request.
func DisconnectApproval(courierID kernel.ActorID) *ports.ButtonLayout {
	id := courierID.String()
	return ports.NewButtonLayout([]ports.Button{
		{Label: "Approve", Token: token("disconnect", "approve", id)},
		{Label: "Deny", Token: token("disconnect", "deny", id)},
	})
}

// AdminSettings renders the settings menu. The language toggle reflects
// the admin's current preference.
func AdminSettings(current i18n.Locale) *ports.ButtonLayout {
	langButton := ports.Button{Label: "Set Russian language", Token: "admin_set_lang_ru"}
	if current == i18n.LocaleRU {
		langButton = ports.Button{Label: "Set English language", Token: "admin_set_lang_en"}
	}

	return ports.NewButtonLayout(
		[]ports.Button{{Label: "Manage Admins", Token: "admin_manage_admins"}},
		[]ports.Button{{Label: "Manage QR Codes", Token: "admin_manage_qrs"}},
		[]ports.Button{{Label: "Manage Drivers", Token: "admin_manage_drivers"}},
		[]ports.Button{{Label: "🗄️ Archive", Token: "admin_archive"}},
		[]ports.Button{langButton},
		[]ports.Button{{Label: "⬅️ Back to Main Menu", Token: "admin_main_menu"}},
	)
}

// ManageQRs lists stored payment codes with view/delete controls.
func ManageQRs(qrs []*artifact.QR) *ports.ButtonLayout {
	l := &ports.ButtonLayout{}
	for _, qr := range qrs {
		id := qr.ID().String()
		l.Rows = append(l.Rows, []ports.Button{
			{Label: fmt.Sprintf("QR: %s", qr.Title()), Token: token("qr", "view", id)},
			{Label: "🗑️", Token: token("qr", "delete", id)},
		})
	}
	l.Rows = append(l.Rows,
		[]ports.Button{{Label: "➕ Add New QR", Token: "admin_add_qr"}},
		[]ports.Button{{Label: "⬅️ Back to Settings", Token: "admin_settings"}},
	)
	return l
}

// ManageAdmins lists the roster; everyone but the primary gets a remove
// control.
func ManageAdmins(ids []kernel.ActorID, primary kernel.ActorID) *ports.ButtonLayout {
	l := &ports.ButtonLayout{}
	for _, id := range ids {
		row := []ports.Button{{Label: id.String(), Token: token("admin", "view", id.String())}}
		if id != primary {
			row = append(row, ports.Button{Label: "🗑️", Token: token("admin", "remove", id.String())})
		}
		l.Rows = append(l.Rows, row)
	}
	l.Rows = append(l.Rows,
		[]ports.Button{{Label: "➕ Add New Admin", Token: "admin_add_admin"}},
		[]ports.Button{{Label: "⬅️ Back to Settings", Token: "admin_settings"}},
	)
	return l
}

// ManageCouriers lists every courier with block/unblock and remove
// controls.
func ManageCouriers(couriers []*courier.Courier) *ports.ButtonLayout {
	l := &ports.ButtonLayout{}
	for _, c := range couriers {
		id := c.ID().String()
		toggle := ports.Button{Label: "⏸️", Token: token("driver_admin", "block", id)}
		if c.Status().IsBlocked() {
			toggle = ports.Button{Label: "▶️", Token: token("driver_admin", "unblock", id)}
		}
		l.Rows = append(l.Rows, []ports.Button{
			{Label: fmt.Sprintf("%s %s", statusEmoji(c.Status()), c.DisplayName()), Token: "none"},
			toggle,
			{Label: "❌", Token: token("driver_admin", "remove", id)},
		})
	}
	l.Rows = append(l.Rows, []ports.Button{{Label: "⬅️ Back to Settings", Token: "admin_settings"}})
	return l
}

// OrderListRow renders one order line of an admin list view: a detail
// button followed by the quick actions that fit the order's stage.
func OrderListRow(o *order.Order) []ports.Button {
	id := o.ID().String()
	row := []ports.Button{{
		Label: fmt.Sprintf("%s · %s", o.Status(), o.Items()),
		Token: token("view_detail", id),
	}}

	switch {
	case o.Status().IsPreDispatch():
		row = append(row, ports.Button{Label: "❌", Token: token("order_action", "delete", id)})
		if o.SelectedCourierID() == nil {
			row = append(row, ports.Button{Label: "🚀", Token: token("order_action", "assign", id)})
		} else {
			row = append(row, ports.Button{Label: "⚡", Token: token("order_action", "go", id)})
		}
	case o.Status().IsActive():
		row = append(row,
			ports.Button{Label: "🏁", Token: token("order_action", "arrived", id)},
			ports.Button{Label: "✅", Token: token("order_action", "completed", id)},
			ports.Button{Label: "♻️", Token: token("order_action", "change_driver", id)},
			ports.Button{Label: "❌", Token: token("order_action", "cancel", id)},
		)
	case o.Status() == order.Completed && !o.Archived():
		row = append(row, ports.Button{Label: "🗂️", Token: token("order_action", "archive", id)})
	}
	return row
}

func statusEmoji(s courier.Status) string {
	switch s {
	case courier.StatusOnline:
		return "🟢"
	case courier.StatusAssigned:
		return "🟡"
	case courier.StatusBusy:
		return "🔴"
	case courier.StatusBlocked:
		return "⛔"
	default:
		return "⚪"
	}
}
