package dispatch

import (
	"strings"

	"dispatch/internal/pkg/errs"
)

// Interaction verbs understood by the router. Buttons rendered by the
// layouts package carry tokens built from these verbs; anything else
// decodes fine but routes to a no-op acknowledgement, so stale buttons
// from old messages never error out.
const (
	VerbNone         = "none"
	VerbLang         = "lang"
	VerbGo           = "go"
	VerbAssign       = "assign"
	VerbCancel       = "cancel"
	VerbSave         = "save"
	VerbDetail       = "detail"
	VerbViewDetail   = "view_detail"
	VerbEditMenu     = "edit_menu"
	VerbEdit         = "edit"
	VerbPayment      = "payment"
	VerbOrderAction  = "order_action"
	VerbDriver       = "driver"
	VerbDriverAdmin  = "driver_admin"
	VerbDelay        = "delay"
	VerbFeedback     = "fb"
	VerbCustomerPay  = "customer_pay"
	VerbCustomerPing = "customer_ping"
	VerbDisconnect   = "disconnect"
	VerbQR           = "qr"
	VerbAdmin        = "admin"

	VerbAdminMainMenu      = "admin_main_menu"
	VerbAdminSettings      = "admin_settings"
	VerbAdminArchive       = "admin_archive"
	VerbAdminManageQRs     = "admin_manage_qrs"
	VerbAdminAddQR         = "admin_add_qr"
	VerbAdminManageAdmins  = "admin_manage_admins"
	VerbAdminAddAdmin      = "admin_add_admin"
	VerbAdminManageDrivers = "admin_manage_drivers"
	VerbAdminSetLangRU     = "admin_set_lang_ru"
	VerbAdminSetLangEN     = "admin_set_lang_en"
)

// Action is a decoded interaction token.
type Action struct {
	// Verb selects the handler.
	Verb string

	// SubVerb qualifies the verb ("driver:pickup:...", "lang:ru").
	SubVerb string

	// TargetID is the entity the action applies to, usually an order id or
	// an actor id.
	TargetID string
}

// DecodeAction parses the colon-delimited token grammar
// verb[:subVerb][:targetId]. With two segments the second one doubles as
// both sub-verb and target; verbs of the admin menu family ("admin_*",
// "none", "lang") never carry a target, so their second segment stays a
// sub-verb only. An empty token is the only decode failure.
func DecodeAction(token string) (Action, error) {
	if token == "" {
		return Action{}, errs.NewValueIsRequiredError("interaction token")
	}

	parts := strings.Split(token, ":")
	a := Action{Verb: parts[0]}
	if len(parts) > 1 {
		a.SubVerb = parts[1]
	}

	switch {
	case len(parts) > 2:
		a.TargetID = parts[2]
	case len(parts) > 1 && !isTargetless(a.Verb):
		a.TargetID = parts[1]
	}
	return a, nil
}

func isTargetless(verb string) bool {
	return verb == VerbNone || verb == VerbLang || strings.HasPrefix(verb, "admin_")
}
