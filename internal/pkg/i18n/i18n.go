// Package i18n provides the localized string lookup used for
// requester-facing and admin-facing messages. Translation is a pure
// table lookup; message arguments are spliced with fmt.Sprintf.
package i18n

import "fmt"

// Locale identifies a message language. The zero value means "not chosen
// yet" and falls back to English.
type Locale int

const (
	LocaleUnset Locale = iota
	LocaleEN
	LocaleRU
)

// ParseLocale maps the wire representation ("en"/"ru") to a Locale.
func ParseLocale(s string) Locale {
	switch s {
	case "en":
		return LocaleEN
	case "ru":
		return LocaleRU
	default:
		return LocaleUnset
	}
}

// Validate checks that the locale is one of the supported languages.
func (l Locale) Validate() error {
	if l != LocaleEN && l != LocaleRU {
		return fmt.Errorf("locale %d is not supported", l)
	}
	return nil
}

func (l Locale) String() string {
	switch l {
	case LocaleEN:
		return "en"
	case LocaleRU:
		return "ru"
	default:
		return ""
	}
}

// Message keys.
const (
	KeyChooseLanguage     = "choose_language"
	KeyWelcomeAskItems    = "welcome_ask_items"
	KeyAskLocation        = "ask_location"
	KeyOrderForwarded     = "order_forwarded"
	KeyOrderApproved      = "order_approved"
	KeyAskCashAmount      = "ask_cash_amount"
	KeyCashNoted          = "cash_noted"
	KeyScanToPay          = "scan_to_pay"
	KeyClickDoneWhenPaid  = "click_done_when_paid"
	KeyQRUnavailable      = "qr_unavailable"
	KeyThanksForPayment   = "thanks_for_payment"
	KeyCourierPinged      = "courier_pinged"
	KeyOrderOnTheWay      = "order_on_the_way"
	KeyCourierArrived     = "courier_arrived"
	KeyOrderCompleted     = "order_completed"
	KeyFeedbackThanks     = "feedback_thanks"
	KeyFeedbackRecorded   = "feedback_recorded"
	KeyDelayShort         = "delay_short"
	KeyDelayCouple        = "delay_couple"
	KeyDelayLong          = "delay_long"
)

var messages = map[string]map[Locale]string{
	KeyChooseLanguage: {
		LocaleEN: "Please choose your language:",
		LocaleRU: "Пожалуйста, выберите язык:",
	},
	KeyWelcomeAskItems: {
		LocaleEN: "Welcome %s, what meal would you like to order?",
		LocaleRU: "Добро пожаловать, %s! Какое блюдо вы хотели бы заказать?",
	},
	KeyAskLocation: {
		LocaleEN: "Noted! Share your location using the button below.",
		LocaleRU: "Принято! Поделитесь своим местоположением с помощью кнопки ниже.",
	},
	KeyOrderForwarded: {
		LocaleEN: "Thank you! Your order has been sent to admin, you will receive a confirmation in a minute.",
		LocaleRU: "Спасибо! Ваш заказ отправлен администратору, вы получите подтверждение в течение минуты.",
	},
	KeyOrderApproved: {
		LocaleEN: "Dear %s, your order has been approved and is being prepared.\nTotal: %s\nWould you like to pay by CASH or QR?",
		LocaleRU: "Уважаемый(-ая) %s, ваш заказ был одобрен и готовится.\nСумма: %s\nХотите оплатить НАЛИЧНЫМИ или по QR?",
	},
	KeyAskCashAmount: {
		LocaleEN: "How much cash will you give to the driver?",
		LocaleRU: "Сколько наличных вы передадите водителю?",
	},
	KeyCashNoted: {
		LocaleEN: "Thank you, the driver has been notified.",
		LocaleRU: "Спасибо, водитель уведомлен.",
	},
	KeyScanToPay: {
		LocaleEN: "Please scan to pay.",
		LocaleRU: "Пожалуйста, отсканируйте для оплаты.",
	},
	KeyClickDoneWhenPaid: {
		LocaleEN: "Click 'Done' when you have paid.",
		LocaleRU: "Нажмите 'Готово' после оплаты.",
	},
	KeyQRUnavailable: {
		LocaleEN: "QR payment is currently unavailable.",
		LocaleRU: "Оплата по QR временно недоступна.",
	},
	KeyThanksForPayment: {
		LocaleEN: "Thank you for your payment!",
		LocaleRU: "Спасибо за ваш платеж!",
	},
	KeyCourierPinged: {
		LocaleEN: "Driver has been pinged.",
		LocaleRU: "Водитель уведомлен.",
	},
	KeyOrderOnTheWay: {
		LocaleEN: "Dear %s your order is on the way and should arrive within 20 minutes, you can ping the driver if he is late.",
		LocaleRU: "Уважаемый(-ая) %s, ваш заказ в пути и должен прибыть в течение 20 минут. Вы можете пингануть водителя, если он задерживается.",
	},
	KeyCourierArrived: {
		LocaleEN: "🏁 Your driver for order %s has arrived and is waiting for you at your doorstep!",
		LocaleRU: "🏁 Ваш водитель по заказу %s прибыл и ждет вас у вашей двери!",
	},
	KeyOrderCompleted: {
		LocaleEN: "✅ Your order %s is complete. Thanks for ordering with us! Please rate your delivery experience /5",
		LocaleRU: "✅ Ваш заказ %s выполнен. Спасибо за ваш заказ! Оцените качество доставки по 5-балльной шкале /5",
	},
	KeyFeedbackThanks: {
		LocaleEN: "Thank you for the %d star feedback!",
		LocaleRU: "Спасибо за ваш отзыв %d ⭐!",
	},
	KeyFeedbackRecorded: {
		LocaleEN: "Thank you for your feedback!",
		LocaleRU: "Спасибо за ваш отзыв!",
	},
	KeyDelayShort: {
		LocaleEN: "Traffic is dense, I am not far. Give me 5 minutes 🙏",
		LocaleRU: "Движение плотное, я недалеко. Дайте мне 5 минут 🙏",
	},
	KeyDelayCouple: {
		LocaleEN: "I am really close, just a couple of minutes 🙏",
		LocaleRU: "Я очень близко, всего пару минут 🙏",
	},
	KeyDelayLong: {
		LocaleEN: "We are busier than usual. I am on the way and will deliver in about 10 minutes. Thank you for understanding.",
		LocaleRU: "У нас больше заказов, чем обычно. Я уже в пути и доставлю примерно через 10 минут. Спасибо за понимание.",
	},
}

// Translate resolves key for the given locale, falling back to English for
// unknown locales. Unknown keys return the key itself so a missing entry is
// visible instead of silent.
func Translate(key string, loc Locale, args ...any) string {
	byLocale, ok := messages[key]
	if !ok {
		return key
	}

	msg, ok := byLocale[loc]
	if !ok {
		msg = byLocale[LocaleEN]
	}

	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
