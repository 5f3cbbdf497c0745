package i18n_test

import (
	"testing"

	"dispatch/internal/pkg/i18n"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	t.Run("resolves_locale", func(t *testing.T) {
		en := i18n.Translate(i18n.KeyCashNoted, i18n.LocaleEN)
		ru := i18n.Translate(i18n.KeyCashNoted, i18n.LocaleRU)

		assert.NotEqual(t, en, ru)
		assert.Equal(t, "Thank you, the driver has been notified.", en)
	})

	t.Run("unset_locale_falls_back_to_english", func(t *testing.T) {
		assert.Equal(t,
			i18n.Translate(i18n.KeyOrderForwarded, i18n.LocaleEN),
			i18n.Translate(i18n.KeyOrderForwarded, i18n.LocaleUnset))
	})

	t.Run("splices_arguments", func(t *testing.T) {
		got := i18n.Translate(i18n.KeyWelcomeAskItems, i18n.LocaleEN, "Alice")
		assert.Contains(t, got, "Alice")
	})

	t.Run("unknown_key_returns_key", func(t *testing.T) {
		assert.Equal(t, "nope", i18n.Translate("nope", i18n.LocaleEN))
	})
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, i18n.LocaleEN, i18n.ParseLocale("en"))
	assert.Equal(t, i18n.LocaleRU, i18n.ParseLocale("ru"))
	assert.Equal(t, i18n.LocaleUnset, i18n.ParseLocale("fr"))
	assert.Equal(t, "en", i18n.LocaleEN.String())
}
