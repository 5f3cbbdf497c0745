package admin_test

import (
	"testing"

	"dispatch/internal/core/domain/model/admin"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actorID(t *testing.T, s string) kernel.ActorID {
	t.Helper()
	id, err := kernel.ParseActorID(s)
	require.NoError(t, err)
	return id
}

func TestRoster(t *testing.T) {
	primary := "10"
	second := "20"
	stranger := "30"

	newRoster := func(t *testing.T) *admin.Roster {
		r, err := admin.NewRoster([]kernel.ActorID{actorID(t, primary), actorID(t, second)})
		require.NoError(t, err)
		return r
	}

	t.Run("requires_at_least_one_admin", func(t *testing.T) {
		_, err := admin.NewRoster(nil)
		require.Error(t, err)
	})

	t.Run("membership", func(t *testing.T) {
		r := newRoster(t)
		assert.True(t, r.IsAdmin(actorID(t, primary)))
		assert.True(t, r.IsAdmin(actorID(t, second)))
		assert.False(t, r.IsAdmin(actorID(t, stranger)))
		assert.Equal(t, actorID(t, primary), r.Primary())
	})

	t.Run("add_and_remove", func(t *testing.T) {
		r := newRoster(t)
		require.NoError(t, r.Add(actorID(t, stranger)))
		assert.True(t, r.IsAdmin(actorID(t, stranger)))

		assert.ErrorIs(t, r.Add(actorID(t, stranger)), admin.ErrAdminAlreadyExists)

		require.NoError(t, r.Remove(actorID(t, stranger)))
		assert.False(t, r.IsAdmin(actorID(t, stranger)))

		require.Error(t, r.Remove(actorID(t, stranger)))
	})

	t.Run("primary_cannot_be_removed", func(t *testing.T) {
		r := newRoster(t)
		assert.ErrorIs(t, r.Remove(actorID(t, primary)), admin.ErrPrimaryAdminIsImmutable)
		assert.True(t, r.IsAdmin(actorID(t, primary)))
	})

	t.Run("locale_defaults_to_english", func(t *testing.T) {
		r := newRoster(t)
		assert.Equal(t, i18n.LocaleEN, r.Locale(actorID(t, primary)))

		require.NoError(t, r.SetLocale(actorID(t, primary), i18n.LocaleRU))
		assert.Equal(t, i18n.LocaleRU, r.Locale(actorID(t, primary)))

		require.Error(t, r.SetLocale(actorID(t, stranger), i18n.LocaleRU))
	})
}
