package dispatch_test

import (
	"testing"

	"dispatch/internal/core/application/dispatch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAction(t *testing.T) {
	t.Run("single_segment", func(t *testing.T) {
		a, err := dispatch.DecodeAction("admin_settings")
		require.NoError(t, err)
		assert.Equal(t, dispatch.Action{Verb: "admin_settings"}, a)
	})

	t.Run("two_segments_second_is_both_sub_and_target", func(t *testing.T) {
		a, err := dispatch.DecodeAction("go:order-1")
		require.NoError(t, err)
		assert.Equal(t, "go", a.Verb)
		assert.Equal(t, "order-1", a.SubVerb)
		assert.Equal(t, "order-1", a.TargetID)
	})

	t.Run("three_segments", func(t *testing.T) {
		a, err := dispatch.DecodeAction("driver:pickup:order-1")
		require.NoError(t, err)
		assert.Equal(t, dispatch.Action{Verb: "driver", SubVerb: "pickup", TargetID: "order-1"}, a)
	})

	t.Run("targetless_verbs_keep_second_segment_as_subverb", func(t *testing.T) {
		a, err := dispatch.DecodeAction("lang:ru")
		require.NoError(t, err)
		assert.Equal(t, "ru", a.SubVerb)
		assert.Empty(t, a.TargetID)

		a, err = dispatch.DecodeAction("admin_archive:order-1")
		require.NoError(t, err)
		assert.Equal(t, "order-1", a.SubVerb)
		assert.Empty(t, a.TargetID)
	})

	t.Run("unknown_verbs_still_decode", func(t *testing.T) {
		a, err := dispatch.DecodeAction("totally_unknown:x:y")
		require.NoError(t, err)
		assert.Equal(t, "totally_unknown", a.Verb)
	})

	t.Run("empty_token_is_rejected", func(t *testing.T) {
		_, err := dispatch.DecodeAction("")
		require.Error(t, err)
	})
}
