package internal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plinthhq/plinth/internal"
)

func TestState(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		s := internal.NewState()
		s.Set("pool", "the-pool")
		require.Equal(t, "the-pool", s.Get("pool"))
	})

	t.Run("get missing returns nil", func(t *testing.T) {
		t.Parallel()

		s := internal.NewState()
		require.Nil(t, s.Get("absent"))
	})

	t.Run("lookup distinguishes absent from nil", func(t *testing.T) {
		t.Parallel()

		s := internal.NewState()
		s.Set("nothing", nil)

		v, ok := s.Lookup("nothing")
		require.True(t, ok)
		require.Nil(t, v)

		_, ok = s.Lookup("absent")
		require.False(t, ok)
	})

	t.Run("set replaces and delete removes", func(t *testing.T) {
		t.Parallel()

		s := internal.NewState()
		s.Set("flag", true)
		s.Set("flag", false)
		require.Equal(t, false, s.Get("flag"))

		s.Delete("flag")
		_, ok := s.Lookup("flag")
		require.False(t, ok)
	})
}
