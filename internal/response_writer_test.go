package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plinthhq/plinth/internal"
)

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("defaults to 200 and not written", func(t *testing.T) {
		t.Parallel()

		w := internal.NewResponseWriter(httptest.NewRecorder())
		require.Equal(t, http.StatusOK, w.Status())
		require.False(t, w.Written())
		require.False(t, w.Hijacked())
		require.Zero(t, w.Size())
	})

	t.Run("WriteHeader records status once", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec)

		w.WriteHeader(http.StatusNotFound)
		w.WriteHeader(http.StatusOK) // ignored

		require.True(t, w.Written())
		require.Equal(t, http.StatusNotFound, w.Status())
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Write implies header and tracks size", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec)

		n, err := w.Write([]byte("hello"))
		require.NoError(t, err)
		require.Equal(t, 5, n)

		m, err := w.Write([]byte(" world"))
		require.NoError(t, err)
		require.Equal(t, 6, m)

		require.True(t, w.Written())
		require.Equal(t, http.StatusOK, w.Status())
		require.Equal(t, int64(11), w.Size())
		require.Equal(t, "hello world", rec.Body.String())
	})

	t.Run("Hijack unsupported by recorder", func(t *testing.T) {
		t.Parallel()

		w := internal.NewResponseWriter(httptest.NewRecorder())
		_, _, err := w.Hijack()
		require.Error(t, err)
		require.False(t, w.Hijacked())
	})

	t.Run("Unwrap returns the wrapped writer", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := internal.NewResponseWriter(rec)
		require.Same(t, http.ResponseWriter(rec), w.Unwrap())
	})
}
