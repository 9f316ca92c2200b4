package internal

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServerErrorMiddleware(t *testing.T) {
	t.Run("plain 500 without handler or debug", func(t *testing.T) {
		c, rec := newDispatchContext(t)
		boom := errors.New("boom")

		h := ServerErrorMiddleware(nil, false)(func(c Context) error { return boom })

		err := h(c)
		require.ErrorIs(t, err, boom)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "Internal Server Error", rec.Body.String())
	})

	t.Run("debug page shows error type and traceback", func(t *testing.T) {
		c, rec := newDispatchContext(t)

		h := ServerErrorMiddleware(nil, true)(func(c Context) error {
			return &notFoundError{key: "user:7"}
		})

		err := h(c)
		require.Error(t, err)
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		body := rec.Body.String()
		require.Contains(t, body, "notFoundError")
		require.Contains(t, body, "not found: user:7")
		require.Contains(t, body, "Traceback")
		require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	})

	t.Run("configured handler wins over debug page", func(t *testing.T) {
		c, rec := newDispatchContext(t)
		boom := errors.New("boom")

		handler := func(c Context, err error) error {
			return c.String(http.StatusInternalServerError, "custom page")
		}

		h := ServerErrorMiddleware(handler, true)(func(c Context) error { return boom })

		err := h(c)
		require.ErrorIs(t, err, boom)
		require.Equal(t, "custom page", rec.Body.String())
		require.NotContains(t, rec.Body.String(), "Traceback")
	})

	t.Run("error always propagates after response", func(t *testing.T) {
		c, _ := newDispatchContext(t)
		boom := errors.New("boom")

		handler := func(c Context, err error) error {
			require.ErrorIs(t, err, boom)
			return c.String(http.StatusInternalServerError, "handled")
		}

		err := ServerErrorMiddleware(handler, false)(func(c Context) error { return boom })(c)
		require.ErrorIs(t, err, boom)
	})

	t.Run("no second response once transmission started", func(t *testing.T) {
		c, rec := newDispatchContext(t)
		boom := errors.New("boom")

		h := ServerErrorMiddleware(nil, false)(func(c Context) error {
			_ = c.String(http.StatusOK, "already sent")
			return boom
		})

		err := h(c)
		require.ErrorIs(t, err, boom)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "already sent", rec.Body.String())
	})

	t.Run("hijacked connection gets no repair response", func(t *testing.T) {
		c, rec := newHijackedContext(t)
		boom := errors.New("boom")

		handlerRan := false
		handler := func(c Context, err error) error {
			handlerRan = true
			return nil
		}

		err := ServerErrorMiddleware(handler, true)(func(c Context) error { return boom })(c)
		require.ErrorIs(t, err, boom)
		require.False(t, handlerRan)
		require.Zero(t, rec.Body.Len())
	})

	t.Run("panic becomes PanicError with stack", func(t *testing.T) {
		c, rec := newDispatchContext(t)

		h := ServerErrorMiddleware(nil, false)(func(c Context) error {
			panic("kaboom")
		})

		err := h(c)
		require.Error(t, err)
		pe, ok := AsPanicError(err)
		require.True(t, ok)
		require.Equal(t, "kaboom", pe.Value)
		require.NotEmpty(t, pe.Stack)
		require.True(t, strings.Contains(string(pe.Stack), "goroutine"))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("failing handler falls back to plain 500", func(t *testing.T) {
		c, rec := newDispatchContext(t)
		boom := errors.New("boom")

		handler := func(c Context, err error) error {
			return errors.New("renderer exploded")
		}

		err := ServerErrorMiddleware(handler, false)(func(c Context) error { return boom })(c)
		require.ErrorIs(t, err, boom)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "Internal Server Error", rec.Body.String())
	})

	t.Run("success passes through silently", func(t *testing.T) {
		c, rec := newDispatchContext(t)

		h := ServerErrorMiddleware(nil, true)(func(c Context) error {
			return c.String(http.StatusOK, "fine")
		})

		require.NoError(t, h(c))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "fine", rec.Body.String())
	})
}
