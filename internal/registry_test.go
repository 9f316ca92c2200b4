package internal

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

type notFoundError struct{ key string }

func (e *notFoundError) Error() string { return fmt.Sprintf("not found: %s", e.key) }

type missingKeyError struct{ notFoundError }

// invoked runs the resolved handler and reports which registration it came
// from via the marker each test handler writes.
func invoked(t *testing.T, h ErrorHandler, err error) string {
	t.Helper()
	require.NotNil(t, h)

	marker = ""
	require.NoError(t, h(nil, err))
	return marker
}

var marker string

func mark(name string) ErrorHandler {
	return func(c Context, err error) error {
		marker = name
		return nil
	}
}

func TestExceptionRegistryResolve(t *testing.T) {
	t.Run("status code match wins over type match", func(t *testing.T) {
		r := newExceptionRegistry()
		r.addStatus(http.StatusNotFound, mark("status"))
		r.addEntry(reflect.TypeFor[*HTTPError](), func(err error) bool {
			return IsHTTPError(err)
		}, mark("type"))

		err := NewHTTPError(http.StatusNotFound, "missing")
		require.Equal(t, "status", invoked(t, r.Resolve(err), err))
	})

	t.Run("status lookup is exact, no neighbouring codes", func(t *testing.T) {
		r := newExceptionRegistry()
		r.addStatus(http.StatusNotFound, mark("404"))

		require.Nil(t, r.Resolve(NewHTTPError(http.StatusGone, "gone")))
	})

	t.Run("exact dynamic type beats earlier predicate registration", func(t *testing.T) {
		r := newExceptionRegistry()

		// Broad predicate registered first matches *missingKeyError too.
		r.addEntry(reflect.TypeFor[*notFoundError](), func(err error) bool {
			var target *notFoundError
			return errors.As(err, &target)
		}, mark("broad"))
		r.addEntry(reflect.TypeFor[*missingKeyError](), func(err error) bool {
			var target *missingKeyError
			return errors.As(err, &target)
		}, mark("exact"))

		err := &missingKeyError{}
		require.Equal(t, "exact", invoked(t, r.Resolve(err), err))
	})

	t.Run("predicate chain falls back in registration order", func(t *testing.T) {
		sentinel := errors.New("boom")
		wrapped := fmt.Errorf("context: %w", sentinel)

		r := newExceptionRegistry()
		r.addTarget(sentinel, mark("first"))
		r.addEntry(nil, func(err error) bool { return true }, mark("second"))

		require.Equal(t, "first", invoked(t, r.Resolve(wrapped), wrapped))
	})

	t.Run("wrapped sentinel matches through errors.Is", func(t *testing.T) {
		sentinel := errors.New("boom")
		r := newExceptionRegistry()
		r.addTarget(sentinel, mark("sentinel"))

		err := fmt.Errorf("layer two: %w", fmt.Errorf("layer one: %w", sentinel))
		require.Equal(t, "sentinel", invoked(t, r.Resolve(err), err))
	})

	t.Run("unmatched error resolves to nil", func(t *testing.T) {
		r := newExceptionRegistry()
		r.addTarget(errors.New("a"), mark("a"))

		require.Nil(t, r.Resolve(errors.New("b")))
	})

	t.Run("sentinels sharing a dynamic type stay distinct", func(t *testing.T) {
		// Every errors.New sentinel has the same dynamic type; only the
		// errors.Is identity may select a handler.
		first := errors.New("a")
		second := errors.New("b")

		r := newExceptionRegistry()
		r.addTarget(first, mark("first"))
		r.addTarget(second, mark("second"))

		require.Equal(t, "first", invoked(t, r.Resolve(first), first))
		require.Equal(t, "second", invoked(t, r.Resolve(second), second))
		require.Nil(t, r.Resolve(errors.New("c")))
	})

	t.Run("fallback is never returned by Resolve", func(t *testing.T) {
		r := newExceptionRegistry()
		r.setFallback(mark("fallback"))

		require.Nil(t, r.Resolve(errors.New("anything")))
	})
}

func TestExceptionRegistryPartition(t *testing.T) {
	t.Run("fallback becomes the server error handler", func(t *testing.T) {
		r := newExceptionRegistry()
		r.setFallback(mark("fallback"))
		r.addStatus(http.StatusNotFound, mark("404"))

		errorHandler, rest := r.partition()
		require.Equal(t, "fallback", invoked(t, errorHandler, errors.New("x")))

		err := NewHTTPError(http.StatusNotFound, "x")
		require.Equal(t, "404", invoked(t, rest.Resolve(err), err))
	})

	t.Run("explicit 500 status wins over generic fallback", func(t *testing.T) {
		r := newExceptionRegistry()
		r.setFallback(mark("fallback"))
		r.addStatus(http.StatusInternalServerError, mark("explicit-500"))

		errorHandler, rest := r.partition()
		require.Equal(t, "explicit-500", invoked(t, errorHandler, errors.New("x")))

		// The 500 entry moved out of the exception layer.
		require.Nil(t, rest.Resolve(NewHTTPError(http.StatusInternalServerError, "x")))
	})

	t.Run("nothing registered yields nil handler", func(t *testing.T) {
		errorHandler, rest := newExceptionRegistry().partition()
		require.Nil(t, errorHandler)
		require.Nil(t, rest.Resolve(errors.New("x")))
	})

	t.Run("typed entries stay with the exception layer", func(t *testing.T) {
		sentinel := errors.New("boom")
		r := newExceptionRegistry()
		r.addTarget(sentinel, mark("typed"))
		r.setFallback(mark("fallback"))

		_, rest := r.partition()
		require.Equal(t, "typed", invoked(t, rest.Resolve(sentinel), sentinel))
	})
}
