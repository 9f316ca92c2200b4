package internal

import (
	"errors"
)

// ExceptionMiddleware is the innermost wrapper: it translates errors raised
// by the router and route handlers into responses using the registered
// handlers. Errors nothing claims propagate unchanged; the server-error
// layer is responsible for them.
func ExceptionMiddleware(registry *ExceptionRegistry) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(c Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			// Streaming connections have no response to repair; the error
			// propagates unconditionally.
			if c.Hijacked() {
				return err
			}

			handler := registry.Resolve(err)
			if handler == nil {
				return err
			}

			// A matching handler cannot run once transmission started:
			// sending a second response would corrupt the stream.
			if c.Written() {
				return errors.Join(ErrResponseStarted, err)
			}

			// The handler's own failure is not caught here; it surfaces to
			// the server-error layer as fatal.
			return handler(c, err)
		}
	}
}
