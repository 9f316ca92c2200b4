package internal

import (
	"errors"
	"reflect"
)

// exceptionEntry is one link of the fallback chain: an optional exact
// dynamic type plus a match predicate over the error chain.
type exceptionEntry struct {
	typ     reflect.Type
	matches func(error) bool
	handler ErrorHandler
}

// ExceptionRegistry maps raised errors to registered handlers.
//
// Resolution order for a raised error: exact status-code match (when the
// error chain carries an HTTPError), then exact dynamic-type match over the
// registered entries, then the first predicate match in registration order.
// Callers register more specific entries before broader ones; the ordered
// walk is the explicit stand-in for an inheritance-based ancestor lookup.
type ExceptionRegistry struct {
	status   map[int]ErrorHandler
	entries  []exceptionEntry
	fallback ErrorHandler
}

func newExceptionRegistry() *ExceptionRegistry {
	return &ExceptionRegistry{status: make(map[int]ErrorHandler)}
}

// addEntry appends a typed entry to the fallback chain.
func (r *ExceptionRegistry) addEntry(typ reflect.Type, matches func(error) bool, h ErrorHandler) {
	r.entries = append(r.entries, exceptionEntry{typ: typ, matches: matches, handler: h})
}

// addTarget registers h for errors matching target via errors.Is. Sentinel
// values share dynamic types (every errors.New sentinel is the same
// *errorString), so the entry carries no type and never joins the
// exact-type pass.
func (r *ExceptionRegistry) addTarget(target error, h ErrorHandler) {
	r.addEntry(nil, func(err error) bool {
		return errors.Is(err, target)
	}, h)
}

// addStatus registers h for HTTPErrors with exactly the given status code.
// Status lookup never falls back to neighbouring codes.
func (r *ExceptionRegistry) addStatus(code int, h ErrorHandler) {
	r.status[code] = h
}

// setFallback registers the catch-all handler. At stack-build time it is
// routed to the server-error layer, not the exception layer.
func (r *ExceptionRegistry) setFallback(h ErrorHandler) {
	r.fallback = h
}

// Resolve returns the registered handler for err, or nil when no entry
// matches. The catch-all handler is never returned here; it belongs to the
// server-error layer.
func (r *ExceptionRegistry) Resolve(err error) ErrorHandler {
	if httpErr := AsHTTPError(err); httpErr != nil {
		if h, ok := r.status[httpErr.Code]; ok {
			return h
		}
	}

	if t := reflect.TypeOf(err); t != nil {
		for _, e := range r.entries {
			if e.typ != nil && e.typ == t && e.matches(err) {
				return e.handler
			}
		}
	}

	for _, e := range r.entries {
		if e.matches(err) {
			return e.handler
		}
	}
	return nil
}

// partition splits the registry between the two error layers. The catch-all
// entry becomes the server-error handler: an explicit status-500 entry wins
// over a generic fallback when both are registered. Everything else stays
// with the exception layer.
func (r *ExceptionRegistry) partition() (errorHandler ErrorHandler, rest *ExceptionRegistry) {
	rest = newExceptionRegistry()
	rest.entries = r.entries

	errorHandler = r.fallback
	for code, h := range r.status {
		if code == 500 {
			errorHandler = h
			continue
		}
		rest.status[code] = h
	}
	return errorHandler, rest
}
