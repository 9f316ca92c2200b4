package internal

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Router is the interface handlers use to declare routes.
// It provides HTTP method routing, grouping, and named-route registration
// for URL reversal.
type Router interface {
	// GET registers a handler for GET requests.
	GET(path string, h HandlerFunc, mw ...Middleware)

	// POST registers a handler for POST requests.
	POST(path string, h HandlerFunc, mw ...Middleware)

	// PUT registers a handler for PUT requests.
	PUT(path string, h HandlerFunc, mw ...Middleware)

	// PATCH registers a handler for PATCH requests.
	PATCH(path string, h HandlerFunc, mw ...Middleware)

	// DELETE registers a handler for DELETE requests.
	DELETE(path string, h HandlerFunc, mw ...Middleware)

	// HEAD registers a handler for HEAD requests.
	HEAD(path string, h HandlerFunc, mw ...Middleware)

	// OPTIONS registers a handler for OPTIONS requests.
	OPTIONS(path string, h HandlerFunc, mw ...Middleware)

	// Group creates an inline route group without a pattern prefix.
	Group(fn func(r Router))

	// Route creates a route group with a pattern prefix.
	Route(pattern string, fn func(r Router))

	// Use appends middleware to the router's middleware stack.
	Use(mw ...Middleware)

	// Mount attaches an http.Handler at the given pattern.
	Mount(pattern string, h http.Handler)

	// Name registers a reverse-lookup name for the given path pattern,
	// relative to the current group prefix. URLPathFor resolves it.
	Name(name, pattern string)
}

// routerAdapter wraps chi.Router to implement the Router interface.
// It tracks the group prefix so named routes resolve to full patterns.
type routerAdapter struct {
	router chi.Router
	app    *App
	prefix string
}

func (r *routerAdapter) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Get(path, r.wrap(h, mw...))
}

func (r *routerAdapter) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Post(path, r.wrap(h, mw...))
}

func (r *routerAdapter) PUT(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Put(path, r.wrap(h, mw...))
}

func (r *routerAdapter) PATCH(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Patch(path, r.wrap(h, mw...))
}

func (r *routerAdapter) DELETE(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Delete(path, r.wrap(h, mw...))
}

func (r *routerAdapter) HEAD(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Head(path, r.wrap(h, mw...))
}

func (r *routerAdapter) OPTIONS(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Options(path, r.wrap(h, mw...))
}

func (r *routerAdapter) Group(fn func(Router)) {
	r.router.Group(func(cr chi.Router) {
		fn(&routerAdapter{router: cr, app: r.app, prefix: r.prefix})
	})
}

func (r *routerAdapter) Route(pattern string, fn func(Router)) {
	r.router.Route(pattern, func(cr chi.Router) {
		fn(&routerAdapter{router: cr, app: r.app, prefix: r.prefix + pattern})
	})
}

func (r *routerAdapter) Use(mw ...Middleware) {
	for _, m := range mw {
		r.router.Use(r.app.adaptMiddleware(m))
	}
}

func (r *routerAdapter) Mount(pattern string, h http.Handler) {
	r.router.Mount(pattern, h)
}

func (r *routerAdapter) Name(name, pattern string) {
	r.app.routeNames[name] = r.prefix + pattern
}

func (r *routerAdapter) wrap(h HandlerFunc, mw ...Middleware) http.HandlerFunc {
	// Route-specific middleware applies in reverse so the first listed
	// wraps outermost.
	slices.Reverse(mw)
	for _, m := range mw {
		h = m(h)
	}
	return r.app.adaptHandler(h)
}

// adaptHandler bridges a HandlerFunc into the chi router. The kernel
// context travels with the request; the handler's error is recorded on it
// so the exception layer outside the router boundary sees it.
func (a *App) adaptHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := r.Context().Value(dispatchCtxKey{}).(*requestContext)
		if !ok {
			// Mounted standalone (e.g. in tests): dispatch through the
			// full stack so error semantics hold.
			a.ServeHTTP(w, r)
			return
		}
		// chi attached its route context; keep ours pointed at the
		// innermost request so Param sees URL parameters.
		c.request = r
		if err := h(c); err != nil {
			c.dispatchErr = err
		}
	}
}

// adaptMiddleware converts a kernel Middleware into chi middleware for
// route groups declared via Router.Use. Errors propagate outward on the
// traveling context.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, ok := r.Context().Value(dispatchCtxKey{}).(*requestContext)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			c.request = r
			wrapped := mw(func(ic Context) error {
				rc := ic.(*requestContext)
				next.ServeHTTP(rc.response, rc.request)
				return rc.dispatchErr
			})
			if err := wrapped(c); err != nil {
				c.dispatchErr = err
			}
		})
	}
}

// dispatchRoute is the innermost link of the stack: it hands the request to
// the chi router and surfaces whatever error the matched handler reported.
func (a *App) dispatchRoute(c Context) error {
	rc := c.(*requestContext)
	rc.dispatchErr = nil
	rc.request = rc.request.WithContext(contextWithDispatch(rc))
	a.mux.ServeHTTP(rc.response, rc.request)
	return rc.dispatchErr
}

// URLPathFor resolves a named route into a concrete path by substituting
// {param} placeholders with the given name/value pairs. It is a pure
// lookup: unknown names, unfilled placeholders, and leftover params are
// reported as errors.
func (a *App) URLPathFor(name string, params ...string) (string, error) {
	pattern, ok := a.routeNames[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}
	if len(params)%2 != 0 {
		return "", fmt.Errorf("url path for %q: params must be name/value pairs", name)
	}

	values := make(map[string]string, len(params)/2)
	for i := 0; i < len(params); i += 2 {
		values[params[i]] = params[i+1]
	}
	return fillPattern(pattern, values)
}

// fillPattern substitutes {param} and {param:regex} placeholders.
func fillPattern(pattern string, values map[string]string) (string, error) {
	var b strings.Builder
	used := make(map[string]bool, len(values))

	rest := pattern
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:open])

		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return "", fmt.Errorf("malformed route pattern %q", pattern)
		}
		token := rest[open+1 : open+closing]
		name, _, _ := strings.Cut(token, ":")

		v, ok := values[name]
		if !ok {
			return "", fmt.Errorf("%w: %q in pattern %q", ErrMissingParam, name, pattern)
		}
		used[name] = true
		b.WriteString(v)
		rest = rest[open+closing+1:]
	}

	for name := range values {
		if !used[name] {
			return "", fmt.Errorf("%w: %q not in pattern %q", ErrUnknownParam, name, pattern)
		}
	}
	return b.String(), nil
}
