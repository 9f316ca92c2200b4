package internal

// Handler declares routes on a router.
//
// Example:
//
//	type PagesHandler struct {
//	    repo *repository.Queries
//	}
//
//	func (h *PagesHandler) Routes(r plinth.Router) {
//	    r.GET("/", h.index)
//	    r.GET("/about", h.about)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers and for every layer of the
// composed dispatch chain. Returning a non-nil error hands the request to the
// exception layer; errors no registered handler claims escalate to the
// server-error layer.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// The stack builder applies middleware so that the first registered
// middleware is the outermost user layer.
//
// Example:
//
//	func Auth(next plinth.HandlerFunc) plinth.HandlerFunc {
//	    return func(c plinth.Context) error {
//	        if !isAuthenticated(c) {
//	            return c.Redirect(302, "/login")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler converts an error raised during dispatch into a response.
// Handlers registered for specific errors or status codes run in the
// exception layer; the catch-all handler runs in the server-error layer.
type ErrorHandler func(Context, error) error
