// Package plinth provides a minimal application kernel for HTTP services:
// an application object that composes a middleware stack around a router,
// with layered error handling and URL reversal.
//
// # Quick Start
//
// Create an application with plinth.New(), configure it with options, and
// call Run() to start the HTTP server:
//
//	app := plinth.New(
//	    plinth.WithLogger("api", middlewares.RequestIDExtractor()),
//	    plinth.WithHandlers(
//	        handlers.NewPages(repo),
//	    ),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # The Stack
//
// Every request flows through a fixed onion built once at startup:
//
//	server-error layer → user middleware → exception layer → router
//
// Handlers return errors instead of writing error responses by hand. The
// exception layer matches returned errors against registered handlers;
// anything unclaimed reaches the server-error layer, which sends a terminal
// 500 (or a diagnostic page with WithDebug) and still surfaces the error to
// the host for logging. Panics are recovered at the same outermost layer
// and wrapped in a PanicError.
//
// # Exception Handlers
//
// Handlers are registered per sentinel, per type, or per HTTP status code:
//
//	app := plinth.New(
//	    plinth.WithExceptionHandler(store.ErrNotFound, renderNotFound),
//	    plinth.ExceptionHandlerFor[*pgconn.PgError](renderDBError),
//	    plinth.WithStatusHandler(http.StatusTooManyRequests, renderThrottled),
//	    plinth.WithErrorHandler(renderServerError), // catch-all, outermost layer
//	)
//
// Resolution is most-specific-first: exact status code, then exact dynamic
// type, then errors.Is/errors.As matches in registration order.
//
// # Handlers and Routes
//
// Handlers implement the [Handler] interface to declare routes:
//
//	type PagesHandler struct {
//	    repo *repository.Queries
//	}
//
//	func (h *PagesHandler) Routes(r plinth.Router) {
//	    r.GET("/users/{id}", h.showUser)
//	    r.Name("user_detail", "/users/{id}")
//	}
//
// Named routes reverse into concrete paths with c.URLPathFor("user_detail",
// "id", "42"), and inside templates via the urlPath function.
package plinth
