package internal

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/plinthhq/plinth/pkg/logger"
)

// Option configures the application.
type Option func(*App)

// WithDebug enables the debug error page for unhandled server errors.
// The page exposes error types and stack traces; never enable it in
// production deployments.
func WithDebug() Option {
	return func(a *App) {
		a.debug = true
	}
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided, outside the exception
// layer: errors returned by middleware bypass registered exception
// handlers and go straight to the server-error layer.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled. Files are served with default cache headers.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	plinth.New(
//	    plinth.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}

		fileServer := http.FileServerFS(subFS)

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Block directory listings
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}

			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")

			fileServer.ServeHTTP(w, r)
		})

		a.staticRoutes = append(a.staticRoutes, staticRoute{handler, pattern})
	}
}

// WithErrorHandler sets the catch-all error handler. It runs in the
// outermost server-error layer for any error no registered exception
// handler claims; after it responds the error still propagates to the
// host for logging. Registering a 500 status handler via WithStatusHandler
// takes precedence over this one.
//
// Example:
//
//	plinth.WithErrorHandler(func(c plinth.Context, err error) error {
//	    return c.JSON(http.StatusInternalServerError, map[string]string{
//	        "error": "something went wrong",
//	    })
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.exceptions.setFallback(h)
	}
}

// WithExceptionHandler registers h for errors matching target via
// errors.Is. Registration order matters when targets overlap: the first
// matching registration wins, so register specific sentinels before
// broader ones.
//
// Example:
//
//	plinth.WithExceptionHandler(store.ErrNotFound, func(c plinth.Context, err error) error {
//	    return c.String(http.StatusNotFound, "not found")
//	})
func WithExceptionHandler(target error, h ErrorHandler) Option {
	return func(a *App) {
		a.exceptions.addTarget(target, h)
	}
}

// WithStatusHandler registers h for HTTPErrors carrying exactly the given
// status code. A status handler outranks type-based registrations for
// matching errors. Code 500 is routed to the server-error layer and
// replaces any WithErrorHandler catch-all.
//
// Example:
//
//	plinth.WithStatusHandler(http.StatusNotFound, func(c plinth.Context, err error) error {
//	    return c.RenderTemplate(http.StatusNotFound, "404.html", nil)
//	})
func WithStatusHandler(code int, h ErrorHandler) Option {
	return func(a *App) {
		a.exceptions.addStatus(code, h)
	}
}

// ExceptionHandlerFor registers h for errors of type T, matched with
// errors.As across the wrapped chain. An error whose dynamic type is
// exactly T outranks predicate registrations made earlier.
//
// Example:
//
//	plinth.ExceptionHandlerFor[*pgconn.PgError](func(c plinth.Context, err error) error {
//	    return c.String(http.StatusServiceUnavailable, "database unavailable")
//	})
func ExceptionHandlerFor[T error](h ErrorHandler) Option {
	return func(a *App) {
		a.exceptions.addEntry(reflect.TypeFor[T](), func(err error) bool {
			var target T
			return errors.As(err, &target)
		}, h)
	}
}

// WithNotFoundHandler sets a custom 404 handler.
//
// Example:
//
//	plinth.WithNotFoundHandler(func(c plinth.Context) error {
//	    return c.String(http.StatusNotFound, "Page not found")
//	})
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
//
// Example:
//
//	plinth.WithMethodNotAllowedHandler(func(c plinth.Context) error {
//	    return c.String(http.StatusMethodNotAllowed, "Method not allowed")
//	})
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
// Extractors pull values from context (e.g., request_id).
//
// Example:
//
//	plinth.New(
//	    plinth.WithLogger("api", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
// Use this when you need complete control over logging configuration.
//
// Example:
//
//	customLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	plinth.New(
//	    plinth.WithCustomLogger(customLogger),
//	)
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithTemplates installs a template renderer, enabling c.RenderTemplate.
// Renderers implementing URLResolverSetter additionally receive the
// application's URL reversal function for use inside templates.
//
// Example:
//
//	tmpl := templates.New(viewsFS, templates.Config{Dir: "views"})
//	plinth.New(
//	    plinth.WithTemplates(tmpl),
//	)
func WithTemplates(tr TemplateRenderer) Option {
	return func(a *App) {
		a.templates = tr
	}
}

// WithState seeds the application-wide state bag with a value. State is
// shared by all requests and must be fully populated before the server
// starts; it is not synchronized.
func WithState(key string, value any) Option {
	return func(a *App) {
		a.state.Set(key, value)
	}
}
