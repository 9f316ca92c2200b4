package plinth

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/plinthhq/plinth/internal"
	"github.com/plinthhq/plinth/pkg/logger"
)

// Type aliases - public API
type (
	// App composes the middleware stack around the router and manages
	// the application lifecycle.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// Component is the interface for renderable templates.
	Component = internal.Component

	// TemplateRenderer renders named templates; see pkg/templates.
	TemplateRenderer = internal.TemplateRenderer

	// HTTPError is an error carrying an HTTP status code.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// PanicError is a panic recovered by the server-error layer.
	PanicError = internal.PanicError

	// State is the application-wide state bag.
	State = internal.State

	// ResponseWriter wraps http.ResponseWriter and tracks transmission state.
	ResponseWriter = internal.ResponseWriter

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// Sentinel errors.
var (
	// ErrStarted is returned when configuration is attempted after the
	// middleware stack has been built.
	ErrStarted = internal.ErrStarted

	// ErrResponseStarted signals that an exception handler matched but
	// response transmission had already begun.
	ErrResponseStarted = internal.ErrResponseStarted

	// ErrTemplatesNotConfigured is returned by RenderTemplate when no
	// renderer was installed.
	ErrTemplatesNotConfigured = internal.ErrTemplatesNotConfigured

	// ErrRouteNotFound is returned by URLPathFor for unknown route names.
	ErrRouteNotFound = internal.ErrRouteNotFound

	// ErrMissingParam is returned by URLPathFor when a pattern placeholder
	// has no value.
	ErrMissingParam = internal.ErrMissingParam

	// ErrUnknownParam is returned by URLPathFor for params the pattern
	// does not mention.
	ErrUnknownParam = internal.ErrUnknownParam
)

// Constructors

// New creates a new application with the given options.
// Routes, middleware, and exception handlers are declared up front; the
// dispatch stack is frozen on Start or on the first request.
//
// Example:
//
//	app := plinth.New(
//	    plinth.WithMiddleware(middlewares.RequestID()),
//	    plinth.WithHandlers(
//	        handlers.NewAuth(repo),
//	        handlers.NewPages(repo),
//	    ),
//	    plinth.WithExceptionHandler(store.ErrNotFound, notFoundPage),
//	)
//
//	err := app.Run(":8080", plinth.Logger(slog))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// AppFromContext returns the App that dispatched the request, or nil.
func AppFromContext(ctx context.Context) *App {
	return internal.AppFromContext(ctx)
}

// App options

// WithDebug enables the debug error page for unhandled server errors.
// Never enable it in production: the page exposes stack traces.
func WithDebug() Option {
	return internal.WithDebug()
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided, outside the exception layer.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
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
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets the catch-all error handler, invoked by the
// outermost layer for errors no exception handler claims. The error still
// propagates to the host after the handler responds.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithExceptionHandler registers h for errors matching target via errors.Is.
// Register specific sentinels before broader ones.
func WithExceptionHandler(target error, h ErrorHandler) Option {
	return internal.WithExceptionHandler(target, h)
}

// WithStatusHandler registers h for HTTPErrors with exactly the given
// status code. Code 500 replaces the WithErrorHandler catch-all.
func WithStatusHandler(code int, h ErrorHandler) Option {
	return internal.WithStatusHandler(code, h)
}

// ExceptionHandlerFor registers h for errors of type T, matched with
// errors.As across the wrapped chain.
//
// Example:
//
//	plinth.ExceptionHandlerFor[*middlewares.TimeoutError](func(c plinth.Context, err error) error {
//	    return c.String(http.StatusGatewayTimeout, "Gateway Timeout")
//	})
func ExceptionHandlerFor[T error](h ErrorHandler) Option {
	return internal.ExceptionHandlerFor[T](h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
//
// Example:
//
//	plinth.New(
//	    plinth.WithLogger("api", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
// Use this when you need complete control over logging configuration.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithTemplates installs a template renderer, enabling c.RenderTemplate
// and the urlPath template function.
func WithTemplates(tr TemplateRenderer) Option {
	return internal.WithTemplates(tr)
}

// WithState seeds the application-wide state bag with a value.
// State must be fully populated before the server starts.
func WithState(key string, value any) Option {
	return internal.WithState(key, value)
}

// Run options

// Address sets the HTTP server address.
// Defaults to ":8080".
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger sets the runtime logger.
// If nil, runtime logging is disabled.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// This applies to both the HTTP server and shutdown hooks.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run after the port is bound but
// before serving requests. A failing hook aborts startup.
//
// Example:
//
//	plinth.StartupHook(cache.Warm(store))
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
// Hooks are called in the order they were registered.
//
// Example:
//
//	plinth.ShutdownHook(db.Shutdown(pool))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets a custom base context for signal handling.
// Defaults to context.Background() if not set.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Error helpers

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithError attaches the underlying cause to an HTTPError.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// Convenience constructors for common HTTP errors.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnauthorized(message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrForbidden(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// IsHTTPError reports whether the error chain contains an HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError extracts the HTTPError from an error chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// IsPanicError reports whether the error chain contains a PanicError.
func IsPanicError(err error) bool {
	return internal.IsPanicError(err)
}

// AsPanicError extracts the PanicError from an error chain if present.
func AsPanicError(err error) (*PanicError, bool) {
	return internal.AsPanicError(err)
}

// Context helpers

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is not found or type assertion fails.
//
// Example:
//
//	type tenantKey struct{}
//
//	tenant := plinth.ContextValue[string](c, tenantKey{})
//	user := plinth.ContextValue[*User](c, userKey{})
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// App mounts anywhere an http.Handler is accepted.
var _ http.Handler = (*App)(nil)
