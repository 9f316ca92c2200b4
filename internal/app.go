package internal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/plinthhq/plinth/pkg/logger"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App composes the dispatch pipeline around the router:
//
//	ServerErrorMiddleware → user middleware → ExceptionMiddleware → router
//
// Configuration is declared via options at construction. The stack is built
// exactly once, on Start or on the first dispatch, whichever comes first,
// and is immutable and safely shared across concurrent dispatches
// afterwards. Late configuration via Use is rejected with ErrStarted.
type App struct {
	mux        chi.Router
	routeNames map[string]string
	exceptions *ExceptionRegistry
	logger     *slog.Logger
	state      *State
	templates  TemplateRenderer

	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	middlewares             []Middleware
	handlers                []Handler
	staticRoutes            []staticRoute

	debug bool

	buildOnce sync.Once
	stack     HandlerFunc
	started   bool
	mu        sync.Mutex // guards started and late registration
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates a new application with the given options.
//
// Example:
//
//	app := plinth.New(
//	    plinth.WithMiddleware(middlewares.RequestID()),
//	    plinth.WithHandlers(handlers.NewPages(repo)),
//	    plinth.WithExceptionHandler(store.ErrNotFound, notFoundPage),
//	)
//
//	err := app.Run(":8080", plinth.Logger(log))
func New(opts ...Option) *App {
	a := &App{
		mux:        chi.NewRouter(),
		routeNames: make(map[string]string),
		exceptions: newExceptionRegistry(),
		logger:     logger.NewNope(),
		state:      NewState(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if setter, ok := a.templates.(URLResolverSetter); ok {
		setter.SetURLResolver(a.URLPathFor)
	}

	a.setupRoutes()
	return a
}

// setupRoutes configures the router with handlers and static mounts.
// User middleware is NOT installed here: it belongs to the composed stack,
// outside the router boundary, so the exception layer sits beneath it.
func (a *App) setupRoutes() {
	if a.notFoundHandler != nil {
		a.mux.NotFound(a.adaptHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.mux.MethodNotAllowed(a.adaptHandler(a.methodNotAllowedHandler))
	}

	for _, sr := range a.staticRoutes {
		a.mux.Mount(sr.pattern, sr.handler)
	}

	r := &routerAdapter{router: a.mux, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// Start builds and freezes the middleware stack. Calling Start is optional
// since the first dispatch builds the stack on demand, but doing it during
// an explicit startup phase avoids the build racing concurrent first requests.
// app.Run registers it as a startup hook automatically.
func (a *App) Start() {
	a.buildOnce.Do(func() {
		a.mu.Lock()
		a.started = true
		a.mu.Unlock()
		a.stack = a.buildStack()
	})
}

// buildStack partitions the exception registry and composes the chain,
// wrapping right to left so each layer closes over the next: the server
// error layer outermost, user middleware in registration order, the
// exception layer innermost, the router at the core.
func (a *App) buildStack() HandlerFunc {
	errorHandler, rest := a.exceptions.partition()

	stack := ExceptionMiddleware(rest)(a.dispatchRoute)
	for i := len(a.middlewares) - 1; i >= 0; i-- {
		stack = a.middlewares[i](stack)
	}
	return ServerErrorMiddleware(errorHandler, a.debug)(stack)
}

// Use appends middleware to the user middleware list. It fails with
// ErrStarted once the stack has been built: middleware must be fully
// declared before the first request.
func (a *App) Use(mw ...Middleware) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.started {
		return fmt.Errorf("%w: cannot add middleware", ErrStarted)
	}
	a.middlewares = append(a.middlewares, mw...)
	return nil
}

// Debug reports whether debug error pages are enabled.
func (a *App) Debug() bool {
	return a.debug
}

// State returns the application-wide state bag.
func (a *App) State() *State {
	return a.state
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// ServeHTTP dispatches one request through the stack. Errors that survive
// the server-error layer (which has already sent a best-effort terminal
// response) surface here and are logged at the host level.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := a.Dispatch(w, r); err != nil {
		a.logger.ErrorContext(r.Context(), "unhandled request error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
}

// Dispatch runs the composed stack for one request and returns the error
// that escaped it, if any. Most callers want ServeHTTP; Dispatch exists for
// hosts that do their own error accounting.
func (a *App) Dispatch(w http.ResponseWriter, r *http.Request) error {
	a.Start()

	c := newContext(w, r, a)
	// Downstream components reach app-wide state through the request scope.
	c.request = c.request.WithContext(
		context.WithValue(c.request.Context(), appCtxKey{}, a))
	return a.stack(c)
}

// contextWithDispatch threads the kernel context through the router.
func contextWithDispatch(c *requestContext) context.Context {
	return context.WithValue(c.request.Context(), dispatchCtxKey{}, c)
}

// Run starts the HTTP server and blocks until shutdown. The stack build is
// registered as the first startup hook, so it happens after the port is
// bound but before the first request is served.
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if addr != "" {
		cfg.address = addr
	}

	startupHooks := append([]func(context.Context) error{
		func(context.Context) error {
			a.Start()
			return nil
		},
	}, cfg.startupHooks...)

	return runServer(runtimeConfig{
		handler:         a,
		address:         cfg.address,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}
