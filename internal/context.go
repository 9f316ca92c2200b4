package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// Component is the interface for renderable views. It is templ.Component:
// generated templ views plug in directly, and anything else can adapt via
// templ.ComponentFunc.
type Component = templ.Component

// TemplateRenderer renders a named template to w. Installed on the App via
// WithTemplates; see pkg/templates for the standard implementation.
type TemplateRenderer interface {
	Render(w io.Writer, name string, data any) error
}

// URLResolverSetter is implemented by template renderers that expose a
// urlPath helper to templates. The App wires its own URL reversal into the
// renderer during construction.
type URLResolverSetter interface {
	SetURLResolver(func(name string, params ...string) (string, error))
}

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns the URL parameter value by name.
	// Returns empty string if the parameter doesn't exist.
	Param(name string) string

	// Query returns the query parameter value by name.
	Query(name string) string

	// QueryDefault returns the query parameter value or a default.
	QueryDefault(name, defaultValue string) string

	// Form returns the form value by name.
	Form(name string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// HTML writes an HTML response with the given status code.
	HTML(code int, html string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect redirects to the given URL with the given status code.
	Redirect(code int, url string) error

	// Error creates and returns an HTTPError without writing a response.
	// Return it from the handler to trigger the exception layer.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Render renders a component with the given status code.
	Render(code int, component Component) error

	// RenderTemplate renders a named template with the given status code.
	// Returns ErrTemplatesNotConfigured when no renderer is installed.
	// The template body is rendered before any byte is sent, so template
	// errors still reach the error layers.
	RenderTemplate(code int, name string, data any) error

	// URLPathFor resolves a named route pattern with param name/value pairs.
	URLPathFor(name string, params ...string) (string, error)

	// State returns the application-wide state bag.
	// The bag is shared across requests without synchronization.
	State() *State

	// Written reports whether response transmission has started.
	Written() bool

	// Hijacked reports whether the connection was taken over for streaming.
	Hijacked() bool

	// Logger returns the logger for advanced usage.
	Logger() *slog.Logger

	// LogDebug logs a debug message with optional attributes.
	LogDebug(msg string, attrs ...any)

	// LogInfo logs an info message with optional attributes.
	LogInfo(msg string, attrs ...any)

	// LogWarn logs a warning message with optional attributes.
	LogWarn(msg string, attrs ...any)

	// LogError logs an error message with optional attributes.
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key any, value any)

	// Get retrieves a value from the request context.
	// Returns nil if the key is not found.
	Get(key any) any

	// ResponseWriter returns the wrapped response writer for advanced usage.
	ResponseWriter() *ResponseWriter
}

// dispatchCtxKey carries the kernel context through the router so the
// innermost route handler reports back on the same requestContext the
// middleware chain observes.
type dispatchCtxKey struct{}

// appCtxKey exposes the owning App through the request context.
type appCtxKey struct{}

// AppFromContext returns the App that dispatched the request, or nil.
// Downstream code uses it to reach app-wide state and URL reversal.
func AppFromContext(ctx context.Context) *App {
	app, _ := ctx.Value(appCtxKey{}).(*App)
	return app
}

// requestContext implements the Context interface.
type requestContext struct {
	request        *http.Request
	response       http.ResponseWriter
	responseWriter *ResponseWriter
	logger         *slog.Logger
	app            *App

	// dispatchErr carries a route handler's error back out through the
	// router's ServeHTTP boundary to the exception layer.
	dispatchErr error
}

// newContext creates a new context with the response wrapper.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw := NewResponseWriter(w)
	return &requestContext{
		request:        r,
		response:       rw,
		responseWriter: rw,
		logger:         app.logger,
		app:            app,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	if v := c.request.URL.Query().Get(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *requestContext) HTML(code int, html string) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(html))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPErrorWith(code, message, opts)
}

func (c *requestContext) Render(code int, component Component) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(code)
	return component.Render(c.request.Context(), c.response)
}

func (c *requestContext) RenderTemplate(code int, name string, data any) error {
	if c.app.templates == nil {
		return ErrTemplatesNotConfigured
	}

	var buf bytes.Buffer
	if err := c.app.templates.Render(&buf, name, data); err != nil {
		return err
	}

	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write(buf.Bytes())
	return err
}

func (c *requestContext) URLPathFor(name string, params ...string) (string, error) {
	return c.app.URLPathFor(name, params...)
}

func (c *requestContext) State() *State {
	return c.app.state
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) Hijacked() bool {
	return c.responseWriter.Hijacked()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}
