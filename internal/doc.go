// Package internal provides the core types and implementation for the
// Plinth kernel.
//
// This package is internal and should not be used directly. Import
// "github.com/plinthhq/plinth" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: composes the dispatch stack and manages the lifecycle
//   - Context: request/response access plus helper methods
//   - Router: interface handlers use to declare and name routes
//   - Handler, HandlerFunc, Middleware, ErrorHandler: the dispatch contract
//   - ExceptionRegistry: maps raised errors to registered handlers
//   - HTTPError, PanicError: typed errors the registry understands
//
// # Dispatch Pipeline
//
// The stack is assembled once, in buildStack, as nested closures:
//
//	ServerErrorMiddleware(errorHandler, debug)(
//	    userMiddleware1(... userMiddlewareN(
//	        ExceptionMiddleware(registry)(dispatchRoute))))
//
// dispatchRoute hands the request to the chi router; route handlers report
// their error on the traveling requestContext, which the exception layer
// reads back on the other side of the http.Handler boundary.
//
// # Context as context.Context
//
// Context embeds context.Context, delegating Deadline, Done, Err, and
// Value to the request context, so it can be passed directly to database
// calls, HTTP clients, and anything else expecting a standard context.
package internal
