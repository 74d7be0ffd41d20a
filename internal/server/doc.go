// Package server provides HTTP routing and middleware for the web interface.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation registers [http.ServeMux] method patterns ("GET /edit_text/{id}"),
// so wildcards are read with [http.Request.PathValue] and wrong methods get a 405.
//
// # Middleware
//
//   - [RequestLogger] logs method, path, status and duration
//   - [Recoverer] converts panics into 500 responses
//
// Session loading lives in internal/session and plugs in as a [Middleware].
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
// [HealthHandler] is the built-in example.
package server
