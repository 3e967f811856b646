// Package server provides HTTP routing, middleware, and session plumbing for the web interface.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns ("GET /path") internally.
//
// # Middleware
//
//   - [RequestLogger] logs method, path, status and duration of each request
//   - [Recover] turns handler panics into a 500 response
//   - [RateLimit] throttles requests per client IP with a token bucket
//   - [RequireSession] and [RedirectIfSession] apply [auth.Guard] decisions
//
// Guard middleware resolves the decision before anything is written. A redirect carries
// only a Location header and an empty body.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
