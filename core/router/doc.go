// Package router dispatches HTTP requests to type-safe handlers.
//
// The routing tree is github.com/go-chi/chi/v5; this package layers the
// generic handler.HandlerFunc[C] contract, typed middleware, panic recovery and
// a pluggable error handler on top of it.
//
//	r := router.New[*router.Context]()
//	r.Get("/users/{id}", func(ctx *router.Context) handler.Response {
//		return response.String("user " + ctx.Param("id"))
//	})
//	http.ListenAndServe(":8080", r)
//
// # Dispatch rules
//
//   - Unmatched paths go to the error handler with ErrNotFound (404).
//   - A path matched for another method yields ErrMethodNotAllowed (405).
//   - A HEAD request without an explicit HEAD route runs the GET handler with
//     the body discarded.
//   - Panics inside handlers are recovered and reported as PanicError.
//
// # Middleware
//
// Middlewares registered with Use wrap every route of the router, including
// routes in inline groups (With, Group) and mounted sub-routers (Mount,
// Route). Use must be called before the first route is registered.
//
// Custom context types are supported through WithContextFactory.
package router
