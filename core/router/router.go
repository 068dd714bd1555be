package router

import (
	"net/http"

	"github.com/dmitrymomot/pubkit/core/handler"
)

// Router dispatches requests to typed handlers. Patterns use chi syntax:
// "/users/{id}" binds a parameter, a trailing "/*" matches the rest of the
// path and is read back as Param("*").
//
// Every GET route also answers HEAD with the body discarded, unless a HEAD
// route is registered for the same pattern. Unknown paths, wrong methods
// and handler panics are all rendered by the router's error handler.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Put(pattern string, h handler.HandlerFunc[C])
	Delete(pattern string, h handler.HandlerFunc[C])
	Patch(pattern string, h handler.HandlerFunc[C])
	// Head registers an explicit HEAD route; it takes precedence over the
	// implicit HEAD of a GET route on the same pattern.
	Head(pattern string, h handler.HandlerFunc[C])
	Options(pattern string, h handler.HandlerFunc[C])

	// Handle matches every method.
	Handle(pattern string, h handler.HandlerFunc[C])
	// Method registers h for each listed method. Unknown methods panic.
	Method(pattern string, h handler.HandlerFunc[C], methods ...string)

	// Use appends middleware. It panics once routes exist on this router.
	Use(middlewares ...handler.Middleware[C])
	// With returns an inline router sharing the routing tree whose routes
	// run the extra middlewares after the parent's.
	With(middlewares ...handler.Middleware[C]) Router[C]

	Group(fn func(r Router[C])) Router[C]
	// Route builds a sub-router with fn and mounts it at pattern.
	Route(pattern string, fn func(r Router[C])) Router[C]
	// Mount attaches a router made by New. The sub-router adopts this
	// router's error handler, logger, context factory and middleware.
	Mount(pattern string, sub Router[C])
}

// Routes lists registered routes, including mounted ones.
type Routes interface {
	Routes() []Route
}

// Route is one method and full pattern pair.
type Route struct {
	Method  string
	Pattern string
}

// New creates a Router. Without WithContextFactory, C must be *Context.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux[C](opts...)
}
