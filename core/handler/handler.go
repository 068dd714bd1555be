package handler

import "net/http"

// Response writes the reply for a request. A returned error means nothing
// useful was sent yet; the router hands it to its ErrorHandler, which
// uses the error's StatusCode() when it has one.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc turns a request context into a Response. Building the
// Response and running it are separate steps, so middleware can wrap
// either.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler renders failures: handler errors, missing routes, wrong
// methods and recovered panics.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware decorates a HandlerFunc. Registration order is execution
// order, outermost first.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
