// Package handler defines the request-processing contracts shared by the
// router, the static file layer, and middleware.
//
// A handler receives a typed request context and returns a Response, a
// deferred render function. Rendering errors flow back to the router's error
// handler, so handlers never write error pages themselves:
//
//	func hello(ctx handler.Context) handler.Response {
//		return func(w http.ResponseWriter, r *http.Request) error {
//			_, err := io.WriteString(w, "Hello World")
//			return err
//		}
//	}
//
// Errors that implement StatusCode() int choose the HTTP status used by the
// default error handlers.
package handler
