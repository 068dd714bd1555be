// Package response provides small response builders and the error handlers
// the router uses to turn handler errors into HTTP responses.
//
//	r := router.New(router.WithErrorHandler(response.ErrorHandler[*router.Context]))
//	r.Get("/hello", func(ctx *router.Context) handler.Response {
//		return response.String("Hello World")
//	})
//
// Any error that implements StatusCode() int (HTTPError, static.ErrNotFound,
// router.ErrNotFound) is rendered with that status; other errors become 500.
package response
