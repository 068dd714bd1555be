// Package static serves files from a public directory.
//
// The central piece is Resolve, which maps a decoded URL path to a regular
// file inside a configured root, and Send, which writes that file with
// Content-Type, Content-Length and Last-Modified headers (headers only for
// HEAD). Everything else is built from those two.
//
// # Public directory pass-through
//
// Public wraps an http.Handler, usually the router, and answers GET and HEAD
// requests from the public directory before any route is consulted. When no
// file matches, the request continues to the wrapped handler untouched:
//
//	settings := static.NewSettings(static.Config{Enabled: true, Root: "./public"})
//
//	r := router.New[*router.Context]()
//	r.Get("/hello", helloHandler)
//
//	http.ListenAndServe(":8080", static.Public(settings)(r))
//
// A file at ./public/hello is therefore served even though a /hello route
// exists. Settings is reloadable at runtime:
//
//	settings.SetEnabled(false) // every request now reaches the router
//	settings.SetRoot("")       // an unset root also disables serving
//
// # Resolution rules
//
//   - Serving is skipped when Config.Enabled is false or Config.Root is empty.
//   - The request path is joined onto the absolute root; results outside the
//     root (for example via "..") are rejected.
//   - Only regular files are served. Directories, including the root itself,
//     are never served and no index document is substituted.
//   - Symbolic links are followed only when their target is inside the root.
//   - Permission and other filesystem errors are treated as a miss.
//
// Every miss is reported as an error matching ErrNotFound, which carries a
// 404 status for the router's error handlers.
//
// # Route handlers
//
// Dir and File expose the same behavior as ordinary routes:
//
//	r.Get("/assets/*", static.Dir[*router.Context]("./public/assets",
//		static.WithStripPrefix("/assets")))
//	r.Get("/favicon.ico", static.File[*router.Context]("./public/favicon.ico"))
//
// Both validate their paths at startup and panic on a misconfiguration.
package static
