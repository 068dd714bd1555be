// Package middleware provides typed middleware for the router:
// request logging, request IDs and per-client rate limiting.
//
// Every constructor is generic over the handler context type and comes in a
// default form and a WithConfig form:
//
//	r := router.New[*router.Context](
//		router.WithMiddleware(
//			middleware.RequestID[*router.Context](),
//			middleware.LoggingWithLogger[*router.Context](log),
//		),
//	)
//
// Typed middleware only wraps routed requests. LoggingHandler and
// RequestIDHandler are plain http wrappers for requests answered before
// routing, such as public files:
//
//	h := static.Public(settings)(r)
//	h = middleware.LoggingHandler(middleware.LoggingConfig{Logger: log})(h)
//	h = middleware.RequestIDHandler(middleware.RequestIDConfig{})(h)
//
// A routed handler behind RequestIDHandler sees the same ID through
// GetRequestID.
package middleware
