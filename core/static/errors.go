package static

import (
	"fmt"
	"net/http"
)

type notFoundError struct{}

func (notFoundError) Error() string   { return "static: file not found" }
func (notFoundError) StatusCode() int { return http.StatusNotFound }

// ErrNotFound means no servable file matched the request: the feature is
// disabled, the root is unset, the path escapes the root, or the target is
// missing, a directory, or unreadable. It renders as 404 and signals
// pass-through to the Public middleware.
var ErrNotFound error = notFoundError{}

// notFound wraps cause so errors.Is(err, ErrNotFound) holds while the
// underlying filesystem error stays visible in logs.
func notFound(cause error) error {
	if cause == nil {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %w", ErrNotFound, cause)
}
