package static

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/pubkit/core/handler"
)

type dirConfig struct {
	root        string
	stripPrefix string
}

// DirOption configures Dir.
type DirOption func(*dirConfig)

// WithStripPrefix removes prefix from the URL path before resolving it.
// Use it when the handler is mounted below the site root.
func WithStripPrefix(prefix string) DirOption {
	return func(c *dirConfig) {
		c.stripPrefix = prefix
	}
}

// Dir creates a route handler serving regular files below root with the
// same rules as Public: no directories, no index documents, no escapes.
// Misses are returned as ErrNotFound for the router's error handler.
// Panics at startup if root is not a directory.
func Dir[C handler.Context](root string, opts ...DirOption) handler.HandlerFunc[C] {
	cfg := &dirConfig{root: filepath.Clean(root)}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := validateStartup(cfg.root, true); err != nil {
		panic("static.Dir: " + err.Error())
	}

	lookup := Config{Enabled: true, Root: cfg.root}

	return func(ctx C) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			p := r.URL.Path
			if cfg.stripPrefix != "" {
				rest, ok := strings.CutPrefix(p, cfg.stripPrefix)
				if !ok {
					return ErrNotFound
				}
				p = rest
			}

			f, err := Resolve(p, lookup)
			if err != nil {
				return err
			}
			return Send(w, r, f)
		}
	}
}
