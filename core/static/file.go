package static

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/pubkit/core/handler"
)

// File creates a route handler that always serves the file at filePath.
// Panics at startup if the file doesn't exist or is a directory.
func File[C handler.Context](filePath string) handler.HandlerFunc[C] {
	cleanPath := filepath.Clean(filePath)
	if err := validateStartup(cleanPath, false); err != nil {
		panic("static.File: " + err.Error())
	}

	return func(ctx C) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			info, err := os.Stat(cleanPath)
			if err != nil {
				return notFound(err)
			}
			if !info.Mode().IsRegular() {
				return ErrNotFound
			}
			return Send(w, r, &ResolvedFile{
				Path:    cleanPath,
				Size:    info.Size(),
				ModTime: info.ModTime(),
			})
		}
	}
}
