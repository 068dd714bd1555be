package static

import (
	"io"
	"net/http"
	"strconv"
)

// Send writes f as a 200 response with Content-Type, Content-Length and
// Last-Modified. HEAD requests get the headers only. If the file cannot be
// opened, nothing is written and the error matches ErrNotFound.
func Send(w http.ResponseWriter, r *http.Request, f *ResolvedFile) error {
	file, err := f.Open()
	if err != nil {
		return notFound(err)
	}
	defer file.Close()

	// Headers describe the opened handle, not the earlier stat.
	info, err := file.Stat()
	if err != nil {
		return notFound(err)
	}
	if !info.Mode().IsRegular() {
		return ErrNotFound
	}

	h := w.Header()
	h.Set("Content-Type", contentType(f.Path))
	h.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	h.Set("Last-Modified", info.ModTime().UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return nil
	}

	_, err = io.CopyN(w, file, info.Size())
	return err
}
