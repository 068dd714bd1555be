package static

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ResolvedFile is a regular file inside the public root that a request
// mapped to. Content is not opened until Open is called.
type ResolvedFile struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Open opens the file for reading. The caller must close it.
func (f *ResolvedFile) Open() (*os.File, error) {
	return os.Open(f.Path)
}

// Resolve maps requestPath (an already-decoded URL path) to a file under
// cfg.Root. It returns an error matching ErrNotFound whenever the request
// should not be answered from the public directory.
func Resolve(requestPath string, cfg Config) (*ResolvedFile, error) {
	if !cfg.Active() {
		return nil, ErrNotFound
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, notFound(err)
	}

	// "/a.txt/" names a directory, never the file a.txt.
	if len(requestPath) > 1 && strings.HasSuffix(requestPath, "/") {
		return nil, ErrNotFound
	}

	candidate, ok := candidatePath(root, requestPath)
	if !ok || candidate == root {
		return nil, ErrNotFound
	}

	info, err := os.Stat(candidate)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, notFound(err)
	}
	if !info.Mode().IsRegular() {
		return nil, ErrNotFound
	}

	// Dot segments must walk through real directories: "/missing/../a.txt"
	// is not a.txt.
	if hasDotSegment(requestPath) {
		literal, err := os.Stat(literalPath(root, requestPath))
		if err != nil || !os.SameFile(info, literal) {
			return nil, notFound(err)
		}
	}

	// Symlinks may point anywhere; the real target must stay in the real root.
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, notFound(err)
	}
	realPath, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		return nil, notFound(err)
	}
	if !within(realRoot, realPath) {
		return nil, ErrNotFound
	}

	return &ResolvedFile{
		Path:    candidate,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
