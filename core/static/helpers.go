package static

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// within reports whether target is root itself or lies below it.
// Both paths must be absolute and clean.
func within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// candidatePath joins a URL path onto root and reports false when the
// result would leave root.
func candidatePath(root, requestPath string) (string, bool) {
	if strings.IndexByte(requestPath, 0) >= 0 {
		return "", false
	}
	if filepath.Separator != '/' && strings.ContainsRune(requestPath, filepath.Separator) {
		return "", false
	}

	candidate := filepath.Join(root, filepath.FromSlash(requestPath))
	if !within(root, candidate) {
		return "", false
	}
	return candidate, true
}

// hasDotSegment reports whether a slash-separated path contains "." or ".."
// as a whole segment.
func hasDotSegment(p string) bool {
	for seg := range strings.SplitSeq(p, "/") {
		if seg == "." || seg == ".." {
			return true
		}
	}
	return false
}

// literalPath appends requestPath to root without lexical cleaning, so the
// OS resolves dot segments against the directories that actually exist.
func literalPath(root, requestPath string) string {
	return root + string(filepath.Separator) + filepath.FromSlash(strings.TrimLeft(requestPath, "/"))
}

// validateStartup checks that a file or directory exists at startup so
// misconfigured handlers fail fast instead of 404ing forever.
func validateStartup(path string, mustBeDir bool) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mustBeDir {
				return fmt.Errorf("directory does not exist: %s", path)
			}
			return fmt.Errorf("file does not exist: %s", path)
		}
		return fmt.Errorf("error accessing path: %w", err)
	}

	if mustBeDir && !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}
	if !mustBeDir && info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	return nil
}

// extraTypes covers extensions missing from common system mime tables.
var extraTypes = map[string]string{
	".woff2":       "font/woff2",
	".webmanifest": "application/manifest+json",
	".wasm":        "application/wasm",
	".mjs":         "text/javascript; charset=utf-8",
}

func contentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := extraTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
