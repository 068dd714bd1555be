package static_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pubkit/core/static"
)

// publicTree creates:
//
//	root/hello.txt
//	root/sub/nested.css
//	root/empty/
//	outside.txt (sibling of root)
func publicTree(t *testing.T) (root, outside string) {
	t.Helper()

	base := t.TempDir()
	root = filepath.Join(base, "public")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "hello.txt"), []byte("hello world"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "nested.css"), []byte("body{}"), 0o644))

	outside = filepath.Join(base, "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))
	return root, outside
}

func TestResolve(t *testing.T) {
	t.Parallel()

	root, _ := publicTree(t)
	cfg := static.Config{Enabled: true, Root: root}

	modTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(root, "hello.txt"), modTime, modTime))

	t.Run("regular file", func(t *testing.T) {
		t.Parallel()

		f, err := static.Resolve("/hello.txt", cfg)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "hello.txt"), f.Path)
		assert.Equal(t, int64(len("hello world")), f.Size)
		assert.True(t, modTime.Equal(f.ModTime))
	})

	t.Run("nested file", func(t *testing.T) {
		t.Parallel()

		f, err := static.Resolve("/sub/nested.css", cfg)
		require.NoError(t, err)
		assert.Equal(t, int64(6), f.Size)
	})

	t.Run("dot segments that stay inside", func(t *testing.T) {
		t.Parallel()

		f, err := static.Resolve("/sub/../hello.txt", cfg)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "hello.txt"), f.Path)

		f, err = static.Resolve("/./sub/./nested.css", cfg)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "sub", "nested.css"), f.Path)
	})

	t.Run("relative root", func(t *testing.T) {
		t.Parallel()

		wd, err := os.Getwd()
		require.NoError(t, err)
		rel, err := filepath.Rel(wd, root)
		if err != nil {
			t.Skip("temp dir not reachable relative to working directory")
		}

		f, err := static.Resolve("/hello.txt", static.Config{Enabled: true, Root: rel})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "hello.txt"), f.Path)
	})
}

func TestResolveNotFound(t *testing.T) {
	t.Parallel()

	root, _ := publicTree(t)
	enabled := static.Config{Enabled: true, Root: root}

	tests := []struct {
		name string
		path string
		cfg  static.Config
	}{
		{"disabled", "/hello.txt", static.Config{Enabled: false, Root: root}},
		{"unset root", "/hello.txt", static.Config{Enabled: true}},
		{"missing file", "/foobarbaz.txt", enabled},
		{"root directory", "/", enabled},
		{"empty path", "", enabled},
		{"sub directory", "/sub", enabled},
		{"sub directory with slash", "/sub/", enabled},
		{"empty directory", "/empty/", enabled},
		{"parent escape", "/../outside.txt", enabled},
		{"deep parent escape", "/sub/../../outside.txt", enabled},
		{"nul byte", "/hello.txt\x00.png", enabled},
		{"file with trailing slash", "/hello.txt/", enabled},
		{"nested file with trailing slash", "/sub/nested.css/", enabled},
		{"dot segments through missing directory", "/nope/../hello.txt", enabled},
		{"dot segments through a file", "/hello.txt/../hello.txt", enabled},
		{"nonexistent root", "/hello.txt", static.Config{Enabled: true, Root: filepath.Join(root, "missing")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := static.Resolve(tt.path, tt.cfg)
			assert.Nil(t, f)
			assert.ErrorIs(t, err, static.ErrNotFound)
		})
	}
}

func TestResolveSymlinks(t *testing.T) {
	t.Parallel()

	root, outside := publicTree(t)
	cfg := static.Config{Enabled: true, Root: root}

	if err := os.Symlink(outside, filepath.Join(root, "escape.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "hello.txt"), filepath.Join(root, "alias.txt")))

	t.Run("link leaving root", func(t *testing.T) {
		t.Parallel()

		_, err := static.Resolve("/escape.txt", cfg)
		assert.ErrorIs(t, err, static.ErrNotFound)
	})

	t.Run("link inside root", func(t *testing.T) {
		t.Parallel()

		f, err := static.Resolve("/alias.txt", cfg)
		require.NoError(t, err)
		assert.Equal(t, int64(len("hello world")), f.Size)
	})
}

func TestResolvedFileOpen(t *testing.T) {
	t.Parallel()

	root, _ := publicTree(t)
	f, err := static.Resolve("/hello.txt", static.Config{Enabled: true, Root: root})
	require.NoError(t, err)

	fh, err := f.Open()
	require.NoError(t, err)
	t.Cleanup(func() { _ = fh.Close() })

	buf := make([]byte, f.Size)
	_, err = fh.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(buf))
}
