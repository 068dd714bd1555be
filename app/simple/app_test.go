package simple_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pubkit/app/simple"
	"github.com/dmitrymomot/pubkit/core/handler"
	"github.com/dmitrymomot/pubkit/core/logger"
	"github.com/dmitrymomot/pubkit/core/response"
	"github.com/dmitrymomot/pubkit/core/server"
	"github.com/dmitrymomot/pubkit/core/static"
	"github.com/dmitrymomot/pubkit/middleware"
)

// publicDir copies this test file into a fresh public directory.
func publicDir(t *testing.T) (dir, name string, content []byte) {
	t.Helper()

	dir = t.TempDir()
	name = "app_test.go"
	content, err := os.ReadFile(name)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0o644))
	return dir, name, content
}

func newApp(t *testing.T, cfg static.Config, opts ...simple.AppOption) *simple.App {
	t.Helper()

	base := []simple.AppOption{
		simple.WithConfig(simple.Config{Static: cfg, AppName: "test"}),
		simple.WithLogger(logger.Nop()),
		simple.WithServer(server.New("127.0.0.1:0")),
	}
	app, err := simple.NewApp(append(base, opts...)...)
	require.NoError(t, err)
	return app
}

func request(app *simple.App, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestServesGetForFileInPublicDir(t *testing.T) {
	t.Parallel()

	dir, name, content := publicDir(t)
	app := newApp(t, static.Config{Enabled: true, Root: dir})

	w := request(app, http.MethodGet, "/"+name)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.Bytes())

	info, err := os.Stat(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, info.ModTime().UTC().Format(http.TimeFormat), w.Header().Get("Last-Modified"))
	assert.EqualValues(t, len(content), w.Result().ContentLength)
}

func TestServesHeadForFileInPublicDir(t *testing.T) {
	t.Parallel()

	dir, name, content := publicDir(t)
	app := newApp(t, static.Config{Enabled: true, Root: dir})

	w := request(app, http.MethodHead, "/"+name)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.Bytes())
	assert.NotEmpty(t, w.Header().Get("Last-Modified"))
	assert.EqualValues(t, len(content), w.Result().ContentLength)
}

func TestServesFilesInPreferenceToRoutes(t *testing.T) {
	t.Parallel()

	dir, name, content := publicDir(t)
	app := newApp(t, static.Config{Enabled: true, Root: dir})

	routeRan := false
	app.Router().Get("/"+name, func(ctx *simple.Context) handler.Response {
		routeRan = true
		return response.String("this is not the file")
	})

	w := request(app, http.MethodGet, "/"+name)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.Bytes())
	assert.False(t, routeRan)
}

func TestNotFoundForDirectory(t *testing.T) {
	t.Parallel()

	dir, _, _ := publicDir(t)
	app := newApp(t, static.Config{Enabled: true, Root: dir})

	assert.Equal(t, http.StatusNotFound, request(app, http.MethodGet, "/").Code)
}

func TestNotFoundWhenStaticDisabled(t *testing.T) {
	t.Parallel()

	dir, name, _ := publicDir(t)
	app := newApp(t, static.Config{Enabled: false, Root: dir})

	assert.Equal(t, http.StatusNotFound, request(app, http.MethodGet, "/"+name).Code)
}

func TestNotFoundWhenPublicUnset(t *testing.T) {
	t.Parallel()

	_, name, _ := publicDir(t)
	app := newApp(t, static.Config{Enabled: true})

	assert.Equal(t, http.StatusNotFound, request(app, http.MethodGet, "/"+name).Code)
}

func TestNotFoundForMissingFile(t *testing.T) {
	t.Parallel()

	dir, _, _ := publicDir(t)
	app := newApp(t, static.Config{Enabled: true, Root: dir})

	assert.Equal(t, http.StatusNotFound, request(app, http.MethodGet, "/foobarbaz.txt").Code)
}

func TestRoutesStillServeNonStaticPaths(t *testing.T) {
	t.Parallel()

	dir, name, _ := publicDir(t)
	app := newApp(t, static.Config{Enabled: true, Root: dir})

	app.Router().Get("/hello", func(ctx *simple.Context) handler.Response {
		return response.String("hi from " + ctx.StaticConfig().Root)
	})
	app.Router().Post("/"+name, func(ctx *simple.Context) handler.Response {
		return response.String("posted")
	})

	w := request(app, http.MethodGet, "/hello")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hi from "+dir, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = request(app, http.MethodPost, "/"+name)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "posted", w.Body.String())
}

func TestStaticHitsAreLoggedWithRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dir, name, content := publicDir(t)
	app := newApp(t, static.Config{Enabled: true, Root: dir}, simple.WithLogger(log))

	w := request(app, http.MethodGet, "/"+name)
	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, id)

	var access []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		if rec["msg"] == "http request" {
			access = append(access, rec)
		}
	}
	require.Len(t, access, 1)
	assert.Equal(t, "/"+name, access[0]["path"])
	assert.Equal(t, http.MethodGet, access[0]["method"])
	assert.EqualValues(t, http.StatusOK, access[0]["status_code"])
	assert.EqualValues(t, len(content), access[0]["bytes_out"])
	assert.Equal(t, id, access[0]["request_id"])
}

func TestRoutedRequestsShareOneRequestID(t *testing.T) {
	t.Parallel()

	dir, _, _ := publicDir(t)
	app := newApp(t, static.Config{Enabled: true, Root: dir})

	var seen string
	app.Router().Get("/id", func(ctx *simple.Context) handler.Response {
		seen, _ = middleware.GetRequestID(ctx)
		return response.String("ok")
	})

	w := request(app, http.MethodGet, "/id")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
}

func TestRuntimeToggle(t *testing.T) {
	t.Parallel()

	dir, name, _ := publicDir(t)
	app := newApp(t, static.Config{Enabled: true, Root: dir})

	require.Equal(t, http.StatusOK, request(app, http.MethodGet, "/"+name).Code)

	app.Static().SetEnabled(false)
	assert.Equal(t, http.StatusNotFound, request(app, http.MethodGet, "/"+name).Code)

	app.Static().SetEnabled(true)
	assert.Equal(t, http.StatusOK, request(app, http.MethodGet, "/"+name).Code)
}

func TestNewAppOptionErrors(t *testing.T) {
	t.Parallel()

	_, err := simple.NewApp(simple.WithLogger(nil))
	assert.Error(t, err)

	_, err = simple.NewApp(simple.WithServer(nil))
	assert.Error(t, err)

	_, err = simple.NewApp(simple.WithConfigFile(""))
	assert.Error(t, err)

	_, err = simple.NewApp(
		simple.WithLogger(logger.Nop()),
		simple.WithServer(server.New("127.0.0.1:0")),
		simple.WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml")),
	)
	assert.Error(t, err)
}

func TestRunReloadsConfigFile(t *testing.T) {
	dir, name, content := publicDir(t)
	cfgPath := filepath.Join(t.TempDir(), "static.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("static: true\npublic: "+dir+"\n"), 0o644))

	srv := server.New("127.0.0.1:0", server.WithShutdownTimeout(time.Second))
	app, err := simple.NewApp(
		simple.WithConfig(simple.Config{AppName: "test"}),
		simple.WithLogger(logger.Nop()),
		simple.WithServer(srv),
		simple.WithConfigFile(cfgPath),
	)
	require.NoError(t, err)
	require.Equal(t, static.Config{Enabled: true, Root: dir}, app.Static().Load())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	addr, err := srv.Addr(waitCtx)
	require.NoError(t, err)
	url := "http://" + addr.String() + "/" + name

	resp, err := http.Get(url)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, content, body)

	require.NoError(t, os.WriteFile(cfgPath, []byte("static: false\npublic: "+dir+"\n"), 0o644))
	assert.Eventually(t, func() bool {
		return !app.Static().Load().Enabled
	}, 5*time.Second, 20*time.Millisecond)

	resp, err = http.Get(url)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Dropping the public key unsets the root again.
	require.NoError(t, os.WriteFile(cfgPath, []byte("static: true\n"), 0o644))
	assert.Eventually(t, func() bool {
		return app.Static().Load() == static.Config{Enabled: true}
	}, 5*time.Second, 20*time.Millisecond)

	resp, err = http.Get(url)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestReloadFallsBackToConfigBeforeFile(t *testing.T) {
	envDir := t.TempDir()
	fileDir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "static.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("public = \""+fileDir+"\"\n"), 0o644))

	srv := server.New("127.0.0.1:0", server.WithShutdownTimeout(time.Second))
	app, err := simple.NewApp(
		simple.WithConfig(simple.Config{AppName: "test"}),
		simple.WithStaticConfig(static.Config{Enabled: true, Root: envDir}),
		simple.WithLogger(logger.Nop()),
		simple.WithServer(srv),
		simple.WithConfigFile(cfgPath),
	)
	require.NoError(t, err)
	require.Equal(t, static.Config{Enabled: true, Root: fileDir}, app.Static().Load())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	_, err = srv.Addr(waitCtx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(cfgPath, []byte("static = false\n"), 0o644))
	assert.Eventually(t, func() bool {
		return app.Static().Load() == static.Config{Enabled: false, Root: envDir}
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
