package response_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pubkit/core/response"
	"github.com/dmitrymomot/pubkit/core/router"
)

type teapotErr struct{}

func (teapotErr) Error() string   { return "short and stout" }
func (teapotErr) StatusCode() int { return http.StatusTeapot }

func newCtx(method, target string) (*router.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	return router.NewContext(w, httptest.NewRequest(method, target, nil), nil), w
}

func TestStringWithStatus(t *testing.T) {
	t.Parallel()

	ctx, w := newCtx(http.MethodGet, "/")
	response.Render(ctx, response.StringWithStatus("created", http.StatusCreated))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "created", w.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"http error", response.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"wrapped http error", fmt.Errorf("ctx: %w", response.ErrNotFound), http.StatusNotFound, "not_found"},
		{"status code interface", teapotErr{}, http.StatusTeapot, "error"},
		{"wrapped status code", fmt.Errorf("wrap: %w", router.ErrNotFound), http.StatusNotFound, "not_found"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal_server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			httpErr := response.AsHTTPError(tt.err)
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.code, httpErr.Code)
		})
	}
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	ctx, w := newCtx(http.MethodGet, "/missing")
	response.ErrorHandler(ctx, router.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", w.Body.String())
}

func TestLoggingErrorHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := response.LoggingErrorHandler[*router.Context](log)

	ctx, w := newCtx(http.MethodPost, "/explode")
	h(ctx, errors.New("disk on fire"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "path=/explode")
	assert.Contains(t, buf.String(), "disk on fire")
}
