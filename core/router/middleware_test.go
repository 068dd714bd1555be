package router_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/pubkit/core/handler"
	"github.com/dmitrymomot/pubkit/core/router"
)

type traceKey struct{}

// tag appends name to the trace stored in the request context.
func tag(name string) handler.Middleware[*router.Context] {
	return func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
		return func(ctx *router.Context) handler.Response {
			prev, _ := ctx.Value(traceKey{}).(string)
			ctx.SetValue(traceKey{}, prev+name+";")
			return next(ctx)
		}
	}
}

func traced(ctx *router.Context) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		trace, _ := r.Context().Value(traceKey{}).(string)
		_, err := w.Write([]byte(strings.TrimSuffix(trace, ";")))
		return err
	}
}

func TestMiddlewareOrder(t *testing.T) {
	t.Parallel()

	r := router.New(router.WithMiddleware(tag("opt")))
	r.Use(tag("a"), tag("b"))
	r.Get("/plain", traced)
	r.With(tag("inline")).Get("/inline", traced)
	r.Group(func(g router.Router[*router.Context]) {
		g.Use(tag("group"))
		g.Get("/group", traced)
	})
	r.Route("/sub", func(sub router.Router[*router.Context]) {
		sub.Use(tag("sub"))
		sub.Get("/x", traced)
	})

	tests := []struct {
		path string
		want string
	}{
		{"/plain", "opt;a;b"},
		{"/inline", "opt;a;b;inline"},
		{"/group", "opt;a;b;group"},
		{"/sub/x", "opt;a;b;sub"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			w := serve(r, http.MethodGet, tt.path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestMiddlewareAfterRoutesPanics(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/x", traced)

	assert.Panics(t, func() { r.Use(tag("late")) })
}

func TestMiddlewareShortCircuit(t *testing.T) {
	t.Parallel()

	deny := func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
		return func(ctx *router.Context) handler.Response {
			return func(w http.ResponseWriter, r *http.Request) error {
				w.WriteHeader(http.StatusForbidden)
				return nil
			}
		}
	}

	called := false
	r := router.New[*router.Context]()
	r.Use(deny)
	r.Get("/secret", func(ctx *router.Context) handler.Response {
		called = true
		return nil
	})

	w := serve(r, http.MethodGet, "/secret")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, called)
}
