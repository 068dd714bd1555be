package simple

import (
	"net/http"

	"github.com/dmitrymomot/pubkit/core/router"
	"github.com/dmitrymomot/pubkit/core/static"
)

// Context is the request context handed to application routes.
type Context struct {
	*router.Context
	settings *static.Settings
}

// StaticConfig returns the static settings in effect for this request.
func (c *Context) StaticConfig() static.Config {
	return c.settings.Load()
}

func (app *App) newContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{
		Context:  router.NewContext(w, r, params),
		settings: app.settings,
	}
}
