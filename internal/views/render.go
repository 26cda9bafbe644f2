// Package views renders pages and htmx fragments as gomponents nodes.
package views

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// Component adapts a node to templ so it can be served by templ.Handler.
func Component(node g.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return node.Render(w)
	})
}

// Handler serves node with the given status code.
func Handler(node g.Node, status int) http.Handler {
	if status == 0 {
		status = http.StatusOK
	}
	return templ.Handler(Component(node), templ.WithStatus(status))
}

// Render writes node as the response to r.
func Render(w http.ResponseWriter, r *http.Request, status int, node g.Node) {
	Handler(node, status).ServeHTTP(w, r)
}
