package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

type htmxKey struct{}

// HTMX marks requests coming from htmx so handlers/middlewares can adapt responses.
// History restore requests want the full page and are not marked.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-History-Restore-Request") != "true"
		ctx := context.WithValue(r.Context(), htmxKey{}, is)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IsHTMX reports whether the request expects an htmx fragment.
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(htmxKey{}).(bool)
	return v
}

// TriggerEvent sets HX-Trigger so htmx dispatches event with detail on the
// client. It must be called before the response is written.
func TriggerEvent(w http.ResponseWriter, event string, detail any) {
	payload, err := json.Marshal(map[string]any{event: detail})
	if err != nil {
		w.Header().Set("HX-Trigger", event)
		return
	}
	w.Header().Set("HX-Trigger", string(payload))
}
