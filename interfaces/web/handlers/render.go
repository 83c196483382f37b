// Package handlers wires HTTP requests to application services.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// RenderResponse renders Templ components to HTTP responses.
func RenderResponse(ctx context.Context, w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(ctx, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// IsHTMXRequest checks if the request came from HTMX.
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// GetHTMXTarget returns the HTMX target element ID without its # prefix.
func GetHTMXTarget(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("HX-Target"), "#")
}
