// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
)

// RenderUnauthorized shows a friendly "sign in required" page.
// If backURL is empty, it defaults to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}
	w.WriteHeader(http.StatusUnauthorized)
	templates.Render(w, r, "error_forbidden", newPageData(r,
		"Sign in required", "Please sign in to continue.", backURL))
}

// RenderForbidden shows a friendly access error page with a message.
// If backURL is empty, it resolves a safe back URL with a default fallback.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}
	w.WriteHeader(http.StatusForbidden)
	templates.Render(w, r, "error_forbidden", newPageData(r, "Access denied", msg, backURL))
}

// RenderNotFound shows a friendly "not found" page with a message.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}
	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_notfound", newPageData(r, "Not found", msg, backURL))
}

// RenderBadRequest shows a friendly "bad request" page with a message.
func RenderBadRequest(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}
	w.WriteHeader(http.StatusBadRequest)
	templates.Render(w, r, "error_generic", newPageData(r, "Something went wrong", msg, backURL))
}

// RenderServerError shows a friendly "server error" page with a message.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}
	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "error_generic", newPageData(r, "Something went wrong", msg, backURL))
}

// HTMXError handles errors for requests that may be HTMX partial swaps.
// HTMX callers get a plain-text error with the right status so the message
// can be swapped into the page; full-page callers get the fallback.
func HTMXError(w http.ResponseWriter, r *http.Request, status int, msg string, fallback func()) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(msg))
		return
	}
	fallback()
}
