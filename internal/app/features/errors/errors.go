// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/templates"
)

// pageData is the basic view model for error pages.
type pageData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string
	Message    string
	BackURL    string
}

// Handler is the errors feature handler.
// No DB needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "error_forbidden", newPageData(r,
		"Access denied",
		"You don't have permission to view this page.",
		"/"))
}

// Unauthorized renders a friendly "sign in required" page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "error_forbidden", newPageData(r,
		"Sign in required",
		"Please sign in to continue.",
		"/login"))
}

func newPageData(r *http.Request, title, msg, backURL string) pageData {
	data := pageData{
		Title:   title,
		Message: msg,
		BackURL: backURL,
	}
	if u, ok := auth.CurrentUser(r); ok {
		data.IsLoggedIn = true
		data.Role = u.Role
		data.UserName = u.Name
	}
	return data
}
