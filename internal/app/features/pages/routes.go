// internal/app/features/pages/routes.go
package pages

import (
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// AboutRouter serves the public About page.
func (h *Handler) AboutRouter() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeAbout)
	return r
}

// ContactRouter serves the public Contact page.
func (h *Handler) ContactRouter() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeContact)
	return r
}

// EditRoutes returns the manager-only page editing router; mount at /pages.
func EditRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireRole(models.RoleManager))
	r.Get("/{slug}/edit", h.ServeEdit)
	r.Post("/{slug}/edit", h.HandleEdit)
	return r
}
