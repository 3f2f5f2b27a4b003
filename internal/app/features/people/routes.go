// internal/app/features/people/routes.go
package people

import (
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the people directory; mount at "/people". All routes
// are manager-only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Use(sm.RequireSignedIn)
	r.Use(sm.RequireRole(models.RoleManager))

	r.Get("/", h.ServeList)
	r.Get("/new", h.ServeNew)
	r.Post("/", h.HandleCreate)

	r.Get("/import", h.ServeImport)
	r.Post("/import", h.HandleImport)

	r.Get("/{id}", h.ServePerson)
	r.Post("/{id}/status", h.HandleSetStatus)
	r.Post("/{id}/password", h.HandleResetPassword)

	return r
}
