// internal/app/features/board/routes.go
package board

import (
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes wires the board feature. Every view requires sign-in; mutations
// additionally require a staff role, so students get read-only projections.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeBoard)
		pr.Get("/events", h.ServeEvents)
		pr.Get("/tasks/{id}", h.ServeTaskDetail)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RoleManager, models.RoleTeacher))

		pr.Post("/tasks", h.HandleCreateTask)
		pr.Post("/tasks/{id}", h.HandleUpdateTask)
		pr.Post("/tasks/{id}/delete", h.HandleDeleteTask)
		pr.Post("/tasks/{id}/subtasks", h.HandleAddSubtask)
		pr.Post("/tasks/{id}/toggle", h.HandleToggleSubtasks)
		pr.Post("/tasks/{id}/comments", h.HandleAddComment)
		pr.Post("/move", h.HandleMove)
	})

	return r
}
