// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"
	"strings"

	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/app/system/taskboard"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB    *mongo.Database
	Board *taskboard.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, board *taskboard.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Board: board,
		Log:   logger,
	}
}

// ServeDashboard dispatches to the role-specific dashboard view.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	switch strings.ToLower(strings.TrimSpace(u.Role)) {
	case "manager":
		h.ServeManager(w, r)
	case "teacher":
		h.ServeTeacher(w, r)
	case "student":
		h.ServeStudent(w, r)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
