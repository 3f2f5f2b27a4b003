// internal/app/features/dashboard/student.go
package dashboard

import (
	"net/http"
	"time"

	"github.com/campushub/campushub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeStudent renders the read-only student dashboard.
func (h *Handler) ServeStudent(w http.ResponseWriter, r *http.Request) {
	data := baseDashboardData{
		BaseVM:  viewdata.NewBaseVM(r, "Student Dashboard", "/"),
		Summary: summarize(h.Board.Snapshot(), time.Now().UTC()),
	}

	templates.Render(w, r, "dashboard_student", data)
}
