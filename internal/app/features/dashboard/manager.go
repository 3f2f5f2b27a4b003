// internal/app/features/dashboard/manager.go
package dashboard

import (
	"context"
	"net/http"
	"time"

	userstore "github.com/campushub/campushub/internal/app/store/users"
	"github.com/campushub/campushub/internal/app/system/timeouts"
	"github.com/campushub/campushub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type managerDashboardData struct {
	baseDashboardData
	Teachers int64
	Students int64
	Managers int64
}

// ServeManager renders the school-wide dashboard: board totals plus the
// account roster counts a manager administers.
func (h *Handler) ServeManager(w http.ResponseWriter, r *http.Request) {
	data := managerDashboardData{
		baseDashboardData: baseDashboardData{
			BaseVM:  viewdata.NewBaseVM(r, "Manager Dashboard", "/"),
			Summary: summarize(h.Board.Snapshot(), time.Now().UTC()),
		},
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	counts, err := userstore.New(h.DB).CountByRole(ctx)
	if err != nil {
		// Roster counts are decoration; the board summary still renders.
		h.Log.Warn("manager dashboard: role counts failed", zap.Error(err))
	} else {
		data.Managers = counts["manager"]
		data.Teachers = counts["teacher"]
		data.Students = counts["student"]
	}

	templates.Render(w, r, "dashboard_manager", data)
}
