// internal/app/features/dashboard/teacher.go
package dashboard

import (
	"net/http"
	"sort"
	"time"

	"github.com/campushub/campushub/internal/app/system/viewdata"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

type teacherDashboardData struct {
	baseDashboardData
	MyOpen    int
	MyOverdue int
	Upcoming  []upcomingTask
}

type upcomingTask struct {
	Name    string
	Group   string
	DueDate time.Time
	Status  models.StatusDescriptor
}

const maxUpcoming = 5

// ServeTeacher renders the teacher dashboard: the shared board summary plus
// the tasks assigned to this teacher, soonest due first.
func (h *Handler) ServeTeacher(w http.ResponseWriter, r *http.Request) {
	base := viewdata.NewBaseVM(r, "Teacher Dashboard", "/")
	now := time.Now().UTC()
	snapshot := h.Board.Snapshot()

	data := teacherDashboardData{
		baseDashboardData: baseDashboardData{
			BaseVM:  base,
			Summary: summarize(snapshot, now),
		},
	}

	for _, g := range snapshot {
		for _, t := range g.Tasks {
			if t.Assignee.Name != base.UserName || t.Status == models.StatusDone {
				continue
			}
			data.MyOpen++
			if !t.DueDate.IsZero() && t.DueDate.Before(now) {
				data.MyOverdue++
			}
			if !t.DueDate.IsZero() {
				data.Upcoming = append(data.Upcoming, upcomingTask{
					Name:    t.Name,
					Group:   g.Name,
					DueDate: t.DueDate,
					Status:  t.Status.Descriptor(),
				})
			}
		}
	}

	sort.Slice(data.Upcoming, func(i, j int) bool {
		return data.Upcoming[i].DueDate.Before(data.Upcoming[j].DueDate)
	})
	if len(data.Upcoming) > maxUpcoming {
		data.Upcoming = data.Upcoming[:maxUpcoming]
	}

	templates.Render(w, r, "dashboard_teacher", data)
}
