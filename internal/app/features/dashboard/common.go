// internal/app/features/dashboard/common.go
package dashboard

import (
	"time"

	"github.com/campushub/campushub/internal/app/system/viewdata"
	"github.com/campushub/campushub/internal/domain/models"
)

// statusCard is one status column summary shown on every dashboard.
type statusCard struct {
	Label string
	Badge string
	Count int
}

// boardSummary holds the board-wide counts shared by all role dashboards.
type boardSummary struct {
	Groups    int
	Tasks     int
	Overdue   int
	HighOpen  int // high priority, not done
	ByStatus  []statusCard
	DoneRatio int // percent of tasks done
}

type baseDashboardData struct {
	viewdata.BaseVM
	Summary boardSummary
}

// summarize walks a board snapshot and produces the shared counts.
// Subtasks are not counted; dashboards track top-level work.
func summarize(groups []*models.Group, now time.Time) boardSummary {
	s := boardSummary{Groups: len(groups)}
	byStatus := make(map[models.Status]int, len(models.Statuses))

	for _, g := range groups {
		for _, t := range g.Tasks {
			s.Tasks++
			byStatus[t.Status]++
			if t.Status != models.StatusDone {
				if !t.DueDate.IsZero() && t.DueDate.Before(now) {
					s.Overdue++
				}
				if t.Priority == models.PriorityHigh {
					s.HighOpen++
				}
			}
		}
	}

	for _, st := range models.Statuses {
		desc := st.Descriptor()
		s.ByStatus = append(s.ByStatus, statusCard{
			Label: desc.Label,
			Badge: desc.Badge,
			Count: byStatus[st],
		})
	}
	if s.Tasks > 0 {
		s.DoneRatio = byStatus[models.StatusDone] * 100 / s.Tasks
	}
	return s
}
