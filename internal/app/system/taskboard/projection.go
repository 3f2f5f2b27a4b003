// internal/app/system/taskboard/projection.go
package taskboard

import (
	"time"

	"github.com/campushub/campushub/internal/domain/models"
)

// The four view projections. Each is a stateless mapping from
// (filtered tasks, groups) to per-view layout data; nothing here retains
// state between calls, and nothing mutates the snapshot it is given.

// ListProjection is the list view: the shared filter/sort output over all
// groups in board order, unmodified, rendered as flat cards.
func ListProjection(groups []*models.Group, q Query) []*models.Task {
	all := make([]*models.Task, 0)
	for _, g := range groups {
		all = append(all, g.Tasks...)
	}
	return Project(all, q)
}

// BoardColumn is one status column within a group on the kanban board.
type BoardColumn struct {
	Status models.Status
	Key    string // container key column suffix ("not-started", ...)
	Tasks  []*models.Task
}

// BoardGroup is one group's row of status columns.
type BoardGroup struct {
	Group   *models.Group
	Columns []BoardColumn
}

// BoardProjection lays out the kanban board: for each group, one column
// per status in the fixed status order. Column assignment is exhaustive
// and mutually exclusive: a task's status is a member of the closed
// enumeration, so every visible task lands in exactly one column.
func BoardProjection(groups []*models.Group, q Query) []BoardGroup {
	out := make([]BoardGroup, 0, len(groups))
	for _, g := range groups {
		visible := Project(g.Tasks, q)
		bg := BoardGroup{Group: g, Columns: make([]BoardColumn, 0, len(models.Statuses))}
		for _, st := range models.Statuses {
			col := BoardColumn{Status: st, Key: st.ColumnKey()}
			for _, t := range visible {
				if t.Status == st {
					col.Tasks = append(col.Tasks, t)
				}
			}
			bg.Columns = append(bg.Columns, col)
		}
		out = append(out, bg)
	}
	return out
}

// TableColumn describes one column of the table view. Renderers key off
// the column key, so adding a column is a table entry, not a template fork.
type TableColumn struct {
	Key   string
	Label string
}

// TableColumns is the fixed column descriptor list for the table view.
var TableColumns = []TableColumn{
	{Key: "status", Label: "Status"},
	{Key: "priority", Label: "Priority"},
	{Key: "dueDate", Label: "Due"},
	{Key: "progress", Label: "Progress"},
	{Key: "assignee", Label: "Assignee"},
}

// TableRow is one task row, with its subtasks attached when the task is
// expanded.
type TableRow struct {
	Task     *models.Task
	Subtasks []*models.Task // nil unless Task.ShowSubtasks
}

// TableSection is one group's collapsible section of the table view.
type TableSection struct {
	Group *models.Group
	Rows  []TableRow
}

// TableProjection lays out the table view: groups as collapsible section
// headers, tasks as rows, subtasks nested under expanded parents.
func TableProjection(groups []*models.Group, q Query) []TableSection {
	out := make([]TableSection, 0, len(groups))
	for _, g := range groups {
		sec := TableSection{Group: g}
		for _, t := range Project(g.Tasks, q) {
			row := TableRow{Task: t}
			if t.ShowSubtasks {
				row.Subtasks = t.Subtasks
			}
			sec.Rows = append(sec.Rows, row)
		}
		out = append(out, sec)
	}
	return out
}

// TimelineItem positions one task inside the shared timeline window.
// Left and Width are percentages of the window.
type TimelineItem struct {
	Task  *models.Task
	Left  float64
	Width float64
}

// TimelineView is the timeline layout: the shared window plus one
// positioned item per visible task that carries a timeline. Tasks without
// a timeline are omitted here but stay visible in the other views.
type TimelineView struct {
	Start time.Time
	End   time.Time
	Items []TimelineItem
}

// TimelineProjection computes the shared window [min start, max end]
// across the currently visible tasks and positions each one:
//
//	left%  = days(globalStart -> task start) / days(window) * 100
//	width% = days(task start -> task end)    / days(window) * 100
//
// A zero-length window (single task, start == end) renders at width 100
// rather than dividing by zero.
func TimelineProjection(visible []*models.Task) TimelineView {
	var view TimelineView
	for _, t := range visible {
		if !t.HasTimeline() {
			continue
		}
		if view.Items == nil {
			view.Start = t.Timeline.StartDate
			view.End = t.Timeline.EndDate
		} else {
			if t.Timeline.StartDate.Before(view.Start) {
				view.Start = t.Timeline.StartDate
			}
			if t.Timeline.EndDate.After(view.End) {
				view.End = t.Timeline.EndDate
			}
		}
		view.Items = append(view.Items, TimelineItem{Task: t})
	}

	window := daysBetween(view.Start, view.End)
	for i := range view.Items {
		tl := view.Items[i].Task.Timeline
		if window == 0 {
			view.Items[i].Left = 0
			view.Items[i].Width = 100
			continue
		}
		view.Items[i].Left = daysBetween(view.Start, tl.StartDate) / window * 100
		view.Items[i].Width = daysBetween(tl.StartDate, tl.EndDate) / window * 100
	}
	return view
}

func daysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}
