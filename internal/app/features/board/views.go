// internal/app/features/board/views.go
package board

import (
	"net/http"

	"github.com/campushub/campushub/internal/app/system/taskboard"
	"github.com/campushub/campushub/internal/app/system/viewdata"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

type boardPageData struct {
	viewdata.BaseVM
	View        string
	Query       taskboard.Query
	Departments []string
	CanEdit     bool
	Error       string

	// One of these is populated depending on View.
	List     []*models.Task
	Groups   []taskboard.BoardGroup
	Columns  []taskboard.TableColumn
	Sections []taskboard.TableSection
	Timeline taskboard.TimelineView

	// AllGroups feeds the quick-add form's group selector.
	AllGroups []*models.Group
}

// ServeBoard handles GET /board. The view parameter picks the projection;
// q/department/sort/dir filter and order it.
func (h *Handler) ServeBoard(w http.ResponseWriter, r *http.Request) {
	q := parseQuery(r)
	view := currentView(r)
	snapshot := h.Board.Snapshot()

	data := boardPageData{
		BaseVM:      viewdata.NewBaseVM(r, "Task Board", "/dashboard"),
		View:        view,
		Query:       q,
		Departments: departments(snapshot),
		Error:       query.Get(r, "error"),
		AllGroups:   snapshot,
	}
	data.CanEdit = canEdit(data.Role)

	switch view {
	case ViewBoard:
		data.Groups = taskboard.BoardProjection(snapshot, q)
		templates.Render(w, r, "board_board", data)
	case ViewTable:
		data.Columns = taskboard.TableColumns
		data.Sections = taskboard.TableProjection(snapshot, q)
		templates.Render(w, r, "board_table", data)
	case ViewTimeline:
		data.Timeline = taskboard.TimelineProjection(taskboard.ListProjection(snapshot, q))
		templates.Render(w, r, "board_timeline", data)
	default:
		data.List = taskboard.ListProjection(snapshot, q)
		templates.Render(w, r, "board_list", data)
	}
}

func canEdit(role string) bool {
	return role == models.RoleManager || role == models.RoleTeacher
}
