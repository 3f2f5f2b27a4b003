// internal/app/features/board/query.go
package board

import (
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/campushub/campushub/internal/app/system/taskboard"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

// View names accepted by GET /board.
const (
	ViewList     = "list"
	ViewBoard    = "board"
	ViewTable    = "table"
	ViewTimeline = "timeline"
)

var viewNames = []string{ViewList, ViewBoard, ViewTable, ViewTimeline}

// currentView returns the requested view name, defaulting to the list.
func currentView(r *http.Request) string {
	v := strings.ToLower(query.Get(r, "view"))
	for _, name := range viewNames {
		if v == name {
			return name
		}
	}
	return ViewList
}

// parseQuery reads the shared filter/sort parameters. Unknown sort keys
// fall back to board order rather than erroring: the filter bar is a
// navigation control, not an API surface.
func parseQuery(r *http.Request) taskboard.Query {
	q := taskboard.Query{
		Search:     strings.TrimSpace(query.Get(r, "q")),
		Department: strings.TrimSpace(query.Get(r, "department")),
	}

	switch taskboard.SortKey(query.Get(r, "sort")) {
	case taskboard.SortByName:
		q.SortKey = taskboard.SortByName
	case taskboard.SortByDueDate:
		q.SortKey = taskboard.SortByDueDate
	case taskboard.SortByPriority:
		q.SortKey = taskboard.SortByPriority
	case taskboard.SortByStatus:
		q.SortKey = taskboard.SortByStatus
	}

	q.SortDirection = taskboard.SortAsc
	if query.Get(r, "dir") == string(taskboard.SortDesc) {
		q.SortDirection = taskboard.SortDesc
	}
	return q
}

// boardURL rebuilds the board path for redirects after a mutation so the
// user lands back on the view and filters they were looking at.
func boardURL(view string, q taskboard.Query, errMsg string) string {
	v := url.Values{}
	if view != "" && view != ViewList {
		v.Set("view", view)
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Department != "" {
		v.Set("department", q.Department)
	}
	if q.SortKey != "" {
		v.Set("sort", string(q.SortKey))
	}
	if q.SortDirection == taskboard.SortDesc {
		v.Set("dir", string(taskboard.SortDesc))
	}
	if errMsg != "" {
		v.Set("error", errMsg)
	}
	if len(v) == 0 {
		return "/board"
	}
	return "/board?" + v.Encode()
}

// departments collects the distinct department names on the board, sorted,
// with the pass-through sentinel first.
func departments(groups []*models.Group) []string {
	seen := map[string]bool{}
	for _, g := range groups {
		for _, t := range g.Tasks {
			if t.Department != "" {
				seen[t.Department] = true
			}
		}
	}
	out := make([]string, 0, len(seen)+1)
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return append([]string{taskboard.DepartmentAll}, out...)
}
