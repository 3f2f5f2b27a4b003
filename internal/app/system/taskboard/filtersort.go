// internal/app/system/taskboard/filtersort.go
package taskboard

import (
	"sort"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"

	"github.com/campushub/campushub/internal/domain/models"
)

// DepartmentAll is the sentinel department filter value that matches
// every task.
const DepartmentAll = "All"

// SortKey selects the comparator used to order projected tasks.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByDueDate  SortKey = "dueDate"
	SortByPriority SortKey = "priority"
	SortByStatus   SortKey = "status"
)

// SortDirection is "asc" or "desc"; desc negates the comparator.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Query is the filter/sort input shared by every view.
type Query struct {
	Search        string        // case-insensitive substring on name or assignee name; empty matches all
	Department    string        // exact match; empty or DepartmentAll passes everything
	SortKey       SortKey       // empty means keep the board order
	SortDirection SortDirection // defaults to SortAsc
}

// Project turns a task sequence into the ordered, filtered sequence every
// view consumes. It is pure: the input slice and its tasks are never
// mutated, and identical inputs yield identical, order-equal output.
// The sort is stable, so equal keys keep their pre-sort relative order.
func Project(tasks []*models.Task, q Query) []*models.Task {
	out := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if q.matches(t) {
			out = append(out, t)
		}
	}

	cmp := comparator(q.SortKey)
	if cmp == nil {
		return out
	}
	desc := q.SortDirection == SortDesc
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if desc {
			c = -c
		}
		return c < 0
	})
	return out
}

func (q Query) matches(t *models.Task) bool {
	if q.Department != "" && q.Department != DepartmentAll && t.Department != q.Department {
		return false
	}
	if q.Search == "" {
		return true
	}
	needle := text.Fold(q.Search)
	return strings.Contains(text.Fold(t.Name), needle) ||
		strings.Contains(text.Fold(t.Assignee.Name), needle)
}

// comparator returns a three-way compare for the sort key, or nil when no
// sorting is requested.
func comparator(key SortKey) func(a, b *models.Task) int {
	switch key {
	case SortByName:
		return func(a, b *models.Task) int {
			return strings.Compare(text.Fold(a.Name), text.Fold(b.Name))
		}
	case SortByDueDate:
		return func(a, b *models.Task) int {
			switch {
			case a.DueDate.Before(b.DueDate):
				return -1
			case a.DueDate.After(b.DueDate):
				return 1
			default:
				return 0
			}
		}
	case SortByPriority:
		return func(a, b *models.Task) int {
			return a.Priority.Rank() - b.Priority.Rank()
		}
	case SortByStatus:
		return func(a, b *models.Task) int {
			return a.Status.Rank() - b.Status.Rank()
		}
	default:
		return nil
	}
}
