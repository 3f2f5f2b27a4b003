// internal/domain/models/status.go
package models

import "strings"

// Status is the workflow state of a task.
//
// The set is closed: values outside Statuses are a validation error at the
// store boundary, never silently coerced. Ordering for sorts follows the
// declaration order below.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusInReview   Status = "In Review"
	StatusDone       Status = "Done"
	StatusBlocked    Status = "Blocked"
)

// Statuses is the canonical ordered list of task statuses. The task board
// renders one column per status, in this order.
var Statuses = []Status{
	StatusNotStarted,
	StatusInProgress,
	StatusInReview,
	StatusDone,
	StatusBlocked,
}

// statusRank maps each status to its declaration index for sorting.
var statusRank = func() map[Status]int {
	m := make(map[Status]int, len(Statuses))
	for i, s := range Statuses {
		m[s] = i
	}
	return m
}()

// ParseStatus returns the Status matching s, accepting either the display
// form ("In Progress") or the column-key form ("in-progress").
// The second return value is false for values outside the enumeration.
func ParseStatus(s string) (Status, bool) {
	trimmed := strings.TrimSpace(s)
	for _, st := range Statuses {
		if trimmed == string(st) || trimmed == st.ColumnKey() {
			return st, true
		}
	}
	return "", false
}

// Valid reports whether s is a member of the status enumeration.
func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Rank returns the sort rank of s (declaration order). Unknown statuses
// rank last so malformed data never leads a sorted list.
func (s Status) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return len(Statuses)
}

// ColumnKey returns the board column key for s: the status lowercased with
// spaces replaced by hyphens (e.g. "Not Started" -> "not-started").
func (s Status) ColumnKey() string {
	return strings.ReplaceAll(strings.ToLower(string(s)), " ", "-")
}

// StatusDescriptor describes how a status is presented. Keeping display
// attributes in a closed lookup table avoids building CSS class names by
// string concatenation in templates.
type StatusDescriptor struct {
	Label string // human-readable label
	Badge string // badge style token for templates
}

// statusDescriptors is the display table for the closed status set.
var statusDescriptors = map[Status]StatusDescriptor{
	StatusNotStarted: {Label: "Not Started", Badge: "secondary"},
	StatusInProgress: {Label: "In Progress", Badge: "info"},
	StatusInReview:   {Label: "In Review", Badge: "warning"},
	StatusDone:       {Label: "Done", Badge: "success"},
	StatusBlocked:    {Label: "Blocked", Badge: "danger"},
}

// Descriptor returns the display descriptor for s. Unknown statuses get a
// neutral descriptor so a template never renders an empty badge.
func (s Status) Descriptor() StatusDescriptor {
	if d, ok := statusDescriptors[s]; ok {
		return d
	}
	return StatusDescriptor{Label: string(s), Badge: "secondary"}
}
