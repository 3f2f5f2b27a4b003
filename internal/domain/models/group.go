// internal/domain/models/group.go
package models

// ColorTag is the display color token for a task group. The set is closed:
// tags outside ColorTags are a validation error, not a fallback.
type ColorTag string

const (
	ColorSky     ColorTag = "sky"
	ColorAmber   ColorTag = "amber"
	ColorRose    ColorTag = "rose"
	ColorEmerald ColorTag = "emerald"
	ColorViolet  ColorTag = "violet"
	ColorSlate   ColorTag = "slate"
)

// ColorTags is the canonical list of group color tokens.
var ColorTags = []ColorTag{ColorSky, ColorAmber, ColorRose, ColorEmerald, ColorViolet, ColorSlate}

// Valid reports whether c is a member of the color enumeration.
func (c ColorTag) Valid() bool {
	for _, t := range ColorTags {
		if c == t {
			return true
		}
	}
	return false
}

// Group is a named bucket owning an ordered sequence of tasks
// (e.g. a project phase or a department's workstream).
//
// Invariant: a task appears in exactly one group's Tasks sequence at any
// time. The taskboard store is the only writer of that sequence.
type Group struct {
	ID    string   `bson:"_id" json:"id"`
	Name  string   `bson:"name" json:"name"`
	Color ColorTag `bson:"color" json:"color"`
	Tasks []*Task  `bson:"tasks" json:"tasks"`
}

// TaskCount returns the number of top-level tasks in the group.
// Subtasks are not counted; they live inside their parent.
func (g *Group) TaskCount() int {
	return len(g.Tasks)
}

// Clone returns a deep copy of the group, including tasks and subtasks.
// Stores hand out clones so callers can never mutate owned state directly.
func (g *Group) Clone() *Group {
	cp := *g
	cp.Tasks = make([]*Task, len(g.Tasks))
	for i, t := range g.Tasks {
		cp.Tasks[i] = t.Clone()
	}
	return &cp
}
