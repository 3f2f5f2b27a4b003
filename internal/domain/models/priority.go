// internal/domain/models/priority.go
package models

import "strings"

// Priority is the urgency level of a task. The set is closed; unknown
// values are rejected at the store boundary.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities is the canonical ordered list of priorities, lowest first.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

var priorityRank = func() map[Priority]int {
	m := make(map[Priority]int, len(Priorities))
	for i, p := range Priorities {
		m[p] = i
	}
	return m
}()

// ParsePriority returns the Priority matching s (case-insensitive).
// The second return value is false for values outside the enumeration.
func ParsePriority(s string) (Priority, bool) {
	trimmed := strings.TrimSpace(s)
	for _, p := range Priorities {
		if strings.EqualFold(trimmed, string(p)) {
			return p, true
		}
	}
	return "", false
}

// Valid reports whether p is a member of the priority enumeration.
func (p Priority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Rank returns the sort rank of p: Low < Medium < High.
// Unknown priorities rank last.
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(Priorities)
}

// PriorityDescriptor describes how a priority is presented.
type PriorityDescriptor struct {
	Label string
	Badge string
}

var priorityDescriptors = map[Priority]PriorityDescriptor{
	PriorityLow:    {Label: "Low", Badge: "secondary"},
	PriorityMedium: {Label: "Medium", Badge: "warning"},
	PriorityHigh:   {Label: "High", Badge: "danger"},
}

// Descriptor returns the display descriptor for p.
func (p Priority) Descriptor() PriorityDescriptor {
	if d, ok := priorityDescriptors[p]; ok {
		return d
	}
	return PriorityDescriptor{Label: string(p), Badge: "secondary"}
}
