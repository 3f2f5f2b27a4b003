// internal/domain/models/task.go
package models

import (
	"fmt"
	"time"
)

// MaxSubtaskDepth caps the subtask hierarchy. Subtasks are ordinary tasks
// one level down; deeper nesting is rejected by validation rather than
// rendered inconsistently.
const MaxSubtaskDepth = 1

// Assignee identifies who a task is assigned to.
type Assignee struct {
	Name   string `bson:"name" json:"name"`
	Avatar string `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

// TaskTimeline is the optional date range used by the timeline view.
// StartDate must not be after EndDate.
type TaskTimeline struct {
	StartDate time.Time `bson:"start_date" json:"startDate"`
	EndDate   time.Time `bson:"end_date" json:"endDate"`
}

// Days returns the length of the range in whole days.
func (tl TaskTimeline) Days() int {
	return int(tl.EndDate.Sub(tl.StartDate).Hours() / 24)
}

// Comment is a discussion entry on a task. Comments are append-only:
// they are never mutated or reordered after creation.
type Comment struct {
	ID        string    `bson:"_id" json:"id"`
	Author    string    `bson:"author" json:"author"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// ActivityEntry records something that happened to a task ("created",
// "status changed", ...). Entries are append-only, like comments.
type ActivityEntry struct {
	ID        string    `bson:"_id" json:"id"`
	Author    string    `bson:"author" json:"author"`
	Action    string    `bson:"action" json:"action"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Task is a unit of work on the task board.
//
// Invariants (enforced by Validate and the taskboard store):
//   - Status and Priority are members of their enumerations.
//   - Progress stays within [0,100].
//   - GroupID references the owning group; a subtask's GroupID equals its
//     parent's (subtasks never change group membership on their own).
//   - Subtask nesting is at most MaxSubtaskDepth deep.
type Task struct {
	ID          string        `bson:"_id" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Status      Status        `bson:"status" json:"status"`
	Priority    Priority      `bson:"priority" json:"priority"`
	DueDate     time.Time     `bson:"due_date" json:"dueDate"`
	Progress    int           `bson:"progress" json:"progress"`
	Assignee    Assignee      `bson:"assignee" json:"assignee"`
	Department  string        `bson:"department,omitempty" json:"department,omitempty"`
	Tags        []string      `bson:"tags,omitempty" json:"tags,omitempty"`
	GroupID     string        `bson:"group_id" json:"groupId"`
	Timeline    *TaskTimeline `bson:"timeline,omitempty" json:"timeline,omitempty"`
	Subtasks    []*Task       `bson:"subtasks,omitempty" json:"subtasks,omitempty"`
	Comments    []Comment     `bson:"comments,omitempty" json:"comments,omitempty"`
	Activities  []ActivityEntry `bson:"activities,omitempty" json:"activities,omitempty"`

	// ShowSubtasks is view-local expansion state, not domain data. It is
	// kept on the task so all four views agree on what is expanded.
	ShowSubtasks bool `bson:"show_subtasks,omitempty" json:"showSubtasks,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Validate checks the task's field invariants at the given nesting depth
// (0 for top-level tasks). It returns a descriptive error for the first
// violation found, or nil. Group membership invariants are checked by the
// taskboard store, which owns the group sequences.
func (t *Task) Validate(depth int) error {
	if t.Name == "" {
		return fmt.Errorf("task name is required")
	}
	if !t.Status.Valid() {
		return fmt.Errorf("unknown status %q", string(t.Status))
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("unknown priority %q", string(t.Priority))
	}
	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("progress %d out of range [0,100]", t.Progress)
	}
	if t.Timeline != nil && t.Timeline.EndDate.Before(t.Timeline.StartDate) {
		return fmt.Errorf("timeline start %s after end %s",
			t.Timeline.StartDate.Format("2006-01-02"), t.Timeline.EndDate.Format("2006-01-02"))
	}
	if len(t.Subtasks) > 0 && depth >= MaxSubtaskDepth {
		return fmt.Errorf("subtask nesting exceeds depth %d", MaxSubtaskDepth)
	}
	for _, sub := range t.Subtasks {
		if sub.GroupID != t.GroupID {
			return fmt.Errorf("subtask %s group %q differs from parent group %q", sub.ID, sub.GroupID, t.GroupID)
		}
		if err := sub.Validate(depth + 1); err != nil {
			return err
		}
	}
	return nil
}

// HasTimeline reports whether the task participates in the timeline view.
func (t *Task) HasTimeline() bool {
	return t.Timeline != nil
}

// HasTag reports whether the task carries the given tag.
func (t *Task) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the task, including subtasks, comments,
// activities, tags and timeline.
func (t *Task) Clone() *Task {
	cp := *t
	if t.Timeline != nil {
		tl := *t.Timeline
		cp.Timeline = &tl
	}
	if len(t.Tags) > 0 {
		cp.Tags = append([]string(nil), t.Tags...)
	}
	if len(t.Comments) > 0 {
		cp.Comments = append([]Comment(nil), t.Comments...)
	}
	if len(t.Activities) > 0 {
		cp.Activities = append([]ActivityEntry(nil), t.Activities...)
	}
	if len(t.Subtasks) > 0 {
		cp.Subtasks = make([]*Task, len(t.Subtasks))
		for i, sub := range t.Subtasks {
			cp.Subtasks[i] = sub.Clone()
		}
	}
	return &cp
}
