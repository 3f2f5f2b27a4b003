// internal/app/system/taskboard/store.go
//
// Package taskboard implements the task/assignment board core: a single
// in-memory source of truth (Store) plus pure projections over it
// (filtersort.go, projection.go) and the drag-and-drop interpreter
// (drag.go).
//
// The store is the sole mutable resource. Every mutation is a discrete,
// atomic entry point; a failed validation leaves the store unchanged.
// All reads hand out deep copies, so no collaborator can observe or
// produce inconsistent intermediate state. The mutex exists only because
// HTTP handlers call in concurrently; operations never suspend
// mid-mutation.
package taskboard

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/campushub/internal/domain/models"
)

// ChangeKind classifies a successful store mutation for observers.
type ChangeKind string

const (
	ChangeCreated   ChangeKind = "created"
	ChangeUpdated   ChangeKind = "updated"
	ChangeMoved     ChangeKind = "moved"
	ChangeDeleted   ChangeKind = "deleted"
	ChangeCommented ChangeKind = "commented"
	ChangeExpanded  ChangeKind = "expanded"
)

// Change is the signal emitted to subscribers after every successful
// mutation. The store does not format or display messages; notification
// and persistence collaborators decide what to do with the signal.
type Change struct {
	TaskID string
	Kind   ChangeKind
}

// TaskFields carries the caller-supplied fields for task creation.
// Zero values fall back to the documented defaults; non-zero values must
// be members of their enumerations or creation fails with ValidationError.
type TaskFields struct {
	Name        string
	Description string
	Status      models.Status   // default StatusNotStarted
	Priority    models.Priority // default PriorityMedium
	DueDate     time.Time
	Progress    int
	Assignee    models.Assignee
	Department  string
	Tags        []string
	Timeline    *models.TaskTimeline

	// Actor is recorded as the author of the activity entry.
	Actor string
}

// TaskPatch is a partial update; nil fields are left untouched.
// ClearTimeline removes the timeline regardless of the Timeline field.
type TaskPatch struct {
	Name          *string
	Description   *string
	Status        *models.Status
	Priority      *models.Priority
	DueDate       *time.Time
	Progress      *int
	Assignee      *models.Assignee
	Department    *string
	Tags          *[]string
	Timeline      *models.TaskTimeline
	ClearTimeline bool

	Actor string
}

// Store is the single source of truth for the task board: a mutable
// collection of groups, each owning an ordered sequence of tasks.
type Store struct {
	mu        sync.Mutex
	groups    []*models.Group
	observers []func(Change)
	now       func() time.Time
}

// NewStore builds a store from a seed snapshot. The seed is deep-copied;
// the caller's slice stays untouched. Corrupt seeds are the loader's
// responsibility to reject before handing data in.
func NewStore(seed []*models.Group) *Store {
	groups := make([]*models.Group, len(seed))
	for i, g := range seed {
		groups[i] = g.Clone()
	}
	return &Store{groups: groups, now: time.Now}
}

// Subscribe registers an observer invoked synchronously after every
// successful mutation, in registration order.
func (s *Store) Subscribe(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// notify runs outside the store lock so observers may read a snapshot.
func (s *Store) notify(ch Change) {
	s.mu.Lock()
	obs := append(([]func(Change))(nil), s.observers...)
	s.mu.Unlock()
	for _, fn := range obs {
		fn(ch)
	}
}

// Snapshot returns a deep copy of all groups in board order.
func (s *Store) Snapshot() []*models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Group, len(s.groups))
	for i, g := range s.groups {
		out[i] = g.Clone()
	}
	return out
}

// Groups returns the id/name/color of each group without task payloads,
// for building editor dropdowns.
func (s *Store) Groups() []*models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Group, len(s.groups))
	for i, g := range s.groups {
		out[i] = &models.Group{ID: g.ID, Name: g.Name, Color: g.Color}
	}
	return out
}

// TaskByID returns a deep copy of the task (top-level or subtask) with the
// given id, or a NotFoundError.
func (s *Store) TaskByID(taskID string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, _, _, _ := s.locate(taskID); t != nil {
		return t.Clone(), nil
	}
	return nil, notFoundErr("task", taskID)
}

// CreateTask validates fields and appends a new task to the named group's
// sequence. It returns a copy of the stored task.
func (s *Store) CreateTask(groupID string, fields TaskFields) (*models.Task, error) {
	s.mu.Lock()

	g := s.groupByID(groupID)
	if g == nil {
		s.mu.Unlock()
		return nil, notFoundErr("group", groupID)
	}

	t, err := s.buildTask(groupID, fields)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	t.Activities = append(t.Activities, s.activity(fields.Actor, "created"))

	g.Tasks = append(g.Tasks, t)
	out := t.Clone()
	s.mu.Unlock()

	s.notify(Change{TaskID: t.ID, Kind: ChangeCreated})
	return out, nil
}

// AddSubtask creates a child task under parentID. Assignee and department
// are inherited from the parent unless the fields override them, and the
// parent is expanded so the new subtask is visible. Subtasks always share
// the parent's group.
func (s *Store) AddSubtask(parentID string, fields TaskFields) (*models.Task, error) {
	s.mu.Lock()

	parent, _, _, depth := s.locate(parentID)
	if parent == nil {
		s.mu.Unlock()
		return nil, notFoundErr("task", parentID)
	}
	if depth >= models.MaxSubtaskDepth {
		s.mu.Unlock()
		return nil, validationErr("subtasks", "subtask nesting exceeds depth %d", models.MaxSubtaskDepth)
	}

	if fields.Assignee.Name == "" {
		fields.Assignee = parent.Assignee
	}
	if fields.Department == "" {
		fields.Department = parent.Department
	}

	sub, err := s.buildTask(parent.GroupID, fields)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	sub.Activities = append(sub.Activities, s.activity(fields.Actor, "created"))

	parent.Subtasks = append(parent.Subtasks, sub)
	parent.ShowSubtasks = true
	parent.UpdatedAt = s.now().UTC()
	out := sub.Clone()
	s.mu.Unlock()

	s.notify(Change{TaskID: sub.ID, Kind: ChangeCreated})
	return out, nil
}

// UpdateTask merges the patch into the task in place, re-validating the
// result. The merge happens on a clone first, so a failed validation
// leaves the stored task untouched.
func (s *Store) UpdateTask(taskID string, patch TaskPatch) (*models.Task, error) {
	s.mu.Lock()

	t, parent, g, depth := s.locate(taskID)
	if t == nil {
		s.mu.Unlock()
		return nil, notFoundErr("task", taskID)
	}

	merged := t.Clone()
	applyPatch(merged, patch)
	merged.UpdatedAt = s.now().UTC()
	if err := merged.Validate(depth); err != nil {
		s.mu.Unlock()
		return nil, &ValidationError{Reason: err.Error()}
	}
	merged.Activities = append(merged.Activities, s.activity(patch.Actor, "updated"))

	// Swap the validated clone into the owning sequence.
	if parent != nil {
		replaceTask(parent.Subtasks, taskID, merged)
	} else {
		replaceTask(g.Tasks, taskID, merged)
	}
	out := merged.Clone()
	s.mu.Unlock()

	s.notify(Change{TaskID: taskID, Kind: ChangeUpdated})
	return out, nil
}

// DeleteTask removes the task from its owning sequence, cascading to its
// subtasks (they live inside the task and go with it). Deleting an unknown
// id is a no-op reported as NotFoundError.
func (s *Store) DeleteTask(taskID string) error {
	s.mu.Lock()

	t, parent, g, _ := s.locate(taskID)
	if t == nil {
		s.mu.Unlock()
		return notFoundErr("task", taskID)
	}
	if parent != nil {
		parent.Subtasks = removeTask(parent.Subtasks, taskID)
	} else {
		g.Tasks = removeTask(g.Tasks, taskID)
	}
	s.mu.Unlock()

	s.notify(Change{TaskID: taskID, Kind: ChangeDeleted})
	return nil
}

// Move removes the task from its current position and reinserts it at
// destIndex in the destination group's sequence (the same sequence when the
// group is unchanged), setting its status to destStatus. destIndex is an
// index into the destination sequence after the task's removal. The
// operation is atomic: every failure path leaves the store exactly as it
// was, with no partial removal.
func (s *Store) Move(taskID, destGroupID string, destStatus models.Status, destIndex int) error {
	s.mu.Lock()

	t, parent, src, _ := s.locate(taskID)
	if t == nil {
		s.mu.Unlock()
		return notFoundErr("task", taskID)
	}
	if parent != nil {
		s.mu.Unlock()
		return invalidMoveErr("task %s is a subtask and cannot move between groups", taskID)
	}
	dst := s.groupByID(destGroupID)
	if dst == nil {
		s.mu.Unlock()
		return invalidMoveErr("destination group %s does not exist", destGroupID)
	}
	if !destStatus.Valid() {
		s.mu.Unlock()
		return invalidMoveErr("unknown destination status %q", string(destStatus))
	}

	// Bound-check against the destination sequence as it will look after
	// removal, before touching anything.
	destLen := len(dst.Tasks)
	if dst.ID == src.ID {
		destLen--
	}
	if destIndex < 0 || destIndex > destLen {
		s.mu.Unlock()
		return invalidMoveErr("index %d out of bounds for group %s", destIndex, destGroupID)
	}

	src.Tasks = removeTask(src.Tasks, taskID)

	statusChanged := t.Status != destStatus
	t.Status = destStatus
	t.GroupID = dst.ID
	for _, sub := range t.Subtasks {
		sub.GroupID = dst.ID
	}
	t.UpdatedAt = s.now().UTC()
	t.Activities = append(t.Activities, s.activity("", "moved"))
	if statusChanged {
		t.Activities = append(t.Activities, s.activity("", "status changed to "+string(destStatus)))
	}

	dst.Tasks = insertTask(dst.Tasks, destIndex, t)
	s.mu.Unlock()

	s.notify(Change{TaskID: taskID, Kind: ChangeMoved})
	return nil
}

// AddComment appends a comment to the task's append-only comment log.
func (s *Store) AddComment(taskID, author, content string) (*models.Comment, error) {
	if content == "" {
		return nil, validationErr("content", "comment content is required")
	}
	s.mu.Lock()

	t, _, _, _ := s.locate(taskID)
	if t == nil {
		s.mu.Unlock()
		return nil, notFoundErr("task", taskID)
	}
	c := models.Comment{
		ID:        uuid.NewString(),
		Author:    author,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	t.Comments = append(t.Comments, c)
	t.Activities = append(t.Activities, s.activity(author, "commented"))
	s.mu.Unlock()

	s.notify(Change{TaskID: taskID, Kind: ChangeCommented})
	return &c, nil
}

// ToggleExpansion flips the task's view-local ShowSubtasks flag. It never
// touches comments, activities, or any domain field.
func (s *Store) ToggleExpansion(taskID string) error {
	s.mu.Lock()

	t, _, _, _ := s.locate(taskID)
	if t == nil {
		s.mu.Unlock()
		return notFoundErr("task", taskID)
	}
	t.ShowSubtasks = !t.ShowSubtasks
	s.mu.Unlock()

	s.notify(Change{TaskID: taskID, Kind: ChangeExpanded})
	return nil
}

// TaskCount returns the total number of top-level tasks across all groups.
func (s *Store) TaskCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, g := range s.groups {
		n += len(g.Tasks)
	}
	return n
}

// buildTask constructs and validates a task from creation fields.
// Callers hold the store lock.
func (s *Store) buildTask(groupID string, fields TaskFields) (*models.Task, error) {
	status := fields.Status
	if status == "" {
		status = models.StatusNotStarted
	}
	priority := fields.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	now := s.now().UTC()
	t := &models.Task{
		ID:          uuid.NewString(),
		Name:        fields.Name,
		Description: fields.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     fields.DueDate,
		Progress:    fields.Progress,
		Assignee:    fields.Assignee,
		Department:  fields.Department,
		Tags:        append([]string(nil), fields.Tags...),
		GroupID:     groupID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if fields.Timeline != nil {
		tl := *fields.Timeline
		t.Timeline = &tl
	}
	if err := t.Validate(0); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	return t, nil
}

func (s *Store) activity(author, action string) models.ActivityEntry {
	return models.ActivityEntry{
		ID:        uuid.NewString(),
		Author:    author,
		Action:    action,
		CreatedAt: s.now().UTC(),
	}
}

// groupByID returns the group with the given id. Callers hold the lock.
func (s *Store) groupByID(id string) *models.Group {
	for _, g := range s.groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// locate finds a task anywhere on the board. It returns the task, its
// parent (nil for top-level tasks), its owning group, and its nesting
// depth. Callers hold the lock.
func (s *Store) locate(taskID string) (task, parent *models.Task, group *models.Group, depth int) {
	for _, g := range s.groups {
		for _, t := range g.Tasks {
			if t.ID == taskID {
				return t, nil, g, 0
			}
			for _, sub := range t.Subtasks {
				if sub.ID == taskID {
					return sub, t, g, 1
				}
			}
		}
	}
	return nil, nil, nil, 0
}

func applyPatch(t *models.Task, p TaskPatch) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Progress != nil {
		t.Progress = *p.Progress
	}
	if p.Assignee != nil {
		t.Assignee = *p.Assignee
	}
	if p.Department != nil {
		t.Department = *p.Department
	}
	if p.Tags != nil {
		t.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.ClearTimeline {
		t.Timeline = nil
	} else if p.Timeline != nil {
		tl := *p.Timeline
		t.Timeline = &tl
	}
}

func removeTask(seq []*models.Task, id string) []*models.Task {
	for i, t := range seq {
		if t.ID == id {
			return append(seq[:i], seq[i+1:]...)
		}
	}
	return seq
}

func insertTask(seq []*models.Task, idx int, t *models.Task) []*models.Task {
	seq = append(seq, nil)
	copy(seq[idx+1:], seq[idx:])
	seq[idx] = t
	return seq
}

func replaceTask(seq []*models.Task, id string, with *models.Task) {
	for i, t := range seq {
		if t.ID == id {
			seq[i] = with
			return
		}
	}
}
