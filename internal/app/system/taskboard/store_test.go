package taskboard_test

import (
	"errors"
	"testing"
	"time"

	"github.com/campushub/campushub/internal/app/system/taskboard"
	"github.com/campushub/campushub/internal/domain/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedGroups builds the board used across the core tests:
//
//	g1: t1 (In Progress, English, A. Smith), t2 (Not Started, Math)
//	g2: t3 (Done), t4 (Done), t5 (Done)
func seedGroups() []*models.Group {
	return []*models.Group{
		{
			ID: "g1", Name: "Term 1", Color: models.ColorSky,
			Tasks: []*models.Task{
				{
					ID: "t1", Name: "Grade essays", Status: models.StatusInProgress,
					Priority: models.PriorityMedium, DueDate: date(2024, 6, 1),
					Assignee: models.Assignee{Name: "A. Smith"}, Department: "English", GroupID: "g1",
				},
				{
					ID: "t2", Name: "Plan math quiz", Status: models.StatusNotStarted,
					Priority: models.PriorityHigh, DueDate: date(2024, 6, 3),
					Assignee: models.Assignee{Name: "B. Jones"}, Department: "Math", GroupID: "g1",
				},
			},
		},
		{
			ID: "g2", Name: "Term 2", Color: models.ColorAmber,
			Tasks: []*models.Task{
				{ID: "t3", Name: "Order supplies", Status: models.StatusDone, Priority: models.PriorityLow, GroupID: "g2"},
				{ID: "t4", Name: "Book gym", Status: models.StatusDone, Priority: models.PriorityLow, GroupID: "g2"},
				{ID: "t5", Name: "Print schedules", Status: models.StatusDone, Priority: models.PriorityLow, GroupID: "g2"},
			},
		},
	}
}

func taskIDs(tasks []*models.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func groupByID(t *testing.T, groups []*models.Group, id string) *models.Group {
	t.Helper()
	for _, g := range groups {
		if g.ID == id {
			return g
		}
	}
	t.Fatalf("group %s not in snapshot", id)
	return nil
}

func TestStore_CreateTask_AppendsAtTail(t *testing.T) {
	store := taskboard.NewStore(seedGroups())

	created, err := store.CreateTask("g1", taskboard.TaskFields{
		Name:     "Grade essays",
		Status:   models.StatusNotStarted,
		Priority: models.PriorityMedium,
		DueDate:  date(2024, 6, 1),
		Assignee: models.Assignee{Name: "A. Smith"},
		Department: "English",
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated task id")
	}
	if created.ID == "t1" || created.ID == "t2" {
		t.Errorf("expected a new unique id, got %q", created.ID)
	}

	g1 := groupByID(t, store.Snapshot(), "g1")
	if len(g1.Tasks) != 3 {
		t.Fatalf("g1 task count: got %d, want 3", len(g1.Tasks))
	}
	if g1.Tasks[2].ID != created.ID {
		t.Errorf("expected new task at tail, got %q", g1.Tasks[2].ID)
	}
}

func TestStore_CreateTask_Defaults(t *testing.T) {
	store := taskboard.NewStore(seedGroups())

	created, err := store.CreateTask("g1", taskboard.TaskFields{Name: "Quick add"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if created.Status != models.StatusNotStarted {
		t.Errorf("default status: got %q, want %q", created.Status, models.StatusNotStarted)
	}
	if created.Priority != models.PriorityMedium {
		t.Errorf("default priority: got %q, want %q", created.Priority, models.PriorityMedium)
	}
	if created.Progress != 0 {
		t.Errorf("default progress: got %d, want 0", created.Progress)
	}
}

func TestStore_CreateTask_InvalidStatus(t *testing.T) {
	store := taskboard.NewStore(seedGroups())

	_, err := store.CreateTask("g1", taskboard.TaskFields{
		Name:   "Bad status",
		Status: models.Status("Finished"),
	})
	var verr *taskboard.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := len(groupByID(t, store.Snapshot(), "g1").Tasks); got != 2 {
		t.Errorf("store changed on failed create: g1 has %d tasks, want 2", got)
	}
}

func TestStore_CreateTask_UnknownGroup(t *testing.T) {
	store := taskboard.NewStore(seedGroups())

	_, err := store.CreateTask("nope", taskboard.TaskFields{Name: "Orphan"})
	var nferr *taskboard.NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestStore_CreateTask_ProgressOutOfRange(t *testing.T) {
	store := taskboard.NewStore(seedGroups())

	for _, progress := range []int{-1, 101} {
		_, err := store.CreateTask("g1", taskboard.TaskFields{Name: "Over", Progress: progress})
		var verr *taskboard.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("progress %d: expected ValidationError, got %v", progress, err)
		}
	}
}

func TestStore_UpdateTask_MergesPatch(t *testing.T) {
	store := taskboard.NewStore(seedGroups())

	newName := "Grade final essays"
	progress := 40
	status := models.StatusInReview
	updated, err := store.UpdateTask("t1", taskboard.TaskPatch{
		Name:     &newName,
		Progress: &progress,
		Status:   &status,
	})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if updated.Name != newName || updated.Progress != 40 || updated.Status != models.StatusInReview {
		t.Errorf("patch not applied: got %+v", updated)
	}
	// Untouched fields survive the merge.
	if updated.Department != "English" || updated.Assignee.Name != "A. Smith" {
		t.Errorf("unpatched fields changed: got %+v", updated)
	}
}

func TestStore_UpdateTask_FailedValidationLeavesTaskUntouched(t *testing.T) {
	store := taskboard.NewStore(seedGroups())

	bad := 250
	_, err := store.UpdateTask("t1", taskboard.TaskPatch{Progress: &bad})
	var verr *taskboard.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	got, err := store.TaskByID("t1")
	if err != nil {
		t.Fatalf("TaskByID failed: %v", err)
	}
	if got.Progress != 0 {
		t.Errorf("progress mutated by failed update: got %d, want 0", got.Progress)
	}
}

func TestStore_UpdateTask_NotFound(t *testing.T) {
	store := taskboard.NewStore(seedGroups())

	name := "x"
	_, err := store.UpdateTask("missing", taskboard.TaskPatch{Name: &name})
	var nferr *taskboard.NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestStore_DeleteTask_CascadesToSubtasks(t *testing.T) {
	store := taskboard.NewStore(seedGroups())
	sub, err := store.AddSubtask("t1", taskboard.TaskFields{Name: "Read drafts"})
	if err != nil {
		t.Fatalf("AddSubtask failed: %v", err)
	}

	if err := store.DeleteTask("t1"); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if _, err := store.TaskByID("t1"); err == nil {
		t.Error("deleted task still present")
	}
	if _, err := store.TaskByID(sub.ID); err == nil {
		t.Error("subtask survived parent deletion")
	}
	if got := len(groupByID(t, store.Snapshot(), "g1").Tasks); got != 1 {
		t.Errorf("g1 task count after delete: got %d, want 1", got)
	}
}

func TestStore_DeleteTask_UnknownIDIsReportedNotFatal(t *testing.T) {
	store := taskboard.NewStore(seedGroups())

	err := store.DeleteTask("missing")
	var nferr *taskboard.NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if store.TaskCount() != 5 {
		t.Errorf("task count changed: got %d, want 5", store.TaskCount())
	}
}

func TestStore_AddSubtask_InheritsAndExpands(t *testing.T) {
	store := taskboard.NewStore(seedGroups())

	sub, err := store.AddSubtask("t1", taskboard.TaskFields{Name: "Read drafts"})
	if err != nil {
		t.Fatalf("AddSubtask failed: %v", err)
	}
	if sub.Assignee.Name != "A. Smith" {
		t.Errorf("assignee not inherited: got %q", sub.Assignee.Name)
	}
	if sub.Department != "English" {
		t.Errorf("department not inherited: got %q", sub.Department)
	}
	if sub.GroupID != "g1" {
		t.Errorf("subtask group: got %q, want g1", sub.GroupID)
	}

	parent, err := store.TaskByID("t1")
	if err != nil {
		t.Fatalf("TaskByID failed: %v", err)
	}
	if !parent.ShowSubtasks {
		t.Error("parent not expanded after AddSubtask")
	}
	// Adding a subtask never rolls up into the parent's own fields.
	if parent.Status != models.StatusInProgress || parent.Progress != 0 {
		t.Errorf("parent status/progress changed: %q/%d", parent.Status, parent.Progress)
	}
}

func TestStore_AddSubtask_OverridesStick(t *testing.T) {
	store := taskboard.NewStore(seedGroups())

	sub, err := store.AddSubtask("t1", taskboard.TaskFields{
		Name:       "Grade rubric",
		Assignee:   models.Assignee{Name: "C. Park"},
		Department: "Admin",
	})
	if err != nil {
		t.Fatalf("AddSubtask failed: %v", err)
	}
	if sub.Assignee.Name != "C. Park" || sub.Department != "Admin" {
		t.Errorf("overrides ignored: got %q/%q", sub.Assignee.Name, sub.Department)
	}
}

func TestStore_AddSubtask_DepthCapped(t *testing.T) {
	store := taskboard.NewStore(seedGroups())

	sub, err := store.AddSubtask("t1", taskboard.TaskFields{Name: "Level one"})
	if err != nil {
		t.Fatalf("AddSubtask failed: %v", err)
	}
	_, err = store.AddSubtask(sub.ID, taskboard.TaskFields{Name: "Level two"})
	var verr *taskboard.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for nested subtask, got %v", err)
	}
}

func TestStore_ToggleExpansion_PureUIState(t *testing.T) {
	store := taskboard.NewStore(seedGroups())
	if _, err := store.AddComment("t1", "A. Smith", "First pass done"); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	before, _ := store.TaskByID("t1")

	if err := store.ToggleExpansion("t1"); err != nil {
		t.Fatalf("ToggleExpansion failed: %v", err)
	}
	after, _ := store.TaskByID("t1")
	if after.ShowSubtasks == before.ShowSubtasks {
		t.Error("ShowSubtasks did not flip")
	}
	if len(after.Comments) != len(before.Comments) || len(after.Activities) != len(before.Activities) {
		t.Error("toggle touched comments or activities")
	}
}

func TestStore_Move_CrossGroupBoardDrag(t *testing.T) {
	store := taskboard.NewStore(seedGroups())

	// t1 from g1 into g2 at index 2 with status Done.
	if err := store.Move("t1", "g2", models.StatusDone, 2); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	snap := store.Snapshot()
	g1, g2 := groupByID(t, snap, "g1"), groupByID(t, snap, "g2")

	if got := taskIDs(g1.Tasks); len(got) != 1 || got[0] != "t2" {
		t.Errorf("g1 after move: got %v, want [t2]", got)
	}
	want := []string{"t3", "t4", "t1", "t5"}
	if got := taskIDs(g2.Tasks); len(got) != 4 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] || got[3] != want[3] {
		t.Errorf("g2 after move: got %v, want %v", got, want)
	}

	moved := g2.Tasks[2]
	if moved.GroupID != "g2" {
		t.Errorf("groupId: got %q, want g2", moved.GroupID)
	}
	if moved.Status != models.StatusDone {
		t.Errorf("status: got %q, want Done", moved.Status)
	}
}

func TestStore_Move_SubtaskGroupFollowsParent(t *testing.T) {
	store := taskboard.NewStore(seedGroups())
	sub, err := store.AddSubtask("t1", taskboard.TaskFields{Name: "Read drafts"})
	if err != nil {
		t.Fatalf("AddSubtask failed: %v", err)
	}

	if err := store.Move("t1", "g2", models.StatusInProgress, 0); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	got, err := store.TaskByID(sub.ID)
	if err != nil {
		t.Fatalf("TaskByID failed: %v", err)
	}
	if got.GroupID != "g2" {
		t.Errorf("subtask groupId after parent move: got %q, want g2", got.GroupID)
	}
}

func TestStore_Move_Conservation(t *testing.T) {
	store := taskboard.NewStore(seedGroups())
	total := store.TaskCount()

	moves := []struct {
		id    string
		group string
		st    models.Status
		idx   int
	}{
		{"t1", "g2", models.StatusDone, 0},
		{"t4", "g1", models.StatusInProgress, 1},
		{"t1", "g1", models.StatusBlocked, 0},
		{"t2", "g2", models.StatusNotStarted, 2},
	}
	for _, m := range moves {
		if err := store.Move(m.id, m.group, m.st, m.idx); err != nil {
			t.Fatalf("Move(%s -> %s@%d) failed: %v", m.id, m.group, m.idx, err)
		}

		if got := store.TaskCount(); got != total {
			t.Fatalf("task count after moving %s: got %d, want %d", m.id, got, total)
		}
		seen := map[string]string{}
		for _, g := range store.Snapshot() {
			for _, task := range g.Tasks {
				if other, dup := seen[task.ID]; dup {
					t.Fatalf("task %s present in both %s and %s", task.ID, other, g.ID)
				}
				seen[task.ID] = g.ID
			}
		}
	}
}

func TestStore_Move_RoundTripRestoresOrder(t *testing.T) {
	store := taskboard.NewStore(seedGroups())
	before := map[string][]string{}
	for _, g := range store.Snapshot() {
		before[g.ID] = taskIDs(g.Tasks)
	}

	if err := store.Move("t1", "g2", models.StatusDone, 1); err != nil {
		t.Fatalf("Move out failed: %v", err)
	}
	if err := store.Move("t1", "g1", models.StatusInProgress, 0); err != nil {
		t.Fatalf("Move back failed: %v", err)
	}

	for _, g := range store.Snapshot() {
		got := taskIDs(g.Tasks)
		want := before[g.ID]
		if len(got) != len(want) {
			t.Fatalf("group %s: got %v, want %v", g.ID, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("group %s order: got %v, want %v", g.ID, got, want)
				break
			}
		}
	}
}

func TestStore_Move_InvalidDestinations(t *testing.T) {
	tests := []struct {
		name  string
		group string
		st    models.Status
		idx   int
	}{
		{"unknown group", "nope", models.StatusDone, 0},
		{"index past end", "g2", models.StatusDone, 4},
		{"negative index", "g2", models.StatusDone, -1},
		{"unknown status", "g2", models.Status("Finished"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := taskboard.NewStore(seedGroups())
			err := store.Move("t1", tt.group, tt.st, tt.idx)
			var merr *taskboard.InvalidMoveError
			if !errors.As(err, &merr) {
				t.Fatalf("expected InvalidMoveError, got %v", err)
			}
			// Rollback: nothing removed, nothing reinserted.
			if got := len(groupByID(t, store.Snapshot(), "g1").Tasks); got != 2 {
				t.Errorf("g1 task count after failed move: got %d, want 2", got)
			}
			if got := len(groupByID(t, store.Snapshot(), "g2").Tasks); got != 3 {
				t.Errorf("g2 task count after failed move: got %d, want 3", got)
			}
		})
	}
}

func TestStore_AddComment_AppendOnly(t *testing.T) {
	store := taskboard.NewStore(seedGroups())

	first, err := store.AddComment("t1", "A. Smith", "Halfway through")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if _, err := store.AddComment("t1", "B. Jones", "Ping me when done"); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	got, _ := store.TaskByID("t1")
	if len(got.Comments) != 2 {
		t.Fatalf("comment count: got %d, want 2", len(got.Comments))
	}
	if got.Comments[0].ID != first.ID {
		t.Error("comment order changed after append")
	}
	if _, err := store.AddComment("t1", "A. Smith", ""); err == nil {
		t.Error("expected error for empty comment content")
	}
}

func TestStore_Subscribe_EmitsChangeSignals(t *testing.T) {
	store := taskboard.NewStore(seedGroups())

	var got []taskboard.Change
	store.Subscribe(func(ch taskboard.Change) { got = append(got, ch) })

	created, err := store.CreateTask("g1", taskboard.TaskFields{Name: "Signalled"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if err := store.Move(created.ID, "g2", models.StatusDone, 0); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if err := store.DeleteTask(created.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	want := []taskboard.ChangeKind{taskboard.ChangeCreated, taskboard.ChangeMoved, taskboard.ChangeDeleted}
	if len(got) != len(want) {
		t.Fatalf("change count: got %d, want %d", len(got), len(want))
	}
	for i, kind := range want {
		if got[i].Kind != kind {
			t.Errorf("change %d: got %q, want %q", i, got[i].Kind, kind)
		}
		if got[i].TaskID != created.ID {
			t.Errorf("change %d task id: got %q, want %q", i, got[i].TaskID, created.ID)
		}
	}
}

func TestStore_Subscribe_NoSignalOnFailedMutation(t *testing.T) {
	store := taskboard.NewStore(seedGroups())

	calls := 0
	store.Subscribe(func(taskboard.Change) { calls++ })

	_, _ = store.CreateTask("g1", taskboard.TaskFields{Name: "Bad", Status: models.Status("Finished")})
	_ = store.Move("t1", "nope", models.StatusDone, 0)
	_ = store.DeleteTask("missing")

	if calls != 0 {
		t.Errorf("observer called %d times for failed mutations, want 0", calls)
	}
}

func TestStore_SnapshotIsolation(t *testing.T) {
	store := taskboard.NewStore(seedGroups())

	snap := store.Snapshot()
	snap[0].Tasks[0].Name = "tampered"
	snap[0].Tasks = nil

	got, err := store.TaskByID("t1")
	if err != nil {
		t.Fatalf("TaskByID failed: %v", err)
	}
	if got.Name != "Grade essays" {
		t.Errorf("store mutated through snapshot: got %q", got.Name)
	}
}
