package boardstore_test

import (
	"errors"
	"testing"
	"time"

	boardstore "github.com/campushub/campushub/internal/app/store/boards"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/campushub/campushub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStore_EnsureDefault_SeedsOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := boardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.EnsureDefault(ctx)
	if err != nil {
		t.Fatalf("EnsureDefault failed: %v", err)
	}
	if first.ID != models.DefaultBoardID {
		t.Errorf("board ID: got %q, want %q", first.ID, models.DefaultBoardID)
	}
	if len(first.Groups) == 0 {
		t.Fatal("expected seeded groups")
	}
	for _, g := range first.Groups {
		if len(g.Tasks) == 0 {
			t.Errorf("group %q seeded with no tasks", g.Name)
		}
	}

	second, err := store.EnsureDefault(ctx)
	if err != nil {
		t.Fatalf("second EnsureDefault failed: %v", err)
	}
	if second.Groups[0].ID != first.Groups[0].ID {
		t.Error("second EnsureDefault reseeded instead of returning existing board")
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("board count: got %d, want 1", count)
	}
}

func TestStore_Save_RoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := boardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groups := []*models.Group{
		{
			ID:    "g1",
			Name:  "Admissions",
			Color: models.ColorViolet,
			Tasks: []*models.Task{
				{
					ID:       "t1",
					Name:     "Review applications",
					Status:   models.StatusInProgress,
					Priority: models.PriorityHigh,
					Progress: 30,
					GroupID:  "g1",
					DueDate:  time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC),
				},
			},
		},
	}

	if err := store.Save(ctx, "admissions", "Admissions Board", groups); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.GetByID(ctx, "admissions")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Admissions Board" {
		t.Errorf("Name: got %q, want Admissions Board", got.Name)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set on insert")
	}
	if len(got.Groups) != 1 || len(got.Groups[0].Tasks) != 1 {
		t.Fatalf("snapshot shape: got %d groups, want 1 group with 1 task", len(got.Groups))
	}
	if got.Groups[0].Tasks[0].Status != models.StatusInProgress {
		t.Errorf("task status: got %q, want %q", got.Groups[0].Tasks[0].Status, models.StatusInProgress)
	}

	// Second save replaces the snapshot but keeps the original CreatedAt.
	groups[0].Tasks[0].Status = models.StatusDone
	groups[0].Tasks[0].Progress = 100
	if err := store.Save(ctx, "admissions", "Admissions Board", groups); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	updated, err := store.GetByID(ctx, "admissions")
	if err != nil {
		t.Fatalf("GetByID after update failed: %v", err)
	}
	if updated.Groups[0].Tasks[0].Status != models.StatusDone {
		t.Errorf("task status after save: got %q, want %q", updated.Groups[0].Tasks[0].Status, models.StatusDone)
	}
	if !updated.CreatedAt.Equal(got.CreatedAt) {
		t.Errorf("CreatedAt changed on update: got %v, want %v", updated.CreatedAt, got.CreatedAt)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := boardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, "no-such-board")
	if !errors.Is(err, boardstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_GetByID_RejectsCorruptDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := boardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name string
		doc  bson.M
	}{
		{
			name: "unknown color",
			doc: bson.M{
				"_id":  "bad-color",
				"name": "Bad",
				"groups": []bson.M{
					{"_id": "g1", "name": "G", "color": "chartreuse"},
				},
			},
		},
		{
			name: "task under wrong group",
			doc: bson.M{
				"_id":  "bad-group-ref",
				"name": "Bad",
				"groups": []bson.M{
					{"_id": "g1", "name": "G", "color": "sky", "tasks": []bson.M{
						{"_id": "t1", "name": "T", "status": "Done", "priority": "Low", "group_id": "other"},
					}},
				},
			},
		},
		{
			name: "duplicate task id",
			doc: bson.M{
				"_id":  "dup-task",
				"name": "Bad",
				"groups": []bson.M{
					{"_id": "g1", "name": "G", "color": "sky", "tasks": []bson.M{
						{"_id": "t1", "name": "A", "status": "Done", "priority": "Low", "group_id": "g1"},
						{"_id": "t1", "name": "B", "status": "Done", "priority": "Low", "group_id": "g1"},
					}},
				},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := db.Collection("boards").InsertOne(ctx, tc.doc); err != nil {
				t.Fatalf("insert fixture: %v", err)
			}
			_, err := store.GetByID(ctx, tc.doc["_id"].(string))
			if !errors.Is(err, boardstore.ErrCorrupt) {
				t.Errorf("expected ErrCorrupt, got %v", err)
			}
		})
	}
}
