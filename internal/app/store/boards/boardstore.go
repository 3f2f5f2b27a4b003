// internal/app/store/boards/boardstore.go
package boardstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campushub/campushub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists task boards as whole-document snapshots: one document per
// board holding every group and task. Saves replace the snapshot wholesale,
// which keeps the in-memory taskboard store the single source of ordering
// truth between saves.
type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound = errors.New("board not found")
	ErrCorrupt  = errors.New("board document failed validation")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("boards")}
}

// GetByID retrieves a board snapshot and validates it before handing it to
// callers. A document that fails validation is reported as ErrCorrupt rather
// than passed through; the in-memory store must never see a broken seed.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Board, error) {
	var b models.Board
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := validateBoard(&b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &b, nil
}

// Save upserts the board's group snapshot. CreatedAt is set only on first
// insert; UpdatedAt advances on every save.
func (s *Store) Save(ctx context.Context, id, name string, groups []*models.Group) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"name":       name,
			"groups":     groups,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}, options.Update().SetUpsert(true))
	return err
}

// Count returns the number of stored boards.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates indexes for the boards collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("idx_board_updated_at"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// EnsureDefault seeds the school operations board if it does not exist yet
// and returns it. An existing board is returned untouched, so local edits
// survive restarts.
func (s *Store) EnsureDefault(ctx context.Context) (*models.Board, error) {
	b, err := s.GetByID(ctx, models.DefaultBoardID)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	groups := seedGroups()
	if err := s.Save(ctx, models.DefaultBoardID, defaultBoardName, groups); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, models.DefaultBoardID)
}

// validateBoard rejects snapshots that would violate the taskboard store's
// invariants: unknown colors, duplicate task ids, tasks filed under the
// wrong group, or field values outside their enumerations.
func validateBoard(b *models.Board) error {
	if b.ID == "" {
		return fmt.Errorf("board id is empty")
	}
	seenGroups := make(map[string]bool, len(b.Groups))
	seenTasks := make(map[string]bool)
	for _, g := range b.Groups {
		if g == nil || g.ID == "" {
			return fmt.Errorf("group with empty id")
		}
		if seenGroups[g.ID] {
			return fmt.Errorf("duplicate group id %s", g.ID)
		}
		seenGroups[g.ID] = true
		if g.Name == "" {
			return fmt.Errorf("group %s has no name", g.ID)
		}
		if !g.Color.Valid() {
			return fmt.Errorf("group %s has unknown color %q", g.ID, string(g.Color))
		}
		for _, t := range g.Tasks {
			if t == nil || t.ID == "" {
				return fmt.Errorf("group %s contains a task with empty id", g.ID)
			}
			if t.GroupID != g.ID {
				return fmt.Errorf("task %s filed under group %s but claims group %s", t.ID, g.ID, t.GroupID)
			}
			if err := t.Validate(0); err != nil {
				return fmt.Errorf("task %s: %v", t.ID, err)
			}
			if err := collectTaskIDs(t, seenTasks); err != nil {
				return err
			}
		}
	}
	return nil
}

func collectTaskIDs(t *models.Task, seen map[string]bool) error {
	if seen[t.ID] {
		return fmt.Errorf("duplicate task id %s", t.ID)
	}
	seen[t.ID] = true
	for _, sub := range t.Subtasks {
		if err := collectTaskIDs(sub, seen); err != nil {
			return err
		}
	}
	return nil
}
