// internal/domain/models/board.go
package models

import "time"

// DefaultBoardID is the well-known ID of the school operations board.
// CampusHub currently runs a single shared board; the snapshot document
// is keyed so more boards can exist later without a migration.
const DefaultBoardID = "school-operations"

// Board is the persisted snapshot of a task board: its groups and every
// task inside them, stored as one document and swapped wholesale on save.
type Board struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Groups    []*Group  `bson:"groups" json:"groups"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	out := *b
	out.Groups = make([]*Group, len(b.Groups))
	for i, g := range b.Groups {
		out.Groups[i] = g.Clone()
	}
	return &out
}
