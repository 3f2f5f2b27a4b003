// internal/app/store/pages/pagestore.go
package pagestore

import (
	"context"
	"errors"
	"time"

	"github.com/campushub/campushub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no page exists for a slug.
var ErrNotFound = errors.New("page not found")

// Store provides CRUD access to the pages collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("pages")}
}

// GetBySlug loads one page by its slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*models.Page, error) {
	var p models.Page
	err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert creates or replaces the page content for p.Slug.
func (s *Store) Upsert(ctx context.Context, p models.Page) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"slug": p.Slug},
		bson.M{"$set": bson.M{
			"title":           p.Title,
			"content":         p.Content,
			"updated_by_name": p.UpdatedByName,
			"updated_at":      time.Now().UTC(),
		}},
		options.Update().SetUpsert(true))
	return err
}

// EnsureDefaults seeds placeholder content for every built-in slug that
// does not exist yet. Existing pages are left alone.
func (s *Store) EnsureDefaults(ctx context.Context) error {
	defaults := []models.Page{
		{
			Slug:    models.PageAbout,
			Title:   "About",
			Content: "<p>CampusHub keeps school operations on one shared board: term planning, facilities work, and event logistics.</p>",
		},
		{
			Slug:    models.PageContact,
			Title:   "Contact",
			Content: "<p>Questions about the portal? Reach the operations office through the front desk.</p>",
		},
	}

	for _, p := range defaults {
		_, err := s.GetBySlug(ctx, p.Slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		if err := s.Upsert(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
