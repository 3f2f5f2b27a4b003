// internal/domain/models/page.go
package models

import "time"

// Page slugs the portal ships with. Managers edit the content; the slugs
// themselves are fixed.
const (
	PageAbout   = "about"
	PageContact = "contact"
)

// Page is an editable site page (About, Contact) stored by slug.
type Page struct {
	Slug          string    `bson:"slug" json:"slug"`
	Title         string    `bson:"title" json:"title"`
	Content       string    `bson:"content" json:"content"` // sanitized HTML
	UpdatedByName string    `bson:"updated_by_name,omitempty" json:"updated_by_name,omitempty"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
