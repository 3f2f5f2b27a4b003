// internal/app/features/people/templates.go
package people

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "people",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
