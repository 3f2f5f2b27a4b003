// internal/app/features/pages/view.go
package pages

import (
	"context"
	"html/template"
	"net/http"

	uierrors "github.com/campushub/campushub/internal/app/features/errors"
	pagestore "github.com/campushub/campushub/internal/app/store/pages"
	"github.com/campushub/campushub/internal/app/system/timeouts"
	"github.com/campushub/campushub/internal/app/system/viewdata"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

type pageViewVM struct {
	viewdata.BaseVM
	Slug      string
	PageTitle string
	Content   template.HTML
	CanEdit   bool
}

// ServePage returns a handler that renders one page by slug. Content is
// sanitized on write, so it renders as-is here.
func (h *Handler) ServePage(slug, pageTitle string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		page, err := pagestore.New(h.DB).GetBySlug(ctx, slug)
		if err != nil {
			if err == pagestore.ErrNotFound {
				uierrors.RenderNotFound(w, r, "That page does not exist.", "/")
				return
			}
			h.ErrLog.LogServerError(w, r, "load page failed", err, "Could not load page.", "/")
			return
		}

		base := viewdata.NewBaseVM(r, pageTitle, "/")
		vm := pageViewVM{
			BaseVM:    base,
			Slug:      slug,
			PageTitle: page.Title,
			Content:   template.HTML(page.Content),
			CanEdit:   base.Role == models.RoleManager,
		}
		templates.Render(w, r, "page_view", vm)
	}
}

// ServeAbout displays the About page.
func (h *Handler) ServeAbout(w http.ResponseWriter, r *http.Request) {
	h.ServePage(models.PageAbout, "About")(w, r)
}

// ServeContact displays the Contact page.
func (h *Handler) ServeContact(w http.ResponseWriter, r *http.Request) {
	h.ServePage(models.PageContact, "Contact")(w, r)
}
