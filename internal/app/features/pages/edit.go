// internal/app/features/pages/edit.go
package pages

import (
	"context"
	"net/http"
	"strings"

	pagestore "github.com/campushub/campushub/internal/app/store/pages"
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/app/system/htmlsanitize"
	"github.com/campushub/campushub/internal/app/system/limits"
	"github.com/campushub/campushub/internal/app/system/timeouts"
	"github.com/campushub/campushub/internal/app/system/viewdata"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type pageEditVM struct {
	viewdata.BaseVM
	Slug      string
	PageTitle string
	Content   string
	Error     string
}

// editableSlug guards the edit endpoints to the built-in slugs; there is
// no way to create arbitrary pages through the UI.
func editableSlug(slug string) bool {
	return slug == models.PageAbout || slug == models.PageContact
}

func viewURL(slug string) string {
	switch slug {
	case models.PageAbout:
		return "/about"
	case models.PageContact:
		return "/contact"
	default:
		return "/"
	}
}

// ServeEdit displays the page edit form.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !editableSlug(slug) {
		h.ErrLog.LogBadRequest(w, r, "unknown page slug", nil, "That page cannot be edited.", "/dashboard")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	page, err := pagestore.New(h.DB).GetBySlug(ctx, slug)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load page failed", err, "Could not load page.", "/dashboard")
		return
	}

	vm := pageEditVM{
		BaseVM:    viewdata.NewBaseVM(r, "Edit "+page.Title, viewURL(slug)),
		Slug:      slug,
		PageTitle: page.Title,
		Content:   page.Content,
	}
	templates.Render(w, r, "page_edit", vm)
}

// HandleEdit processes the page edit form submission.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !editableSlug(slug) {
		h.ErrLog.LogBadRequest(w, r, "unknown page slug", nil, "That page cannot be edited.", "/dashboard")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxPageContentSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse page form failed", err, "Invalid form data.", "/pages/"+slug+"/edit")
		return
	}

	title := strings.TrimSpace(r.FormValue("page_title"))
	content := htmlsanitize.Sanitize(strings.TrimSpace(r.FormValue("content")))

	if title == "" {
		h.renderEditWithError(w, r, slug, title, content, "Page title is required.")
		return
	}

	editor := ""
	if u, ok := auth.CurrentUser(r); ok {
		editor = u.Name
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	page := models.Page{
		Slug:          slug,
		Title:         title,
		Content:       content,
		UpdatedByName: editor,
	}
	if err := pagestore.New(h.DB).Upsert(ctx, page); err != nil {
		h.Log.Error("save page failed", zap.String("slug", slug), zap.Error(err))
		h.renderEditWithError(w, r, slug, title, content, "Could not save the page.")
		return
	}

	http.Redirect(w, r, viewURL(slug), http.StatusSeeOther)
}

func (h *Handler) renderEditWithError(w http.ResponseWriter, r *http.Request, slug, title, content, errMsg string) {
	vm := pageEditVM{
		BaseVM:    viewdata.NewBaseVM(r, "Edit page", viewURL(slug)),
		Slug:      slug,
		PageTitle: title,
		Content:   content,
		Error:     errMsg,
	}
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "page_edit", vm)
}
