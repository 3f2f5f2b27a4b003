// internal/app/features/people/import.go
package people

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	uierrors "github.com/campushub/campushub/internal/app/features/errors"
	userstore "github.com/campushub/campushub/internal/app/store/users"
	"github.com/campushub/campushub/internal/app/system/csvutil"
	"github.com/campushub/campushub/internal/app/system/timeouts"
	"github.com/campushub/campushub/internal/app/system/viewdata"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type importVM struct {
	viewdata.BaseVM

	Error template.HTML

	// Result of a completed import
	Done    bool
	Created int
	Skipped int
}

// ServeImport renders the roster upload form.
func (h *Handler) ServeImport(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "people_import", importVM{
		BaseVM: viewdata.NewBaseVM(r, "Import Roster", "/people"),
	})
}

// HandleImport ingests a roster CSV: full name, email, role, and an
// optional department per row. The whole file is validated before any
// account is created; rows whose email already exists are skipped so
// re-uploading a roster is safe.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, csvutil.MaxUploadSize)

	file, _, err := r.FormFile("roster")
	if err != nil {
		msg := "A roster CSV file is required."
		if strings.Contains(err.Error(), "request body too large") {
			msg = "Roster file is too large. Maximum size is 5 MB."
		}
		uierrors.RenderBadRequest(w, r, msg, "/people/import")
		return
	}
	defer file.Close()

	rows, htmlErr, err := csvutil.PreScanRosterCSV(file)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "roster parse failed", err, "The file could not be read as CSV.", "/people/import")
		return
	}
	if htmlErr != "" {
		h.renderImportError(w, r, htmlErr)
		return
	}
	if len(rows) == 0 {
		h.renderImportError(w, r, "The file has no roster rows.")
		return
	}
	if len(rows) > csvutil.MaxRows {
		h.renderImportError(w, r, template.HTML(template.HTMLEscapeString(
			"Too many rows in one upload. Split the roster into smaller files.")))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "roster import")
	defer cancel()

	store := userstore.New(h.DB)
	created, skipped := 0, 0
	for _, row := range rows {
		_, err := store.Create(ctx, models.User{
			FullName:   row.FullName,
			Email:      row.Email,
			Role:       row.Role,
			Department: row.Department,
			Status:     "active",
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, userstore.ErrDuplicateEmail):
			skipped++
		default:
			h.Log.Error("roster import: create failed",
				zap.Error(err), zap.String("email", row.Email))
			h.renderImportError(w, r, template.HTML(template.HTMLEscapeString(
				"Database error after "+row.Email+". Accounts created so far were kept; fix the file and re-upload.")))
			return
		}
	}

	h.Log.Info("roster imported", zap.Int("created", created), zap.Int("skipped", skipped))

	templates.Render(w, r, "people_import", importVM{
		BaseVM:  viewdata.NewBaseVM(r, "Import Roster", "/people"),
		Done:    true,
		Created: created,
		Skipped: skipped,
	})
}

func (h *Handler) renderImportError(w http.ResponseWriter, r *http.Request, msg template.HTML) {
	data := importVM{
		BaseVM: viewdata.NewBaseVM(r, "Import Roster", "/people"),
		Error:  msg,
	}
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "people_import", data)
}
