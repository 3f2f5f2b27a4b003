// internal/app/features/people/list.go
package people

import (
	"context"
	"net/http"
	"strings"

	userstore "github.com/campushub/campushub/internal/app/store/users"
	"github.com/campushub/campushub/internal/app/system/timeouts"
	"github.com/campushub/campushub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

type personRow struct {
	ID         string
	FullName   string
	Email      string
	RoleLabel  string
	Department string
	Status     string
}

type listVM struct {
	viewdata.BaseVM

	Search string
	Role   string // "", manager, teacher, student
	Status string // "", active, disabled

	Shown int
	Rows  []personRow

	// ReturnURL carries the current filtered list into person-page
	// back links.
	ReturnURL string
}

// ServeList renders the people directory with search and role/status
// filters. School staff lists are small enough to render in full.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	role := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("role")))
	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := userstore.New(h.DB).List(ctx, userstore.ListFilter{
		Role:   role,
		Status: status,
		Search: search,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list people failed", err, "Could not load people.", "/dashboard")
		return
	}

	rows := make([]personRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, personRow{
			ID:         u.ID.Hex(),
			FullName:   u.FullName,
			Email:      u.Email,
			RoleLabel:  roleLabel(u.Role),
			Department: u.Department,
			Status:     u.Status,
		})
	}

	returnURL := "/people"
	if r.URL.RawQuery != "" {
		returnURL += "?" + r.URL.RawQuery
	}

	templates.Render(w, r, "people_list", listVM{
		BaseVM:    viewdata.NewBaseVM(r, "People", "/dashboard"),
		Search:    search,
		Role:      role,
		Status:    status,
		Shown:     len(rows),
		Rows:      rows,
		ReturnURL: returnURL,
	})
}
