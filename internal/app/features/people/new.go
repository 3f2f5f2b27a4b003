// internal/app/features/people/new.go
package people

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/campushub/campushub/internal/app/store/users"
	"github.com/campushub/campushub/internal/app/system/authutil"
	"github.com/campushub/campushub/internal/app/system/limits"
	"github.com/campushub/campushub/internal/app/system/normalize"
	"github.com/campushub/campushub/internal/app/system/timeouts"
	"github.com/campushub/campushub/internal/app/system/viewdata"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type newVM struct {
	viewdata.BaseVM

	FullName   string
	Email      string
	Role       string
	Department string

	PasswordRules string
	Error         string
}

// ServeNew renders the "Add Person" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "person_new", newVM{
		BaseVM:        viewdata.NewBaseVM(r, "Add Person", "/people"),
		Role:          models.RoleStudent,
		PasswordRules: authutil.PasswordRules(),
	})
}

// HandleCreate processes the Add Person form. An initial password is
// optional; without one the account cannot sign in until a manager sets
// a password from the person's page.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse person form failed", err, "Invalid form data.", "/people")
		return
	}

	fullName := normalize.Name(r.FormValue("full_name"))
	email := normalize.Email(r.FormValue("email"))
	role := normalize.Role(r.FormValue("role"))
	department := normalize.Department(r.FormValue("department"))
	password := strings.TrimSpace(r.FormValue("password"))

	reRender := func(msg string) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "person_new", newVM{
			BaseVM:        viewdata.NewBaseVM(r, "Add Person", "/people"),
			FullName:      fullName,
			Email:         email,
			Role:          role,
			Department:    department,
			PasswordRules: authutil.PasswordRules(),
			Error:         msg,
		})
	}

	if fullName == "" {
		reRender("Full name is required.")
		return
	}
	if email == "" {
		reRender("Email is required.")
		return
	}
	switch role {
	case models.RoleManager, models.RoleTeacher, models.RoleStudent:
	default:
		reRender("Choose a role: manager, teacher, or student.")
		return
	}

	var hash string
	if password != "" {
		if err := authutil.ValidatePassword(password); err != nil {
			reRender(err.Error())
			return
		}
		var err error
		hash, err = authutil.HashPassword(password)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "hash password failed", err, "Could not create the account.", "/people")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := userstore.New(h.DB).Create(ctx, models.User{
		FullName:     fullName,
		Email:        email,
		Role:         role,
		Department:   department,
		Status:       "active",
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			reRender("A person with that email already exists.")
			return
		}
		h.Log.Error("create person failed", zap.Error(err), zap.String("email", email))
		reRender("Database error while creating the account.")
		return
	}

	http.Redirect(w, r, "/people/"+created.ID.Hex(), http.StatusSeeOther)
}
