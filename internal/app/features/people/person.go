// internal/app/features/people/person.go
package people

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/campushub/campushub/internal/app/features/errors"
	userstore "github.com/campushub/campushub/internal/app/store/users"
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/app/system/authutil"
	"github.com/campushub/campushub/internal/app/system/navigation"
	"github.com/campushub/campushub/internal/app/system/timeouts"
	"github.com/campushub/campushub/internal/app/system/viewdata"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type personVM struct {
	viewdata.BaseVM

	ID          string
	FullName    string
	Email       string
	RoleLabel   string
	Department  string
	Status      string
	HasPassword bool
	IsSelf      bool

	PasswordRules string
	Error         string
	Success       string
}

// ServePerson renders a single account with its manage actions.
func (h *Handler) ServePerson(w http.ResponseWriter, r *http.Request) {
	person, ok := h.loadPerson(w, r)
	if !ok {
		return
	}

	data := h.personData(r, person)
	switch r.URL.Query().Get("success") {
	case "status":
		data.Success = "Status updated."
	case "password":
		data.Success = "Password set."
	}
	templates.Render(w, r, "person_view", data)
}

// HandleSetStatus enables or disables an account. A manager cannot
// disable their own account, and the last active manager cannot be
// disabled at all.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	person, ok := h.loadPerson(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse status form failed", err, "Invalid form data.", "/people")
		return
	}
	status := strings.ToLower(strings.TrimSpace(r.FormValue("status")))
	if status != "active" && status != "disabled" {
		h.renderPersonError(w, r, person, "Invalid status.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	store := userstore.New(h.DB)

	if status == "disabled" {
		if su, ok := auth.CurrentUser(r); ok && su.ID == person.ID.Hex() {
			h.renderPersonError(w, r, person, "You cannot disable your own account.")
			return
		}
		if person.Role == models.RoleManager && person.Status == "active" {
			counts, err := store.CountByRole(ctx)
			if err != nil {
				h.ErrLog.LogServerError(w, r, "count managers failed", err, "Could not update status.", "/people")
				return
			}
			if counts[models.RoleManager] <= 1 {
				h.renderPersonError(w, r, person, "Cannot disable the last active manager.")
				return
			}
		}
	}

	if err := store.SetStatus(ctx, person.ID, status); err != nil {
		h.ErrLog.LogServerError(w, r, "set status failed", err, "Could not update status.", "/people")
		return
	}

	http.Redirect(w, r, "/people/"+person.ID.Hex()+"?success=status", http.StatusSeeOther)
}

// HandleResetPassword sets a new password on the account. Managers use
// this to hand out initial or replacement passwords.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	person, ok := h.loadPerson(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse password form failed", err, "Invalid form data.", "/people")
		return
	}

	newPW := r.FormValue("new_password")
	if err := authutil.ValidatePassword(newPW); err != nil {
		h.renderPersonError(w, r, person, err.Error())
		return
	}

	hash, err := authutil.HashPassword(newPW)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, "Could not set password.", "/people")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	if err := userstore.New(h.DB).SetPassword(ctx, person.ID, hash); err != nil {
		h.ErrLog.LogServerError(w, r, "set password failed", err, "Could not set password.", "/people")
		return
	}

	http.Redirect(w, r, "/people/"+person.ID.Hex()+"?success=password", http.StatusSeeOther)
}

// loadPerson resolves the {id} URL param to a user record, writing the
// error response itself on failure.
func (h *Handler) loadPerson(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "Person not found.", "/people")
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	person, err := userstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Person not found.", "/people")
		return nil, false
	}
	return person, true
}

func (h *Handler) personData(r *http.Request, person *models.User) personVM {
	isSelf := false
	if su, ok := auth.CurrentUser(r); ok {
		isSelf = su.ID == person.ID.Hex()
	}
	return personVM{
		BaseVM:        viewdata.NewBaseVM(r, person.FullName, navigation.SafeBackURL(r, navigation.PeopleBackURL)),
		ID:            person.ID.Hex(),
		FullName:      person.FullName,
		Email:         person.Email,
		RoleLabel:     roleLabel(person.Role),
		Department:    person.Department,
		Status:        person.Status,
		HasPassword:   person.PasswordHash != "",
		IsSelf:        isSelf,
		PasswordRules: authutil.PasswordRules(),
	}
}

func (h *Handler) renderPersonError(w http.ResponseWriter, r *http.Request, person *models.User, msg string) {
	data := h.personData(r, person)
	data.Error = msg
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "person_view", data)
}

func roleLabel(role string) string {
	switch role {
	case models.RoleManager:
		return "Manager"
	case models.RoleTeacher:
		return "Teacher"
	case models.RoleStudent:
		return "Student"
	default:
		return role
	}
}
