// internal/app/features/profile/profile.go
package profile

import (
	"context"
	"net/http"

	uierrors "github.com/campushub/campushub/internal/app/features/errors"
	userstore "github.com/campushub/campushub/internal/app/store/users"
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/app/system/authutil"
	"github.com/campushub/campushub/internal/app/system/timeouts"
	"github.com/campushub/campushub/internal/app/system/viewdata"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// profileData is the view model for the profile page.
type profileData struct {
	viewdata.BaseVM

	// Read-only account info
	FullName   string
	Email      string
	RoleLabel  string
	Department string

	// Password section (hidden for accounts without a local password)
	ShowPasswordSection bool
	PasswordRules       string

	Error   string
	Success string
}

// ServeProfile renders the signed-in user's profile page.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentDBUser(w, r)
	if !ok {
		return
	}

	data := h.pageData(r, user)
	if r.URL.Query().Get("success") == "password" {
		data.Success = "Password changed."
	}
	templates.Render(w, r, "profile", data)
}

// HandleChangePassword processes the password change form.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentDBUser(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse profile form failed", err, "Invalid form data.", "/profile")
		return
	}

	if user.PasswordHash == "" {
		h.renderWithError(w, r, user, "This account has no local password to change.")
		return
	}

	current := r.FormValue("current_password")
	newPW := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	if !authutil.CheckPassword(current, user.PasswordHash) {
		h.renderWithError(w, r, user, "Current password is incorrect.")
		return
	}
	if err := authutil.ValidatePassword(newPW); err != nil {
		h.renderWithError(w, r, user, err.Error())
		return
	}
	if newPW != confirm {
		h.renderWithError(w, r, user, "New passwords do not match.")
		return
	}
	if authutil.CheckPassword(newPW, user.PasswordHash) {
		h.renderWithError(w, r, user, "New password cannot be the same as your current password.")
		return
	}

	hash, err := authutil.HashPassword(newPW)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, "Could not update password.", "/profile")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	if err := userstore.New(h.DB).SetPassword(ctx, user.ID, hash); err != nil {
		h.ErrLog.LogServerError(w, r, "set password failed", err, "Could not update password.", "/profile")
		return
	}

	http.Redirect(w, r, "/profile?success=password", http.StatusSeeOther)
}

// currentDBUser resolves the session user to a fresh database record. It
// writes the error response itself when resolution fails.
func (h *Handler) currentDBUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return nil, false
	}
	id, err := primitive.ObjectIDFromHex(su.ID)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Account not found.", "/")
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := userstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Account not found.", "/")
		return nil, false
	}
	return user, true
}

func (h *Handler) pageData(r *http.Request, user *models.User) profileData {
	return profileData{
		BaseVM:              viewdata.NewBaseVM(r, "Profile", "/dashboard"),
		FullName:            user.FullName,
		Email:               user.Email,
		RoleLabel:           roleLabel(user.Role),
		Department:          user.Department,
		ShowPasswordSection: user.PasswordHash != "",
		PasswordRules:       authutil.PasswordRules(),
	}
}

func (h *Handler) renderWithError(w http.ResponseWriter, r *http.Request, user *models.User, msg string) {
	data := h.pageData(r, user)
	data.Error = msg
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "profile", data)
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
