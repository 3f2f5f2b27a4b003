// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"time"

	uierrors "github.com/campushub/campushub/internal/app/features/errors"
	userstore "github.com/campushub/campushub/internal/app/store/users"
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/app/system/authutil"
	"github.com/campushub/campushub/internal/app/system/limits"
	"github.com/campushub/campushub/internal/app/system/navigation"
	"github.com/campushub/campushub/internal/app/system/normalize"
	"github.com/campushub/campushub/internal/app/system/ratelimit"
	"github.com/campushub/campushub/internal/app/system/timeouts"
	"github.com/campushub/campushub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// loginAttemptLimit caps sign-in attempts per client IP per window.
const loginAttemptLimit = 10

type Handler struct {
	Users      *userstore.Store
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Limiter    *ratelimit.Limiter
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      userstore.New(db),
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Limiter:    ratelimit.New(loginAttemptLimit, time.Minute),
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	ret := query.Get(r, "return")

	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign In", "/"),
		ReturnURL: ret,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	returnURL := r.FormValue("return")

	clientIP := ratelimit.ClientIP(r)
	if !h.Limiter.Allow(clientIP) {
		h.Log.Warn("login: rate limited", zap.String("ip", clientIP))
		w.WriteHeader(http.StatusTooManyRequests)
		h.renderFormWithError(w, r, "Too many sign-in attempts. Please wait a minute and try again.", email, returnURL)
		return
	}

	if email == "" {
		h.renderFormWithError(w, r, "Please enter your email address.", email, returnURL)
		return
	}
	if password == "" {
		h.renderFormWithError(w, r, "Please enter your password.", email, returnURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Same message as a wrong password so the form does not leak
			// which addresses have accounts.
			h.renderFormWithError(w, r, "Incorrect email or password.", email, returnURL)
			return
		}
		h.Log.Error("login: user lookup failed", zap.Error(err), zap.String("email", email))
		h.renderFormWithError(w, r, "Unable to sign you in right now. Please try again.", email, returnURL)
		return
	}

	if u.Status == "disabled" {
		h.renderFormWithError(w, r, "This account is disabled. Please contact an administrator.", email, returnURL)
		return
	}

	if u.PasswordHash == "" {
		h.renderFormWithError(w, r, "No password set for this account. Please contact an administrator.", email, returnURL)
		return
	}

	if !authutil.CheckPassword(password, u.PasswordHash) {
		h.Log.Warn("login: wrong password", zap.String("email", email))
		h.renderFormWithError(w, r, "Incorrect email or password.", email, returnURL)
		return
	}

	err = h.SessionMgr.SignIn(w, r, auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	})
	if err != nil {
		h.Log.Error("login: session save failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		h.renderFormWithError(w, r, "Unable to create session. Please try again.", email, returnURL)
		return
	}

	// A successful sign-in clears the attempt counter for this client.
	h.Limiter.Reset(clientIP)

	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.SignInBackURL), http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email, returnURL string) {
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign In", "/"),
		Error:     msg,
		Email:     email,
		ReturnURL: returnURL,
	})
}
