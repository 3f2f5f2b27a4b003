// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	boardfeature "github.com/campushub/campushub/internal/app/features/board"
	dashboardfeature "github.com/campushub/campushub/internal/app/features/dashboard"
	errorsfeature "github.com/campushub/campushub/internal/app/features/errors"
	healthfeature "github.com/campushub/campushub/internal/app/features/health"
	homefeature "github.com/campushub/campushub/internal/app/features/home"
	loginfeature "github.com/campushub/campushub/internal/app/features/login"
	logoutfeature "github.com/campushub/campushub/internal/app/features/logout"
	pagesfeature "github.com/campushub/campushub/internal/app/features/pages"
	peoplefeature "github.com/campushub/campushub/internal/app/features/people"
	profilefeature "github.com/campushub/campushub/internal/app/features/profile"
	userstore "github.com/campushub/campushub/internal/app/store/users"
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// CampusHub initializes the template engine, applies session and CSRF
// middleware, and mounts feature routers: home, login, logout, the
// role-based dashboards, and the operations board.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionTTL, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on each request.
	// This ensures role changes, disabled accounts, and profile updates take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.CampusHubMongoDatabase).FetchUser)

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// CSRF protection for all form posts. The drag-and-drop client sends
	// the token in the X-CSRF-Token header.
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey),
		csrf.Secure(secure),
		csrf.Path("/")))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.CampusHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.CampusHubMongoDatabase, sessionMgr, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Editable site pages (about, contact) backed by the pages store
	pagesHandler := pagesfeature.NewHandler(deps.CampusHubMongoDatabase, errLog, logger)
	r.Mount("/about", pagesHandler.AboutRouter())
	r.Mount("/contact", pagesHandler.ContactRouter())
	r.Mount("/pages", pagesfeature.EditRoutes(pagesHandler, sessionMgr))

	// Manager-only people directory and account administration
	peopleHandler := peoplefeature.NewHandler(deps.CampusHubMongoDatabase, errLog, logger)
	r.Mount("/people", peoplefeature.Routes(peopleHandler, sessionMgr))

	// Account profile and password management
	profileHandler := profilefeature.NewHandler(deps.CampusHubMongoDatabase, errLog, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, sessionMgr))

	// Role-based dashboards
	dashboardHandler := dashboardfeature.NewHandler(deps.CampusHubMongoDatabase, boardState, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	// The operations board: list, board, table, and timeline views plus
	// the mutation endpoints and the change event stream.
	boardHandler := boardfeature.NewHandler(boardState, changeHub, errLog, logger)
	r.Mount("/board", boardfeature.Routes(boardHandler, sessionMgr))

	return r, nil
}
