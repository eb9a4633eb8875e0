// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	errorsfeature "github.com/dalemusser/waitlist/internal/app/features/errors"
	healthfeature "github.com/dalemusser/waitlist/internal/app/features/health"
	logoutfeature "github.com/dalemusser/waitlist/internal/app/features/logout"
	oauthfeature "github.com/dalemusser/waitlist/internal/app/features/oauth"
	signupfeature "github.com/dalemusser/waitlist/internal/app/features/signup"
	userinfofeature "github.com/dalemusser/waitlist/internal/app/features/userinfo"
	oauthstatestore "github.com/dalemusser/waitlist/internal/app/store/oauthstate"
	sessionstore "github.com/dalemusser/waitlist/internal/app/store/sessions"
	userstore "github.com/dalemusser/waitlist/internal/app/store/users"
	"github.com/dalemusser/waitlist/internal/app/system/auth"
	"github.com/dalemusser/waitlist/internal/app/system/requestlog"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connection, schema setup,
// and the Startup hook have completed. It wires the stores, the session
// manager, and the feature routers:
//
//	GET  /health                      liveness + database status
//	GET  /error                       error landing page
//	POST /api/register-email          waitlist email capture
//	POST /api/update-details          detail enrichment
//	GET  /api/me                      current session identity
//	GET  /auth/google[,/callback]     Google login flow
//	GET  /auth/linkedin[,/callback]   LinkedIn login flow
//	GET  /auth/logout                 session teardown
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies in production. The cookie lifetime mirrors the
	// server-side session TTL so the cookie and the record expire
	// together.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(
		appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain,
		sessionstore.TTL, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.WaitlistMongoDatabase
	users := userstore.New(db)
	sessions := sessionstore.New(db)
	states := oauthstatestore.New(db)

	// Each request re-resolves the session against the store, so expiry
	// and record deletion take effect immediately.
	sessionMgr.SetResolver(userstore.NewFetcher(sessions, users))

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.Use(requestlog.Middleware(logger))
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.WaitlistMongoClient, logger)))

	// Error landing page the OAuth flow redirects to.
	r.Mount("/error", errorsfeature.Routes(errorsfeature.NewHandler(appCfg.SiteURL)))

	// JSON API for the landing page.
	r.Route("/api", func(r chi.Router) {
		r.Mount("/", signupfeature.Routes(signupfeature.NewHandler(users, errLog, logger)))
		r.Mount("/me", userinfofeature.Routes(userinfofeature.NewHandler()))
	})

	// OAuth login flows, one mount per provider.
	google := oauthfeature.NewHandler(oauthfeature.Google{},
		users, sessions, states, sessionMgr, errLog,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret,
		appCfg.BaseURL, appCfg.SiteURL, logger)
	r.Mount("/auth/google", oauthfeature.Routes(google))

	linkedin := oauthfeature.NewHandler(oauthfeature.LinkedIn{},
		users, sessions, states, sessionMgr, errLog,
		appCfg.LinkedInClientID, appCfg.LinkedInClientSecret,
		appCfg.BaseURL, appCfg.SiteURL, logger)
	r.Mount("/auth/linkedin", oauthfeature.Routes(linkedin))

	r.Mount("/auth/logout", logoutfeature.Routes(
		logoutfeature.NewHandler(sessionMgr, sessions, appCfg.SiteURL, logger)))

	return r, nil
}
