// internal/app/features/oauth/handler.go
package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/url"
	"time"

	uierrors "github.com/dalemusser/waitlist/internal/app/features/errors"
	oauthstatestore "github.com/dalemusser/waitlist/internal/app/store/oauthstate"
	sessionstore "github.com/dalemusser/waitlist/internal/app/store/sessions"
	userstore "github.com/dalemusser/waitlist/internal/app/store/users"
	"github.com/dalemusser/waitlist/internal/app/system/auth"
	"github.com/dalemusser/waitlist/internal/app/system/timeouts"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// stateLifetime bounds how long the consent screen round trip may take.
const stateLifetime = 10 * time.Minute

// Handler runs the OAuth2 login flow for one Provider. One Handler is
// mounted per provider; they share stores and the session manager.
type Handler struct {
	Users      *userstore.Store
	Sessions   *sessionstore.Store
	States     *oauthstatestore.Store
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger

	provider Provider

	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g. "https://api.example.com/auth/google/callback"
	SiteURL      string // landing page origin for post-login redirect
}

// NewHandler creates an OAuth handler for the given provider.
// baseURL is this service's externally visible origin; the callback
// registered with the provider must be baseURL + /auth/<name>/callback.
func NewHandler(
	p Provider,
	users *userstore.Store,
	sessions *sessionstore.Store,
	states *oauthstatestore.Store,
	sessionMgr *auth.SessionManager,
	errLog *uierrors.ErrorLogger,
	clientID, clientSecret, baseURL, siteURL string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Users:        users,
		Sessions:     sessions,
		States:       states,
		SessionMgr:   sessionMgr,
		Log:          logger,
		ErrLog:       errLog,
		provider:     p,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/" + p.Name() + "/callback",
		SiteURL:      siteURL,
	}
}

// oauth2Config returns the provider's OAuth2 configuration.
func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes:       h.provider.Scopes(),
		Endpoint:     h.provider.Endpoint(),
	}
}

// IsConfigured reports whether credentials exist for this provider.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// ServeLogin handles GET /auth/<provider>. It stores a one-time state
// token and redirects to the provider's consent screen.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("oauth provider not configured",
			zap.String("provider", h.provider.Name()))
		h.redirectError(w, r, "internal")
		return
	}

	state, err := generateState()
	if err != nil {
		h.ErrLog.Internal(r, "failed to generate oauth state", err)
		h.redirectError(w, r, "internal")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	expiresAt := time.Now().UTC().Add(stateLifetime)
	if err := h.States.Save(ctx, state, h.provider.Name(), expiresAt); err != nil {
		h.ErrLog.Internal(r, "failed to save oauth state", err)
		h.redirectError(w, r, "internal")
		return
	}

	dest := h.oauth2Config().AuthCodeURL(state)

	h.Log.Debug("initiating oauth flow",
		zap.String("provider", h.provider.Name()))

	http.Redirect(w, r, dest, http.StatusTemporaryRedirect)
}

// ServeCallback handles GET /auth/<provider>/callback: validates state,
// exchanges the code, fetches the identity, upserts the user record,
// and establishes a session before sending the browser to the details
// page.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// The user declined, or the provider failed.
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.ErrLog.Rejected(r, "oauth provider returned error",
			zap.String("provider", h.provider.Name()),
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		h.redirectError(w, r, "denied")
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.ErrLog.Rejected(r, "missing oauth state parameter",
			zap.String("provider", h.provider.Name()))
		h.redirectError(w, r, "invalid_state")
		return
	}

	stateCtx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	valid, err := h.States.Validate(stateCtx, state, h.provider.Name())
	if err != nil {
		h.ErrLog.Internal(r, "failed to validate oauth state", err)
		h.redirectError(w, r, "internal")
		return
	}
	if !valid {
		h.ErrLog.Rejected(r, "invalid or expired oauth state",
			zap.String("provider", h.provider.Name()))
		h.redirectError(w, r, "invalid_state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.ErrLog.Rejected(r, "missing oauth code parameter",
			zap.String("provider", h.provider.Name()))
		h.redirectError(w, r, "invalid_state")
		return
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	cfg := h.oauth2Config()
	token, err := cfg.Exchange(exchangeCtx, code)
	if err != nil {
		h.ErrLog.Internal(r, "failed to exchange oauth code", err)
		h.redirectError(w, r, "internal")
		return
	}

	assertion, err := h.provider.FetchIdentity(exchangeCtx, cfg.Client(exchangeCtx, token))
	if err != nil {
		h.ErrLog.Internal(r, "failed to fetch provider identity", err)
		h.redirectError(w, r, "internal")
		return
	}

	// No email claim means no join key: nothing is created or modified.
	if assertion.Email == "" {
		h.ErrLog.Rejected(r, "identity assertion carried no email",
			zap.String("provider", h.provider.Name()))
		h.redirectError(w, r, "no_email")
		return
	}

	// Fresh deadline: the exchange round trip may have consumed the
	// earlier one.
	storeCtx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	u, err := h.Users.UpsertIdentity(storeCtx, assertion.Email, assertion.DisplayName, h.provider.Name())
	if err != nil {
		h.ErrLog.Internal(r, "failed to upsert user from identity", err)
		h.redirectError(w, r, "internal")
		return
	}

	sess, err := h.Sessions.Create(storeCtx, u.ID, r.RemoteAddr, r.UserAgent())
	if err != nil {
		h.ErrLog.Internal(r, "failed to create session record", err)
		h.redirectError(w, r, "internal")
		return
	}

	if err := h.SessionMgr.Establish(w, r, u.ID.Hex(), sess.ID.Hex()); err != nil {
		h.ErrLog.Internal(r, "failed to establish session cookie", err)
		h.redirectError(w, r, "internal")
		return
	}

	h.Log.Info("oauth login",
		zap.String("provider", h.provider.Name()),
		zap.String("user_id", u.ID.Hex()))

	dest := h.SiteURL + "/details?email=" + url.QueryEscape(u.Email)
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// redirectError sends the browser to the service's error page with a
// machine-readable reason.
func (h *Handler) redirectError(w http.ResponseWriter, r *http.Request, reason string) {
	http.Redirect(w, r, "/error?reason="+reason, http.StatusSeeOther)
}

// generateState produces a cryptographically random state token.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
