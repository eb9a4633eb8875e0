package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey    = "is_authenticated"
	userIDKey    = "user_id"
	sessionIDKey = "session_id"
)

// SessionUser is the resolved principal injected into r.Context() for
// authenticated requests.
type SessionUser struct {
	ID       string
	Email    string
	FullName string
	Provider string
}

// Resolver turns a server-side session ID into the current principal.
// Implementations return nil when the session is absent, expired, or the
// underlying user record no longer exists; they never panic on those.
type Resolver interface {
	Resolve(ctx context.Context, sessionID string) *SessionUser
}

// SessionManager owns the signed session cookie and the middleware that
// resolves it to a SessionUser on each request.
//
// The cookie only carries identifiers; the authoritative session state
// (expiry, bound user) lives server-side and is checked by the Resolver
// on every request, so revocation and expiry take effect immediately.
type SessionManager struct {
	store    *sessions.CookieStore
	name     string
	log      *zap.Logger
	resolver Resolver
}

// NewSessionManager initializes the cookie store. The secure flag
// controls whether cookies are marked Secure and which SameSite mode is
// used.
//
// In production (secure=true) cookies are Secure + SameSite=None: the
// OAuth flow ends on a different origin than the landing page, and the
// cookie must survive that cross-site redirect chain. In local dev over
// http://localhost, secure=false keeps Lax so browsers accept the cookie.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide 32+ random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain),
		zap.Duration("max_age", maxAge))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// SetResolver wires the server-side session resolver. Until one is set,
// LoadSessionUser is a pass-through and no request is authenticated.
func (m *SessionManager) SetResolver(r Resolver) { m.resolver = r }

// Store exposes the underlying cookie store (used by logout to build a
// deletion cookie with matching attributes).
func (m *SessionManager) Store() *sessions.CookieStore { return m.store }

// GetSession returns the request's session, or a fresh one if the
// cookie is absent or fails to decode.
func (m *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return m.store.Get(r, m.name)
}

// Establish binds the cookie session to an authenticated principal.
// userID is the user record's ID; sessionID names the server-side
// session record created for this login.
func (m *SessionManager) Establish(w http.ResponseWriter, r *http.Request, userID, sessionID string) error {
	sess, err := m.GetSession(r)
	if err != nil {
		// A stale or re-keyed cookie decodes to an error but still yields
		// a usable fresh session.
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			m.log.Warn("session cookie invalid, using fresh session", zap.Error(err))
		} else {
			m.log.Error("session store error, using fresh session", zap.Error(err))
		}
	}

	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = userID
	sess.Values[sessionIDKey] = sessionID
	return sess.Save(r, w)
}

// Clear expires the session cookie immediately.
func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, err := m.GetSession(r)
	if err != nil {
		m.log.Warn("session decode failed during clear", zap.Error(err))
	}

	// The deletion cookie must match the original store settings or the
	// browser keeps the old one.
	if opts := m.store.Options; opts != nil {
		sess.Options.Domain = opts.Domain
		sess.Options.Path = opts.Path
		sess.Options.Secure = opts.Secure
		sess.Options.HttpOnly = opts.HttpOnly
		sess.Options.SameSite = opts.SameSite
	}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// SessionID returns the server-side session ID stored in the cookie.
func (m *SessionManager) SessionID(r *http.Request) (string, bool) {
	sess, err := m.GetSession(r)
	if err != nil {
		return "", false
	}
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return "", false
	}
	id, _ := sess.Values[sessionIDKey].(string)
	return id, id != ""
}

// LoadSessionUser injects the resolved user into the request context if
// the request carries a valid, unexpired session.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.resolver == nil {
			next.ServeHTTP(w, r)
			return
		}
		if id, ok := m.SessionID(r); ok {
			if u := m.resolver.Resolve(r.Context(), id); u != nil {
				r = withUser(r, u)
			}
		}
		next.ServeHTTP(w, r)
	})
}

/* context plumbing */

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the authenticated user and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user into the request context, bypassing the
// session middleware. For handler tests only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}
