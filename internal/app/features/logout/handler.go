// internal/app/features/logout/handler.go
package logout

import (
	"context"
	"net/http"

	sessionstore "github.com/dalemusser/waitlist/internal/app/store/sessions"
	"github.com/dalemusser/waitlist/internal/app/system/auth"
	"github.com/dalemusser/waitlist/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Sessions   *sessionstore.Store
	SiteURL    string
}

func NewHandler(sessionMgr *auth.SessionManager, sessions *sessionstore.Store, siteURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Sessions:   sessions,
		SiteURL:    siteURL,
	}
}

// ServeLogout handles GET /auth/logout. It revokes the server-side
// session record, expires the cookie, and sends the browser back to the
// landing page.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if id, ok := h.SessionMgr.SessionID(r); ok && h.Sessions != nil {
		if sid, err := primitive.ObjectIDFromHex(id); err == nil {
			ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
			defer cancel()
			if err := h.Sessions.Delete(ctx, sid); err != nil {
				// Cookie still gets cleared; the TTL index removes the record
				// eventually.
				h.Log.Warn("logout: delete session record", zap.Error(err))
			}
		}
	}

	if err := h.SessionMgr.Clear(w, r); err != nil {
		h.Log.Error("logout: clear session cookie", zap.Error(err))
	}

	dest := h.SiteURL
	if dest == "" {
		dest = "/"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
