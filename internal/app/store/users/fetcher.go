package userstore

import (
	"context"

	sessionstore "github.com/dalemusser/waitlist/internal/app/store/sessions"
	"github.com/dalemusser/waitlist/internal/app/system/auth"
	"github.com/dalemusser/waitlist/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fetcher implements auth.Resolver: it checks the server-side session
// record and re-fetches the bound user on each request, so expiry and
// out-of-band record deletion take effect immediately.
type Fetcher struct {
	sessions *sessionstore.Store
	users    *Store
}

// NewFetcher creates a Resolver backed by the sessions and users stores.
func NewFetcher(sessions *sessionstore.Store, users *Store) *Fetcher {
	return &Fetcher{sessions: sessions, users: users}
}

// Resolve returns the principal for sessionID, or nil if the session is
// absent, expired, malformed, or its user record no longer exists.
func (f *Fetcher) Resolve(ctx context.Context, sessionID string) *auth.SessionUser {
	sid, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	sess, err := f.sessions.GetActive(ctx, sid)
	if err != nil {
		return nil
	}

	u, err := f.users.GetByID(ctx, sess.UserID)
	if err != nil {
		// Session outlived the record; treat as unauthenticated.
		return nil
	}

	return &auth.SessionUser{
		ID:       u.ID.Hex(),
		Email:    u.Email,
		FullName: u.FullName,
		Provider: u.Provider,
	}
}
