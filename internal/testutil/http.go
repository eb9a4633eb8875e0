package testutil

import (
	"net/http"
	"net/http/httptest"

	"github.com/dalemusser/waitlist/internal/app/system/auth"
)

// WithUser adds a user to the request context for testing authenticated
// handlers, bypassing the session middleware.
func WithUser(r *http.Request, u *auth.SessionUser) *http.Request {
	return auth.WithTestUser(r, u)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, u *auth.SessionUser) *http.Request {
	return WithUser(httptest.NewRequest(method, target, nil), u)
}
