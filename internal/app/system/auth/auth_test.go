package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/waitlist/internal/app/system/auth"
	"go.uber.org/zap"
)

const testKey = "test-session-key-for-testing-only-0123456789"

func newManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	m, err := auth.NewSessionManager(testKey, "waitlist-test", "", 24*time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return m
}

// stubResolver resolves a single known session ID.
type stubResolver struct {
	id   string
	user *auth.SessionUser
}

func (s *stubResolver) Resolve(_ context.Context, sessionID string) *auth.SessionUser {
	if sessionID == s.id {
		return s.user
	}
	return nil
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "n", "", 0, false, zap.NewNop()); err == nil {
		t.Error("expected error for empty session key")
	}
}

// establish performs an Establish and returns the resulting cookies.
func establish(t *testing.T, m *auth.SessionManager, userID, sessionID string) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest("GET", "/auth/google/callback", nil)
	rec := httptest.NewRecorder()
	if err := m.Establish(rec, req, userID, sessionID); err != nil {
		t.Fatalf("Establish failed: %v", err)
	}
	return rec.Result().Cookies()
}

func TestEstablishAndResolve(t *testing.T) {
	m := newManager(t)
	want := &auth.SessionUser{ID: "u1", Email: "ada@example.com", FullName: "Ada", Provider: "google"}
	m.SetResolver(&stubResolver{id: "sess1", user: want})

	cookies := establish(t, m, "u1", "sess1")
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie to be set")
	}

	var got *auth.SessionUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	})

	req := httptest.NewRequest("GET", "/api/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	m.LoadSessionUser(next).ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected user in context after LoadSessionUser")
	}
	if got.ID != "u1" || got.Email != "ada@example.com" {
		t.Errorf("resolved user: got %+v", got)
	}
}

func TestLoadSessionUser_UnknownSession(t *testing.T) {
	m := newManager(t)
	m.SetResolver(&stubResolver{id: "other", user: &auth.SessionUser{ID: "u1"}})

	cookies := establish(t, m, "u1", "sess1")

	req := httptest.NewRequest("GET", "/api/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	var found bool
	m.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = auth.CurrentUser(r)
	})).ServeHTTP(httptest.NewRecorder(), req)

	if found {
		t.Error("expected no user for a session the resolver rejects")
	}
}

func TestLoadSessionUser_NoCookie(t *testing.T) {
	m := newManager(t)
	m.SetResolver(&stubResolver{})

	var found bool
	m.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = auth.CurrentUser(r)
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if found {
		t.Error("expected no user without a session cookie")
	}
}

func TestSessionID(t *testing.T) {
	m := newManager(t)
	cookies := establish(t, m, "u1", "sess42")

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	id, ok := m.SessionID(req)
	if !ok || id != "sess42" {
		t.Errorf("SessionID: got %q ok=%v, want sess42", id, ok)
	}
}

func TestClear_ExpiresCookie(t *testing.T) {
	m := newManager(t)
	cookies := establish(t, m, "u1", "sess1")

	req := httptest.NewRequest("GET", "/auth/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	if err := m.Clear(rec, req); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	out := rec.Result().Cookies()
	if len(out) == 0 {
		t.Fatal("expected a deletion cookie")
	}
	if out[0].MaxAge != -1 {
		t.Errorf("deletion cookie MaxAge: got %d, want -1", out[0].MaxAge)
	}
}
