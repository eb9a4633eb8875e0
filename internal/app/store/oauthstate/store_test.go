package oauthstate_test

import (
	"testing"
	"time"

	oauthstatestore "github.com/dalemusser/waitlist/internal/app/store/oauthstate"
	"github.com/dalemusser/waitlist/internal/testutil"
)

func newStore(t *testing.T) *oauthstatestore.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	s := oauthstatestore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := s.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}
	return s
}

func TestValidate_OneTimeUse(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := s.Save(ctx, "state-abc", "google", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	ok, err := s.Validate(ctx, "state-abc", "google")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !ok {
		t.Fatal("expected fresh state to validate")
	}

	// Replay must fail: the token is consumed on first use.
	ok, err = s.Validate(ctx, "state-abc", "google")
	if err != nil {
		t.Fatalf("second Validate failed: %v", err)
	}
	if ok {
		t.Error("expected replayed state to be rejected")
	}
}

func TestValidate_WrongProvider(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := s.Save(ctx, "state-abc", "google", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	ok, err := s.Validate(ctx, "state-abc", "linkedin")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if ok {
		t.Error("state issued for google must not validate for linkedin")
	}
}

func TestValidate_Expired(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := s.Save(ctx, "state-old", "google", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	ok, err := s.Validate(ctx, "state-old", "google")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if ok {
		t.Error("expected expired state to be rejected")
	}
}

func TestValidate_Unknown(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ok, err := s.Validate(ctx, "never-issued", "google")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if ok {
		t.Error("expected unknown state to be rejected")
	}
}

func TestCleanupExpired(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := s.Save(ctx, "state-live", "google", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save(ctx, "state-dead", "google", time.Now().Add(-10*time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	count, err := s.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 expired state removed, got %d", count)
	}

	ok, err := s.Validate(ctx, "state-live", "google")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !ok {
		t.Error("live state should survive the sweep")
	}
}
