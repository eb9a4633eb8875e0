package sessions_test

import (
	"testing"
	"time"

	sessionstore "github.com/dalemusser/waitlist/internal/app/store/sessions"
	"github.com/dalemusser/waitlist/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newStore(t *testing.T) (*sessionstore.Store, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	s := sessionstore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := s.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}
	return s, db
}

// expire rewrites a session's expiry directly, simulating the passage of
// time without waiting out the TTL.
func expire(t *testing.T, db *mongo.Database, id primitive.ObjectID, at time.Time) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection("sessions").UpdateByID(ctx, id,
		bson.M{"$set": bson.M{"expires_at": at}})
	if err != nil {
		t.Fatalf("failed to rewrite expiry: %v", err)
	}
}

func TestCreateAndGetActive(t *testing.T) {
	s, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	created, err := s.Create(ctx, userID, "203.0.113.9", "test-agent")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatal("expected a generated session id")
	}
	wantExpiry := created.CreatedAt.Add(sessionstore.TTL)
	if !created.ExpiresAt.Equal(wantExpiry) {
		t.Errorf("expires_at: got %v, want %v", created.ExpiresAt, wantExpiry)
	}

	got, err := s.GetActive(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetActive failed: %v", err)
	}
	if got.UserID != userID || got.IP != "203.0.113.9" || got.UserAgent != "test-agent" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestGetActive_Expired(t *testing.T) {
	s, db := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := s.Create(ctx, primitive.NewObjectID(), "", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// An expired session must stop resolving even before the TTL monitor
	// removes the document.
	expire(t, db, created.ID, time.Now().Add(-time.Minute))
	if _, err := s.GetActive(ctx, created.ID); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments for expired session, got %v", err)
	}
}

func TestGetActive_Unknown(t *testing.T) {
	s, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := s.GetActive(ctx, primitive.NewObjectID()); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s, _ := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := s.Create(ctx, primitive.NewObjectID(), "", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.GetActive(ctx, created.ID); err != mongo.ErrNoDocuments {
		t.Errorf("expected session gone after delete, got %v", err)
	}
}

func TestDeleteExpired(t *testing.T) {
	s, db := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	live, err := s.Create(ctx, primitive.NewObjectID(), "", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	dead, err := s.Create(ctx, primitive.NewObjectID(), "", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	expire(t, db, dead.ID, time.Now().Add(-time.Hour))

	count, err := s.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 expired session removed, got %d", count)
	}
	if _, err := s.GetActive(ctx, live.ID); err != nil {
		t.Errorf("live session should survive the sweep: %v", err)
	}
}
