package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waitlist/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helpers for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user record directly, bypassing the upsert path.
func (f *Fixtures) CreateUser(ctx context.Context, email, fullName, provider string) models.User {
	f.t.Helper()

	u := models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		FullName:     fullName,
		Provider:     provider,
		RegisteredAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CountUsers returns the number of user records matching email, for
// duplicate-detection assertions.
func (f *Fixtures) CountUsers(ctx context.Context, email string) int64 {
	f.t.Helper()

	n, err := f.db.Collection("users").CountDocuments(ctx, map[string]any{"email": email})
	if err != nil {
		f.t.Fatalf("failed to count users: %v", err)
	}
	return n
}
