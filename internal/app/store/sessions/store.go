// Package sessions persists server-side login sessions. The cookie only
// names a session; this collection decides whether it is still valid.
package sessions

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TTL is the fixed session lifetime, measured from creation (absolute,
// not sliding).
const TTL = 24 * time.Hour

// Session binds a client credential to a user record for TTL.
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	CreatedAt time.Time          `bson:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at"`
	IP        string             `bson:"ip,omitempty"`
	UserAgent string             `bson:"user_agent,omitempty"`
}

// Store manages session records.
type Store struct {
	c *mongo.Collection
}

// New creates a sessions Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("sessions")}
}

// EnsureIndexes creates the TTL and lookup indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// Automatic cleanup once expired
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("idx_sessions_ttl"),
		},
		// Session history per user
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_sessions_user"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create starts a new session for userID, expiring TTL from now.
func (s *Store) Create(ctx context.Context, userID primitive.ObjectID, ip, userAgent string) (Session, error) {
	now := time.Now().UTC()
	sess := Session{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(TTL),
		IP:        ip,
		UserAgent: userAgent,
	}
	if _, err := s.c.InsertOne(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// GetActive loads a session that has not yet expired.
// Returns mongo.ErrNoDocuments for a missing or expired session.
func (s *Store) GetActive(ctx context.Context, id primitive.ObjectID) (Session, error) {
	var sess Session
	err := s.c.FindOne(ctx, bson.M{
		"_id":        id,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&sess)
	return sess, err
}

// Delete removes a session (logout).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteExpired removes expired sessions. The TTL index normally does
// this; the sweeper calls it as a backup since TTL deletion can lag.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{
		"expires_at": bson.M{"$lt": time.Now().UTC()},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
