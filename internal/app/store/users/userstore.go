package userstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waitlist/internal/app/system/normalize"
	"github.com/dalemusser/waitlist/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrEmptyEmail is returned when an upsert is attempted with an email
	// that normalizes to the empty string.
	ErrEmptyEmail = errors.New("email is required")

	// ErrConflict is returned when a duplicate-key race persists after a
	// retry. Callers treat it as a store failure.
	ErrConflict = errors.New("conflicting concurrent write for this email")
)

// Store holds waitlist user records, one per unique email.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// EnsureIndexes creates the unique email index the upsert relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_users_email"),
	})
	return err
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertEmail creates the record for email if it does not exist and
// returns it either way. An existing record is returned unchanged, so
// repeated signups with the same address are idempotent.
func (s *Store) UpsertEmail(ctx context.Context, email string) (models.User, error) {
	return s.upsert(ctx, email, bson.M{})
}

// UpsertIdentity applies an identity assertion from an OAuth provider.
// The record's provider and full_name are overwritten with the
// assertion's values; a later login through a different provider for the
// same email lands on the same record.
func (s *Store) UpsertIdentity(ctx context.Context, email, fullName, provider string) (models.User, error) {
	if !models.ValidProvider(provider) {
		return models.User{}, fmt.Errorf("unknown provider %q", provider)
	}
	return s.upsert(ctx, email, bson.M{
		"full_name": normalize.Name(fullName),
		"provider":  provider,
	})
}

// Details holds the enrichment fields from the follow-up form.
type Details struct {
	FullName   string
	Country    string
	Profession string
	Source     string
}

// UpsertDetails writes the enrichment fields for email, creating the
// record if needed. All four fields are written as supplied: a field the
// caller left empty overwrites any stored value with empty.
func (s *Store) UpsertDetails(ctx context.Context, email string, d Details) (models.User, error) {
	return s.upsert(ctx, email, bson.M{
		"full_name":  normalize.Name(d.FullName),
		"country":    d.Country,
		"profession": d.Profession,
		"source":     d.Source,
	})
}

// upsert is the single write path: an atomic find-and-modify keyed by
// normalized email. Supplied fields are $set; identity fields (_id,
// email, registered_at, default provider) are only written on insert.
//
// Two concurrent upserts for an unseen email can both take the insert
// path; the unique email index makes the loser fail with a duplicate
// key, at which point the record exists and a single retry lands on the
// update path.
func (s *Store) upsert(ctx context.Context, email string, set bson.M) (models.User, error) {
	email = normalize.Email(email)
	if email == "" {
		return models.User{}, ErrEmptyEmail
	}

	// email itself comes from the filter's equality clause on insert.
	onInsert := bson.M{
		"_id":           primitive.NewObjectID(),
		"registered_at": time.Now().UTC(),
	}
	if _, ok := set["provider"]; !ok {
		onInsert["provider"] = models.ProviderLocal
	}

	update := bson.M{"$setOnInsert": onInsert}
	if len(set) > 0 {
		update["$set"] = set
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var u models.User
	err := s.c.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&u)
	if err != nil && wafflemongo.IsDup(err) {
		// Lost the insert race; the record exists now.
		err = s.c.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&u)
		if err != nil && wafflemongo.IsDup(err) {
			return models.User{}, ErrConflict
		}
	}
	if err != nil {
		return models.User{}, fmt.Errorf("upsert user %q: %w", email, err)
	}
	return u, nil
}
