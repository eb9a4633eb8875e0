// Package indexes reconciles the indexes the stores rely on.
// EnsureAll is called at startup; every ensure call is idempotent and
// errors are aggregated so startup can fail fast with the full picture.
package indexes

import (
	"context"
	"errors"
	"strings"

	oauthstatestore "github.com/dalemusser/waitlist/internal/app/store/oauthstate"
	sessionstore "github.com/dalemusser/waitlist/internal/app/store/sessions"
	userstore "github.com/dalemusser/waitlist/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureAll creates the unique email index on users, the TTL index on
// sessions, and the state/TTL indexes on oauth_states.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := userstore.New(db).EnsureIndexes(ctx); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := sessionstore.New(db).EnsureIndexes(ctx); err != nil {
		problems = append(problems, "sessions: "+err.Error())
	}
	if err := oauthstatestore.New(db).EnsureIndexes(ctx); err != nil {
		problems = append(problems, "oauth_states: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
