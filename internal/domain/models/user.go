// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a waitlist signup. One record exists per distinct email; the
// email is the natural key for every lookup and upsert.
//
// RegisteredAt is set once when the record is first created and never
// updated afterward, regardless of how many upserts follow.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email      string             `bson:"email" json:"email"`
	FullName   string             `bson:"full_name,omitempty" json:"fullName,omitempty"`
	Country    string             `bson:"country,omitempty" json:"country,omitempty"`
	Profession string             `bson:"profession,omitempty" json:"profession,omitempty"`
	Source     string             `bson:"source,omitempty" json:"source,omitempty"`

	// Provider records how the record was created or last touched by an
	// identity assertion: "local", "google", or "linkedin". A later login
	// through a different provider overwrites it.
	Provider string `bson:"provider" json:"provider"`

	RegisteredAt time.Time `bson:"registered_at" json:"registeredAt"`
}
