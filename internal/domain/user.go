package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the owner of workout entries.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"` // Unique, embedded in export file names
	Email        string             `bson:"email" json:"email"`       // Unique
	PasswordHash string             `bson:"passwordHash" json:"-"`    // Never expose this via JSON
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
