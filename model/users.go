package model

import "time"

type User struct {
	UserID    string    `bson:"user_id" json:"id"`
	Username  string    `bson:"username" json:"username"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// PublicIdentity is the author attribution attached to notes on the
// sharing feed. It never carries credentials.
type PublicIdentity struct {
	Username string `bson:"username" json:"username"`
	Email    string `bson:"email,omitempty" json:"email,omitempty"`
}
