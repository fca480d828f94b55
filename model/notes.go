package model

import "time"

type Note struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Title     string    `bson:"title" json:"title" binding:"required"`
	Content   string    `bson:"content" json:"content" binding:"required"`
	ImageURL  string    `bson:"image_url,omitempty" json:"image_url,omitempty"`
	IsPublic  bool      `bson:"is_public" json:"is_public"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
