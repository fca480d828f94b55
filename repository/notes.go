package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"noteshare/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(client *mongo.Client) *NotesRepo {
	return &NotesRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("notes"),
	}
}

// CreateNote creates a new note
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	if note.UserID == "" {
		return errors.New("user ID is required")
	}

	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt

	_, err := r.MongoCollection.InsertOne(ctx, note)
	return err
}

// GetUserNotes retrieves all notes for a user, newest first
func (r *NotesRepo) GetUserNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notes := []*model.Note{}
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNote retrieves a specific note owned by the user
func (r *NotesRepo) GetNote(ctx context.Context, noteID, userID string) (*model.Note, error) {
	var note model.Note
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": noteID, "user_id": userID}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// UpdateNote replaces the mutable fields of a note owned by the user
// and returns the updated document.
func (r *NotesRepo) UpdateNote(ctx context.Context, noteID, userID string, updates *model.Note) (*model.Note, error) {
	filter := bson.M{
		"_id":     noteID,
		"user_id": userID,
	}

	update := bson.M{
		"$set": bson.M{
			"title":      updates.Title,
			"content":    updates.Content,
			"image_url":  updates.ImageURL,
			"is_public":  updates.IsPublic,
			"updated_at": time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	return r.GetNote(ctx, noteID, userID)
}

// DeleteNote deletes a specific note owned by the user
func (r *NotesRepo) DeleteNote(ctx context.Context, noteID, userID string) error {
	filter := bson.M{
		"_id":     noteID,
		"user_id": userID,
	}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetPublicNotes retrieves the sharing feed: every note flagged public,
// across all users, newest first.
func (r *NotesRepo) GetPublicNotes(ctx context.Context) ([]*model.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"is_public": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notes := []*model.Note{}
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetPublicNote retrieves a single note only if it is public.
func (r *NotesRepo) GetPublicNote(ctx context.Context, noteID string) (*model.Note, error) {
	var note model.Note
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": noteID, "is_public": true}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}
