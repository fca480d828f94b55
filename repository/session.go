package repository

import (
	"context"
	"os"

	"noteshare/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SessionRepo struct {
	MongoCollection *mongo.Collection
}

func GetSessionRepo(client *mongo.Client) *SessionRepo {
	return &SessionRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("sessions"),
	}
}

func (r *SessionRepo) CreateSession(ctx context.Context, session *model.Session) error {
	_, err := r.MongoCollection.InsertOne(ctx, session)
	return err
}

func (r *SessionRepo) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	var session model.Session
	err := r.MongoCollection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepo) UpdateSession(ctx context.Context, session *model.Session) error {
	result, err := r.MongoCollection.ReplaceOne(ctx,
		bson.M{"session_id": session.SessionID}, session)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SessionRepo) CountActiveSessions(ctx context.Context, userID string) (int, error) {
	count, err := r.MongoCollection.CountDocuments(ctx,
		bson.M{"user_id": userID, "is_active": true})
	return int(count), err
}

// EndLeastActiveSession deactivates the session with the oldest
// last-activity time, enforcing the per-user session cap.
func (r *SessionRepo) EndLeastActiveSession(ctx context.Context, userID string) error {
	var session model.Session
	opts := options.FindOne().SetSort(bson.D{{Key: "last_activity_at", Value: 1}})

	err := r.MongoCollection.FindOne(ctx,
		bson.M{"user_id": userID, "is_active": true}, opts).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return err
	}

	_, err = r.MongoCollection.UpdateOne(ctx,
		bson.M{"session_id": session.SessionID},
		bson.M{"$set": bson.M{"is_active": false}})
	return err
}
