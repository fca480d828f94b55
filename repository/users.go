package repository

import (
	"context"
	"os"

	"noteshare/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func GetUserRepo(client *mongo.Client) *UserRepo {
	return &UserRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("users"),
	}
}

// CreateUser inserts a new account after checking both unique fields.
// The two lookups run before the insert so the caller can tell which
// field collided.
func (r *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"username": user.Username})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameTaken
	}

	count, err = r.MongoCollection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}

	_, err = r.MongoCollection.InsertOne(ctx, user)
	return err
}

// FindByLogin resolves an identifier that may be a username or an email.
func (r *UserRepo) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	var user model.User
	filter := bson.M{"$or": []bson.M{
		{"username": login},
		{"email": login},
	}}

	err := r.MongoCollection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) FindByID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// PublicIdentities resolves author attribution for the sharing feed in
// one query.
func (r *UserRepo) PublicIdentities(ctx context.Context, userIDs []string) (map[string]*model.PublicIdentity, error) {
	identities := make(map[string]*model.PublicIdentity, len(userIDs))
	if len(userIDs) == 0 {
		return identities, nil
	}

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*model.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	for _, user := range users {
		identities[user.UserID] = &model.PublicIdentity{
			Username: user.Username,
			Email:    user.Email,
		}
	}
	return identities, nil
}
