package utils

import (
	"context"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the process-wide MongoDB client. It stays nil when
// MONGO_URI is unset and the server falls back to the in-memory store.
var MongoClient *mongo.Client

// InitMongoClient connects to MongoDB using MONGO_URI. Returns false
// when no URI is configured.
func InitMongoClient() bool {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		return false
	}

	clientOptions := options.Client().ApplyURI(mongoURI)
	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	MongoClient = client
	return true
}
