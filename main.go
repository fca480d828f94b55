package main

import (
	"fmt"
	"log"
	"os"

	"noteshare/repository"
	"noteshare/services"
	"noteshare/storage"
	"noteshare/utils"
	"noteshare/ws"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env file not loaded: %v", err)
	}

	utils.InitValidator()
	utils.InitJWT()

	deps := Deps{}

	if utils.InitMongoClient() {
		deps.Users = repository.GetUserRepo(utils.MongoClient)
		deps.Notes = repository.GetNotesRepo(utils.MongoClient)
		deps.Sessions = repository.GetSessionRepo(utils.MongoClient)
		log.Println("Storage: MongoDB")
	} else {
		// No MONGO_URI configured; everything lives in memory and is
		// lost on restart. Fine for development, not for production.
		store := repository.NewMemoryStore()
		deps.Users = store
		deps.Notes = store
		deps.Sessions = store
		log.Println("Storage: in-memory (MONGO_URI not set)")
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err := services.NewSessionCache(redisURL)
		if err != nil {
			log.Fatalf("Failed to connect session cache: %v", err)
		}
		services.GlobalSessionCache = cache
		log.Println("Session cache: redis")
	}

	images, err := storage.NewImageStoreFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}
	if images != nil {
		deps.Images = images
		log.Println("Image store: S3")
	}

	hub := ws.NewHub()
	go hub.Run()
	deps.Hub = hub

	router := setupRouter(deps)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
