package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/promptvault-dev/promptvault/db"
	"github.com/promptvault-dev/promptvault/internal/auth"
	"github.com/promptvault-dev/promptvault/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	dbPath := os.Getenv("DATABASE_PATH")

	if dbPath == "" {
		dbPath = "promptvault.db"
	}

	database, err := db.Connect(dbPath)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	defer func() {
		if err := db.Close(database); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	r := router.NewRouter(database)

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
