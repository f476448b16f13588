package main

import (
	"log"
	"os"

	"github.com/forgeboard-dev/forgeboard/db"
	"github.com/forgeboard-dev/forgeboard/internal/auth"
	"github.com/forgeboard-dev/forgeboard/internal/handlers"
	"github.com/forgeboard-dev/forgeboard/internal/router"
	"github.com/forgeboard-dev/forgeboard/internal/services"
	"github.com/forgeboard-dev/forgeboard/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	gormDB, err := db.ConnectDatabase(os.Getenv("DATABASE_URL"))

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	projects := store.NewProjectStore(gormDB)
	users := store.NewUserStore(gormDB)
	mailer := services.NewMailerFromEnv()

	h := handlers.New(projects, users, mailer)
	r := router.NewRouter(h, users)

	port := os.Getenv("PORT")

	if port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
