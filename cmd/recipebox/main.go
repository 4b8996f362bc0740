package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/recipebox-dev/recipebox/db"
	"github.com/recipebox-dev/recipebox/internal/auth"
	"github.com/recipebox-dev/recipebox/internal/config"
	"github.com/recipebox-dev/recipebox/internal/router"
	"github.com/recipebox-dev/recipebox/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := auth.InitJWTSecret(cfg.JWTSecret); err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := storage.Init(cfg.MediaRoot); err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}

	r := router.NewRouter(cfg.AllowedOrigins)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
