package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/playsnooker/backend/internal/api"
	"github.com/playsnooker/backend/internal/config"
	"github.com/playsnooker/backend/internal/database"
	"github.com/playsnooker/backend/internal/game"
	"github.com/playsnooker/backend/internal/migrations"
	"github.com/playsnooker/backend/internal/redis"
	"github.com/playsnooker/backend/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations on start if requested
	if os.Getenv("MIGRATE_ON_START") == "true" {
		log.Println("Running DB migrations on startup...")
		if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	rdb, err := redis.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	// Match manager owns every live simulation; passed down explicitly.
	mgr := game.NewMatchManager(db, rdb, cfg)
	go mgr.StartExpiryChecker(context.Background())

	hub := ws.NewHub()
	ws.StartEventSubscriber(context.Background(), mgr, hub)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	api.SetupRoutes(router, db, mgr, hub, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting PlaySnooker server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
