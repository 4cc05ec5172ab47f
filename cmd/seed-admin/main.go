package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/playsnooker/backend/internal/config"
	"github.com/playsnooker/backend/internal/database"
	"golang.org/x/crypto/bcrypt"
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

	phone := os.Getenv("ADMIN_PHONE")
	if phone == "" {
		phone = "000000000000"
		log.Printf("Using default admin phone: %s", phone)
	}

	pin := os.Getenv("ADMIN_PIN")
	if pin == "" {
		pin = "0000"
		log.Printf("WARNING: Using default admin PIN. Set ADMIN_PIN env var in production!")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash PIN: %v", err)
	}

	_, err = db.Exec(
		`INSERT INTO players (phone_number, display_name, pin_hash, is_admin)
		 VALUES ($1, 'Admin', $2, TRUE)
		 ON CONFLICT (phone_number)
		 DO UPDATE SET pin_hash = EXCLUDED.pin_hash, is_admin = TRUE`,
		phone, string(hash))
	if err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}

	log.Printf("Admin account created/updated successfully (phone: %s)", phone)
}
