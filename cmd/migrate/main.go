package main

import (
	"log"
	"os"

	"erp-agent-nexus/internal/model"
	"erp-agent-nexus/pkg/database"

	"github.com/joho/godotenv"
)

// Creates the kv_entries table used by STORAGE_BACKEND=postgres. The server
// also migrates on start; this is for provisioning ahead of deploys.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Running AutoMigrate for kv_entries...")
	if err := db.AutoMigrate(&model.KeyValueEntry{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
