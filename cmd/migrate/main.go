package main

import (
	"log"

	"gamelearn/internal/config"
	"gamelearn/internal/database"
	"gamelearn/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := database.RunMigrations(cfg.GetDSN(), "database/migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}
