// Command migrate applies the schema to the configured database and exits.
// Useful for deployments that migrate before rolling the API.
package main

import (
	"log"

	"github.com/platebook/backend/config"
	"github.com/platebook/backend/internal/database"
	"github.com/platebook/backend/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if _, err := database.New(cfg, zlog); err != nil {
		zlog.Fatal("migration failed: " + err.Error())
	}

	zlog.Info("schema migrated")
}
