// Package main implements the entry point for the Muse Kitchen API
// server, which turns multi-modal kitchen captures into structured
// recipes via Gemini and keeps a persistent cookbook history.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/musekitchen/muse-api/internal/config"
	"github.com/musekitchen/muse-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, sets up logging and dependencies, and starts
// the HTTP server. Split out of main so failures return errors instead
// of exiting directly.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_configured", cfg.Database.URL != "",
		"image_enrichment", cfg.LLM.EnrichImages)

	ctx := context.Background()

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if db != nil {
		if err := runMigrations(ctx, db, appLogger); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}

	return nil
}
