// Package main implements the entry point for the EcoFinds API server,
// a classifieds marketplace backend serving listings, categories,
// search and image uploads over JSON HTTP.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/ecofinds/ecofinds-api/internal/config"
	"github.com/ecofinds/ecofinds-api/internal/platform/logger"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components:
// logging, the database connection, migrations, seed data, stores,
// services and handlers.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"upload_dir", cfg.Upload.Dir)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	return app, nil
}
