// Package main implements the entry point for the StudyBuddy API server,
// which handles users' notes, flashcards, and study sessions.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/studybuddy/studybuddy-api/internal/config"
	"github.com/studybuddy/studybuddy-api/internal/platform/logger"
	"github.com/studybuddy/studybuddy-api/internal/platform/postgres"
)

// main initializes configuration, logging, the database connection and all
// application dependencies, then starts the HTTP server.
func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// run performs startup and blocks until the server shuts down. Split from
// main so the deferred cleanup runs before the process exits.
func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"environment", cfg.Server.Environment,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := postgres.Migrate(ctx, db); err != nil {
		closeDatabase(db, appLogger)
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	appLogger.Info("database migrations applied")

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		closeDatabase(db, appLogger)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// closeDatabase closes the connection pool, logging rather than failing on
// error since it only runs on shutdown paths.
func closeDatabase(db interface{ Close() error }, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("error closing database connection", "error", err)
	}
}
