package main

import (
	"context"
	"flag"
	"log"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lachuoi/mstd-random-restaurant/internal/config"
)

func main() {
	once := flag.Bool("once", false, "run a single pipeline pass and exit (cron-style hosting)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger) // Set as default logger for the application

	// Create app
	app := NewApp(logger, cfg)

	if *once {
		if err := cfg.Validate(); err != nil {
			logger.Error("invalid configuration", "error", err)
			log.Fatal(err)
		}
		if _, err := app.orchestrator.Run(context.Background(), uuid.NewString()); err != nil {
			logger.Error("pipeline run failed", "error", err)
			log.Fatal(err)
		}
		return
	}

	// Start trigger server
	logger.Info("starting server", "addr", cfg.GetServerAddr())
	if err := app.Run(cfg.GetServerAddr()); err != nil {
		logger.Error("server failed", "error", err)
		log.Fatal(err)
	}
}
