package main

import (
	"log/slog"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/lachuoi/mstd-random-restaurant/internal/config"
	"github.com/lachuoi/mstd-random-restaurant/internal/discovery"
	"github.com/lachuoi/mstd-random-restaurant/internal/enrich"
	"github.com/lachuoi/mstd-random-restaurant/internal/pipeline"
	"github.com/lachuoi/mstd-random-restaurant/internal/publish"
)

// App encapsulates application dependencies
type App struct {
	engine       *gin.Engine
	logger       *slog.Logger
	cfg          *config.Config
	orchestrator *pipeline.Orchestrator

	// running guards against overlapping pipeline runs; the pipeline owns a
	// single Place aggregate per run and runs take minutes.
	running atomic.Bool
}

// NewApp creates a new application with injected dependencies
func NewApp(logger *slog.Logger, cfg *config.Config) *App {
	gin.SetMode(cfg.Server.GinMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	orchestrator := pipeline.New(logger,
		discovery.NewService(logger, cfg.Geodist.BaseURL, cfg.Google.APIKey),
		enrich.NewService(logger, cfg.Google.APIKey, cfg.Caption.BaseURL),
		publish.NewService(logger, cfg.Mastodon.BaseURL, cfg.Mastodon.AccessToken),
	)

	app := &App{
		engine:       engine,
		logger:       logger,
		cfg:          cfg,
		orchestrator: orchestrator,
	}

	logger.Info("application initialized")

	// Register routes
	app.registerRoutes()

	return app
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	return app.engine.Run(addr)
}
