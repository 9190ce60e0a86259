// Package app wires the tracker, storage, calendar sync and HTTP API into a
// running daemon.
package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/medtrack/medtrack/internal/api"
	"github.com/medtrack/medtrack/internal/calsync"
	"github.com/medtrack/medtrack/internal/config"
	"github.com/medtrack/medtrack/internal/store"
	"github.com/medtrack/medtrack/internal/tracker"
)

type App struct {
	Config     *config.Config
	Store      *store.Store
	Tracker    *tracker.Tracker
	Logger     *zap.Logger
	SyncRunner *calsync.Runner
	Version    string
}

func New(cfg *config.Config, st *store.Store, tr *tracker.Tracker, logger *zap.Logger, version string) *App {
	return &App{
		Config:  cfg,
		Store:   st,
		Tracker: tr,
		Logger:  logger,
		Version: version,
	}
}

// RunServer starts the HTTP API and the auto-sync runner, then blocks until
// SIGINT or SIGTERM.
func (app *App) RunServer() {
	provider := calsync.NewMockGoogle(
		time.Duration(app.Config.Sync.DelayMillis)*time.Millisecond,
		app.Logger,
	)

	app.SyncRunner = calsync.NewRunner(calsync.Config{
		Interval: time.Duration(app.Config.Sync.IntervalMinutes) * time.Minute,
	}, app.Tracker, provider, app.Logger)

	if err := app.SyncRunner.Start(); err != nil {
		app.Logger.Error("Failed to start sync runner", zap.Error(err))
	} else {
		app.Logger.Info("Sync runner started",
			zap.Int("interval_minutes", app.Config.Sync.IntervalMinutes))
	}

	server := api.New(app.Config, app.Tracker, provider, app.Logger)

	go func() {
		if err := server.Start(); err != nil {
			app.Logger.Fatal("Server error", zap.Error(err))
		}
	}()

	app.Logger.Info("Server started",
		zap.String("address", app.Config.Server.Address),
		zap.Int("port", app.Config.Server.Port),
		zap.String("url", fmt.Sprintf("http://localhost:%d", app.Config.Server.Port)),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info("Shutting down...")

	if app.SyncRunner != nil {
		app.SyncRunner.Stop()
	}

	if err := server.Shutdown(); err != nil {
		app.Logger.Error("Server shutdown error", zap.Error(err))
	}

	if app.Store != nil {
		if err := app.Store.Close(); err != nil {
			app.Logger.Error("Store close error", zap.Error(err))
		}
	}
}
