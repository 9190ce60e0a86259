// Package api exposes the tracker over a local HTTP API.
package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/medtrack/medtrack/internal/config"
	"github.com/medtrack/medtrack/internal/tracker"
)

// New creates a new API server
func New(cfg *config.Config, tr *tracker.Tracker, syncer tracker.CalendarSyncer, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	s := &Server{
		app:     app,
		config:  cfg,
		tracker: tr,
		syncer:  syncer,
		logger:  logger,
	}

	s.setupRoutes()
	return s
}

// App returns the underlying fiber app. Used in tests.
func (s *Server) App() *fiber.App {
	return s.app
}
