package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func (s *Server) setupRoutes() {
	s.app.Use(recover.New())
	s.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PATCH, DELETE, OPTIONS",
	}))
	s.app.Use(s.requestMetrics())

	s.app.Get("/api/health", s.handleHealth)
	s.app.Get("/metrics", s.handleMetrics)
	s.app.Get("/api/metrics", s.handleMetricsJSON)

	api := s.app.Group("/api")

	api.Get("/medications", s.handleListMedications)
	api.Post("/medications", s.handleCreateMedication)
	api.Get("/medications/:id", s.handleGetMedication)
	api.Patch("/medications/:id", s.handleUpdateMedication)
	api.Delete("/medications/:id", s.handleDeleteMedication)
	api.Get("/medications/:id/history", s.handleDoseHistory)
	api.Get("/medications/:id/log", s.handleLogForDay)

	api.Post("/doses", s.handleLogDose)

	api.Get("/timeline", s.handleTimeline)
	api.Get("/progress", s.handleProgress)

	api.Get("/settings", s.handleGetSettings)
	api.Patch("/settings", s.handleUpdateSettings)
	api.Post("/settings/google", s.handleConnectGoogle)
	api.Delete("/settings/google", s.handleDisconnectGoogle)

	api.Post("/sync", s.handleSync)
}

// Start starts the server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Address, s.config.Server.Port)
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.app.ShutdownWithContext(ctx)
}
