package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/medtrack/medtrack/internal/config"
	"github.com/medtrack/medtrack/internal/tracker"
)

type Server struct {
	app     *fiber.App
	config  *config.Config
	tracker *tracker.Tracker
	syncer  tracker.CalendarSyncer
	logger  *zap.Logger
}

// createMedicationRequest mirrors the medication fields a client may set.
type createMedicationRequest struct {
	Name         string   `json:"name"`
	Dosage       float64  `json:"dosage"`
	Unit         string   `json:"unit"`
	Form         string   `json:"type"`
	Inventory    int      `json:"inventory"`
	Times        []string `json:"times"`
	Instructions string   `json:"instructions"`
	Notes        string   `json:"notes"`
	Color        string   `json:"color"`
}

// logDoseRequest records the outcome of one dose slot.
type logDoseRequest struct {
	MedicationID  string `json:"medication_id"`
	ScheduledTime string `json:"scheduled_time"`
	Status        string `json:"status"`
}

type connectGoogleRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}
