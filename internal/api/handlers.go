package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/medtrack/medtrack/internal/errors"
	"github.com/medtrack/medtrack/internal/metrics"
	"github.com/medtrack/medtrack/internal/timekey"
	"github.com/medtrack/medtrack/internal/tracker"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"version":   "0.1.0",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleMetrics(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/plain; charset=utf-8")
	return c.SendString(metrics.Prometheus())
}

func (s *Server) handleMetricsJSON(c *fiber.Ctx) error {
	return c.JSON(metrics.GetSnapshot())
}

func (s *Server) handleListMedications(c *fiber.Ctx) error {
	return c.JSON(s.tracker.ListMedications())
}

func (s *Server) handleCreateMedication(c *fiber.Ctx) error {
	var req createMedicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	med, err := s.tracker.AddMedication(tracker.Medication{
		Name:         req.Name,
		Dosage:       req.Dosage,
		Unit:         tracker.DosageUnit(req.Unit),
		Form:         tracker.MedForm(req.Form),
		Inventory:    req.Inventory,
		Times:        req.Times,
		Instructions: req.Instructions,
		Notes:        req.Notes,
		Color:        req.Color,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	metrics.RecordMedicationCreated()
	return c.Status(201).JSON(med)
}

func (s *Server) handleGetMedication(c *fiber.Ctx) error {
	med, ok := s.tracker.GetMedication(c.Params("id"))
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "medication not found"})
	}
	return c.JSON(med)
}

func (s *Server) handleUpdateMedication(c *fiber.Ctx) error {
	var patch tracker.MedicationPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	med, err := s.tracker.UpdateMedication(c.Params("id"), patch)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(med)
}

func (s *Server) handleDeleteMedication(c *fiber.Ctx) error {
	if err := s.tracker.DeleteMedication(c.Params("id")); err != nil {
		return s.respondError(c, err)
	}
	metrics.RecordMedicationDeleted()
	return c.SendStatus(204)
}

func (s *Server) handleDoseHistory(c *fiber.Ctx) error {
	history := s.tracker.DoseHistory(c.Params("id"))
	if history == nil {
		history = []tracker.DoseLog{}
	}
	return c.JSON(history)
}

func (s *Server) handleLogForDay(c *fiber.Ctx) error {
	date, err := s.parseDate(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
	}

	log, ok := s.tracker.LogForSlot(c.Params("id"), date)
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "no dose logged for that day"})
	}
	return c.JSON(log)
}

func (s *Server) handleLogDose(c *fiber.Ctx) error {
	var req logDoseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	log, err := s.tracker.LogDose(req.MedicationID, req.ScheduledTime,
		tracker.DoseStatus(req.Status), time.Time{})
	if err != nil {
		return s.respondError(c, err)
	}

	metrics.RecordDose(log.Status == tracker.StatusTaken)
	return c.Status(201).JSON(log)
}

func (s *Server) handleTimeline(c *fiber.Ctx) error {
	date, err := s.parseDate(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
	}
	return c.JSON(s.tracker.Timeline(time.Now(), date))
}

func (s *Server) handleProgress(c *fiber.Ctx) error {
	date, err := s.parseDate(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
	}
	return c.JSON(fiber.Map{
		"date_key": timekey.DateKey(date),
		"progress": s.tracker.DailyProgress(date),
	})
}

func (s *Server) handleGetSettings(c *fiber.Ctx) error {
	return c.JSON(s.tracker.GetSettings())
}

func (s *Server) handleUpdateSettings(c *fiber.Ctx) error {
	var patch tracker.SettingsPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}
	return c.JSON(s.tracker.UpdateSettings(patch))
}

func (s *Server) handleConnectGoogle(c *fiber.Ctx) error {
	var req connectGoogleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}
	if req.Email == "" {
		return c.Status(400).JSON(fiber.Map{"error": "email is required"})
	}

	settings := s.tracker.ConnectGoogleAccount(tracker.GoogleAccount{
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
		Token:  "mock-token",
	})
	return c.JSON(settings)
}

func (s *Server) handleDisconnectGoogle(c *fiber.Ctx) error {
	return c.JSON(s.tracker.DisconnectGoogleAccount())
}

func (s *Server) handleSync(c *fiber.Ctx) error {
	syncedAt, err := s.tracker.SyncCalendar(c.Context(), s.syncer)
	metrics.RecordSync(err == nil)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"synced_at": syncedAt})
}

// parseDate reads the optional date query parameter as a local calendar day.
// Missing means today.
func (s *Server) parseDate(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

// respondError maps engine errors to HTTP statuses while keeping the error
// code visible to the client.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	status := 500

	switch errors.GetCode(err) {
	case "MED_001":
		status = 404
	case "MED_002", "MED_003", "TIME_001", "DOSE_001", "SYNC_001":
		status = 400
	default:
		s.logger.Error("Request failed", zap.Error(err))
	}

	appErr, ok := err.(*errors.AppError)
	if !ok {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(status).JSON(fiber.Map{"error": appErr.Message, "code": appErr.Code})
}
