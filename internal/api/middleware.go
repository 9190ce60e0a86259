package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/medtrack/medtrack/internal/metrics"
)

// requestMetrics counts every API request; the metrics endpoints themselves
// are excluded so scraping does not inflate the counters.
func (s *Server) requestMetrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.HasSuffix(c.Path(), "/metrics") {
			return c.Next()
		}

		err := c.Next()
		metrics.RecordRequest(err == nil && c.Response().StatusCode() < 400)
		return err
	}
}
