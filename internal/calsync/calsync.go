// Package calsync provides the simulated Google Calendar integration: a mock
// provider that stands in for the real API and a background runner that
// periodically syncs when auto-sync is on.
package calsync

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultSyncDelay approximates a round trip to a calendar API.
const DefaultSyncDelay = 1500 * time.Millisecond

// MockGoogle simulates the Google Calendar API. It never opens a network
// connection; a sync is a cancellable wait.
type MockGoogle struct {
	delay  time.Duration
	logger *zap.Logger
}

// NewMockGoogle creates the mock provider. A non-positive delay uses
// DefaultSyncDelay.
func NewMockGoogle(delay time.Duration, logger *zap.Logger) *MockGoogle {
	if delay <= 0 {
		delay = DefaultSyncDelay
	}
	return &MockGoogle{delay: delay, logger: logger}
}

// SyncNow simulates pushing the schedule to the calendar. It honors context
// cancellation mid-flight.
func (m *MockGoogle) SyncNow(ctx context.Context) error {
	m.logger.Debug("Simulated calendar sync started", zap.Duration("delay", m.delay))

	timer := time.NewTimer(m.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
