package calsync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/medtrack/medtrack/internal/metrics"
	"github.com/medtrack/medtrack/internal/tracker"
)

// Config holds sync runner configuration
type Config struct {
	Interval time.Duration // Time between auto-sync attempts
}

// Runner periodically pushes the schedule to the calendar provider while
// auto-sync is enabled in settings. Toggling the preference takes effect on
// the next tick without restarting the runner.
type Runner struct {
	config   Config
	tracker  *tracker.Tracker
	provider tracker.CalendarSyncer
	logger   *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	running  bool
	mu       sync.RWMutex
}

// NewRunner creates a new sync runner
func NewRunner(config Config, tr *tracker.Tracker, provider tracker.CalendarSyncer, logger *zap.Logger) *Runner {
	ctx, cancel := context.WithCancel(context.Background())

	if config.Interval <= 0 {
		config.Interval = 15 * time.Minute
	}

	return &Runner{
		config:   config,
		tracker:  tr,
		provider: provider,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the sync runner
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return fmt.Errorf("sync runner already running")
	}

	r.running = true
	r.wg.Add(1)
	go r.run()

	return nil
}

// Stop stops the sync runner and waits for an in-flight sync to finish.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
	r.logger.Info("Sync runner stopped")
}

// IsRunning returns whether the runner is active
func (r *Runner) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.running
}

// run is the main loop
func (r *Runner) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.syncIfEnabled()
		}
	}
}

// syncIfEnabled runs one sync when both the integration and auto-sync are on.
func (r *Runner) syncIfEnabled() {
	settings := r.tracker.GetSettings()
	if !settings.CalendarPreferences.Enabled || !settings.CalendarPreferences.AutoSync {
		return
	}

	ctx, cancel := context.WithTimeout(r.ctx, 30*time.Second)
	defer cancel()

	syncedAt, err := r.tracker.SyncCalendar(ctx, r.provider)
	metrics.RecordSync(err == nil)
	if err != nil {
		r.logger.Warn("Auto-sync failed", zap.Error(err))
		return
	}

	r.logger.Info("Auto-sync completed", zap.Time("synced_at", syncedAt))
}
