// Package tracker implements the medication scheduling and adherence engine:
// the medication registry, the dose log book, the derived daily timeline and
// the inventory accounting that ties them together.
package tracker

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Keys of the persisted state documents.
const (
	keyMedications = "medtrack:medications"
	keyDoseLogs    = "medtrack:doselogs"
	keySettings    = "medtrack:settings"
)

// DefaultReminderHorizonMinutes is how far ahead an unlogged slot counts as
// "pending" rather than "future".
const DefaultReminderHorizonMinutes = 60

// DocStore is the persistence surface the tracker writes its three state
// documents through.
type DocStore interface {
	Put(key string, v interface{}) error
	Get(key string, out interface{}) (bool, error)
}

// Options tune engine behaviour.
type Options struct {
	// ReminderHorizonMinutes overrides the pending look-ahead window.
	ReminderHorizonMinutes int
}

// Tracker owns the process-wide state: medications, dose logs and settings.
// All mutations run under one mutex so readers never observe an inventory
// update without its matching log, or vice versa. Persistence happens after
// every successful mutation; a failed save keeps the in-memory state and is
// only logged.
type Tracker struct {
	mu       sync.Mutex
	meds     []Medication
	logs     []DoseLog
	settings Settings

	store   DocStore
	logger  *zap.Logger
	horizon int
	now     func() time.Time
}

// New creates a Tracker. A nil store keeps all state in memory only.
func New(store DocStore, logger *zap.Logger, opts Options) *Tracker {
	horizon := opts.ReminderHorizonMinutes
	if horizon <= 0 {
		horizon = DefaultReminderHorizonMinutes
	}

	return &Tracker{
		settings: DefaultSettings(),
		store:    store,
		logger:   logger,
		horizon:  horizon,
		now:      time.Now,
	}
}

// Load reads the persisted documents into memory. Missing documents leave
// the fresh-install defaults in place; a corrupted or unreadable document is
// an error so startup can refuse to clobber it.
func (t *Tracker) Load() error {
	if t.store == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.store.Get(keyMedications, &t.meds); err != nil {
		return err
	}
	if _, err := t.store.Get(keyDoseLogs, &t.logs); err != nil {
		return err
	}

	var saved Settings
	found, err := t.store.Get(keySettings, &saved)
	if err != nil {
		return err
	}
	if found {
		t.settings = saved
	}

	t.logger.Info("State loaded",
		zap.Int("medications", len(t.meds)),
		zap.Int("dose_logs", len(t.logs)),
	)
	return nil
}

// persist writes one document, favoring availability of the running session
// over durability: a failure is logged and swallowed.
func (t *Tracker) persist(key string, v interface{}) {
	if t.store == nil {
		return
	}
	if err := t.store.Put(key, v); err != nil {
		t.logger.Error("Failed to persist state document",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func (t *Tracker) persistMedications() { t.persist(keyMedications, t.meds) }
func (t *Tracker) persistLogs()        { t.persist(keyDoseLogs, t.logs) }
func (t *Tracker) persistSettings()    { t.persist(keySettings, t.settings) }
