package tracker

import (
	"context"
	"time"

	"github.com/medtrack/medtrack/internal/errors"
	"go.uber.org/zap"
)

// CalendarSyncer pushes the schedule to an external calendar. The shipped
// implementation is a mock; see the calsync package.
type CalendarSyncer interface {
	SyncNow(ctx context.Context) error
}

// GetSettings returns a copy of the current preferences.
func (t *Tracker) GetSettings() Settings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copySettings(t.settings)
}

// UpdateSettings merges the non-nil patch fields and persists the result.
func (t *Tracker) UpdateSettings(patch SettingsPatch) Settings {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := &t.settings
	if patch.PatientName != nil {
		s.PatientName = *patch.PatientName
	}
	if patch.GoogleAccount != nil {
		acct := *patch.GoogleAccount
		s.GoogleAccount = &acct
	}
	if patch.CalendarPreferences != nil {
		s.CalendarPreferences = *patch.CalendarPreferences
	}
	if patch.NotificationsEnabled != nil {
		s.NotificationsEnabled = *patch.NotificationsEnabled
	}
	if patch.Sound != nil {
		s.Sound = *patch.Sound
	}
	if patch.ReminderMinutes != nil {
		s.ReminderMinutes = *patch.ReminderMinutes
	}
	if patch.Theme != nil {
		s.Theme = *patch.Theme
	}
	if patch.DefaultUnit != nil {
		s.DefaultUnit = *patch.DefaultUnit
	}

	t.persistSettings()
	return copySettings(t.settings)
}

// ConnectGoogleAccount links the mocked account and switches calendar sync on.
func (t *Tracker) ConnectGoogleAccount(acct GoogleAccount) Settings {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.settings.GoogleAccount = &acct
	t.settings.CalendarPreferences.Enabled = true
	t.persistSettings()

	t.logger.Info("Google account connected", zap.String("email", acct.Email))
	return copySettings(t.settings)
}

// DisconnectGoogleAccount unlinks the account and disables calendar sync.
// The last sync time is kept for display.
func (t *Tracker) DisconnectGoogleAccount() Settings {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.settings.GoogleAccount = nil
	t.settings.CalendarPreferences.Enabled = false
	t.persistSettings()

	t.logger.Info("Google account disconnected")
	return copySettings(t.settings)
}

// SyncCalendar runs one sync through the provider. The provider call happens
// outside the engine mutex so a slow sync never blocks dose logging. Only the
// last-sync timestamp changes on success; medication and log state never do.
func (t *Tracker) SyncCalendar(ctx context.Context, syncer CalendarSyncer) (time.Time, error) {
	t.mu.Lock()
	enabled := t.settings.CalendarPreferences.Enabled
	t.mu.Unlock()

	if !enabled {
		return time.Time{}, errors.ErrSyncDisabled
	}

	if err := syncer.SyncNow(ctx); err != nil {
		t.logger.Warn("Calendar sync failed", zap.Error(err))
		return time.Time{}, err
	}

	syncedAt := t.now()

	t.mu.Lock()
	t.settings.LastSync = &syncedAt
	t.persistSettings()
	t.mu.Unlock()

	t.logger.Info("Calendar sync completed", zap.Time("synced_at", syncedAt))
	return syncedAt, nil
}

func copySettings(s Settings) Settings {
	if s.GoogleAccount != nil {
		acct := *s.GoogleAccount
		s.GoogleAccount = &acct
	}
	if s.LastSync != nil {
		ts := *s.LastSync
		s.LastSync = &ts
	}
	return s
}
