package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Address)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60, cfg.Tracker.ReminderHorizonMinutes)
	assert.Equal(t, 1500, cfg.Sync.DelayMillis)
	assert.Equal(t, 15, cfg.Sync.IntervalMinutes)
}

func TestLoad_SetsStoragePaths(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load("", dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Storage.DataDir)
	assert.Equal(t, filepath.Join(dir, "badger"), cfg.Storage.BadgerPath)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "medtrack.yaml")
	content := "server:\n  port: 9090\ntracker:\n  reminder_horizon_minutes: 30\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Tracker.ReminderHorizonMinutes)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MEDTRACK_SERVER_PORT", "3000")

	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "medtrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: -1\n"), 0644))

	_, err := Load(path, dir)
	assert.Error(t, err)
}
