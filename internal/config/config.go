package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for medtrack
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Tracker TrackerConfig `mapstructure:"tracker"`
	Sync    SyncConfig    `mapstructure:"sync"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Address      string `mapstructure:"address"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

// StorageConfig holds database settings
type StorageConfig struct {
	DataDir    string `mapstructure:"data_dir"`
	BadgerPath string `mapstructure:"badger_path"`
}

// TrackerConfig holds scheduling engine settings
type TrackerConfig struct {
	ReminderHorizonMinutes int `mapstructure:"reminder_horizon_minutes"`
}

// SyncConfig holds calendar sync settings
type SyncConfig struct {
	DelayMillis     int `mapstructure:"delay_millis"`
	IntervalMinutes int `mapstructure:"interval_minutes"`
}

// Load loads configuration from file, env, and defaults
func Load(configPath, dataDir string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if dataDir == "" {
		dataDir = getDefaultDataDir()
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	v.Set("storage.data_dir", dataDir)
	v.Set("storage.badger_path", filepath.Join(dataDir, "badger"))

	if configPath == "" {
		configPath = filepath.Join(dataDir, "medtrack.yaml")
	}

	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Environment variables (MEDTRACK_SERVER_PORT, MEDTRACK_SYNC_INTERVAL_MINUTES, etc.)
	v.SetEnvPrefix("MEDTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)

	v.SetDefault("tracker.reminder_horizon_minutes", 60)

	v.SetDefault("sync.delay_millis", 1500)
	v.SetDefault("sync.interval_minutes", 15)
}

func getDefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "medtrack")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./data"
	}

	return filepath.Join(home, ".local", "share", "medtrack")
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	}
	if cfg.Tracker.ReminderHorizonMinutes <= 0 {
		return fmt.Errorf("tracker.reminder_horizon_minutes must be positive")
	}
	if cfg.Sync.IntervalMinutes <= 0 {
		return fmt.Errorf("sync.interval_minutes must be positive")
	}
	return nil
}
