package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ServerConfig points the client at its calendar API instance.
type ServerConfig struct {
	// BaseURL is the root URL of the API server, without a trailing slash.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Theme is "auto", "dark", or "light".
	Theme string `mapstructure:"theme" yaml:"theme"`

	// RefreshIntervalSec is how often the background refresher refetches
	// the assessment list.
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec" yaml:"refresh_interval_sec"`
}

// NotificationConfig holds defaults for simulated reminders.
type NotificationConfig struct {
	// DefaultDaysBefore is applied to assessments the client has not seen
	// before. Must be one of DaysBeforeOptions.
	DefaultDaysBefore int `mapstructure:"default_days_before" yaml:"default_days_before"`
}

// AppConfig is the top-level client configuration.
type AppConfig struct {
	Server        ServerConfig       `mapstructure:"server" yaml:"server"`
	Display       DisplayConfig      `mapstructure:"display" yaml:"display"`
	Notifications NotificationConfig `mapstructure:"notifications" yaml:"notifications"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/assessment-calendar/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "assessment-calendar", "config.yaml")
}

// DefaultDataPath returns the default path for the local notes database,
// located at ~/.local/share/assessment-calendar/local.db.
func DefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "local.db")
	}
	return filepath.Join(home, ".local", "share", "assessment-calendar", "local.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			BaseURL: "http://localhost:3000",
		},
		Display: DisplayConfig{
			Theme:              "auto",
			RefreshIntervalSec: 120,
		},
		Notifications: NotificationConfig{
			DefaultDaysBefore: DefaultDaysBefore,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("server.base_url", "http://localhost:3000")
	v.SetDefault("display.theme", "auto")
	v.SetDefault("display.refresh_interval_sec", 120)
	v.SetDefault("notifications.default_days_before", DefaultDaysBefore)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if !validDaysBefore(cfg.Notifications.DefaultDaysBefore) {
		cfg.Notifications.DefaultDaysBefore = DefaultDaysBefore
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("server", cfg.Server)
	v.Set("display", cfg.Display)
	v.Set("notifications", cfg.Notifications)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

func validDaysBefore(d int) bool {
	for _, opt := range DaysBeforeOptions {
		if d == opt {
			return true
		}
	}
	return false
}
