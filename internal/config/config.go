package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rewired-gh/riskwatch/internal/staff"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Fixtures  FixturesConfig  `mapstructure:"fixtures"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Staff     StaffConfig     `mapstructure:"staff"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds HTTP API configuration
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	Name         string        `mapstructure:"name"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// StorageConfig selects the customer record store
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	DBPath string `mapstructure:"db_path"`
}

// FixturesConfig controls the seeded population
type FixturesConfig struct {
	SyntheticCount int    `mapstructure:"synthetic_count"`
	Seed           uint64 `mapstructure:"seed"` // 0 = time-based
}

// DashboardConfig tunes the dashboard views
type DashboardConfig struct {
	LoadDelay             time.Duration `mapstructure:"load_delay"`
	CustomersPageSize     int           `mapstructure:"customers_page_size"`
	AlertsPageSize        int           `mapstructure:"alerts_page_size"`
	InterventionsPageSize int           `mapstructure:"interventions_page_size"`
	ReportArchiveSize     int           `mapstructure:"report_archive_size"`
}

// StaffConfig is the analyst directory. Employees with rotation set receive
// customers by round-robin assignment.
type StaffConfig struct {
	Employees []staff.Employee `mapstructure:"employees"`
	Teams     []staff.Team     `mapstructure:"teams"`
}

// TelegramConfig holds Telegram notification configuration
type TelegramConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	Enabled        bool          `mapstructure:"enabled"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
// An empty path skips the file and uses defaults plus environment.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// RISKWATCH_STORAGE_DB_PATH overrides storage.db_path, and so on
	v.SetEnvPrefix("RISKWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.name", "riskwatch")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")

	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.db_path", "") // empty = $TMPDIR/riskwatch/data.db

	v.SetDefault("fixtures.synthetic_count", 88)
	v.SetDefault("fixtures.seed", 0)

	v.SetDefault("dashboard.load_delay", "0s")
	v.SetDefault("dashboard.customers_page_size", 8)
	v.SetDefault("dashboard.alerts_page_size", 5)
	v.SetDefault("dashboard.interventions_page_size", 6)
	v.SetDefault("dashboard.report_archive_size", 64)

	v.SetDefault("staff.employees", staff.DefaultEmployees())
	v.SetDefault("staff.teams", staff.DefaultTeams())

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}

	if c.Storage.Driver != DriverSQLite && c.Storage.Driver != DriverMemory {
		return fmt.Errorf("storage.driver must be one of: sqlite, memory")
	}

	if c.Fixtures.SyntheticCount < 0 || c.Fixtures.SyntheticCount > 987 {
		return fmt.Errorf("fixtures.synthetic_count must be between 0 and 987")
	}

	if c.Dashboard.LoadDelay < 0 || c.Dashboard.LoadDelay > 10*time.Second {
		return fmt.Errorf("dashboard.load_delay must be between 0 and 10s")
	}
	if c.Dashboard.CustomersPageSize < 1 || c.Dashboard.AlertsPageSize < 1 || c.Dashboard.InterventionsPageSize < 1 {
		return fmt.Errorf("dashboard page sizes must be at least 1")
	}
	if c.Dashboard.ReportArchiveSize < 1 {
		return fmt.Errorf("dashboard.report_archive_size must be at least 1")
	}

	if err := staff.Validate(c.Staff.Employees, c.Staff.Teams); err != nil {
		return fmt.Errorf("invalid staff: %w", err)
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
