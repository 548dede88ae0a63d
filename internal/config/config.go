package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"worklog/internal/logging"
)

// Config holds all configuration options for worklog.
type Config struct {
	Database    DatabaseConfig
	Report      ReportConfig
	Validation  ValidationConfig
	Display     DisplayConfig
	Application ApplicationConfig
}

type DatabaseConfig struct {
	Dir          string        `env:"WL_DB_DIR"`
	Filename     string        `env:"WL_DB_FILENAME"`
	QueryTimeout time.Duration `env:"WL_DB_QUERY_TIMEOUT"`
}

// ReportConfig drives the reporting engine.
type ReportConfig struct {
	StartOfWeek  int    `env:"WL_REPORT_START_OF_WEEK"` // 0 = Sunday ... 6 = Saturday
	MonthlyLimit int    `env:"WL_REPORT_MONTHLY_LIMIT"`
	WeeklyLimit  int    `env:"WL_REPORT_WEEKLY_LIMIT"`
	Timezone     string `env:"WL_REPORT_TIMEZONE"`
}

type ValidationConfig struct {
	TaskLabelMaxLength int           `env:"WL_VALIDATION_TASK_LABEL_MAX"`
	MaxDuration        time.Duration `env:"WL_VALIDATION_MAX_DURATION"`
}

type DisplayConfig struct {
	Format string `env:"WL_DISPLAY_FORMAT"`
}

type ApplicationConfig struct {
	Timeout  time.Duration `env:"WL_APP_TIMEOUT"`
	Verbose  bool          `env:"WL_APP_VERBOSE"`
	LogLevel string        `env:"WL_LOG_LEVEL"`
}

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// NewConfig creates a configuration with defaults.
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Dir:          filepath.Join(homeDir, ".worklog"),
			Filename:     "worklog.db",
			QueryTimeout: 10 * time.Second,
		},
		Report: ReportConfig{
			StartOfWeek:  int(time.Monday),
			MonthlyLimit: 12,
			WeeklyLimit:  12,
			Timezone:     "Local",
		},
		Validation: ValidationConfig{
			TaskLabelMaxLength: 255,
			MaxDuration:        24 * time.Hour,
		},
		Display: DisplayConfig{
			Format: FormatTable,
		},
		Application: ApplicationConfig{
			Timeout:  60 * time.Second,
			LogLevel: "info",
		},
	}
}

func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// Location resolves Report.Timezone. An unknown zone falls back to time.Local.
func (c *Config) Location() *time.Location {
	switch c.Report.Timezone {
	case "", "Local":
		return time.Local
	}
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// LoadFromEnvironment overrides the current values with WL_ variables.
// Unparseable values are ignored.
func (c *Config) LoadFromEnvironment() error {
	if dir := os.Getenv("WL_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("WL_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("WL_DB_QUERY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.QueryTimeout = d
		}
	}

	if sow := os.Getenv("WL_REPORT_START_OF_WEEK"); sow != "" {
		if n, err := strconv.Atoi(sow); err == nil {
			c.Report.StartOfWeek = n
		}
	}
	if limit := os.Getenv("WL_REPORT_MONTHLY_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			c.Report.MonthlyLimit = n
		}
	}
	if limit := os.Getenv("WL_REPORT_WEEKLY_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			c.Report.WeeklyLimit = n
		}
	}
	if tz := os.Getenv("WL_REPORT_TIMEZONE"); tz != "" {
		c.Report.Timezone = tz
	}

	if maxLen := os.Getenv("WL_VALIDATION_TASK_LABEL_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.TaskLabelMaxLength = n
		}
	}
	if maxDur := os.Getenv("WL_VALIDATION_MAX_DURATION"); maxDur != "" {
		if d, err := time.ParseDuration(maxDur); err == nil {
			c.Validation.MaxDuration = d
		}
	}

	if format := os.Getenv("WL_DISPLAY_FORMAT"); format != "" {
		c.Display.Format = format
	}

	if timeout := os.Getenv("WL_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("WL_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}
	if level := os.Getenv("WL_LOG_LEVEL"); level != "" {
		c.Application.LogLevel = level
	}

	return nil
}

// Validate returns the first invalid field as a *ConfigError.
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	if c.Report.StartOfWeek < 0 || c.Report.StartOfWeek > 6 {
		return &ConfigError{Field: "report.start_of_week", Message: "start of week must be between 0 (Sunday) and 6 (Saturday)"}
	}
	if c.Report.MonthlyLimit < 1 {
		return &ConfigError{Field: "report.monthly_limit", Message: "monthly limit must be at least 1"}
	}
	if c.Report.WeeklyLimit < 1 {
		return &ConfigError{Field: "report.weekly_limit", Message: "weekly limit must be at least 1"}
	}
	switch c.Report.Timezone {
	case "", "Local":
	default:
		if _, err := time.LoadLocation(c.Report.Timezone); err != nil {
			return &ConfigError{Field: "report.timezone", Message: "unknown time zone " + c.Report.Timezone}
		}
	}

	if c.Validation.TaskLabelMaxLength < 1 {
		return &ConfigError{Field: "validation.task_label_max_length", Message: "task label maximum length must be at least 1"}
	}
	if c.Validation.MaxDuration <= 0 {
		return &ConfigError{Field: "validation.max_duration", Message: "max duration must be positive"}
	}

	if c.Display.Format != FormatTable && c.Display.Format != FormatJSON {
		return &ConfigError{Field: "display.format", Message: "format must be table or json"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	if !logging.ValidLevel(c.Application.LogLevel) {
		return &ConfigError{Field: "application.log_level", Message: "log level must be debug, info, warn or error"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
