package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

// Loader builds a Config from defaults, an optional .env file, the
// environment and command line overrides, in that order.
type Loader struct {
	config   *Config
	envFiles []string
}

func NewLoader() *Loader {
	return &Loader{
		config:   NewConfig(),
		envFiles: []string{".env"},
	}
}

// WithEnvFiles replaces the dotenv files read by Load. Missing files are skipped.
func (l *Loader) WithEnvFiles(files ...string) *Loader {
	l.envFiles = files
	return l
}

// Load applies dotenv files and environment variables, then validates.
// Variables already present in the environment win over dotenv values.
func (l *Loader) Load() (*Config, error) {
	for _, file := range l.envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigError{Field: "env_file", Message: err.Error()}
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}
	if err := l.config.Validate(); err != nil {
		return nil, err
	}
	return l.config, nil
}

// LoadWithOverrides loads the configuration and applies flag overrides.
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ConfigOverrides holds command line flag overrides. Nil means unset.
type ConfigOverrides struct {
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration

	StartOfWeek  *int
	MonthlyLimit *int
	WeeklyLimit  *int
	Timezone     *string

	MaxDuration *time.Duration

	Format *string

	Timeout  *time.Duration
	Verbose  *bool
	LogLevel *string
}

func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}

	if overrides.StartOfWeek != nil {
		config.Report.StartOfWeek = *overrides.StartOfWeek
	}
	if overrides.MonthlyLimit != nil {
		config.Report.MonthlyLimit = *overrides.MonthlyLimit
	}
	if overrides.WeeklyLimit != nil {
		config.Report.WeeklyLimit = *overrides.WeeklyLimit
	}
	if overrides.Timezone != nil {
		config.Report.Timezone = *overrides.Timezone
	}

	if overrides.MaxDuration != nil {
		config.Validation.MaxDuration = *overrides.MaxDuration
	}

	if overrides.Format != nil {
		config.Display.Format = *overrides.Format
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
	if overrides.LogLevel != nil {
		config.Application.LogLevel = *overrides.LogLevel
	}
}
