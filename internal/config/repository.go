package config

import (
	"worklog/internal/errors"
	"worklog/internal/logging"
	"worklog/internal/repository/sqlite"
)

// CreateRepository opens the configured database file.
func CreateRepository(config *Config, logger *logging.Logger) (sqlite.Repository, error) {
	repo, err := sqlite.NewWithConfig(config.GetDatabasePath(), config, sqlite.WithLogger(logger))
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeDatabase, "failed to initialize database").
			WithContext("path", config.GetDatabasePath())
	}
	return repo, nil
}

// NewLogger builds the application logger from the configured level.
// Verbose forces debug.
func NewLogger(config *Config) *logging.Logger {
	logConfig := logging.DefaultConfig()
	logConfig.Level = logging.ParseLevel(config.Application.LogLevel)
	if config.Application.Verbose {
		logConfig.Level = logging.ParseLevel("debug")
	}
	return logging.New(logConfig)
}
