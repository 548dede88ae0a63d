package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "worklog.db", cfg.Database.Filename)
	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 1, cfg.Report.StartOfWeek)
	assert.Equal(t, 12, cfg.Report.MonthlyLimit)
	assert.Equal(t, 12, cfg.Report.WeeklyLimit)
	assert.Equal(t, 24*time.Hour, cfg.Validation.MaxDuration)
	assert.Equal(t, FormatTable, cfg.Display.Format)
	assert.Equal(t, "info", cfg.Application.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("WL_DB_DIR", "/tmp/wl")
	t.Setenv("WL_DB_FILENAME", "test.db")
	t.Setenv("WL_DB_QUERY_TIMEOUT", "3s")
	t.Setenv("WL_REPORT_START_OF_WEEK", "0")
	t.Setenv("WL_REPORT_MONTHLY_LIMIT", "6")
	t.Setenv("WL_REPORT_WEEKLY_LIMIT", "not-a-number")
	t.Setenv("WL_REPORT_TIMEZONE", "Europe/Paris")
	t.Setenv("WL_VALIDATION_MAX_DURATION", "12h")
	t.Setenv("WL_DISPLAY_FORMAT", "json")
	t.Setenv("WL_APP_VERBOSE", "true")
	t.Setenv("WL_LOG_LEVEL", "debug")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "/tmp/wl/test.db", cfg.GetDatabasePath())
	assert.Equal(t, 3*time.Second, cfg.GetQueryTimeout())
	assert.Equal(t, 0, cfg.Report.StartOfWeek)
	assert.Equal(t, 6, cfg.Report.MonthlyLimit)
	assert.Equal(t, 12, cfg.Report.WeeklyLimit, "unparseable values keep the default")
	assert.Equal(t, "Europe/Paris", cfg.Location().String())
	assert.Equal(t, 12*time.Hour, cfg.Validation.MaxDuration)
	assert.Equal(t, FormatJSON, cfg.Display.Format)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, "debug", cfg.Application.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"empty dir", func(c *Config) { c.Database.Dir = "" }, "database.dir"},
		{"empty filename", func(c *Config) { c.Database.Filename = "" }, "database.filename"},
		{"zero query timeout", func(c *Config) { c.Database.QueryTimeout = 0 }, "database.query_timeout"},
		{"start of week too high", func(c *Config) { c.Report.StartOfWeek = 7 }, "report.start_of_week"},
		{"start of week negative", func(c *Config) { c.Report.StartOfWeek = -1 }, "report.start_of_week"},
		{"monthly limit", func(c *Config) { c.Report.MonthlyLimit = 0 }, "report.monthly_limit"},
		{"weekly limit", func(c *Config) { c.Report.WeeklyLimit = 0 }, "report.weekly_limit"},
		{"unknown zone", func(c *Config) { c.Report.Timezone = "Mars/Olympus" }, "report.timezone"},
		{"task label length", func(c *Config) { c.Validation.TaskLabelMaxLength = 0 }, "validation.task_label_max_length"},
		{"max duration", func(c *Config) { c.Validation.MaxDuration = 0 }, "validation.max_duration"},
		{"format", func(c *Config) { c.Display.Format = "csv" }, "display.format"},
		{"timeout", func(c *Config) { c.Application.Timeout = 0 }, "application.timeout"},
		{"log level", func(c *Config) { c.Application.LogLevel = "chatty" }, "application.log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var configErr *ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tt.wantField, configErr.Field)
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, time.Local, cfg.Location())

	cfg.Report.Timezone = "UTC"
	assert.Equal(t, "UTC", cfg.Location().String())

	cfg.Report.Timezone = "Nowhere/Land"
	assert.Equal(t, time.Local, cfg.Location())
}
