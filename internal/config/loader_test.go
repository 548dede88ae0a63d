package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "worklog/internal/errors"
	"worklog/internal/logging"
	"worklog/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv removes keys for the duration of the test.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoader_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("WL_DB_DIR="+dir+"\nWL_REPORT_WEEKLY_LIMIT=8\nWL_REPORT_MONTHLY_LIMIT=4\n"), 0o600))

	clearEnv(t, "WL_DB_DIR", "WL_REPORT_WEEKLY_LIMIT")
	t.Setenv("WL_REPORT_MONTHLY_LIMIT", "9")

	cfg, err := NewLoader().WithEnvFiles(envFile).Load()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Database.Dir)
	assert.Equal(t, 8, cfg.Report.WeeklyLimit)
	assert.Equal(t, 9, cfg.Report.MonthlyLimit, "the environment wins over the dotenv file")
}

func TestLoader_MissingDotEnvIsIgnored(t *testing.T) {
	cfg, err := NewLoader().WithEnvFiles(filepath.Join(t.TempDir(), "absent.env")).Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoader_InvalidEnvironment(t *testing.T) {
	t.Setenv("WL_REPORT_START_OF_WEEK", "9")

	_, err := NewLoader().WithEnvFiles().Load()
	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "report.start_of_week", configErr.Field)
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	dir := t.TempDir()
	sunday := 0
	format := FormatJSON
	timeout := 2 * time.Second
	verbose := true

	cfg, err := NewLoader().WithEnvFiles().LoadWithOverrides(&ConfigOverrides{
		DBDir:          &dir,
		DBQueryTimeout: &timeout,
		StartOfWeek:    &sunday,
		Format:         &format,
		Verbose:        &verbose,
	})
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Database.Dir)
	assert.Equal(t, timeout, cfg.Database.QueryTimeout)
	assert.Equal(t, 0, cfg.Report.StartOfWeek)
	assert.Equal(t, FormatJSON, cfg.Display.Format)
	assert.True(t, cfg.Application.Verbose)

	bad := "xml"
	_, err = NewLoader().WithEnvFiles().LoadWithOverrides(&ConfigOverrides{Format: &bad})
	assert.Error(t, err)
}

func TestCreateRepository(t *testing.T) {
	dir := t.TempDir()
	cfg, err := NewLoader().WithEnvFiles().LoadWithOverrides(&ConfigOverrides{DBDir: &dir})
	require.NoError(t, err)

	repo, err := CreateRepository(cfg, logging.Nop())
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.UpsertMember(ctx, &sqlite.Member{ID: 1, DisplayName: "Ada"}))

	members, err := repo.ListMembers(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 1)
	assert.FileExists(t, filepath.Join(dir, "worklog.db"))
}

func TestCreateRepository_UnusableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	dir := filepath.Join(blocker, "data")
	cfg, err := NewLoader().WithEnvFiles().LoadWithOverrides(&ConfigOverrides{DBDir: &dir})
	require.NoError(t, err)

	_, err = CreateRepository(cfg, logging.Nop())
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeDatabase, appErr.Type)
	assert.Equal(t, "failed to initialize database", appErr.Message)
	path, _ := appErr.GetContext("path")
	assert.Equal(t, filepath.Join(dir, "worklog.db"), path)
	assert.NotNil(t, appErr.Unwrap())
}

func TestNewLogger(t *testing.T) {
	cfg := NewConfig()
	cfg.Application.LogLevel = "warn"
	assert.False(t, NewLogger(cfg).Enabled(context.Background(), slog.LevelDebug))

	cfg.Application.Verbose = true
	assert.True(t, NewLogger(cfg).Enabled(context.Background(), slog.LevelDebug))
}
