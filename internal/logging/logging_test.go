package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugEnabled(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"empty", "", false},
		{"one", "1", true},
		{"true", "true", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(DebugEnv, tt.value)
			assert.Equal(t, tt.want, DebugEnabled())
		})
	}
}

func TestDebugHelpersDoNotPanic(t *testing.T) {
	t.Setenv(DebugEnv, "")
	Debugf("hidden %s\n", "value")
	Debugln("hidden")

	t.Setenv(DebugEnv, "1")
	Debugf("shown %s\n", "value")
	Debugln("shown")
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv(DebugEnv, "")
	assert.Equal(t, slog.LevelInfo, DefaultConfig().Level)

	t.Setenv(DebugEnv, "1")
	assert.Equal(t, slog.LevelDebug, DefaultConfig().Level)
	assert.Equal(t, ComponentApp, DefaultConfig().Component)
}

func TestLogger_TagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Component: ComponentStorage, Output: &buf})

	logger.Info("migrations applied", FieldVersion, 1)
	assert.Contains(t, buf.String(), "component=storage")
	assert.Contains(t, buf.String(), "version=1")

	buf.Reset()
	logger.WithComponent(ComponentReporting).With(FieldMember, 4).DebugContext(context.Background(), "loaded entries")
	assert.Contains(t, buf.String(), "component=reporting")
	assert.Contains(t, buf.String(), "member_id=4")
	assert.NotContains(t, buf.String(), "component=storage")
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Output: &buf})

	logger.Info("quiet")
	logger.Debug("quieter")
	assert.Empty(t, buf.String())

	logger.Error("loud")
	assert.Contains(t, buf.String(), "loud")
	assert.Contains(t, buf.String(), "component=app")
	assert.Equal(t, ComponentApp, logger.Component())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
		valid bool
	}{
		{"debug", slog.LevelDebug, true},
		{" INFO ", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.value))
			assert.Equal(t, tt.valid, ValidLevel(tt.value))
		})
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error("discarded")
	assert.Equal(t, ComponentApp, logger.Component())
}
