package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgermatch/ledgermatch/internal/infrastructure/config"
)

func TestConsoleHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, nil)).With("system", "import")

	logger.Info("statement imported", "file", "extrato.ofx", "added", 12)

	out := buf.String()
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "[import]")
	assert.Contains(t, out, "statement imported")
	assert.Contains(t, out, "file=extrato.ofx")
	assert.Contains(t, out, "added=12")
	// Not a terminal, so no escape codes.
	assert.NotContains(t, out, "\033[")
}

func TestConsoleHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	logger := slog.New(h)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] ")
	assert.Contains(t, out, "shown")
}

func TestNewLoggerFormats(t *testing.T) {
	require.NotNil(t, NewLogger(config.LoggingConfig{Level: "debug", Format: "text"}))
	require.NotNil(t, NewLogger(config.LoggingConfig{Level: "error", Format: "json"}))
	require.NotNil(t, NewLoggerWithSystem(config.LoggingConfig{}, "api"))
}
