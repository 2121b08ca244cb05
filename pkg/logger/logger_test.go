package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	charmlog "github.com/charmbracelet/log"
)

func TestFromContext(t *testing.T) {
	t.Run("Should return logger from context when present", func(t *testing.T) {
		expected := NewLogger(&Config{Level: DebugLevel, Output: &bytes.Buffer{}})
		ctx := ContextWithLogger(t.Context(), expected)

		actual := FromContext(ctx)

		require.NotNil(t, actual)
		assert.Equal(t, expected, actual)
	})

	t.Run("Should return default logger when no logger in context", func(t *testing.T) {
		log := FromContext(t.Context())

		require.NotNil(t, log)
		log.Info("test message from default logger")
	})

	t.Run("Should return default logger for a nil context", func(t *testing.T) {
		log := FromContext(nil) //nolint:staticcheck

		require.NotNil(t, log)
	})
}

func TestLogger(t *testing.T) {
	t.Run("Should write structured fields to the configured output", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewLogger(&Config{Level: InfoLevel, Output: &buf})

		log.Info("task finished", "task", "add", "attempt", 0)

		out := buf.String()
		assert.Contains(t, out, "task finished")
		assert.Contains(t, out, "task=add")
	})

	t.Run("Should carry With fields on every line", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewLogger(&Config{Level: InfoLevel, Output: &buf}).With("exec_id", "abc123")

		log.Info("first")
		log.Warn("second")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		for _, line := range lines {
			assert.Contains(t, line, "exec_id=abc123")
		}
	})

	t.Run("Should suppress messages below the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewLogger(&Config{Level: ErrorLevel, Output: &buf})

		log.Debug("hidden")
		log.Info("hidden")
		log.Error("visible")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "visible")
	})
}

func TestLogLevel_ToCharmlogLevel(t *testing.T) {
	t.Run("Should convert all log levels to charm log levels correctly", func(t *testing.T) {
		testCases := []struct {
			level    LogLevel
			expected charmlog.Level
		}{
			{DebugLevel, charmlog.DebugLevel},
			{InfoLevel, charmlog.InfoLevel},
			{WarnLevel, charmlog.WarnLevel},
			{ErrorLevel, charmlog.ErrorLevel},
			{LogLevel("unknown"), charmlog.InfoLevel},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.level.ToCharmlogLevel(), "LogLevel %s", tc.level)
		}
	})
}
