package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewWritesConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "session.log")

	log, closer, err := newLogger(&console, "warn", path)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("visible", "question_id", 7)
	require.NoError(t, closer.Close())

	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "question_id=7")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New("chatty", "")
	assert.Error(t, err)
}
