package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestInit_WritesDebugToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := t.TempDir()
	closeLog, err := Init(dir, "error")
	require.NoError(t, err)

	slog.Debug("[TEST] only in file", "k", "v")
	closeLog()

	data, err := os.ReadFile(filepath.Join(dir, "editor.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[TEST] only in file")
	assert.Contains(t, string(data), `"k":"v"`)
}
