package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bcbp_trmnl/internal/config"
)

func TestInitLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logFile := filepath.Join(t.TempDir(), "bcbp_trmnl.log")
	var stdout bytes.Buffer

	closer := initLogger(config.LogConfig{
		Level:      "warn",
		Format:     "json",
		File:       logFile,
		MaxSizeMB:  1,
		MaxBackups: 1,
	}, &stdout)

	slog.Info("hidden")
	slog.Warn("scanner offline", "addr", "gate-3:7010")
	require.NoError(t, closer.Close())

	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), `"msg":"scanner offline"`)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"addr":"gate-3:7010"`)
}

func TestInitLogger_StdoutOnly(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var stdout bytes.Buffer
	closer := initLogger(config.LogConfig{Level: "debug", Format: "text"}, &stdout)
	defer closer.Close()

	slog.Debug("decoded pass", "legs", 2)
	assert.Contains(t, stdout.String(), "level=DEBUG")
	assert.Contains(t, stdout.String(), "legs=2")
}
