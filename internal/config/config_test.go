package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SWEEP_CONNECT_TIMEOUT", "")
	os.Unsetenv("SWEEP_CONNECT_TIMEOUT")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, "go-unitysweep", cfg.AppName)
}

func TestLoadReadsEnvFile(t *testing.T) {
	t.Setenv("SWEEP_APP_NAME", "")
	os.Unsetenv("SWEEP_APP_NAME")
	t.Setenv("LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SWEEP_APP_NAME=from-file\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SWEEP_APP_NAME") })

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.AppName)
	// variables already set win over the file
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("SWEEP_CONNECT_TIMEOUT", "0s")

	_, err := Load("")

	assert.Error(t, err)
}
