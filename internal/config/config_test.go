package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_OverlaysOnDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aprstx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: N0CALL\ndeviation_hz: 3000\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "N0CALL", cfg.Source)
	assert.Equal(t, 3000.0, cfg.Deviation)
	// Untouched fields keep their default.
	assert.Equal(t, "APRS", cfg.Destination)
	assert.Equal(t, 50, cfg.InterpolationFactor)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
