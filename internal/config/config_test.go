package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/claude/gones6502/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	c := config.NewConfig()
	assert.False(t, c.DecimalModeEnabled)
	assert.False(t, c.StrictPPU)
	assert.Zero(t, c.InstructionLimit)
}

func TestLoadFromFileCreatesDefaultWhenMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	c := config.NewConfig()
	require.NoError(t, c.LoadFromFile(path))
	assert.False(t, c.Loaded()) // freshly written, not parsed from an existing file

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	c := config.NewConfig()
	c.DecimalModeEnabled = true
	c.TracePath = filepath.Join(dir, "trace.log")
	c.InstructionLimit = 1000
	require.NoError(t, c.SaveToFile(path))

	loaded := &config.Config{}
	require.NoError(t, loaded.LoadFromFile(path))
	assert.True(t, loaded.Loaded())
	assert.True(t, loaded.DecimalModeEnabled)
	assert.Equal(t, c.TracePath, loaded.TracePath)
	assert.Equal(t, uint64(1000), loaded.InstructionLimit)
}

func TestLoadFromFileRejectsMissingROM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rom_path": "/does/not/exist.nes"}`), 0644))

	c := &config.Config{}
	err := c.LoadFromFile(path)
	require.Error(t, err)
}

func TestLoadFromFileAcceptsExistingROM(t *testing.T) {
	dir := t.TempDir()
	romPath := filepath.Join(dir, "game.nes")
	require.NoError(t, os.WriteFile(romPath, []byte("NES\x1A"), 0644))

	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rom_path": "`+romPath+`"}`), 0644))

	c := &config.Config{}
	require.NoError(t, c.LoadFromFile(path))
	assert.Equal(t, romPath, c.ROMPath)
}
