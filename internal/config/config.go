// Package config provides JSON-backed configuration for the core's CLI
// front end: which ROM to load and how the core should behave while
// running it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the settings a host needs to construct and drive a Cpu.
type Config struct {
	ROMPath string `json:"rom_path"`

	DecimalModeEnabled bool `json:"decimal_mode_enabled"`
	StrictPPU          bool `json:"strict_ppu"`

	TracePath        string `json:"trace_path"`
	InstructionLimit uint64 `json:"instruction_limit"` // 0 means unbounded

	configPath string
	loaded     bool
}

// NewConfig returns a Config with the core's default behavior: binary
// ADC/SBC (matching the 2A03's disabled decimal mode), lenient PPU
// register access, no tracing, and no instruction limit.
func NewConfig() *Config {
	return &Config{
		DecimalModeEnabled: false,
		StrictPPU:          false,
		InstructionLimit:   0,
	}
}

// LoadFromFile reads and validates a JSON config at path. If the file does
// not exist, it is created from defaults.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c.SaveToFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := c.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c.loaded = true
	return nil
}

// SaveToFile writes c as indented JSON to path, creating its directory if
// needed.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	c.configPath = path
	return nil
}

func (c *Config) validate() error {
	if c.ROMPath != "" {
		if _, err := os.Stat(c.ROMPath); os.IsNotExist(err) {
			return fmt.Errorf("rom_path %q does not exist", c.ROMPath)
		}
	}
	return nil
}

// Loaded reports whether LoadFromFile successfully parsed an existing file
// (as opposed to writing out fresh defaults).
func (c *Config) Loaded() bool { return c.loaded }
