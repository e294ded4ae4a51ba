// Package config loads the pipeline defaults, which cmd/aprstx's flags
// override, from a YAML file. The core signal-generation packages never read it
// directly -- only the cmd/aprstx front end does, the way direwolf's
// config.go feeds a parsed struct into the rest of direwolf rather than
// having every module read files itself.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults cmd/aprstx falls back to when a flag is not
// given on the command line.
type Config struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
	Path        string `yaml:"path"`
	Format      string `yaml:"format"` // "iq_s8", "iq_f32", "pcm_f32"

	Deviation           float64 `yaml:"deviation_hz"`
	InterpolationFactor int     `yaml:"interpolation_factor"`
	PreambleFlags       int     `yaml:"preamble_flags"`
	MarkOnOne           bool    `yaml:"mark_on_one"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in defaults, used when no config file is
// given or a file omits a field (Load decodes the file on top of these
// values, so omitted fields keep them).
func Default() Config {
	return Config{
		Destination:         "APRS",
		Format:              "iq_s8",
		Deviation:           5000,
		InterpolationFactor: 50,
		PreambleFlags:       8,
		MarkOnOne:           true,
		LogLevel:            "info",
	}
}

// Load reads and parses a YAML config file at path, overlaying it on
// top of Default.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}
