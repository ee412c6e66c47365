// Package config resolves webperf's configuration through a priority
// cascade: defaults < global config file < project config file < env
// vars (via a .env file) < explicit flag overrides, following the
// cascade shape the teacher CLI uses for its own settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/devdumpling/traverse-sub000/internal/types"
)

// Config holds every resolved setting webperf's commands read.
type Config struct {
	Runs          int    `yaml:"runs"`
	Format        string `yaml:"format"`
	DeviceWidth   int    `yaml:"device_width"`
	DeviceHeight  int    `yaml:"device_height"`
	NetworkThrottle string `yaml:"network_throttle"`
	OutputDir     string `yaml:"output_dir"`
}

// FlagOverrides holds values explicitly set via command-line flags.
// A nil pointer means the flag was not set, so lower-priority values
// are kept (the teacher's FlagOverrides convention).
type FlagOverrides struct {
	Runs   *int
	Format *string
}

// Defaults returns webperf's base configuration.
func Defaults() Config {
	return Config{
		Runs:         3,
		Format:       "json",
		DeviceWidth:  1920,
		DeviceHeight: 1080,
		OutputDir:    ".",
	}
}

// Load builds the final configuration by applying the cascade:
// defaults < global (~/.webperf/config.yaml) < project (.webperf.yaml
// in projectDir) < .env in projectDir < flags.
func Load(projectDir string, flags *FlagOverrides) (Config, error) {
	cfg := Defaults()

	if home, err := os.UserHomeDir(); err == nil {
		if err := mergeYAMLFile(&cfg, filepath.Join(home, ".webperf", "config.yaml")); err != nil {
			return cfg, fmt.Errorf("global config: %w", err)
		}
	}

	if err := mergeYAMLFile(&cfg, filepath.Join(projectDir, ".webperf.yaml")); err != nil {
		return cfg, fmt.Errorf("project config: %w", err)
	}

	applyEnvFile(&cfg, projectDir)
	applyEnvVars(&cfg)

	if flags != nil {
		applyFlags(&cfg, flags)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// mergeYAMLFile merges fileCfg's non-zero fields into cfg. A missing
// file is not an error.
func mergeYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var file struct {
		Runs            *int    `yaml:"runs"`
		Format          *string `yaml:"format"`
		DeviceWidth     *int    `yaml:"device_width"`
		DeviceHeight    *int    `yaml:"device_height"`
		NetworkThrottle *string `yaml:"network_throttle"`
		OutputDir       *string `yaml:"output_dir"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if file.Runs != nil {
		cfg.Runs = *file.Runs
	}
	if file.Format != nil {
		cfg.Format = *file.Format
	}
	if file.DeviceWidth != nil {
		cfg.DeviceWidth = *file.DeviceWidth
	}
	if file.DeviceHeight != nil {
		cfg.DeviceHeight = *file.DeviceHeight
	}
	if file.NetworkThrottle != nil {
		cfg.NetworkThrottle = *file.NetworkThrottle
	}
	if file.OutputDir != nil {
		cfg.OutputDir = *file.OutputDir
	}
	return nil
}

// applyEnvFile loads a .env file from dir (if present) into the
// process environment so applyEnvVars can pick up its values; a
// missing .env file is not an error.
func applyEnvFile(cfg *Config, dir string) {
	_ = godotenv.Load(filepath.Join(dir, ".env"))
}

func applyEnvVars(cfg *Config) {
	if v := os.Getenv("WEBPERF_RUNS"); v != "" {
		if runs, err := strconv.Atoi(v); err == nil {
			cfg.Runs = runs
		}
	}
	if v := os.Getenv("WEBPERF_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("WEBPERF_NETWORK_THROTTLE"); v != "" {
		cfg.NetworkThrottle = v
	}
	if v := os.Getenv("WEBPERF_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
}

func applyFlags(cfg *Config, flags *FlagOverrides) {
	if flags.Runs != nil {
		cfg.Runs = *flags.Runs
	}
	if flags.Format != nil {
		cfg.Format = *flags.Format
	}
}

// Validate checks that resolved values are within acceptable ranges.
func (c Config) Validate() error {
	if c.Runs < 1 {
		return fmt.Errorf("runs must be >= 1, got %d", c.Runs)
	}
	validFormats := map[string]bool{"json": true, "markdown": true}
	if !validFormats[c.Format] {
		return fmt.Errorf("format must be json or markdown, got %q", c.Format)
	}
	return nil
}

// Device converts the resolved width/height into a DeviceConfig at 1x
// scale with no touch emulation.
func (c Config) Device() types.DeviceConfig {
	return types.DeviceConfig{Width: c.DeviceWidth, Height: c.DeviceHeight, DeviceScaleFactor: 1}
}
