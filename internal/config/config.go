// Package config loads the pulse project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/imkarma/pulse/internal/health"
)

// DefaultFile is the config filename looked up in the working
// directory when no --config flag is given.
const DefaultFile = "pulse.yaml"

// Data points at the ticket source.
type Data struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format,omitempty"` // "csv" or "sqlite"; inferred from the extension when empty
}

// Report configures the report generator.
type Report struct {
	Dir string `yaml:"dir,omitempty"` // output directory, default "reports"
}

// Config is the root configuration for a pulse project.
type Config struct {
	Version    int                `yaml:"version"`
	Data       Data               `yaml:"data"`
	Health     health.Config      `yaml:"health"`
	Capacities map[string]float64 `yaml:"capacities,omitempty"` // declared hours per sprint
	Report     Report             `yaml:"report,omitempty"`
}

// DefaultConfig returns a starter config with the default scoring
// policy.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Health:  health.DefaultConfig(),
		Report:  Report{Dir: "reports"},
	}
}

// Load reads and parses the config file at the given path. The
// PULSE_DATA environment variable overrides the configured data path,
// so a different dataset can be pointed at without editing the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if env := os.Getenv("PULSE_DATA"); env != "" {
		cfg.Data.Path = env
		cfg.Data.Format = ""
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to the given path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) validate() error {
	if err := c.Health.Validate(); err != nil {
		return fmt.Errorf("health: %w", err)
	}
	for sprint, capacity := range c.Capacities {
		if capacity <= 0 {
			return fmt.Errorf("capacity for %s must be positive, got %v", sprint, capacity)
		}
	}
	if c.Data.Format != "" && c.Data.Format != "csv" && c.Data.Format != "sqlite" {
		return fmt.Errorf("data format must be 'csv' or 'sqlite', got %q", c.Data.Format)
	}
	return nil
}

// DataFormat resolves the configured format, falling back to the file
// extension.
func (c *Config) DataFormat() string {
	if c.Data.Format != "" {
		return c.Data.Format
	}
	switch strings.ToLower(filepath.Ext(c.Data.Path)) {
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	default:
		return "csv"
	}
}

// ReportDir returns the configured report directory or the default.
func (c *Config) ReportDir() string {
	if c.Report.Dir != "" {
		return c.Report.Dir
	}
	return "reports"
}
