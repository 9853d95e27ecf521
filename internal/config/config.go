// Package config holds the storefront configuration: where the remote
// services live and how loud the logs are. Values come from defaults, an
// optional YAML file, then environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all slice configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Remote services
	API API `yaml:"api"`
	Geo Geo `yaml:"geo"`

	// Logging
	Logging Logging `yaml:"logging"`
}

// API configures the pizza REST API endpoint.
type API struct {
	BaseURL string `yaml:"base_url"`
}

// Geo configures the reverse-geocoding endpoint and the default position
// used to prefill the delivery address. A 0,0 position means no position
// is known and the address suggestion is skipped.
type Geo struct {
	BaseURL   string  `yaml:"base_url"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// HasPosition reports whether a usable position is configured.
func (g Geo) HasPosition() bool {
	return g.Latitude != 0 || g.Longitude != 0
}

// PositionString renders the position as "lat,lng" for the order payload,
// empty when no position is configured.
func (g Geo) PositionString() string {
	if !g.HasPosition() {
		return ""
	}
	return fmt.Sprintf("%g,%g", g.Latitude, g.Longitude)
}

// Logging configures the categorized file log.
type Logging struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "slice",
		Version: "1.0.0",

		API: API{
			BaseURL: "https://pizza-api.example.com/api",
		},

		Geo: Geo{
			BaseURL: "https://geocode.example.com/reverse",
		},

		Logging: Logging{
			Level: "info",
			File:  "slice.log",
		},
	}
}

// Load loads configuration from a YAML file. A missing file is not an
// error: defaults plus environment overrides apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("SLICE_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if url := os.Getenv("SLICE_GEO_URL"); url != "" {
		c.Geo.BaseURL = url
	}
	if level := os.Getenv("SLICE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}
