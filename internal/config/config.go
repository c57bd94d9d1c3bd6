// Package config provides configuration loading and validation for the CLI and viewer server.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/resume-share/internal/rendering"
	"github.com/jonathan/resume-share/internal/types"
	"github.com/rs/zerolog"
)

// Environment variables that override file values.
const (
	EnvOrigin   = "RESUME_SHARE_ORIGIN"
	EnvStore    = "RESUME_SHARE_STORE"
	EnvTemplate = "RESUME_SHARE_TEMPLATE"
	EnvLogLevel = "RESUME_SHARE_LOG_LEVEL"
	EnvPort     = "RESUME_SHARE_PORT"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	Origin   string `json:"origin,omitempty"`    // Viewer origin used to build share links
	Store    string `json:"store,omitempty"`     // Local store DSN (memory, sqlite:<path>, <path>.db, <path>.json)
	Template string `json:"template,omitempty"`  // Template used when a link does not name one
	Port     int    `json:"port,omitempty"`      // Viewer server port
	LogLevel string `json:"log_level,omitempty"` // zerolog level name
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Origin:   "http://localhost:8080",
		Store:    "resumes.json",
		Template: types.DefaultTemplateID,
		Port:     8080,
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields with any RESUME_SHARE_* variables that are set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvOrigin); v != "" {
		c.Origin = v
	}
	if v := os.Getenv(EnvStore); v != "" {
		c.Store = v
	}
	if v := os.Getenv(EnvTemplate); v != "" {
		c.Template = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be an integer, got %q", EnvPort, v)
		}
		c.Port = port
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Origin != "" {
		u, err := url.Parse(c.Origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: 'origin' must be an absolute URL, got %q", c.Origin)
		}
		if strings.HasSuffix(c.Origin, "/") {
			return fmt.Errorf("config error: 'origin' must not end with '/'")
		}
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
			return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
		}
	}

	if c.Template != "" {
		if _, ok := rendering.Lookup(c.Template); !ok {
			return fmt.Errorf("config error: unknown template %q", c.Template)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Origin == "" {
		result.Origin = defaults.Origin
	}
	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}

// Load reads the optional file at path, applies environment overrides, fills defaults and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
