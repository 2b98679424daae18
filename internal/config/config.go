// Package config loads hobbytrack settings from a YAML file, falling back to
// defaults for anything not set.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file when --config is not given.
const DefaultPath = ".hobbytrack/config.yaml"

// CommitMode selects how the wizard persists a hobby and its goals.
type CommitMode string

const (
	// CommitLog only logs the commit.
	CommitLog CommitMode = "log"
	// CommitHTTP posts to the backend create endpoints.
	CommitHTTP CommitMode = "http"
)

// ParseCommitMode accepts log or http, case-insensitively.
func ParseCommitMode(value string) (CommitMode, error) {
	mode := CommitMode(strings.ToLower(strings.TrimSpace(value)))
	switch mode {
	case CommitLog, CommitHTTP:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid commit mode %q (valid: log, http)", value)
	}
}

// Config is the full settings tree.
type Config struct {
	Backend    BackendConfig `yaml:"backend"`
	Wizard     WizardConfig  `yaml:"wizard"`
	CommitMode CommitMode    `yaml:"commit_mode"`
	Server     ServerConfig  `yaml:"server"`
	Logging    LoggingConfig `yaml:"logging"`
}

// BackendConfig points the client at the REST backend.
type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// WizardConfig tunes the wizard controller.
type WizardConfig struct {
	StatusTTL    string `yaml:"status_ttl"`
	FetchTimeout string `yaml:"fetch_timeout"`
}

// ServerConfig configures `hobbytrack serve`.
type ServerConfig struct {
	Addr     string `yaml:"addr"`
	DataFile string `yaml:"data_file"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty logs to stderr
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:8080",
			Timeout: "10s",
		},
		Wizard: WizardConfig{
			StatusTTL:    "5s",
			FetchTimeout: "15s",
		},
		CommitMode: CommitLog,
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  ".hobbytrack/hobbytrack.log",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.YAML()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// YAML renders the config in the same form Save writes.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate checks that durations parse and the commit mode is known.
func (c *Config) Validate() error {
	if _, err := ParseCommitMode(string(c.CommitMode)); err != nil {
		return err
	}
	for name, value := range map[string]string{
		"backend.timeout":      c.Backend.Timeout,
		"wizard.status_ttl":    c.Wizard.StatusTTL,
		"wizard.fetch_timeout": c.Wizard.FetchTimeout,
	} {
		if _, err := parseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}

// BackendTimeout is the HTTP client timeout.
func (c *Config) BackendTimeout() time.Duration {
	d, _ := parseDuration(c.Backend.Timeout)
	return d
}

// StatusTTL is how long the commit banner stays up.
func (c *Config) StatusTTL() time.Duration {
	d, _ := parseDuration(c.Wizard.StatusTTL)
	return d
}

// FetchTimeout bounds a single suggestion fetch.
func (c *Config) FetchTimeout() time.Duration {
	d, _ := parseDuration(c.Wizard.FetchTimeout)
	return d
}

// parseDuration treats an empty value as zero so callers fall back to their
// own defaults.
func parseDuration(value string) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", value)
	}
	return d, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("HOBBYTRACK_BACKEND_URL"); url != "" {
		c.Backend.BaseURL = url
	}
	if level := os.Getenv("HOBBYTRACK_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if mode := os.Getenv("HOBBYTRACK_COMMIT_MODE"); mode != "" {
		c.CommitMode = CommitMode(strings.ToLower(mode))
	}
}
