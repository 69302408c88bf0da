package config

import (
	"fmt"
	"os"
	"time"

	"feed-dashboard/sources"

	"gopkg.in/yaml.v3"
)

// Config holds the dashboard configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Logging LoggingConfig `yaml:"logging"`

	// Sources overrides endpoint URLs by source name
	Sources map[string]string `yaml:"sources"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"` // gin mode: release, debug, test
}

// FetchConfig configures feed requests.
type FetchConfig struct {
	Timeout  string `yaml:"timeout"`
	Fallback bool   `yaml:"fallback"` // try the other sources when the selected one fails
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8090",
			Mode: "release",
		},
		Fetch: FetchConfig{
			Timeout:  "10s",
			Fallback: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Sources: map[string]string{},
	}
}

// Load reads a YAML file over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// FetchTimeout returns the request timeout, falling back to 10s.
func (c *Config) FetchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Fetch.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

var validModes = []string{"release", "debug", "test"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server address not configured")
	}
	if !contains(validModes, c.Server.Mode) {
		return fmt.Errorf("invalid server mode: %s (valid: %v)", c.Server.Mode, validModes)
	}

	d, err := time.ParseDuration(c.Fetch.Timeout)
	if err != nil {
		return fmt.Errorf("invalid fetch timeout %q: %w", c.Fetch.Timeout, err)
	}
	if d <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", d)
	}

	if err := c.Logging.Validate(); err != nil {
		return err
	}

	known := make([]string, 0)
	for _, s := range sources.Builtin(nil) {
		known = append(known, s.Name)
	}
	for name := range c.Sources {
		if !contains(known, name) {
			return fmt.Errorf("endpoint override for unknown source %q (valid: %v)", name, known)
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
