// Package config loads shopctl configuration from ~/.shopctl/config.yaml
// with environment overrides. A missing file yields the defaults; the file
// only needs to exist for non-default setups.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvBaseURL overrides api.base_url when set.
const EnvBaseURL = "SHOPCTL_BASE_URL"

// Config holds all shopctl configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the admin API client.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"` // Go duration string, e.g. "30s"
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	Theme     string `yaml:"theme"` // light, dark, auto
	PageLimit int    `yaml:"page_limit"`
}

// LoggingConfig mirrors logging.Settings in yaml form.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
	JSONFormat bool            `yaml:"json_format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080/api/admin",
			Timeout: "30s",
		},
		UI: UIConfig{
			Theme:     "auto",
			PageLimit: 20,
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// DefaultDir returns the shopctl config directory (~/.shopctl).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home dir: %w", err)
	}
	return filepath.Join(home, ".shopctl"), nil
}

// Path returns the config file path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file at path, overlaying it on the defaults and then
// applying environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.API.BaseURL = v
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("config: api.base_url must not be empty")
	}
	if _, err := time.ParseDuration(c.API.Timeout); err != nil {
		return fmt.Errorf("config: api.timeout: %w", err)
	}
	if c.UI.PageLimit < 1 {
		return fmt.Errorf("config: ui.page_limit must be >= 1")
	}
	return nil
}

// RequestTimeout returns the parsed API timeout. validate guarantees it
// parses, so errors here only happen on a hand-built Config.
func (c Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
