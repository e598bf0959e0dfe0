package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the top-level application configuration.
type Config struct {
	Fetch    FetchConfig    `json:"fetch"`
	Schedule ScheduleConfig `json:"schedule"`
	Serve    ServeConfig    `json:"serve"`
}

// FetchConfig controls the raw schedule acquisition.
type FetchConfig struct {
	// BaseURL is the schedrawd CGI endpoint; empty uses the NAIC default.
	BaseURL string `json:"base_url"`
	// TimeoutSeconds bounds a single fetch, including body read.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// ScheduleConfig carries the timezone identifiers sessions are expressed in.
// The defaults match the observatory (America/Puerto_Rico) and UTC; changing
// them is only useful for mirror deployments.
type ScheduleConfig struct {
	LocalZone     string `json:"local_zone"`
	UniversalZone string `json:"universal_zone"`
}

// ServeConfig configures the long-running publication service.
type ServeConfig struct {
	// Listen is the HTTP address for the schedule endpoints.
	Listen string `json:"listen"`
	// RefreshCron is a robfig/cron schedule expression for re-fetching.
	RefreshCron string `json:"refresh_cron"`
	// MetricsEnabled toggles the Prometheus listener.
	MetricsEnabled bool `json:"metrics_enabled"`
	// MetricsListen is the Prometheus HTTP address.
	MetricsListen string `json:"metrics_listen"`
}

// SetDefaults applies sane defaults.
func (c *FetchConfig) SetDefaults() {
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 15
	}
}

// SetDefaults applies sane defaults.
func (c *ServeConfig) SetDefaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.RefreshCron == "" {
		c.RefreshCron = "*/30 * * * *"
	}
	if c.MetricsListen == "" {
		c.MetricsListen = ":9090"
	}
}

// Validate checks mandatory fields.
func (c ServeConfig) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("serve.listen is required")
	}
	if c.RefreshCron == "" {
		return fmt.Errorf("serve.refresh_cron is required")
	}
	return nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.Fetch.SetDefaults()
	cfg.Serve.SetDefaults()
	return cfg
}

// Load reads configuration from a YAML or JSON file, applies AOSCHED_
// environment overrides, then defaults and validation.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("AOSCHED_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "aosched_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Fetch.SetDefaults()
	cfg.Serve.SetDefaults()
	if err := cfg.Serve.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
