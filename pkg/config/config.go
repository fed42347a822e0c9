// Package config loads server configuration from a YAML file or, for
// env-only deployments, straight from environment variables. Secrets never
// live in the file: YAML values reference them as ${VAR} and are expanded
// from the environment before parsing.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration.
type Config struct {
	Exchange UpstreamConfig `yaml:"exchange"`
	Weather  UpstreamConfig `yaml:"weather"`
	Supabase SupabaseConfig `yaml:"supabase"`
	// ToolTimeout bounds every tool call, as a duration string (e.g. "10s").
	ToolTimeout string `yaml:"tool_timeout"`
	// MediaConcurrency bounds the per-product media fan-out.
	MediaConcurrency int `yaml:"media_concurrency"`
}

// UpstreamConfig holds settings for one external HTTP API.
type UpstreamConfig struct {
	// BaseURL overrides the API endpoint; empty keeps the default.
	BaseURL string `yaml:"base_url"`
}

// SupabaseConfig holds the product store's connection settings.
type SupabaseConfig struct {
	URL string `yaml:"url"`
	Key string `yaml:"key"` //nolint:gosec // configuration field, not a hardcoded secret
}

const defaultToolTimeout = 10 * time.Second

// Load reads a YAML file and returns a Config. Environment variables
// referenced as ${VAR} or $VAR in the YAML are expanded before parsing, so
// API keys stay in the environment rather than in the file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("config: load: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}

	return cfg, nil
}

// FromEnv builds a Config from environment variables alone, matching the
// hosted deployment where no config file exists.
func FromEnv() Config {
	cfg := Config{
		Exchange:    UpstreamConfig{BaseURL: os.Getenv("EXCHANGE_API_URL")},
		Weather:     UpstreamConfig{BaseURL: os.Getenv("WEATHER_API_URL")},
		ToolTimeout: os.Getenv("PRODINFO_TOOL_TIMEOUT"),
		Supabase: SupabaseConfig{
			URL: os.Getenv("SUPABASE_URL"),
			Key: os.Getenv("SUPABASE_KEY"),
		},
	}

	if n, err := strconv.Atoi(os.Getenv("PRODINFO_MEDIA_CONCURRENCY")); err == nil {
		cfg.MediaConcurrency = n
	}

	return cfg
}

// Validate checks that the configuration is complete enough to start.
func (c Config) Validate() error {
	if c.Supabase.URL == "" || c.Supabase.Key == "" {
		return fmt.Errorf("config: SUPABASE_URL and SUPABASE_KEY must be set")
	}

	if _, err := c.Timeout(); err != nil {
		return err
	}

	return nil
}

// Timeout parses ToolTimeout, defaulting to 10s when unset.
func (c Config) Timeout() (time.Duration, error) {
	if c.ToolTimeout == "" {
		return defaultToolTimeout, nil
	}

	d, err := time.ParseDuration(c.ToolTimeout)
	if err != nil {
		return 0, fmt.Errorf("config: tool_timeout: %w", err)
	}

	return d, nil
}
