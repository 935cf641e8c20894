// Package config loads settings for binaries built on the SDK. The library
// packages themselves take explicit parameters; this is the YAML-plus-env
// layer the example apps use to assemble them.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yieldscope/portfolio-go-sdk/analytics"
)

// Generator modes for the strategy recommender.
const (
	ModeRules  = "rules"
	ModeClaude = "claude"
)

// Config holds all application configuration.
type Config struct {
	Oracle struct {
		BaseURL     string `yaml:"base_url"`
		CacheTTLSec int    `yaml:"cache_ttl_sec"`
	} `yaml:"oracle"`
	Strategy struct {
		Mode      string `yaml:"mode"` // rules | claude
		Model     string `yaml:"model"`
		MaxTokens int64  `yaml:"max_tokens"`
	} `yaml:"strategy"`
	Planner analytics.PlannerParams `yaml:"planner"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.Oracle.BaseURL = v
	}
	if v := os.Getenv("STRATEGY_MODE"); v != "" {
		cfg.Strategy.Mode = v
	}
	if v := os.Getenv("CLAUDE_MODEL"); v != "" {
		cfg.Strategy.Model = v
	}

	// Defaults
	if cfg.Oracle.BaseURL == "" {
		cfg.Oracle.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if cfg.Oracle.CacheTTLSec == 0 {
		cfg.Oracle.CacheTTLSec = 30
	}
	if cfg.Strategy.Mode == "" {
		cfg.Strategy.Mode = ModeRules
	}
	if cfg.Strategy.Model == "" {
		cfg.Strategy.Model = "claude-sonnet-4-20250514"
	}
	if cfg.Strategy.MaxTokens == 0 {
		cfg.Strategy.MaxTokens = 2048
	}

	return cfg, nil
}

// CacheTTL returns the oracle cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Oracle.CacheTTLSec) * time.Second
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Strategy.Mode != ModeRules && c.Strategy.Mode != ModeClaude {
		return fmt.Errorf("strategy.mode must be %q or %q, got %q", ModeRules, ModeClaude, c.Strategy.Mode)
	}
	if c.Strategy.Mode == ModeClaude && os.Getenv("ANTHROPIC_API_KEY") == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required for strategy.mode %q", ModeClaude)
	}
	if c.Planner.FeeRate < 0 {
		return fmt.Errorf("planner.fee_rate must be non-negative")
	}
	if c.Oracle.CacheTTLSec < 0 {
		return fmt.Errorf("oracle.cache_ttl_sec must be non-negative")
	}
	return nil
}
