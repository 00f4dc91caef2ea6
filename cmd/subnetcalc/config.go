package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the service configuration. Values come from an optional
// YAML file with environment variable overrides.
type Config struct {
	ListenAddr        string  `yaml:"listen_addr"`
	LogLevel          string  `yaml:"log_level"`
	LogFormat         string  `yaml:"log_format"`
	RateLimitRPS      float64 `yaml:"rate_limit_rps"`
	RateLimitBurst    int     `yaml:"rate_limit_burst"`
	TrustedProxies    string  `yaml:"trusted_proxies"` // comma-separated CIDRs
	SentryDSN         string  `yaml:"sentry_dsn"`
	SentryEnvironment string  `yaml:"sentry_environment"`
	SQLiteDSN         string  `yaml:"sqlite_dsn"`
	DatabaseURL       string  `yaml:"database_url"`
}

// LoadConfig loads configuration from a YAML file and environment variables.
// Environment variables override YAML values.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		// Defaults
		ListenAddr:        ":8080",
		LogLevel:          "info",
		LogFormat:         "json",
		RateLimitRPS:      100,
		RateLimitBurst:    200,
		SentryEnvironment: "production",
	}

	// Load from YAML file if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Override with environment variables
	if v := os.Getenv("ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("PORT"); v != "" { // Heroku-style
		cfg.ListenAddr = ":" + v
	}
	if v := os.Getenv("SUBNETCALC_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SUBNETCALC_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS %q: %w", v, err)
		}
		cfg.RateLimitRPS = parsed
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST %q: %w", v, err)
		}
		cfg.RateLimitBurst = parsed
	}
	if v := os.Getenv("SUBNETCALC_TRUSTED_PROXIES"); v != "" {
		cfg.TrustedProxies = v
	}
	if v := os.Getenv("SENTRY_DSN"); v != "" {
		cfg.SentryDSN = v
	}
	if v := os.Getenv("SENTRY_ENVIRONMENT"); v != "" {
		cfg.SentryEnvironment = v
	}
	if v := os.Getenv("SQLITE_DSN"); v != "" {
		cfg.SQLiteDSN = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("log_format must be json or text; got %q", c.LogFormat)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate_limit_rps must be non-negative")
	}
	if c.RateLimitBurst < 0 {
		return fmt.Errorf("rate_limit_burst must be non-negative")
	}
	return nil
}
