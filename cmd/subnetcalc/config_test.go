package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Errorf("log defaults = %q/%q, want info/json", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.RateLimitRPS != 100 || cfg.RateLimitBurst != 200 {
		t.Errorf("rate limit defaults = %v/%d, want 100/200", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
listen_addr: ":9090"
log_level: debug
log_format: text
rate_limit_rps: 10
rate_limit_burst: 20
trusted_proxies: "10.0.0.0/8, 192.168.0.0/16"
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want :9090", cfg.ListenAddr)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "text" {
		t.Errorf("log config = %q/%q, want debug/text", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.RateLimitRPS != 10 || cfg.RateLimitBurst != 20 {
		t.Errorf("rate limit = %v/%d, want 10/20", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.TrustedProxies != "10.0.0.0/8, 192.168.0.0/16" {
		t.Errorf("TrustedProxies = %q", cfg.TrustedProxies)
	}
}

func TestLoadConfig_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: \":9090\"\nlog_level: debug\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("ADDR", ":7070")
	t.Setenv("SUBNETCALC_LOG_LEVEL", "warn")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ListenAddr != ":7070" {
		t.Errorf("env should override yaml: ListenAddr = %q, want :7070", cfg.ListenAddr)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("env should override yaml: LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoadConfig_PortEnv(t *testing.T) {
	t.Setenv("PORT", "3000")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ListenAddr != ":3000" {
		t.Errorf("ListenAddr = %q, want :3000", cfg.ListenAddr)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadConfig_InvalidEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")

	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error for malformed RATE_LIMIT_RPS")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty listen addr", func(c *Config) { c.ListenAddr = "" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"negative rps", func(c *Config) { c.RateLimitRPS = -1 }, true},
		{"negative burst", func(c *Config) { c.RateLimitBurst = -1 }, true},
		{"zero rate limit is allowed", func(c *Config) { c.RateLimitRPS = 0; c.RateLimitBurst = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				ListenAddr:     ":8080",
				LogLevel:       "info",
				LogFormat:      "json",
				RateLimitRPS:   100,
				RateLimitBurst: 200,
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
