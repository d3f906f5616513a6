package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "STYLES_PATH", "WATCH_STYLES", "LOG_LEVEL",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.StylesPath != defaultStylesPath {
		t.Fatalf("expected default styles path %s, got %s", defaultStylesPath, cfg.StylesPath)
	}
	if cfg.TemplatesDir != defaultTemplatesDir || cfg.StaticDir != defaultStaticDir {
		t.Fatalf("unexpected asset dirs: %s, %s", cfg.TemplatesDir, cfg.StaticDir)
	}
	if cfg.WatchStyles {
		t.Fatal("watch must be off by default")
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
	if !cfg.EnableRequestLogging || !cfg.EnableMetrics {
		t.Fatal("request logging and metrics must be on by default")
	}
	if cfg.RateLimitRPS != defaultRateLimitRPS || cfg.RateLimitBurst != defaultRateLimitBurst {
		t.Fatalf("unexpected rate limit defaults: %v, %v", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("STYLES_PATH", "conf/style.config.toml")
	t.Setenv("WATCH_STYLES", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_RPS", "5.5")
	t.Setenv("RATE_LIMIT_BURST", "9")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	if cfg.StylesPath != "conf/style.config.toml" {
		t.Fatalf("expected overridden styles path, got %s", cfg.StylesPath)
	}
	if !cfg.WatchStyles {
		t.Fatal("expected watch to be enabled")
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected overridden log level, got %s", cfg.LogLevel)
	}
	if cfg.RateLimitRPS != 5.5 || cfg.RateLimitBurst != 9 {
		t.Fatalf("unexpected rate limits: %v, %v", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadInvalidEnvValuesIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("WATCH_STYLES", "definitely")
	t.Setenv("RATE_LIMIT_RPS", "fast")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.WatchStyles {
		t.Fatal("unparseable WATCH_STYLES must keep the default")
	}
	if cfg.RateLimitRPS != defaultRateLimitRPS {
		t.Fatalf("unparseable RATE_LIMIT_RPS must keep the default, got %v", cfg.RateLimitRPS)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)

	raw := []byte(`
port: "8123"
styles_path: conf/style.config.json
templates_dir: views
watch_styles: true
log_level: warn
shutdown_grace_period: 3s
enable_request_logging: false
enable_metrics: false
rate_limit:
  rps: 2.5
  burst: 4
`)
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8123" {
		t.Fatalf("expected YAML port, got %s", cfg.Port)
	}
	if cfg.StylesPath != "conf/style.config.json" {
		t.Fatalf("expected YAML styles path, got %s", cfg.StylesPath)
	}
	if cfg.TemplatesDir != "views" {
		t.Fatalf("expected YAML templates dir, got %s", cfg.TemplatesDir)
	}
	if cfg.StaticDir != defaultStaticDir {
		t.Fatalf("unset YAML key must keep the default, got %s", cfg.StaticDir)
	}
	if !cfg.WatchStyles {
		t.Fatal("expected YAML watch flag")
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected YAML log level, got %s", cfg.LogLevel)
	}
	if cfg.ShutdownGracePeriod != 3*time.Second {
		t.Fatalf("unexpected grace period: %s", cfg.ShutdownGracePeriod)
	}
	if cfg.EnableRequestLogging || cfg.EnableMetrics {
		t.Fatal("YAML must be able to switch logging and metrics off")
	}
	if cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 4 {
		t.Fatalf("unexpected rate limits: %v, %v", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadYAMLRateLimitZeroDisables(t *testing.T) {
	clearEnv(t)

	raw := []byte("rate_limit:\n  rps: 0\n  burst: 0\n")
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RateLimitRPS != 0 || cfg.RateLimitBurst != 0 {
		t.Fatalf("explicit zeros must disable the limiter, got %v, %v", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	raw = []byte("port: \"8123\"\n")
	path = filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err = Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RateLimitRPS != defaultRateLimitRPS || cfg.RateLimitBurst != defaultRateLimitBurst {
		t.Fatalf("an absent rate_limit key must keep the defaults, got %v, %v", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("LOG_LEVEL", "error")

	raw := []byte("port: \"8000\"\nlog_level: warn\nstyles_path: from-yaml.yaml\n")
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cliPort := "9000"
	cfg, err := Load(&CLIOverrides{
		ConfigFile: path,
		Port:       &cliPort,
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Fatalf("CLI flag must win, got %s", cfg.Port)
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("env must override YAML, got %s", cfg.LogLevel)
	}
	if cfg.StylesPath != "from-yaml.yaml" {
		t.Fatalf("YAML must override the default, got %s", cfg.StylesPath)
	}
}

func TestLoadMissingYAMLFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestValidateRejectsBlankPort(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte("port: \" \"\n"), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	if _, err := Load(&CLIOverrides{ConfigFile: path}); err == nil {
		t.Fatal("expected validation error for blank port")
	}
}
