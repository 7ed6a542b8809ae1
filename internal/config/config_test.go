package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingOptionalFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFile), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CacheType != "local" {
		t.Errorf("expected default cache type local, got %q", cfg.CacheType)
	}
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "custom.json"), true)
	if !errors.Is(err, ErrConfigRead) {
		t.Errorf("expected ErrConfigRead, got %v", err)
	}
}

func TestLoad_JSONFile(t *testing.T) {
	t.Setenv(EnvCacheType, "")
	t.Setenv(EnvConcurrency, "")
	t.Setenv(EnvDBURL, "")
	t.Setenv(EnvRabbitMQURL, "")

	path := filepath.Join(t.TempDir(), DefaultFile)
	data := `{
  "cache_type": "remote",
  "concurrency": 4,
  "command_timeout": "90s",
  "db_url": "postgres://zenith@db/zenith",
  "metrics_file": "out/zenith.prom"
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.CacheType != "remote" || cfg.Concurrency != 4 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.CommandTimeout != 90*time.Second {
		t.Errorf("expected 90s timeout, got %s", cfg.CommandTimeout)
	}
	if cfg.DBURL != "postgres://zenith@db/zenith" || cfg.MetricsFile != "out/zenith.prom" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zenith.yaml")
	if err := os.WriteFile(path, []byte("cache_type: local\nconcurrency: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Concurrency != 2 {
		t.Errorf("expected concurrency 2, got %d", cfg.Concurrency)
	}
}

func TestLoad_BrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte(`{"concurrency": [`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path, false)
	if !errors.Is(err, ErrConfigParse) {
		t.Errorf("expected ErrConfigParse, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvCacheType:   "remote",
		EnvConcurrency: " 8 ",
		EnvRabbitMQURL: "amqp://localhost/",
	}

	cfg := Default()
	cfg.DBURL = "from-file"
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.CacheType != "remote" || cfg.Concurrency != 8 || cfg.RabbitMQURL != "amqp://localhost/" {
		t.Errorf("env should override: %+v", cfg)
	}
	if cfg.DBURL != "from-file" {
		t.Error("unset env should keep file value")
	}
}

func TestApplyEnv_BadConcurrency(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) string {
		if k == EnvConcurrency {
			return "many"
		}
		return ""
	})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", *Default(), false},
		{"negative concurrency", Config{Concurrency: -1}, true},
		{"negative timeout", Config{CommandTimeout: -time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
