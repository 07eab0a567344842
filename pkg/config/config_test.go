package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("port = %d, want 3000", cfg.Port)
	}
	if cfg.Database.Host != "localhost" || cfg.Database.Port != 5432 {
		t.Errorf("database defaults = %+v", cfg.Database)
	}
	if cfg.Vapi.BaseURL != "https://api.vapi.ai" {
		t.Errorf("vapi base url = %q", cfg.Vapi.BaseURL)
	}
}

func TestLoadConfigFileAndEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("port: 4000\ndatabase:\n  host: dbhost\n  port: 6432\nrabbitmq:\n  host: mqhost\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("POSTGRES_HOST", "envhost")
	t.Setenv("PORT", "5000")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Host != "envhost" {
		t.Errorf("env must win over file: host = %q", cfg.Database.Host)
	}
	if cfg.Port != 5000 {
		t.Errorf("env must win over file: port = %d", cfg.Port)
	}
	if cfg.Database.Port != 6432 {
		t.Errorf("file must win over defaults: db port = %d", cfg.Database.Port)
	}
	if cfg.RabbitMQ.Host != "mqhost" {
		t.Errorf("rabbitmq host = %q, want mqhost", cfg.RabbitMQ.Host)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/does/not/exist.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
