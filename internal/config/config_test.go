package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Storage.DBPath != "./data/rides.db" {
		t.Errorf("Storage.DBPath = %q, want %q", cfg.Storage.DBPath, "./data/rides.db")
	}
	if cfg.Maps.APIKey != "" {
		t.Error("Maps.APIKey should be empty by default (lookup disabled)")
	}
	if cfg.Cache.RedisAddr != "" {
		t.Error("Cache.RedisAddr should be empty by default (cache disabled)")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.CacheTTL() != 720*time.Hour {
		t.Errorf("CacheTTL() = %v, want 720h", cfg.CacheTTL())
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ridesplit.toml")
	content := `
[server]
port = 9090

[maps]
api_key = "file-key"

[share]
token_duration = "1h"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Maps.APIKey != "file-key" {
		t.Errorf("Maps.APIKey = %q, want %q", cfg.Maps.APIKey, "file-key")
	}
	if cfg.Maps.Region != "br" {
		t.Errorf("Maps.Region = %q, want default %q", cfg.Maps.Region, "br")
	}
	if cfg.ShareTokenDuration() != time.Hour {
		t.Errorf("ShareTokenDuration() = %v, want 1h", cfg.ShareTokenDuration())
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ridesplit.toml")
	if err := os.WriteFile(path, []byte("[server]\nport = 9090\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "7070")
	t.Setenv("DB_PATH", "/tmp/other.db")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Storage.DBPath != "/tmp/other.db" {
		t.Errorf("Storage.DBPath = %q, want %q", cfg.Storage.DBPath, "/tmp/other.db")
	}
	if cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("Cache.RedisAddr = %q, want %q", cfg.Cache.RedisAddr, "localhost:6379")
	}
	if cfg.Addr() != ":7070" {
		t.Errorf("Addr() = %q, want %q", cfg.Addr(), ":7070")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "bad toml", content: "[server\nport = 1"},
		{name: "bad ttl", content: "[cache]\nttl = \"forever\""},
		{name: "port out of range", content: "[server]\nport = 70000"},
		{name: "bad PORT env", env: map[string]string{"PORT": "http"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ridesplit.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
