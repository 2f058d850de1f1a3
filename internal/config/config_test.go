package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Server.TokenTTL != time.Hour {
		t.Errorf("Server.TokenTTL = %v, want 1h", cfg.Server.TokenTTL)
	}
	if cfg.Nominatim.BaseURL != "https://nominatim.openstreetmap.org" {
		t.Errorf("Nominatim.BaseURL = %q", cfg.Nominatim.BaseURL)
	}
	if cfg.Nominatim.CacheTTL != 24*time.Hour {
		t.Errorf("Nominatim.CacheTTL = %v, want 24h", cfg.Nominatim.CacheTTL)
	}
	if cfg.Client.BaseURL != "http://localhost:8000" {
		t.Errorf("Client.BaseURL = %q, want derived from server port", cfg.Client.BaseURL)
	}
	if cfg.Client.TokenPath == "" {
		t.Error("Client.TokenPath should default to a path under the home dir")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestParse_Values(t *testing.T) {
	data := []byte(`
server:
  port: 9100
  jwt_secret: s3cret
  token_ttl: 30m
  debug: true
database:
  path: /tmp/wf.db
nominatim:
  base_url: http://geo.local
  timeout: 5s
llm:
  model: gpt-4o
client:
  base_url: http://api.example.com
log:
  level: debug
  format: json
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Server.TokenTTL != 30*time.Minute {
		t.Errorf("Server.TokenTTL = %v, want 30m", cfg.Server.TokenTTL)
	}
	if !cfg.Server.Debug {
		t.Error("Server.Debug should be true")
	}
	if cfg.Database.Path != "/tmp/wf.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Nominatim.Timeout != 5*time.Second {
		t.Errorf("Nominatim.Timeout = %v, want 5s", cfg.Nominatim.Timeout)
	}
	// Explicit client base URL must not be overridden by the derived default.
	if cfg.Client.BaseURL != "http://api.example.com" {
		t.Errorf("Client.BaseURL = %q", cfg.Client.BaseURL)
	}
}

func TestParse_InvalidLevel(t *testing.T) {
	_, err := Parse([]byte("log:\n  level: loud\n"))
	if err == nil {
		t.Fatal("expected validation error for bad log level")
	}
	if !strings.Contains(err.Error(), "log.level") {
		t.Errorf("error should mention log.level, got: %v", err)
	}
}

func TestParse_BadYAML(t *testing.T) {
	_, err := Parse([]byte("server: ["))
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults, got: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want default", cfg.Server.Port)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7777\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want 7777", cfg.Server.Port)
	}
}
