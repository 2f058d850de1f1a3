// Package config provides YAML-based configuration loading for Wayfinder.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Wayfinder configuration, loaded from wayfinder.yaml.
// The server and client sections live in one file so a single config can
// drive both `wf serve` and the client commands.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Nominatim NominatimConfig `yaml:"nominatim"`
	LLM       LLMConfig       `yaml:"llm"`
	Client    ClientConfig    `yaml:"client"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server and auth settings.
type ServerConfig struct {
	Port             int           `yaml:"port"`
	CORSAllowOrigins []string      `yaml:"cors_allow_origins"`
	JWTSecret        string        `yaml:"jwt_secret"`
	TokenTTL         time.Duration `yaml:"token_ttl"`
	Debug            bool          `yaml:"debug"`
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// NominatimConfig holds geocoding settings.
type NominatimConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// LLMConfig holds settings for the history-insights assistant.
type LLMConfig struct {
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
}

// ClientConfig holds settings for the client commands.
type ClientConfig struct {
	BaseURL   string `yaml:"base_url"`
	TokenPath string `yaml:"token_path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a YAML config file from path and returns a validated Config.
// A missing file yields the defaults, so client commands work without one.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Parse(nil)
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if len(c.Server.CORSAllowOrigins) == 0 {
		c.Server.CORSAllowOrigins = []string{"http://localhost:5173"}
	}
	if c.Server.TokenTTL == 0 {
		c.Server.TokenTTL = time.Hour
	}
	if c.Database.Path == "" {
		c.Database.Path = "wayfinder.db"
	}
	if c.Nominatim.BaseURL == "" {
		c.Nominatim.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if c.Nominatim.Timeout == 0 {
		c.Nominatim.Timeout = 10 * time.Second
	}
	if c.Nominatim.CacheTTL == 0 {
		c.Nominatim.CacheTTL = 24 * time.Hour
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1024
	}
	if c.Client.BaseURL == "" {
		c.Client.BaseURL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}
	if c.Client.TokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.Client.TokenPath = filepath.Join(home, ".wayfinder", "token")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// validate checks that all fields are consistent. Only the fields the
// server cannot run without are hard requirements; jwt_secret is checked
// at serve time so client-only usage never needs one.
func (c *Config) validate() error {
	var errs []string
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.TokenTTL < 0 {
		errs = append(errs, "server.token_ttl must not be negative")
	}
	if c.Nominatim.Timeout < 0 {
		errs = append(errs, "nominatim.timeout must not be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
