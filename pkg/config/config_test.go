package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/pokespeare/pkg/integrations/funtranslations"
	"github.com/matzehuels/pokespeare/pkg/integrations/pokeapi"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokespeare.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Listen != DefaultListen {
		t.Errorf("Listen = %q, want %q", cfg.Listen, DefaultListen)
	}
	if cfg.PokeAPI.BaseURL != pokeapi.DefaultBaseURL {
		t.Errorf("PokeAPI.BaseURL = %q", cfg.PokeAPI.BaseURL)
	}
	if cfg.FunTranslations.BaseURL != funtranslations.DefaultBaseURL {
		t.Errorf("FunTranslations.BaseURL = %q", cfg.FunTranslations.BaseURL)
	}
	if cfg.PokeAPI.Timeout.Duration != 10*time.Second || cfg.FunTranslations.Timeout.Duration != 10*time.Second {
		t.Errorf("timeouts = %v/%v, want 10s", cfg.PokeAPI.Timeout, cfg.FunTranslations.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error: %v", err)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
listen = ":9090"

[log]
level = "debug"

[pokeapi]
base_url = "http://localhost:3000/api/v2"
timeout = "2s"

[funtranslations]
timeout = "1500ms"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Listen != ":9090" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.PokeAPI.BaseURL != "http://localhost:3000/api/v2" {
		t.Errorf("PokeAPI.BaseURL = %q", cfg.PokeAPI.BaseURL)
	}
	if cfg.PokeAPI.Timeout.Duration != 2*time.Second {
		t.Errorf("PokeAPI.Timeout = %v", cfg.PokeAPI.Timeout)
	}
	if cfg.FunTranslations.BaseURL != funtranslations.DefaultBaseURL {
		t.Errorf("FunTranslations.BaseURL = %q, want default kept", cfg.FunTranslations.BaseURL)
	}
	if cfg.FunTranslations.Timeout.Duration != 1500*time.Millisecond {
		t.Errorf("FunTranslations.Timeout = %v", cfg.FunTranslations.Timeout)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad duration", "[pokeapi]\ntimeout = \"soon\"\n", "parse config"},
		{"unknown key", "listen = \":1\"\nlisten_port = 1\n", "unknown keys"},
		{"bad toml", "listen = \n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty listen", func(c *Config) { c.Listen = "" }, "listen address"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"zero timeout", func(c *Config) { c.PokeAPI.Timeout = Duration{} }, "pokeapi.timeout"},
		{"relative url", func(c *Config) { c.FunTranslations.BaseURL = "/translate" }, "funtranslations.base_url"},
		{"negative shutdown", func(c *Config) { c.ShutdownTimeout = Duration{-time.Second} }, "shutdown_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_LogLevelCaseInsensitive(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "DEBUG"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}
