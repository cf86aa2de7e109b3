// Package config loads the service configuration.
//
// Configuration comes from three layers, later layers winning:
//
//  1. Defaults ([Default])
//  2. An optional TOML file ([Load])
//  3. Command-line flags applied by the caller
//
// Example file:
//
//	listen = ":8080"
//
//	[log]
//	level = "info"
//
//	[pokeapi]
//	base_url = "https://pokeapi.co/api/v2"
//	timeout = "10s"
//
//	[funtranslations]
//	base_url = "https://api.funtranslations.com"
//	timeout = "10s"
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pokespeare/pkg/integrations"
	"github.com/matzehuels/pokespeare/pkg/integrations/funtranslations"
	"github.com/matzehuels/pokespeare/pkg/integrations/pokeapi"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultListen is the default HTTP listen address.
	DefaultListen = "127.0.0.1:8080"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultShutdownTimeout bounds graceful server shutdown.
	DefaultShutdownTimeout = 15 * time.Second
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// =============================================================================
// Types
// =============================================================================

// Config is the complete service configuration.
type Config struct {
	Listen          string   `toml:"listen"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	Log             Log      `toml:"log"`
	PokeAPI         Upstream `toml:"pokeapi"`
	FunTranslations Upstream `toml:"funtranslations"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level"`
}

// Upstream configures one upstream API client.
type Upstream struct {
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`
}

// Duration is a time.Duration that decodes from strings like "10s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// =============================================================================
// Loading
// =============================================================================

// Default returns the configuration used when no file or flags are given.
func Default() Config {
	return Config{
		Listen:          DefaultListen,
		ShutdownTimeout: Duration{DefaultShutdownTimeout},
		Log:             Log{Level: DefaultLogLevel},
		PokeAPI: Upstream{
			BaseURL: pokeapi.DefaultBaseURL,
			Timeout: Duration{integrations.DefaultTimeout},
		},
		FunTranslations: Upstream{
			BaseURL: funtranslations.DefaultBaseURL,
			Timeout: Duration{integrations.DefaultTimeout},
		},
	}
}

// Load reads path on top of [Default]. An empty path returns the defaults.
// Keys absent from the file keep their default values; unknown keys are
// rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("parse config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Listen == "" {
		errs = append(errs, errors.New("listen address is required"))
	}
	if !isValidLogLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("invalid log level %q (want one of %s)", c.Log.Level, strings.Join(validLogLevels, ", ")))
	}
	if c.ShutdownTimeout.Duration < 0 {
		errs = append(errs, errors.New("shutdown_timeout must not be negative"))
	}
	errs = append(errs, c.PokeAPI.validate("pokeapi"), c.FunTranslations.validate("funtranslations"))
	return errors.Join(errs...)
}

func (u *Upstream) validate(name string) error {
	if u.Timeout.Duration <= 0 {
		return fmt.Errorf("%s.timeout must be positive", name)
	}
	parsed, err := url.Parse(u.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s.base_url %q is not an absolute URL", name, u.BaseURL)
	}
	return nil
}

func isValidLogLevel(level string) bool {
	for _, l := range validLogLevels {
		if strings.EqualFold(level, l) {
			return true
		}
	}
	return false
}
