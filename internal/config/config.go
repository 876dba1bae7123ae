// Package config loads server settings from an optional YAML file, a .env
// file and PORTFOLIO_* environment variables, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Port         string        `koanf:"port"`
	Mode         string        `koanf:"mode"`
	ContentFile  string        `koanf:"content_file"`
	AssetsDir    string        `koanf:"assets_dir"`
	SessionDSN   string        `koanf:"session_dsn"`
	SessionTTL   time.Duration `koanf:"session_ttl"`
	ContactEmail string        `koanf:"contact_email"`
}

func Default() *Config {
	return &Config{
		Port:       "8080",
		Mode:       "release",
		AssetsDir:  "./public",
		SessionDSN: ":memory:",
		SessionTTL: 30 * time.Minute,
	}
}

// Load builds the configuration. A missing YAML file or .env file is not an
// error.
func Load(path string) (*Config, error) {
	// Load .env into the process environment; existing variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("PORTFOLIO_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PORTFOLIO_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Hosting platforms set PORT.
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PORTFOLIO_PORT") == "" {
		cfg.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validModes = map[string]bool{"debug": true, "release": true, "test": true}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("config: port is required")
	}
	if !validModes[c.Mode] {
		return fmt.Errorf("config: invalid mode %q (want debug, release or test)", c.Mode)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: session_ttl must be positive, got %s", c.SessionTTL)
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string { return ":" + c.Port }
