// Package config loads runtime settings: defaults, then an optional TOML or
// YAML file named by WORKSHOP_CONFIG, then WORKSHOP_* environment overrides.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Detail sources
const (
	DetailSourcePlaceholder = "placeholder"
	DetailSourceSQLite      = "sqlite"
)

// EnvProduction is the env value that enables production checks.
const EnvProduction = "production"

// Config errors
var (
	ErrInvalidDetailSource = errors.New("detail_source must be one of: placeholder, sqlite")
	ErrInvalidCSRFKey      = errors.New("csrf_key must be 64 hex characters (32 bytes)")
	ErrMissingCSRFKey      = errors.New("csrf_key is required in production")
	ErrUnknownFormat       = errors.New("config file must end in .toml, .yaml or .yml")
)

// Config holds every runtime setting.
type Config struct {
	Addr               string `toml:"addr" yaml:"addr"`
	Env                string `toml:"env" yaml:"env"`
	DBPath             string `toml:"db_path" yaml:"db_path"`
	DetailSource       string `toml:"detail_source" yaml:"detail_source"`
	TimeZone           string `toml:"timezone" yaml:"timezone"`
	SeedTestData       bool   `toml:"seed_test_data" yaml:"seed_test_data"`
	LogLevel           string `toml:"log_level" yaml:"log_level"`
	SlowQueryMs        int    `toml:"slow_query_ms" yaml:"slow_query_ms"`
	SlowRequestMs      int    `toml:"slow_request_ms" yaml:"slow_request_ms"`
	RateLimitPerSecond int    `toml:"rate_limit_per_second" yaml:"rate_limit_per_second"`
	CSRFKey            string `toml:"csrf_key" yaml:"csrf_key"`
}

// Default returns the development defaults.
func Default() Config {
	return Config{
		Addr:               ":8080",
		Env:                "development",
		DBPath:             "workshops.db",
		DetailSource:       DetailSourcePlaceholder,
		SeedTestData:       true,
		LogLevel:           "info",
		SlowQueryMs:        50,
		SlowRequestMs:      200,
		RateLimitPerSecond: 10,
	}
}

// Load builds the config from defaults, the optional file and the environment.
// PRE: none
// POST: Returns a validated Config or the first error encountered
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("WORKSHOP_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeFile decodes path over the current values. Keys absent from the file keep their values.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Addr = envOrDefault("WORKSHOP_ADDR", c.Addr)
	c.Env = envOrDefault("WORKSHOP_ENV", c.Env)
	c.DBPath = envOrDefault("WORKSHOP_DB_PATH", c.DBPath)
	c.DetailSource = envOrDefault("WORKSHOP_DETAIL_SOURCE", c.DetailSource)
	c.TimeZone = envOrDefault("WORKSHOP_TZ", c.TimeZone)
	c.LogLevel = envOrDefault("WORKSHOP_LOG_LEVEL", c.LogLevel)
	c.CSRFKey = envOrDefault("WORKSHOP_CSRF_KEY", c.CSRFKey)
	c.SeedTestData = envBool("WORKSHOP_SEED_TEST_DATA", c.SeedTestData)
	c.SlowQueryMs = envInt("WORKSHOP_SLOW_QUERY_MS", c.SlowQueryMs)
	c.SlowRequestMs = envInt("WORKSHOP_SLOW_REQUEST_MS", c.SlowRequestMs)
	c.RateLimitPerSecond = envInt("WORKSHOP_RATE_LIMIT", c.RateLimitPerSecond)
}

// Validate checks cross-field rules.
// PRE: Config is populated
// POST: Returns nil if valid, error otherwise
func (c Config) Validate() error {
	if c.DetailSource != DetailSourcePlaceholder && c.DetailSource != DetailSourceSQLite {
		return ErrInvalidDetailSource
	}
	if c.CSRFKey == "" && c.IsProduction() {
		return ErrMissingCSRFKey
	}
	if c.CSRFKey != "" {
		if key, err := hex.DecodeString(c.CSRFKey); err != nil || len(key) != 32 {
			return ErrInvalidCSRFKey
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// IsProduction reports whether production checks apply.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Location resolves TimeZone; empty means time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// CSRFKeyBytes decodes CSRFKey. It returns nil when no key is configured.
func (c Config) CSRFKeyBytes() []byte {
	if c.CSRFKey == "" {
		return nil
	}
	key, _ := hex.DecodeString(c.CSRFKey)
	return key
}

// SlogLevel maps LogLevel onto slog levels, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
