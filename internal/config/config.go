// Package config loads dwadmin configuration from the user's config file,
// environment variables, and CLI flag overrides, with flag > env > file >
// default precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Defaults and bounds for pagination and caching.
const (
	// DefaultPageSize is used on short or non-interactive terminals.
	DefaultPageSize = 10

	// TallPageSize is used when the terminal is tall enough to show a
	// larger page without scrolling.
	TallPageSize = 20

	// tallTerminalRows is the height threshold for TallPageSize.
	tallTerminalRows = 40

	// MaxPageSize mirrors the control layer's cursor listing cap.
	MaxPageSize = 100

	// DefaultCacheTTLSeconds is the response cache TTL. List data goes
	// stale quickly, so this is deliberately short.
	DefaultCacheTTLSeconds = 60

	// DefaultServerURL is the local control layer address.
	DefaultServerURL = "http://localhost:3001"
)

// Environment variable names.
const (
	EnvServer    = "DWADMIN_SERVER"
	EnvAPIKey    = "DWADMIN_API_KEY"
	EnvPageSize  = "DWADMIN_PAGE_SIZE"
	EnvCacheTTL  = "DWADMIN_CACHE_TTL"
	EnvLogLevel  = "DWADMIN_LOG_LEVEL"
	EnvConfigDir = "DWADMIN_CONFIG_DIR"
)

// ErrInvalidPageSize is returned when a configured page size is out of range.
var ErrInvalidPageSize = fmt.Errorf("page size must be between 1 and %d", MaxPageSize)

// CacheConfig controls the response cache.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	TTLSeconds int  `yaml:"ttl_seconds"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the root dwadmin configuration.
type Config struct {
	Server   string        `yaml:"server"`
	APIKey   string        `yaml:"api_key"`
	PageSize int           `yaml:"page_size"`
	Cache    CacheConfig   `yaml:"cache"`
	Logging  LoggingConfig `yaml:"logging"`
}

// Default returns the built-in configuration before any file or
// environment overrides are applied.
func Default() *Config {
	return &Config{
		Server:   DefaultServerURL,
		PageSize: 0, // 0 means "derive from terminal height"
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: DefaultCacheTTLSeconds,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Dir returns the dwadmin configuration directory, honoring
// DWADMIN_CONFIG_DIR for tests and non-standard setups.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".dwadmin"), nil
}

// Load reads the config file (if present) and applies environment
// overrides. A missing file is not an error; a malformed file is.
func Load() (*Config, error) {
	cfg := Default()

	dir, err := Dir()
	if err != nil {
		// No home directory: run on defaults plus env.
		cfg.applyEnv()
		return cfg, nil
	}

	path := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variables onto cfg. Malformed numeric
// values are ignored rather than fatal.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvServer); v != "" {
		c.Server = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= MaxPageSize {
			c.PageSize = n
		}
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Cache.TTLSeconds = n
		}
	}
}

// Validate checks value ranges after all overrides are applied.
func (c *Config) Validate() error {
	if c.PageSize < 0 || c.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.PageSize)
	}
	if c.Cache.TTLSeconds < 0 {
		return errors.New("cache ttl_seconds cannot be negative")
	}
	return nil
}

// ResolvePageSize returns the effective default page size. An explicit
// configured size wins; otherwise the size is derived once from the
// terminal height of fd so tall viewports get larger pages. The result
// is injected into the pagination engine, which never queries the
// environment itself.
func (c *Config) ResolvePageSize(fd int) int {
	if c.PageSize > 0 {
		return c.PageSize
	}
	if term.IsTerminal(fd) {
		if _, rows, err := term.GetSize(fd); err == nil && rows >= tallTerminalRows {
			return TallPageSize
		}
	}
	return DefaultPageSize
}
