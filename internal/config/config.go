// Package config loads pokedex settings from a YAML file and the environment.
//
// Precedence, lowest to highest: built-in defaults, the YAML file,
// POKEDEX_* environment variables, command-line flags (applied by the CLI).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Sternrassler/pokedex-client/internal/notify"
	"github.com/Sternrassler/pokedex-client/pkg/client"
	"github.com/Sternrassler/pokedex-client/pkg/logging"
	"github.com/Sternrassler/pokedex-client/pkg/pagination"
	"github.com/Sternrassler/pokedex-client/pkg/pokedex"
)

// DefaultPath is read when no --config flag is given and the file exists.
const DefaultPath = "pokedex.yaml"

// DefaultUserAgent identifies the client to PokeAPI.
const DefaultUserAgent = "pokedex-client/1.0 (+https://github.com/Sternrassler/pokedex-client)"

// Environment variables that override file values.
const (
	EnvBaseURL   = "POKEDEX_BASE_URL"
	EnvUserAgent = "POKEDEX_USER_AGENT"
	EnvRedisURL  = "POKEDEX_REDIS_URL"
	EnvLogLevel  = "POKEDEX_LOG_LEVEL"
	EnvCount     = "POKEDEX_COUNT"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the complete application configuration.
type Config struct {
	API        APIConfig          `yaml:"api"`
	Fetch      FetchConfig        `yaml:"fetch"`
	Pagination PaginationConfig   `yaml:"pagination"`
	Cache      CacheConfig        `yaml:"cache"`
	Log        LogConfig          `yaml:"log"`
	Notify     NotifyConfig       `yaml:"notify"`
	Metrics    MetricsConfig      `yaml:"metrics"`
	Categories []pokedex.Category `yaml:"categories,omitempty"`
}

// APIConfig configures the HTTP client.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

// FetchConfig configures the record fetch.
type FetchConfig struct {
	// Count is one past the last id fetched.
	Count       int `yaml:"count"`
	Concurrency int `yaml:"concurrency"`
}

// PaginationConfig configures page chunking.
type PaginationConfig struct {
	PageSize int `yaml:"page_size"`
}

// CacheConfig configures the optional Redis response cache.
type CacheConfig struct {
	// RedisURL enables the cache when set, e.g. redis://localhost:6379/0.
	RedisURL string `yaml:"redis_url"`
}

// LogConfig configures zerolog output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
	// File receives logs while the interactive pager owns the terminal.
	File string `yaml:"file"`
}

// NotifyConfig configures failure notifications.
type NotifyConfig struct {
	Desktop bool `yaml:"desktop"`
	// MinLevel is the lowest level shown as a desktop notification.
	MinLevel string `yaml:"min_level"`
}

// DesktopLevel returns the parsed MinLevel.
func (n NotifyConfig) DesktopLevel() (notify.Level, error) {
	return notify.ParseLevel(n.MinLevel)
}

// MetricsConfig configures the metrics dump.
type MetricsConfig struct {
	// Textfile is written at exit when set.
	Textfile string `yaml:"textfile"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:   client.DefaultBaseURL,
			UserAgent: DefaultUserAgent,
			Timeout:   10 * time.Second,
		},
		Fetch: FetchConfig{
			Count:       pokedex.DefaultCount,
			Concurrency: 1,
		},
		Pagination: PaginationConfig{
			PageSize: pagination.DefaultPageSize,
		},
		Log: LogConfig{
			Level: string(logging.LevelInfo),
			File:  "pokedex.log",
		},
		Notify: NotifyConfig{
			Desktop:  true,
			MinLevel: notify.LevelWarning.String(),
		},
	}
}

// Load reads path over the defaults. An empty path reads DefaultPath if it
// exists and otherwise returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables found by lookup.
// Pass os.LookupEnv in production.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookup(EnvUserAgent); ok && v != "" {
		c.API.UserAgent = v
	}
	if v, ok := lookup(EnvRedisURL); ok {
		c.Cache.RedisURL = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvCount); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCount, err)
		}
		c.Fetch.Count = n
	}
	return nil
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Fetch.Count < 1:
		return fmt.Errorf("%w: fetch.count must be >= 1 (got %d)", ErrInvalidConfig, c.Fetch.Count)
	case c.Fetch.Concurrency < 1:
		return fmt.Errorf("%w: fetch.concurrency must be >= 1 (got %d)", ErrInvalidConfig, c.Fetch.Concurrency)
	case c.Pagination.PageSize < 1:
		return fmt.Errorf("%w: pagination.page_size must be >= 1 (got %d)", ErrInvalidConfig, c.Pagination.PageSize)
	case c.API.Timeout <= 0:
		return fmt.Errorf("%w: api.timeout must be > 0 (got %s)", ErrInvalidConfig, c.API.Timeout)
	case strings.TrimSpace(c.API.UserAgent) == "":
		return fmt.Errorf("%w: api.user_agent is required", ErrInvalidConfig)
	case !logging.ValidLevel(logging.LogLevel(c.Log.Level)):
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	if _, err := c.Notify.DesktopLevel(); err != nil {
		return fmt.Errorf("%w: notify.min_level: %w", ErrInvalidConfig, err)
	}

	if len(c.Categories) > 0 {
		if _, err := pokedex.NewTable(c.Categories); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Table returns the configured category table, or the default one.
func (c Config) Table() (pokedex.Table, error) {
	if len(c.Categories) == 0 {
		return pokedex.DefaultTable(), nil
	}
	return pokedex.NewTable(c.Categories)
}

// ClientConfig maps the API section onto a client configuration.
func (c Config) ClientConfig() client.Config {
	cfg := client.DefaultConfig(c.API.UserAgent)
	cfg.BaseURL = c.API.BaseURL
	cfg.Timeout = c.API.Timeout
	return cfg
}
