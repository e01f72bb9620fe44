// Package config loads Brainwave settings from a TOML file and the
// environment.
//
// Settings are resolved in three steps: [Default] values, then the TOML file
// (a missing file is not an error), then BRAINWAVE_* environment variables.
// Every geometry constant can be tuned, but the defaults reproduce the
// classic Brainwave look.
//
//	cfg, err := config.Load(config.DefaultPath())
//	cfg.ApplyEnv()
//	if err := cfg.Validate(); err != nil { ... }
package config

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/layout"
	"github.com/matzehuels/brainwave/pkg/route"
	"github.com/matzehuels/brainwave/pkg/viewport"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Backends lists the supported store backends.
var Backends = []string{BackendFile, BackendSQLite, BackendRedis, BackendMongo, BackendMemory}

// Config is the complete Brainwave configuration.
type Config struct {
	Layout   layout.Config   `toml:"layout"`
	Route    route.Config    `toml:"route"`
	Viewport viewport.Config `toml:"viewport"`
	Render   RenderConfig    `toml:"render"`
	Server   ServerConfig    `toml:"server"`
	Store    StoreConfig     `toml:"store"`
	Cache    CacheConfig     `toml:"cache"`
}

// RenderConfig holds export defaults.
type RenderConfig struct {
	Style   string  `toml:"style"`
	Measure bool    `toml:"measure"`
	Shadows bool    `toml:"shadows"`
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Listen          string        `toml:"listen"`
	MaxSessions     int           `toml:"max_sessions"`
	SessionTTL      time.Duration `toml:"session_ttl"`
	CleanupInterval time.Duration `toml:"cleanup_interval"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	Backend  string        `toml:"backend"`
	Dir      string        `toml:"dir"`
	Debounce time.Duration `toml:"debounce"`
	Timeout  time.Duration `toml:"timeout"`

	SQLitePath string `toml:"sqlite_path"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`

	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// CacheConfig configures the render artifact cache.
type CacheConfig struct {
	Enabled bool          `toml:"enabled"`
	Dir     string        `toml:"dir"`
	TTL     time.Duration `toml:"ttl"`
}

// Default returns the built-in configuration.
func Default() *Config {
	data := dataDir()
	return &Config{
		Layout:   layout.DefaultConfig(),
		Route:    route.DefaultConfig(),
		Viewport: viewport.DefaultConfig(),
		Render: RenderConfig{
			Style:   "dark",
			Measure: true,
			Width:   1600,
			Height:  900,
		},
		Server: ServerConfig{
			Listen:          ":7480",
			MaxSessions:     100,
			SessionTTL:      2 * time.Hour,
			CleanupInterval: 5 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Backend:       BackendFile,
			Dir:           filepath.Join(data, "maps"),
			Debounce:      500 * time.Millisecond,
			Timeout:       5 * time.Second,
			SQLitePath:    filepath.Join(data, "brainwave.db"),
			RedisAddr:     "localhost:6379",
			RedisPrefix:   "brainwave:",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "brainwave",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     cacheDir(),
			TTL:     24 * time.Hour,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/brainwave/config.toml, falling back to
// ~/.config/brainwave/config.toml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "brainwave", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".brainwave", "config.toml")
	}
	return filepath.Join(home, ".config", "brainwave", "config.toml")
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "brainwave")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "brainwave")
	}
	return ".brainwave"
}

func cacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "brainwave")
	}
	return filepath.Join(".brainwave", "cache")
}

// Load reads the TOML file at path over the defaults. A missing file yields
// the defaults; unknown keys are rejected so typos do not pass silently.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Write encodes cfg as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// ApplyEnv overrides settings from BRAINWAVE_* environment variables.
func (c *Config) ApplyEnv() {
	c.Server.Listen = getEnv("BRAINWAVE_LISTEN", c.Server.Listen)
	c.Server.MaxSessions = getEnvInt("BRAINWAVE_MAX_SESSIONS", c.Server.MaxSessions)
	c.Server.SessionTTL = getEnvDuration("BRAINWAVE_SESSION_TTL", c.Server.SessionTTL)

	c.Store.Backend = getEnv("BRAINWAVE_STORE", c.Store.Backend)
	c.Store.Dir = getEnv("BRAINWAVE_STORE_DIR", c.Store.Dir)
	c.Store.Debounce = getEnvDuration("BRAINWAVE_DEBOUNCE", c.Store.Debounce)
	c.Store.SQLitePath = getEnv("BRAINWAVE_SQLITE_PATH", c.Store.SQLitePath)
	c.Store.RedisAddr = getEnv("BRAINWAVE_REDIS_ADDR", c.Store.RedisAddr)
	c.Store.RedisPassword = getEnv("BRAINWAVE_REDIS_PASSWORD", c.Store.RedisPassword)
	c.Store.RedisDB = getEnvInt("BRAINWAVE_REDIS_DB", c.Store.RedisDB)
	c.Store.MongoURI = getEnv("BRAINWAVE_MONGO_URI", c.Store.MongoURI)
	c.Store.MongoDatabase = getEnv("BRAINWAVE_MONGO_DB", c.Store.MongoDatabase)

	c.Cache.Enabled = getEnvBool("BRAINWAVE_CACHE", c.Cache.Enabled)
	c.Cache.Dir = getEnv("BRAINWAVE_CACHE_DIR", c.Cache.Dir)

	c.Render.Style = getEnv("BRAINWAVE_STYLE", c.Render.Style)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Layout.XGap <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout.x_gap must be positive")
	}
	if c.Layout.YGap < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout.y_gap must not be negative")
	}
	if c.Layout.DefaultHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout.default_height must be positive")
	}
	if c.Route.Inset < 0 || c.Route.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "route.inset and route.padding must not be negative")
	}
	if c.Viewport.MinScale <= 0 || c.Viewport.MaxScale < c.Viewport.MinScale {
		return errors.New(errors.ErrCodeInvalidScale, "viewport scale range [%v, %v] is invalid", c.Viewport.MinScale, c.Viewport.MaxScale)
	}
	if !slices.Contains(Backends, c.Store.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q (want one of %s)", c.Store.Backend, strings.Join(Backends, ", "))
	}
	if c.Store.Debounce < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "store.debounce must not be negative")
	}
	if c.Server.MaxSessions < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "server.max_sessions must be at least 1")
	}
	return nil
}
