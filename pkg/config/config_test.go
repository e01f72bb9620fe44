package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/brainwave/pkg/errors"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Layout.XGap != 350 || cfg.Layout.YGap != 30 || cfg.Layout.DefaultHeight != 100 {
		t.Errorf("layout defaults = %+v", cfg.Layout)
	}
	if cfg.Viewport.MinScale != 0.2 || cfg.Viewport.MaxScale != 3 {
		t.Errorf("viewport defaults = %+v", cfg.Viewport)
	}
	if cfg.Route.Padding != 200 || cfg.Route.Inset != 2 {
		t.Errorf("route defaults = %+v", cfg.Route)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load(missing) = %v", err)
	}
	if cfg.Store.Backend != BackendFile {
		t.Errorf("Backend = %q, want defaults", cfg.Store.Backend)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeFile(t, `
[layout]
x_gap = 400

[viewport]
max_scale = 5.0

[store]
backend = "sqlite"
debounce = "2s"

[server]
session_ttl = "30m"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Layout.XGap != 400 {
		t.Errorf("XGap = %v, want 400", cfg.Layout.XGap)
	}
	if cfg.Layout.YGap != 30 {
		t.Errorf("YGap = %v, want default 30", cfg.Layout.YGap)
	}
	if cfg.Viewport.MaxScale != 5 || cfg.Viewport.MinScale != 0.2 {
		t.Errorf("Viewport = %+v", cfg.Viewport)
	}
	if cfg.Store.Backend != BackendSQLite || cfg.Store.Debounce != 2*time.Second {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Server.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v", cfg.Server.SessionTTL)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "[layout]\nxgap = 1\n")
	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("Load() = %v, want INVALID_INPUT", err)
	}
	if !strings.Contains(err.Error(), "layout.xgap") {
		t.Errorf("error should name the key: %v", err)
	}
}

func TestLoadRejectsBadSyntax(t *testing.T) {
	if _, err := Load(writeFile(t, "[layout\n")); err == nil {
		t.Error("Load() accepted malformed TOML")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("BRAINWAVE_STORE", "redis")
	t.Setenv("BRAINWAVE_REDIS_ADDR", "cache:6380")
	t.Setenv("BRAINWAVE_REDIS_DB", "3")
	t.Setenv("BRAINWAVE_DEBOUNCE", "250ms")
	t.Setenv("BRAINWAVE_CACHE", "false")
	t.Setenv("BRAINWAVE_MAX_SESSIONS", "not-a-number")

	cfg := Default()
	cfg.ApplyEnv()

	if cfg.Store.Backend != BackendRedis || cfg.Store.RedisAddr != "cache:6380" || cfg.Store.RedisDB != 3 {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Store.Debounce != 250*time.Millisecond {
		t.Errorf("Debounce = %v", cfg.Store.Debounce)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled should be false")
	}
	if cfg.Server.MaxSessions != 100 {
		t.Errorf("invalid env int should keep default, got %d", cfg.Server.MaxSessions)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   errors.Code
	}{
		{"zero x gap", func(c *Config) { c.Layout.XGap = 0 }, errors.ErrCodeInvalidInput},
		{"negative y gap", func(c *Config) { c.Layout.YGap = -1 }, errors.ErrCodeInvalidInput},
		{"inverted scale", func(c *Config) { c.Viewport.MinScale = 4 }, errors.ErrCodeInvalidScale},
		{"zero min scale", func(c *Config) { c.Viewport.MinScale = 0 }, errors.ErrCodeInvalidScale},
		{"unknown backend", func(c *Config) { c.Store.Backend = "s3" }, errors.ErrCodeInvalidInput},
		{"no sessions", func(c *Config) { c.Server.MaxSessions = 0 }, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Layout.XGap = 420
	cfg.Store.Backend = BackendMongo

	var buf bytes.Buffer
	if err := cfg.Write(&buf); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(writeFile(t, buf.String()))
	if err != nil {
		t.Fatalf("Load(Write()) = %v\n%s", err, buf.String())
	}
	if loaded.Layout.XGap != 420 || loaded.Store.Backend != BackendMongo {
		t.Errorf("round trip lost values: %+v %+v", loaded.Layout, loaded.Store)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultPath(); got != "/tmp/xdg/brainwave/config.toml" {
		t.Errorf("DefaultPath() = %q", got)
	}
}
