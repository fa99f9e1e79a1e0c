package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Language != "" {
		t.Errorf("Language = %q, want empty", cfg.Language)
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want 0", cfg.Workers)
	}
	if cfg.Sheets != SheetsBoth {
		t.Errorf("Sheets = %q, want %q", cfg.Sheets, SheetsBoth)
	}
	if cfg.Output.Format != FormatJSONLines {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, FormatJSONLines)
	}
	if cfg.Cache.RedisAddr != "" {
		t.Errorf("Cache.RedisAddr = %q, want empty", cfg.Cache.RedisAddr)
	}
	if cfg.Portrait != nil {
		t.Error("Portrait should be nil by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit is invalid", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("test", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Value checks
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "language", mutate: func(c *Config) { c.Language = "zh_CN" }},
		{name: "front sheets", mutate: func(c *Config) { c.Sheets = SheetsFront }},
		{name: "sheets case-insensitive", mutate: func(c *Config) { c.Sheets = "BACK" }},
		{name: "empty sheets", mutate: func(c *Config) { c.Sheets = "" }},
		{name: "json format", mutate: func(c *Config) { c.Output.Format = FormatJSON }},
		{name: "cache", mutate: func(c *Config) { c.Cache = CacheConfig{RedisAddr: "localhost:6379", TTL: time.Hour, Prefix: "v2:"} }},
		{name: "portrait", mutate: func(c *Config) { c.Portrait = &PortraitConfig{X: 10, Y: -5, Scale: 1.2} }},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Workers = -1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative ttl",
			mutate:  func(c *Config) { c.Cache.TTL = -time.Second },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown sheets",
			mutate:  func(c *Config) { c.Sheets = "sides" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Output.Format = "xml" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "zero portrait scale",
			mutate:  func(c *Config) { c.Portrait = &PortraitConfig{X: 1} },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "language too long",
			mutate:  func(c *Config) { c.Language = strings.Repeat("x", MaxLanguageLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "prefix too long",
			mutate:  func(c *Config) { c.Cache.Prefix = strings.Repeat("x", MaxPrefixLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "redis address too long",
			mutate:  func(c *Config) { c.Cache.RedisAddr = strings.Repeat("x", MaxAddrLength+1) },
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_ApplyEnv - Environment overrides
// ---------------------------------------------------------------------------

func TestConfig_ApplyEnv(t *testing.T) {
	t.Run("set variables override file values", func(t *testing.T) {
		t.Setenv("SECARD_LANG", "de")
		t.Setenv("SECARD_WORKERS", "3")
		t.Setenv("SECARD_REDIS_ADDR", "redis:6379")
		t.Setenv("SECARD_CACHE_TTL", "90m")

		cfg := DefaultConfig()
		cfg.Language = "zh_CN"
		cfg.Cache.Prefix = "kept:"

		if err := cfg.ApplyEnv(); err != nil {
			t.Fatalf("ApplyEnv() error = %v", err)
		}

		want := &Config{
			Language: "de",
			Workers:  3,
			Sheets:   SheetsBoth,
			Cache:    CacheConfig{RedisAddr: "redis:6379", TTL: 90 * time.Minute, Prefix: "kept:"},
			Output:   OutputConfig{Format: FormatJSONLines},
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unset variables keep values", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Tables = "tables.yaml"

		if err := cfg.ApplyEnv(); err != nil {
			t.Fatalf("ApplyEnv() error = %v", err)
		}
		if cfg.Tables != "tables.yaml" {
			t.Errorf("Tables = %q, want tables.yaml", cfg.Tables)
		}
	})

	t.Run("malformed number returns ErrEnvParse", func(t *testing.T) {
		t.Setenv("SECARD_WORKERS", "many")

		if err := DefaultConfig().ApplyEnv(); !errors.Is(err, ErrEnvParse) {
			t.Errorf("error = %v, want ErrEnvParse", err)
		}
	})

	t.Run("malformed duration returns ErrEnvParse", func(t *testing.T) {
		t.Setenv("SECARD_CACHE_TTL", "soon")

		if err := DefaultConfig().ApplyEnv(); !errors.Is(err, ErrEnvParse) {
			t.Errorf("error = %v, want ErrEnvParse", err)
		}
	})

	t.Run("overridden values are validated", func(t *testing.T) {
		t.Setenv("SECARD_FORMAT", "xml")

		if err := DefaultConfig().ApplyEnv(); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File resolution and parsing
// ---------------------------------------------------------------------------

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "secard.yaml", `language: de
workers: 4
sheets: front
tables: ./overrides.yaml
cache:
  redisAddr: localhost:6379
  ttl: 24h
  prefix: "secard:v2:"
output:
  format: json
portrait:
  x: 12.5
  y: -3
  scale: 1.1
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		want := &Config{
			Language: "de",
			Workers:  4,
			Sheets:   SheetsFront,
			Tables:   "./overrides.yaml",
			Cache:    CacheConfig{RedisAddr: "localhost:6379", TTL: 24 * time.Hour, Prefix: "secard:v2:"},
			Output:   OutputConfig{Format: FormatJSON},
			Portrait: &PortraitConfig{X: 12.5, Y: -3, Scale: 1.1},
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing fields keep defaults", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "partial.yaml", "language: de\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Sheets != SheetsBoth || cfg.Output.Format != FormatJSONLines {
			t.Errorf("defaults lost: sheets=%q format=%q", cfg.Sheets, cfg.Output.Format)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown name returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("no-such-secard-config")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "invalid.yaml", "language: [unclosed")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "typo.yaml", "langauge: de\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "bad.yaml", "workers: -2\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("name resolves in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "local.yml", "sheets: back\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("local")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Sheets != SheetsBack {
			t.Errorf("Sheets = %q, want %q", cfg.Sheets, SheetsBack)
		}
	})
}
