package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/alnah/go-secard/internal/fileutil"
	"github.com/alnah/go-secard/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrEnvParse        = errors.New("failed to parse environment")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxLanguageLength = 35   // BCP 47 tags rarely exceed this
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxAddrLength     = 255  // host:port
	MaxPrefixLength   = 64   // Redis key namespace
)

// Sheet selections.
const (
	SheetsBoth  = "both"
	SheetsFront = "front"
	SheetsBack  = "back"
)

// Output formats.
const (
	FormatJSONLines = "jsonl" // one object per rendered sheet
	FormatJSON      = "json"  // a single array
)

// Config holds all configuration for a render run.
type Config struct {
	Language string          `yaml:"language"` // "de", "zh_CN"; empty = English
	Workers  int             `yaml:"workers"`  // 0 = GOMAXPROCS
	Sheets   string          `yaml:"sheets"`   // both, front, back
	Tables   string          `yaml:"tables"`   // overlay file laid over the bundled tables
	Cache    CacheConfig     `yaml:"cache"`
	Output   OutputConfig    `yaml:"output"`
	Portrait *PortraitConfig `yaml:"portrait"`
}

// CacheConfig defines the optional Redis memo store.
type CacheConfig struct {
	RedisAddr string        `yaml:"redisAddr"` // Empty = no cache
	TTL       time.Duration `yaml:"ttl"`       // 0 = no expiry
	Prefix    string        `yaml:"prefix"`    // Empty = cache.DefaultPrefix
}

// OutputConfig defines how rendered cards are written.
type OutputConfig struct {
	Format string `yaml:"format"` // jsonl (default) or json
}

// PortraitConfig positions card art on every rendered sheet.
type PortraitConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Scale float64 `yaml:"scale"`
}

// Validate checks field values and lengths.
func (c *Config) Validate() error {
	if err := validateFieldLength("language", c.Language, MaxLanguageLength); err != nil {
		return err
	}
	if err := validateFieldLength("tables", c.Tables, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("cache.redisAddr", c.Cache.RedisAddr, MaxAddrLength); err != nil {
		return err
	}
	if err := validateFieldLength("cache.prefix", c.Cache.Prefix, MaxPrefixLength); err != nil {
		return err
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers: must be >= 0, got %d", ErrInvalidValue, c.Workers)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("%w: cache.ttl: must be >= 0, got %s", ErrInvalidValue, c.Cache.TTL)
	}

	switch strings.ToLower(c.Sheets) {
	case "", SheetsBoth, SheetsFront, SheetsBack:
	default:
		return fmt.Errorf("%w: sheets: %q (must be both, front, or back)", ErrInvalidValue, c.Sheets)
	}

	switch strings.ToLower(c.Output.Format) {
	case "", FormatJSONLines, FormatJSON:
	default:
		return fmt.Errorf("%w: output.format: %q (must be jsonl or json)", ErrInvalidValue, c.Output.Format)
	}

	if c.Portrait != nil && c.Portrait.Scale <= 0 {
		return fmt.Errorf("%w: portrait.scale: must be > 0, got %g", ErrInvalidValue, c.Portrait.Scale)
	}

	return nil
}

// validateFieldLength checks if a string field exceeds its maximum length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration with neutral defaults.
func DefaultConfig() *Config {
	return &Config{
		Sheets: SheetsBoth,
		Output: OutputConfig{Format: FormatJSONLines},
	}
}

// envOverrides holds the SECARD_* environment variables.
type envOverrides struct {
	Language    string        `env:"SECARD_LANG"`
	Workers     int           `env:"SECARD_WORKERS"`
	Sheets      string        `env:"SECARD_SHEETS"`
	Tables      string        `env:"SECARD_TABLES"`
	RedisAddr   string        `env:"SECARD_REDIS_ADDR"`
	CacheTTL    time.Duration `env:"SECARD_CACHE_TTL"`
	CachePrefix string        `env:"SECARD_CACHE_PREFIX"`
	Format      string        `env:"SECARD_FORMAT"`
}

// EnvVars lists the recognized environment variables.
var EnvVars = []string{
	"SECARD_LANG", "SECARD_WORKERS", "SECARD_SHEETS", "SECARD_TABLES",
	"SECARD_REDIS_ADDR", "SECARD_CACHE_TTL", "SECARD_CACHE_PREFIX", "SECARD_FORMAT",
}

// ApplyEnv overrides fields with the SECARD_* variables that are set to a
// non-zero value, then validates the result.
func (c *Config) ApplyEnv() error {
	var e envOverrides
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("%w: %v", ErrEnvParse, err)
	}

	setString(&c.Language, e.Language)
	setString(&c.Sheets, e.Sheets)
	setString(&c.Tables, e.Tables)
	setString(&c.Cache.RedisAddr, e.RedisAddr)
	setString(&c.Cache.Prefix, e.CachePrefix)
	setString(&c.Output.Format, e.Format)
	if e.Workers != 0 {
		c.Workers = e.Workers
	}
	if e.CacheTTL != 0 {
		c.Cache.TTL = e.CacheTTL
	}

	return c.Validate()
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it searches for <name>.yaml or <name>.yml in:
//  1. Current directory
//  2. User config directory (~/.config/go-secard/ on Linux)
//
// Missing fields keep the DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-secard", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
