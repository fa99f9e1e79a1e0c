package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alnah/go-secard"
	"github.com/alnah/go-secard/internal/cache"
	"github.com/alnah/go-secard/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write output")
)

// filePermissions is rw-r--r--: owner read+write, others read.
const filePermissions = 0o644

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath  string
	language    string
	workers     int
	tables      string
	redisAddr   string
	cacheTTL    time.Duration
	cachePrefix string
	verbose     bool
}

func newRootCmd(env *Environment) *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "secard",
		Short: "Convert ArkhamDB card data into Strange Eons fields",
		Long: `secard derives the Strange Eons field settings of Arkham Horror LCG cards
from ArkhamDB card records.

Input is a JSON array of card records, read from a file or stdin ("-").
Settings come from, in increasing priority: a YAML config file, SECARD_*
environment variables, and flags.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			env.Logger = newLogger(env.Stderr, flags.verbose)
			warnUnknownEnvVars(env)

			cfg, err := loadConfig(cmd.Flags(), &flags)
			if err != nil {
				return err
			}
			env.Config = cfg
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = env.Logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file name or path (env "+envConfigPath+")")
	pf.StringVarP(&flags.language, "lang", "l", "", `output language, e.g. "de" or "zh_CN"`)
	pf.IntVarP(&flags.workers, "workers", "w", 0, "concurrent renders (0 = number of CPUs)")
	pf.StringVar(&flags.tables, "tables", "", "YAML file laid over the bundled game tables")
	pf.StringVar(&flags.redisAddr, "redis-addr", "", "Redis host:port for the render cache (empty = no cache)")
	pf.DurationVar(&flags.cacheTTL, "cache-ttl", 0, "render cache entry lifetime (0 = no expiry)")
	pf.StringVar(&flags.cachePrefix, "cache-prefix", "", "render cache key prefix")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log debug output to stderr")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	root.AddCommand(
		newRenderCmd(env),
		newProofCmd(env),
		newComponentsCmd(env),
	)
	return root
}

// maxArgs is cobra.MaximumNArgs with a usage error.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return nil
	}
}

// newLogger writes JSON logs to w at info level, or debug when verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}

// loadConfig resolves settings: config file < environment < flags.
func loadConfig(fs *pflag.FlagSet, flags *globalFlags) (*config.Config, error) {
	path := flags.configPath
	if path == "" {
		path = os.Getenv(envConfigPath)
	}

	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if fs.Changed("lang") {
		cfg.Language = flags.language
	}
	if fs.Changed("workers") {
		cfg.Workers = flags.workers
	}
	if fs.Changed("tables") {
		cfg.Tables = flags.tables
	}
	if fs.Changed("redis-addr") {
		cfg.Cache.RedisAddr = flags.redisAddr
	}
	if fs.Changed("cache-ttl") {
		cfg.Cache.TTL = flags.cacheTTL
	}
	if fs.Changed("cache-prefix") {
		cfg.Cache.Prefix = flags.cachePrefix
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newRenderer builds a Renderer from the resolved config. The returned
// close function releases the cache connection and is never nil.
func newRenderer(env *Environment, counts map[string]int) (*secard.Renderer, func() error, error) {
	cfg := env.Config
	opts := []secard.Option{
		secard.WithLanguage(cfg.Language),
		secard.WithWorkers(cfg.Workers),
		secard.WithLogger(env.Logger),
		secard.WithEncounterCounts(counts),
	}

	if cfg.Tables != "" {
		abs, err := filepath.Abs(cfg.Tables)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: tables: %v", ErrUsage, err)
		}
		opts = append(opts, secard.WithTables(os.DirFS(filepath.Dir(abs)), filepath.Base(abs)))
	}

	closeFn := func() error { return nil }
	if cfg.Cache.RedisAddr != "" {
		client, err := cache.NewClient(cfg.Cache.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		store, err := cache.NewRedisStore(&cache.Config{Client: client, TTL: cfg.Cache.TTL})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		opts = append(opts, secard.WithCache(store), secard.WithCachePrefix(cfg.Cache.Prefix))
		closeFn = store.Close
	}

	r, err := secard.New(opts...)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}

	env.Logger.Debug("renderer ready",
		zap.String("language", cfg.Language),
		zap.Int("workers", r.Workers()),
		zap.Bool("cache", cfg.Cache.RedisAddr != ""),
	)
	return r, closeFn, nil
}
