package main

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-secard/internal/config"
)

// envPrefix marks the environment variables this CLI reads.
const envPrefix = "SECARD_"

// envConfigPath names the config file when --config is not given.
const envConfigPath = "SECARD_CONFIG"

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Environ func() []string
	Config  *config.Config // Resolved once per command, before RunE
	Logger  *zap.Logger    // Built from --verbose, before RunE
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Environ: os.Environ,
		Config:  config.DefaultConfig(),
		Logger:  zap.NewNop(),
	}
}

// warnUnknownEnvVars logs a warning for every unrecognized SECARD_* variable.
// Helps catch typos like SECARD_LANGUAGE instead of SECARD_LANG.
func warnUnknownEnvVars(env *Environment) {
	known := make(map[string]bool, len(config.EnvVars)+1)
	for _, name := range config.EnvVars {
		known[name] = true
	}
	known[envConfigPath] = true

	for _, kv := range env.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !known[name] {
			env.Logger.Warn("unknown environment variable", zap.String("name", name))
		}
	}
}
