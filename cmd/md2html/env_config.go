package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/config"
)

// envPrefix marks the variables this tool reads.
const envPrefix = "MD2HTML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MD2HTML_CONFIG: config file name or path
	Style      string        // MD2HTML_STYLE: CSS style name or path
	Engine     string        // MD2HTML_ENGINE: builtin, goldmark
	Timeout    time.Duration // MD2HTML_TIMEOUT: per-attempt diagram render timeout
	Workers    int           // MD2HTML_WORKERS: parallel workers
	OutputDir  string        // MD2HTML_OUTPUT_DIR: default output directory
}

// knownEnvVars lists valid MD2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2HTML_CONFIG":     true,
	"MD2HTML_STYLE":      true,
	"MD2HTML_ENGINE":     true,
	"MD2HTML_TIMEOUT":    true,
	"MD2HTML_WORKERS":    true,
	"MD2HTML_OUTPUT_DIR": true,
}

// loadEnvConfig reads configuration through getenv.
// Unparsable or non-positive durations and counts are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MD2HTML_CONFIG"),
		Style:      getenv("MD2HTML_STYLE"),
		Engine:     getenv("MD2HTML_ENGINE"),
		OutputDir:  getenv("MD2HTML_OUTPUT_DIR"),
	}

	// Parse duration for timeout
	if timeout := getenv("MD2HTML_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	// Parse int for workers
	if workers := getenv("MD2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2HTML_* variables.
// Helps catch typos like MD2HTML_TIMOUT.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overlays set environment variables onto config.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags; timeout and workers are
// resolved separately).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.Engine != "" {
		cfg.Engine = env.Engine
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}
