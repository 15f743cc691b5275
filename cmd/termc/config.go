package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/zephyrtronium/termc"
)

var errConfigValidation = errors.New("invalid configuration")

// config is the contents of the optional config file.
type config struct {
	// Definitions is the file that load and save use when given no path.
	Definitions string `yaml:"definitions"`
	// History is the file holding the interactive prompt's history.
	History string `yaml:"history"`
	// Format is the initial output format.
	Format string `yaml:"format"`
	// MaxDepth limits nested user function calls.
	MaxDepth int `yaml:"max_depth"`
	// Color enables colored output. Default true.
	Color *bool `yaml:"color"`
	// LogLevel is the minimum level of log records written to stderr.
	LogLevel string `yaml:"log_level"`
}

// defaultConfigPath is the config file used when --config is not given.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "termc.yaml"
	}
	return filepath.Join(dir, "termc", "config.yaml")
}

// loadConfig loads the config file at path. A missing file yields the
// defaults. Files named by the config default to the config file's
// directory. Before parsing, .env files in the working directory and in the
// config file's directory are loaded into the environment so that paths may
// use ${VAR}.
func loadConfig(path string) (*config, error) {
	dir := filepath.Dir(path)
	if err := loadEnvFiles(".env", filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}
	var cfg config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Use defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	applyDefaults(&cfg, dir)
	cfg.Definitions = os.ExpandEnv(cfg.Definitions)
	cfg.History = os.ExpandEnv(cfg.History)
	return &cfg, nil
}

func loadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

func validateConfig(cfg *config) error {
	if cfg.Format != "" {
		if _, ok := formats[cfg.Format]; !ok {
			return fmt.Errorf("%w: format %q: must be one of dec, bin, oct, hex", errConfigValidation, cfg.Format)
		}
	}
	if cfg.LogLevel != "" {
		if _, err := parseLevel(cfg.LogLevel); err != nil {
			return fmt.Errorf("%w: %w", errConfigValidation, err)
		}
	}
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth %d: must not be negative", errConfigValidation, cfg.MaxDepth)
	}
	return nil
}

func applyDefaults(cfg *config, dir string) {
	if cfg.Definitions == "" {
		cfg.Definitions = filepath.Join(dir, "termc_context.json")
	}
	if cfg.History == "" {
		cfg.History = filepath.Join(dir, "history")
	}
	if cfg.Format == "" {
		cfg.Format = "dec"
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = termc.MaxDepth
	}
	if cfg.Color == nil {
		on := true
		cfg.Color = &on
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level %q: must be one of debug, info, warn, error", s)
	}
	return l, nil
}
