package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds server configuration loaded from YAML with environment
// overrides layered on top.
type Config struct {
	Address         string        `yaml:"address"`
	Debug           bool          `yaml:"debug"`
	LogLevel        string        `yaml:"logLevel"`
	Environment     string        `yaml:"environment"`
	SentryDSN       string        `yaml:"sentryDsn"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Address:         ":8080",
		LogLevel:        "info",
		Environment:     "production",
		ShutdownTimeout: 30 * time.Second,
	}
}

// fileConfig mirrors Config with pointer fields so absent YAML keys are
// distinguishable from zero values during merge.
type fileConfig struct {
	Address         *string        `yaml:"address"`
	Debug           *bool          `yaml:"debug"`
	LogLevel        *string        `yaml:"logLevel"`
	Environment     *string        `yaml:"environment"`
	SentryDSN       *string        `yaml:"sentryDsn"`
	ShutdownTimeout *time.Duration `yaml:"shutdownTimeout"`
}

// Load reads configuration from the given path, falling back to defaults
// when the path is empty or missing, then applies environment overrides.
// A present but malformed file is an error; silently ignoring it would
// start the server with the wrong settings.
func Load(path string) (Config, error) {
	cfg := Default()

	candidates := make([]string, 0, 2)
	if path != "" {
		candidates = append(candidates, path)
	} else {
		candidates = append(candidates,
			"configs/config.yaml",
			"config.yaml",
		)
	}

	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err != nil {
			if path != "" {
				return Config{}, fmt.Errorf("read config %s: %w", candidate, err)
			}
			continue
		}

		var parsed fileConfig
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", candidate, err)
		}

		merge(&cfg, parsed)
		break
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func merge(dst *Config, src fileConfig) {
	if src.Address != nil {
		dst.Address = *src.Address
	}
	if src.Debug != nil {
		dst.Debug = *src.Debug
	}
	if src.LogLevel != nil {
		dst.LogLevel = *src.LogLevel
	}
	if src.Environment != nil {
		dst.Environment = *src.Environment
	}
	if src.SentryDSN != nil {
		dst.SentryDSN = *src.SentryDSN
	}
	if src.ShutdownTimeout != nil {
		dst.ShutdownTimeout = *src.ShutdownTimeout
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("PLINTH_ADDRESS")); v != "" {
		cfg.Address = v
	}
	if v := strings.TrimSpace(os.Getenv("PLINTH_DEBUG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("PLINTH_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("PLINTH_ENVIRONMENT")); v != "" {
		cfg.Environment = v
	}
	if v := strings.TrimSpace(os.Getenv("SENTRY_DSN")); v != "" {
		cfg.SentryDSN = v
	}
	if v := strings.TrimSpace(os.Getenv("PLINTH_SHUTDOWN_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ShutdownTimeout = d
		}
	}
}

// SlogLevel maps the configured log level string to a slog.Level.
// Unknown values default to Info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
