/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads runtime settings for attribution schemas from .env
// files and ATTRIBUTION_* environment variables.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/suparena/attribution/coerce"
	"github.com/suparena/attribution/metrics"
	"github.com/suparena/attribution/timezone"
)

// Config holds the settings a Schema is built from.
type Config struct {
	// Location is the zone for times without an offset ("Local", "UTC" or IANA).
	Location string
	// ZoneAliases is an optional YAML file of extra friendly zone names.
	ZoneAliases string
	// LogLevel is a zerolog level name (default: info).
	LogLevel string
	// LogFormat is "json" or "console" (default: json).
	LogFormat string
	// MetricsEnabled turns on the Prometheus collector.
	MetricsEnabled bool
	// MetricsPrefix prefixes metric names (default: attribution).
	MetricsPrefix string
}

// Load reads the given .env files (".env" when none are named; missing files
// are skipped), applies ATTRIBUTION_* environment overrides and defaults, and
// validates the result.
//
// Environment variables:
//
//	ATTRIBUTION_LOCATION        - zone for offset-less times (default: Local)
//	ATTRIBUTION_ZONE_ALIASES    - YAML file of friendly zone names
//	ATTRIBUTION_LOG_LEVEL       - debug, info, warn, error (default: info)
//	ATTRIBUTION_LOG_FORMAT      - json or console (default: json)
//	ATTRIBUTION_METRICS_ENABLED - enable lookup metrics (default: false)
//	ATTRIBUTION_METRICS_PREFIX  - metric name prefix (default: attribution)
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	var existing []string
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return nil, fmt.Errorf("load env files: %w", err)
		}
	}

	var cfg Config
	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ATTRIBUTION_LOCATION"); v != "" {
		cfg.Location = v
	}
	if v := os.Getenv("ATTRIBUTION_ZONE_ALIASES"); v != "" {
		cfg.ZoneAliases = v
	}
	if v := os.Getenv("ATTRIBUTION_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ATTRIBUTION_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("ATTRIBUTION_METRICS_ENABLED"); v != "" {
		cfg.MetricsEnabled = parseBool(v)
	}
	if v := os.Getenv("ATTRIBUTION_METRICS_PREFIX"); v != "" {
		cfg.MetricsPrefix = v
	}
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

func setDefaults(cfg *Config) {
	if cfg.Location == "" {
		cfg.Location = "Local"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}
	if cfg.MetricsPrefix == "" {
		cfg.MetricsPrefix = "attribution"
	}
}

func validate(cfg *Config) error {
	if _, err := time.LoadLocation(cfg.Location); err != nil {
		return fmt.Errorf("location %q: %w", cfg.Location, err)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}
	switch cfg.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log format %q: must be json or console", cfg.LogFormat)
	}
	if cfg.ZoneAliases != "" {
		if _, err := os.Stat(cfg.ZoneAliases); err != nil {
			return fmt.Errorf("zone aliases: %w", err)
		}
	}
	return nil
}

// Coercer builds the coercer described by the config.
func (c *Config) Coercer() (*coerce.Coercer, error) {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("location %q: %w", c.Location, err)
	}

	zones := timezone.NewCatalog()
	if c.ZoneAliases != "" {
		if err := zones.LoadFile(c.ZoneAliases); err != nil {
			return nil, err
		}
	}
	return coerce.New(zones, loc), nil
}

// Logger builds a zerolog logger writing to w (os.Stderr when nil).
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if c.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Metrics returns a collector when metrics are enabled, nil otherwise.
func (c *Config) Metrics() *metrics.Collector {
	if !c.MetricsEnabled {
		return nil
	}
	return metrics.New(metrics.Config{Prefix: c.MetricsPrefix})
}
