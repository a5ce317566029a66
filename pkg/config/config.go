// Package config defines the layered application configuration for
// ambudispatch.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure.
type Config struct {
	App      AppConfig      `koanf:"app"`
	Log      LogConfig      `koanf:"log"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Solve    SolveConfig    `koanf:"solve"`
	Scenario ScenarioConfig `koanf:"scenario"`
	Persist  PersistConfig  `koanf:"persist"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // development, staging, production
	Debug       bool   `koanf:"debug"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level      string `koanf:"level"`       // debug, info, warn, error
	Format     string `koanf:"format"`      // json, text
	Output     string `koanf:"output"`      // stdout, stderr, file
	FilePath   string `koanf:"file_path"`
	MaxSize    int    `koanf:"max_size"`    // MB
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"` // days
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig controls the Prometheus metrics registry.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Port      int    `koanf:"port"`
	Path      string `koanf:"path"`
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

// SolveConfig controls the MILP solver driver (internal/rundriver).
type SolveConfig struct {
	TimeLimitSeconds float64 `koanf:"time_limit_seconds"`
	Gap              float64 `koanf:"gap"`
	Verbose          bool    `koanf:"verbose"`
}

// ScenarioConfig controls default emergency-scenario generation
// (internal/scenario) when the caller does not supply a scenario file.
type ScenarioConfig struct {
	MinEmergencies int     `koanf:"min_emergencies"`
	MaxEmergencies int     `koanf:"max_emergencies"`
	MinSpeedKMH    float64 `koanf:"min_speed_kmh"`
	MaxSpeedKMH    float64 `koanf:"max_speed_kmh"`
	MinCapacityKMH float64 `koanf:"min_capacity_kmh"`
	MaxCapacityKMH float64 `koanf:"max_capacity_kmh"`
	Seed           int64   `koanf:"seed"`
}

// PersistConfig controls where prepared-graph and emergency-set artifacts
// are written (pkg/persist).
type PersistConfig struct {
	OutputDir string `koanf:"output_dir"`
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	var errs []string

	if c.App.Name == "" {
		errs = append(errs, "app.name is required")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %s", c.Log.Level))
	}

	if c.Solve.TimeLimitSeconds <= 0 {
		errs = append(errs, "solve.time_limit_seconds must be positive")
	}

	if c.Solve.Gap < 0 {
		errs = append(errs, "solve.gap must be non-negative")
	}

	if c.Scenario.MinEmergencies <= 0 || c.Scenario.MinEmergencies > c.Scenario.MaxEmergencies {
		errs = append(errs, "scenario.min_emergencies must be positive and at most max_emergencies")
	}

	if c.Scenario.MaxEmergencies > 100 {
		errs = append(errs, "scenario.max_emergencies must not exceed 100")
	}

	if c.Scenario.MinCapacityKMH <= 0 || c.Scenario.MinCapacityKMH > c.Scenario.MaxCapacityKMH {
		errs = append(errs, "scenario.min_capacity_kmh must be positive and at most max_capacity_kmh")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

// IsDevelopment reports whether the app is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "dev"
}

// IsProduction reports whether the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production" || c.App.Environment == "prod"
}

// SolveTimeLimit returns the configured solver time limit as a
// time.Duration for direct use with context.WithTimeout.
func (c SolveConfig) SolveTimeLimit() time.Duration {
	return time.Duration(c.TimeLimitSeconds * float64(time.Second))
}
