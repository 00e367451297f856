// Package config provides configuration management for plansemanal.
// Configuration is read from a TOML file found on XDG-compliant paths and
// may be overridden by environment variables.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Config holds the complete application configuration.
type Config struct {
	Planner  PlannerConfig  `toml:"planner"`
	Display  DisplayConfig  `toml:"display"`
	Logging  LoggingConfig  `toml:"logging"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
}

// PlannerConfig controls which plan is shown and how lists are derived.
type PlannerConfig struct {
	// PlanID selects a stored plan. Empty means the most recent plan.
	PlanID string `toml:"plan_id"`
	// LexiconPath replaces the built-in ingredient lexicon when set.
	LexiconPath string `toml:"lexicon_path"`
	// HideAGusto leaves to-taste items out of exports.
	HideAGusto bool `toml:"hide_a_gusto"`
}

// DisplayConfig controls TUI appearance.
type DisplayConfig struct {
	ColorScheme ColorScheme `toml:"color_scheme"`
	DateFormat  string      `toml:"date_format"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemeHuerta ColorScheme = "huerta"
	ColorSchemeTomate ColorScheme = "tomate"
	ColorSchemeMono   ColorScheme = "mono"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level LogLevel `toml:"level"`
	File  string   `toml:"file"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// DatabaseConfig controls SQLite database settings.
type DatabaseConfig struct {
	Path          string `toml:"path"`
	BusyTimeoutMS int    `toml:"busy_timeout_ms"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	Mode           string   `toml:"mode"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("server: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	validSchemes := map[ColorScheme]bool{
		ColorSchemeHuerta: true,
		ColorSchemeTomate: true,
		ColorSchemeMono:   true,
	}

	if !validSchemes[d.ColorScheme] && d.ColorScheme != "" {
		return fmt.Errorf("invalid color_scheme: %s", d.ColorScheme)
	}

	return nil
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}

	if !validLevels[l.Level] && l.Level != "" {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	return nil
}

// Validate checks that the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	var errs []error

	if d.Path == "" {
		errs = append(errs, errors.New("path is required"))
	}

	if d.BusyTimeoutMS < 0 {
		errs = append(errs, errors.New("busy_timeout_ms must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	var errs []error

	if s.Addr != "" {
		if _, _, err := net.SplitHostPort(s.Addr); err != nil {
			errs = append(errs, fmt.Errorf("invalid addr %q: %w", s.Addr, err))
		}
	}

	switch s.Mode {
	case "", "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("invalid mode: %s", s.Mode))
	}

	for _, origin := range s.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			errs = append(errs, fmt.Errorf("invalid allowed origin: %s", origin))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Planner: PlannerConfig{
			PlanID:      "",
			LexiconPath: "",
			HideAGusto:  false,
		},
		Display: DisplayConfig{
			ColorScheme: ColorSchemeHuerta,
			DateFormat:  "02/01/2006",
		},
		Logging: LoggingConfig{
			Level: LogLevelInfo,
			File:  "logs/plansemanal.log",
		},
		Database: DatabaseConfig{
			Path:          "plansemanal.db",
			BusyTimeoutMS: 5000,
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			Mode:           "release",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
	}
}
