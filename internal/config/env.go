package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override file configuration.
const (
	EnvDBPath     = "PLANSEMANAL_DB_PATH"
	EnvLogLevel   = "PLANSEMANAL_LOG_LEVEL"
	EnvServerAddr = "PLANSEMANAL_SERVER_ADDR"
	EnvLexicon    = "PLANSEMANAL_LEXICON"
	EnvPlanID     = "PLANSEMANAL_PLAN_ID"
)

// LoadEnv loads variables from the given .env files (".env" when none are
// named) into the process environment. Missing files are not an error and
// variables already set are kept.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", f, err)
		}
	}
	if len(present) == 0 {
		return nil
	}

	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("loading env files: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with any PLANSEMANAL_* variables that are set and
// re-validates the result.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = LogLevel(v)
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvLexicon); v != "" {
		cfg.Planner.LexiconPath = v
	}
	if v := os.Getenv(EnvPlanID); v != "" {
		cfg.Planner.PlanID = v
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating environment overrides: %w", err)
	}
	return nil
}
