// Copyright 2026 The devnarrate authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devnarrate/devnarrate/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Default config file names to search for
var defaultConfigFiles = []string{
	".devnarrate.yaml",
	".devnarrate.yml",
	"devnarrate.yaml",
	"devnarrate.yml",
}

// Load loads configuration from a specific file path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to read config file: %s", path), err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to parse config file: %s", path), err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigError("config validation failed", err)
	}

	return &cfg, nil
}

// LoadDefault searches for and loads configuration from default locations.
// Search order:
// 1. Current directory
// 2. Parent directories (up to root)
// 3. User config directory (~/.config/devnarrate/)
func LoadDefault() (*Config, error) {
	if cfg, err := findInParents("."); err == nil {
		return cfg, nil
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := filepath.Join(homeDir, ".config", "devnarrate", "config.yaml")
		if cfg, err := Load(userConfigPath); err == nil {
			return cfg, nil
		}
	}

	// No config found - return the defaults
	return DefaultConfig(), nil
}

// LoadFromEnv loads config from the path in DEVNARRATE_CONFIG, falling
// back to the default search.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv("DEVNARRATE_CONFIG"); path != "" {
		return Load(path)
	}
	return LoadDefault()
}

// findInParents searches for a config file in the current directory and
// its parents.
func findInParents(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		for _, filename := range defaultConfigFiles {
			configPath := filepath.Join(dir, filename)
			if _, err := os.Stat(configPath); err == nil {
				return Load(configPath)
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			break
		}
		dir = parentDir
	}

	return nil, errors.ConfigError("no config file found", nil)
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxResponseTokens: 20000,
			MaxFindings:       20,
		},
		Git: GitConfig{
			AllowCommit: false,
		},
		Global: GlobalConfig{
			LogLevel: "info",
		},
	}
}

func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()
	if cfg.Limits.MaxResponseTokens == 0 {
		cfg.Limits.MaxResponseTokens = defaults.Limits.MaxResponseTokens
	}
	if cfg.Limits.MaxFindings == 0 {
		cfg.Limits.MaxFindings = defaults.Limits.MaxFindings
	}
	if cfg.Global.LogLevel == "" {
		cfg.Global.LogLevel = defaults.Global.LogLevel
	}
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if c.Limits.MaxResponseTokens < 0 {
		return errors.ValidationError("limits.max_response_tokens must not be negative", nil)
	}
	if c.Limits.MaxFindings < 0 {
		return errors.ValidationError("limits.max_findings must not be negative", nil)
	}
	switch c.Global.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.ValidationError(fmt.Sprintf("unknown log level: %s", c.Global.LogLevel), nil)
	}
	return nil
}
