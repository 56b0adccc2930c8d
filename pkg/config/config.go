// Copyright 2026 The devnarrate authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package config provides configuration management for devnarrate.
//
// Configuration Loading Order (later overrides earlier):
// 1. Defaults (hardcoded)
// 2. Project Config: ./.devnarrate.yaml (searched up parent directories)
// 3. User Config: ~/.config/devnarrate/config.yaml
// 4. DEVNARRATE_CONFIG environment variable (explicit path)
package config

// Config represents the complete application configuration.
type Config struct {
	Limits LimitsConfig `yaml:"limits"`
	Git    GitConfig    `yaml:"git"`
	Global GlobalConfig `yaml:"global"`
}

// LimitsConfig bounds response sizes.
type LimitsConfig struct {
	// MaxResponseTokens is the pagination budget per diff chunk. It
	// should stay comfortably under the host's 25,000-token limit.
	MaxResponseTokens int `yaml:"max_response_tokens"`
	// MaxFindings caps secret-scan findings per report.
	MaxFindings int `yaml:"max_findings"`
}

// GitConfig controls the git collaborator.
type GitConfig struct {
	// AllowCommit gates the commit tool. Committing is a side effect,
	// so it stays off unless explicitly enabled.
	AllowCommit bool `yaml:"allow_commit"`
}

// GlobalConfig contains global application settings.
type GlobalConfig struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
}
