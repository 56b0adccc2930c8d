// Copyright 2026 The devnarrate authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package main provides the devnarrate CLI application.
package main

import (
	"log/slog"
	"os"

	"github.com/devnarrate/devnarrate/pkg/config"
	"github.com/devnarrate/devnarrate/pkg/version"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	allowCommit bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "devnarrate",
	Short: "Git change narration tools for LLM assistants",
	Long: `devnarrate exposes git change data (diffs, file stats, secret
findings, context clues) to an LLM-driven assistant through MCP tools,
so it can draft commit messages, PR descriptions, and change reviews
without exceeding the host message-size limit.`,
	Version:       version.FullString(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches .devnarrate.yaml upward)")
	rootCmd.PersistentFlags().BoolVar(&allowCommit, "allow-commit", false, "allow the commit_changes tool to create commits")
}

// loadConfig resolves configuration from the --config flag, the
// DEVNARRATE_CONFIG environment variable, or the default search, and
// applies command-line overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}
	if allowCommit {
		cfg.Git.AllowCommit = true
	}
	return cfg, nil
}

// newLogger builds the JSON logger all commands share. Logs go to
// stderr: stdout belongs to the MCP protocol.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
