package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/devnarrate/devnarrate/pkg/git"
	"github.com/devnarrate/devnarrate/pkg/mcp"
	"github.com/devnarrate/devnarrate/pkg/secrets"
	"github.com/devnarrate/devnarrate/pkg/tools"
	"github.com/devnarrate/devnarrate/pkg/version"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio",
	Long: `Run the MCP server, speaking newline-delimited JSON-RPC on
stdin/stdout. This is the mode an MCP host (e.g. an editor assistant)
launches; logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg.Global.LogLevel)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server := mcp.NewServer("devnarrate", version.String(), logger)
		toolset := tools.NewToolset(git.NewClient(), secrets.NewRegexScanner(), cfg)
		toolset.Register(server)

		logger.Info("devnarrate MCP server starting",
			"version", version.String(),
			"allow_commit", cfg.Git.AllowCommit,
			"budget", cfg.Limits.MaxResponseTokens)

		return server.ServeStdio(ctx, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
