package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/devnarrate/devnarrate/pkg/git"
	"github.com/devnarrate/devnarrate/pkg/secrets"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [repo-path]",
	Short: "Scan staged changes for potential secrets",
	Long: `Scan the added lines of the staged diff for potential secrets
(API keys, tokens, passwords, private keys) and print the redacted
findings as JSON. Exits non-zero when findings are present, so it can
gate a commit hook.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := "."
		if len(args) == 1 {
			repo = args[0]
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		diffText, err := git.NewClient().Diff(cmd.Context(), repo, true)
		if err != nil {
			return err
		}

		result := secrets.ScanDiff(diffText, secrets.NewRegexScanner(), cfg.Limits.MaxFindings)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
		if result.TotalFindings > 0 {
			return fmt.Errorf("%d potential secret(s) found", result.TotalFindings)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
