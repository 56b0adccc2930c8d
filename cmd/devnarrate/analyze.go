package main

import (
	"encoding/json"
	"os"

	"github.com/devnarrate/devnarrate/pkg/analyze"
	"github.com/devnarrate/devnarrate/pkg/git"
	"github.com/spf13/cobra"
)

var analyzeStaged bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [repo-path]",
	Short: "Print the change analysis for a repository as JSON",
	Long: `Analyze uncommitted changes in a repository and print the
summary, per-file stats, and context clues as JSON. This is the same
payload the get_staged_changes tool returns, without pagination. It is
useful for inspecting what an assistant would see.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := "."
		if len(args) == 1 {
			repo = args[0]
		}

		client := git.NewClient()
		ctx := cmd.Context()

		diffText, err := client.Diff(ctx, repo, analyzeStaged)
		if err != nil {
			return err
		}
		entries, err := client.Status(ctx, repo, analyzeStaged)
		if err != nil {
			return err
		}

		external := make([]analyze.FileEntry, 0, len(entries))
		for _, e := range entries {
			external = append(external, analyze.FileEntry{Path: e.Path, Status: e.Status})
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analyze.Changes(diffText, external))
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeStaged, "staged", true, "analyze staged changes only")
	rootCmd.AddCommand(analyzeCmd)
}
