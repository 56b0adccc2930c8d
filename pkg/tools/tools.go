// Package tools wires the analysis core and the git/secret
// collaborators into the MCP tool surface. Handlers stay thin: they
// parse arguments, invoke collaborators, and hand plain structs to the
// JSON layer. Anything with a side effect (committing) is gated behind
// explicit approval in configuration.
package tools

import (
	"context"

	"github.com/devnarrate/devnarrate/pkg/analyze"
	"github.com/devnarrate/devnarrate/pkg/config"
	"github.com/devnarrate/devnarrate/pkg/errors"
	"github.com/devnarrate/devnarrate/pkg/git"
	"github.com/devnarrate/devnarrate/pkg/mcp"
	"github.com/devnarrate/devnarrate/pkg/paginate"
	"github.com/devnarrate/devnarrate/pkg/secrets"
)

// GitClient is the slice of the git wrapper the tools need.
type GitClient interface {
	Diff(ctx context.Context, repoPath string, staged bool) (string, error)
	Status(ctx context.Context, repoPath string, stagedOnly bool) ([]git.StatusEntry, error)
	Commit(ctx context.Context, repoPath, message string) (string, error)
	CurrentBranch(ctx context.Context, repoPath string) (string, error)
	RemoteURL(ctx context.Context, repoPath, name string) (string, error)
}

// Toolset holds the dependencies shared by all tool handlers.
type Toolset struct {
	git     GitClient
	scanner secrets.Scanner
	cfg     *config.Config
}

// NewToolset creates a toolset around the given collaborators.
func NewToolset(gitClient GitClient, scanner secrets.Scanner, cfg *config.Config) *Toolset {
	return &Toolset{git: gitClient, scanner: scanner, cfg: cfg}
}

// Register registers every tool on the server.
func (t *Toolset) Register(server *mcp.Server) {
	server.RegisterTool(&mcp.ToolHandler{
		Tool: mcp.Tool{
			Name:        "get_staged_changes",
			Description: "Analyze staged changes: per-file stats, context clues, and a token-bounded chunk of the raw diff. Pass the returned next_cursor to continue a large diff.",
			InputSchema: repoCursorSchema(),
		},
		Call: func(ctx context.Context, args map[string]any) (*mcp.ToolResult, error) {
			return t.changes(ctx, args, true)
		},
	})

	server.RegisterTool(&mcp.ToolHandler{
		Tool: mcp.Tool{
			Name:        "get_working_changes",
			Description: "Analyze all uncommitted changes (staged and unstaged) against HEAD, including untracked files, with a token-bounded diff chunk.",
			InputSchema: repoCursorSchema(),
		},
		Call: func(ctx context.Context, args map[string]any) (*mcp.ToolResult, error) {
			return t.changes(ctx, args, false)
		},
	})

	server.RegisterTool(&mcp.ToolHandler{
		Tool: mcp.Tool{
			Name:        "get_diff_chunk",
			Description: "Fetch one token-bounded chunk of the raw diff without analysis. Useful for walking a very large diff.",
			InputSchema: schema(map[string]any{
				"repo_path": stringProp("Path to the git repository"),
				"staged":    boolProp("Diff the index instead of the working tree (default true)"),
				"cursor":    stringProp("Resumption cursor from a previous call"),
			}, "repo_path"),
		},
		Call: t.diffChunk,
	})

	server.RegisterTool(&mcp.ToolHandler{
		Tool: mcp.Tool{
			Name:        "scan_secrets",
			Description: "Scan the added lines of the staged diff for potential secrets (API keys, tokens, passwords). Findings are redacted.",
			InputSchema: schema(map[string]any{
				"repo_path": stringProp("Path to the git repository"),
			}, "repo_path"),
		},
		Call: t.scanSecrets,
	})

	server.RegisterTool(&mcp.ToolHandler{
		Tool: mcp.Tool{
			Name:        "get_branch_info",
			Description: "Get the current branch name and origin URL, for PR descriptions and change narration.",
			InputSchema: schema(map[string]any{
				"repo_path": stringProp("Path to the git repository"),
			}, "repo_path"),
		},
		Call: t.branchInfo,
	})

	server.RegisterTool(&mcp.ToolHandler{
		Tool: mcp.Tool{
			Name:        "commit_changes",
			Description: "Commit the staged changes with the given message. Refused unless commits are explicitly enabled in configuration or via --allow-commit.",
			InputSchema: schema(map[string]any{
				"repo_path": stringProp("Path to the git repository"),
				"message":   stringProp("Commit message"),
			}, "repo_path", "message"),
		},
		Call: t.commit,
	})
}

// changesPayload is the response of the change-analysis tools: the
// structured report plus the first (or cursor-selected) diff chunk.
type changesPayload struct {
	analyze.Report
	DiffChunk  string             `json:"diff_chunk"`
	NextCursor string             `json:"next_cursor,omitempty"`
	ChunkInfo  paginate.ChunkInfo `json:"chunk_info"`
}

func (t *Toolset) changes(ctx context.Context, args map[string]any, staged bool) (*mcp.ToolResult, error) {
	repo, err := repoArg(args)
	if err != nil {
		return nil, err
	}

	diffText, err := t.git.Diff(ctx, repo, staged)
	if err != nil {
		return nil, err
	}
	entries, err := t.git.Status(ctx, repo, staged)
	if err != nil {
		return nil, err
	}

	external := make([]analyze.FileEntry, 0, len(entries))
	for _, e := range entries {
		external = append(external, analyze.FileEntry{Path: e.Path, Status: e.Status})
	}

	page := paginate.Paginate(diffText, stringArg(args, "cursor"), t.budget())

	return mcp.JSONResult(changesPayload{
		Report:     analyze.Changes(diffText, external),
		DiffChunk:  page.Chunk,
		NextCursor: page.NextCursor,
		ChunkInfo:  page.Info,
	}), nil
}

func (t *Toolset) diffChunk(ctx context.Context, args map[string]any) (*mcp.ToolResult, error) {
	repo, err := repoArg(args)
	if err != nil {
		return nil, err
	}

	staged := true
	if v, ok := args["staged"].(bool); ok {
		staged = v
	}

	diffText, err := t.git.Diff(ctx, repo, staged)
	if err != nil {
		return nil, err
	}

	return mcp.JSONResult(paginate.Paginate(diffText, stringArg(args, "cursor"), t.budget())), nil
}

func (t *Toolset) scanSecrets(ctx context.Context, args map[string]any) (*mcp.ToolResult, error) {
	repo, err := repoArg(args)
	if err != nil {
		return nil, err
	}

	diffText, err := t.git.Diff(ctx, repo, true)
	if err != nil {
		return nil, err
	}

	return mcp.JSONResult(secrets.ScanDiff(diffText, t.scanner, t.cfg.Limits.MaxFindings)), nil
}

func (t *Toolset) branchInfo(ctx context.Context, args map[string]any) (*mcp.ToolResult, error) {
	repo, err := repoArg(args)
	if err != nil {
		return nil, err
	}

	branch, err := t.git.CurrentBranch(ctx, repo)
	if err != nil {
		return nil, err
	}
	remote, err := t.git.RemoteURL(ctx, repo, "origin")
	if err != nil {
		return nil, err
	}

	return mcp.JSONResult(map[string]string{
		"branch":     branch,
		"remote_url": remote,
	}), nil
}

func (t *Toolset) commit(ctx context.Context, args map[string]any) (*mcp.ToolResult, error) {
	if !t.cfg.Git.AllowCommit {
		return nil, errors.ApprovalError("committing is disabled; enable git.allow_commit or pass --allow-commit to the server")
	}

	repo, err := repoArg(args)
	if err != nil {
		return nil, err
	}
	message := stringArg(args, "message")
	if message == "" {
		return nil, errors.ValidationError("message is required", nil)
	}

	out, err := t.git.Commit(ctx, repo, message)
	if err != nil {
		return nil, err
	}
	return mcp.TextResult(out), nil
}

func (t *Toolset) budget() int {
	if t.cfg.Limits.MaxResponseTokens > 0 {
		return t.cfg.Limits.MaxResponseTokens
	}
	return paginate.DefaultBudget
}

func repoArg(args map[string]any) (string, error) {
	repo := stringArg(args, "repo_path")
	if repo == "" {
		return "", errors.ValidationError("repo_path is required", nil)
	}
	return repo, nil
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func repoCursorSchema() map[string]any {
	return schema(map[string]any{
		"repo_path": stringProp("Path to the git repository"),
		"cursor":    stringProp("Resumption cursor from a previous call"),
	}, "repo_path")
}

func schema(properties map[string]any, required ...string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func boolProp(description string) map[string]any {
	return map[string]any{"type": "boolean", "description": description}
}
