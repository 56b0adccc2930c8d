// Package git wraps the git command line for the narration tools. The
// core never touches git itself: it only consumes the textual output
// these calls return. Commands run through a CommandExecutor so tests
// can substitute canned output for a real git binary.
package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/devnarrate/devnarrate/pkg/errors"
)

// Client runs git commands in a repository.
type Client struct {
	executor CommandExecutor
}

// NewClient creates a git client using the default exec-based executor.
func NewClient() *Client {
	return &Client{executor: &ExecExecutor{}}
}

// NewClientWithExecutor creates a git client with a custom executor.
func NewClientWithExecutor(executor CommandExecutor) *Client {
	return &Client{executor: executor}
}

// Diff returns raw unified diff output. With staged true it diffs the
// index (`git diff --staged`), otherwise the working tree against HEAD.
func (c *Client) Diff(ctx context.Context, repoPath string, staged bool) (string, error) {
	args := []string{"diff", "--staged"}
	if !staged {
		args = []string{"diff", "HEAD"}
	}
	return c.run(ctx, repoPath, args...)
}

// StatusEntry is one file from `git status --porcelain`.
type StatusEntry struct {
	Path   string `json:"path"`
	Status string `json:"status"`
}

// Status lists changed files with their porcelain status. With
// stagedOnly true, untracked files and files without staged changes
// are skipped and the staged column decides the status; otherwise the
// staged column wins over the unstaged one when both are set.
func (c *Client) Status(ctx context.Context, repoPath string, stagedOnly bool) ([]StatusEntry, error) {
	out, err := c.run(ctx, repoPath, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parsePorcelain(out, stagedOnly), nil
}

// Commit commits the index with the given message and returns a
// confirmation including the short commit hash.
func (c *Client) Commit(ctx context.Context, repoPath, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", errors.ValidationError("commit message must not be empty", nil)
	}
	out, err := c.run(ctx, repoPath, "commit", "-m", message)
	if err != nil {
		return "", err
	}
	hash, err := c.run(ctx, repoPath, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	hash = strings.TrimSpace(hash)
	if len(hash) > 7 {
		hash = hash[:7]
	}
	return fmt.Sprintf("Successfully committed as %s\n%s", hash, out), nil
}

// CurrentBranch returns the checked-out branch name.
func (c *Client) CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	out, err := c.run(ctx, repoPath, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RemoteURL returns the URL of the named remote, or an empty string
// when the remote does not exist (a repo without remotes is normal).
func (c *Client) RemoteURL(ctx context.Context, repoPath, name string) (string, error) {
	out, err := c.run(ctx, repoPath, "remote", "get-url", name)
	if err != nil {
		if errors.IsType(err, errors.ErrGit) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *Client) run(ctx context.Context, repoPath string, args ...string) (string, error) {
	return c.executor.ExecuteWithOutput(ctx, repoPath, args...)
}

// parsePorcelain parses `git status --porcelain` output. Each line is
// XY<space>path where X is the staged column and Y the unstaged one.
func parsePorcelain(out string, stagedOnly bool) []StatusEntry {
	entries := []StatusEntry{}
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if len(line) < 4 {
			continue
		}
		staged := line[0]
		unstaged := line[1]
		path := line[3:]

		if stagedOnly && (staged == ' ' || staged == '?') {
			continue
		}

		code := staged
		if !stagedOnly && staged == ' ' {
			code = unstaged
		}

		status := "modified"
		switch code {
		case 'A':
			status = "added"
		case 'D':
			status = "deleted"
		case 'M':
			status = "modified"
		case 'R':
			status = "renamed"
		case '?':
			status = "untracked"
		}

		entries = append(entries, StatusEntry{Path: path, Status: status})
	}
	return entries
}
