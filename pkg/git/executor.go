package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/devnarrate/devnarrate/pkg/errors"
)

// CommandExecutor runs a git command in a repository and returns its
// standard output. Implementations must honor context cancellation.
type CommandExecutor interface {
	ExecuteWithOutput(ctx context.Context, repoPath string, args ...string) (string, error)
}

// ExecExecutor is the default CommandExecutor backed by os/exec.
type ExecExecutor struct{}

// ExecuteWithOutput runs `git <args...>` in repoPath.
func (e *ExecExecutor) ExecuteWithOutput(ctx context.Context, repoPath string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = repoPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", errors.TimeoutError("git "+strings.Join(args, " "), ctx.Err())
		}
		return "", errors.GitError("git "+strings.Join(args, " "), err).
			WithContext("stderr", strings.TrimSpace(stderr.String())).
			WithContext("repo", repoPath)
	}
	return stdout.String(), nil
}
