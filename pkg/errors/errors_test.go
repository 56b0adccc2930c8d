package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/devnarrate/devnarrate/pkg/errors"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "without cause",
			err:  errors.ValidationError("repo_path is required", nil),
			want: "[VALIDATION] repo_path is required",
		},
		{
			name: "with cause",
			err:  errors.GitError("git diff failed", fmt.Errorf("exit status 128")),
			want: "[GIT] git diff failed: exit status 128",
		},
		{
			name: "approval",
			err:  errors.ApprovalError("committing is disabled"),
			want: "[APPROVAL] committing is disabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestIsType(t *testing.T) {
	err := errors.ConfigError("bad config", nil)

	if !errors.IsType(err, errors.ErrConfig) {
		t.Error("Expected IsType to match the error's own type")
	}
	if errors.IsType(err, errors.ErrGit) {
		t.Error("Expected IsType to reject a different type")
	}
	if errors.IsType(nil, errors.ErrConfig) {
		t.Error("Expected IsType to reject nil")
	}
	if errors.IsType(fmt.Errorf("plain"), errors.ErrConfig) {
		t.Error("Expected IsType to reject untyped errors")
	}
}

// TestIsTypeWrapped verifies typed errors survive fmt.Errorf wrapping.
func TestIsTypeWrapped(t *testing.T) {
	wrapped := fmt.Errorf("tool failed: %w", errors.TimeoutError("git timed out", nil))

	if !errors.IsType(wrapped, errors.ErrTimeout) {
		t.Error("Expected IsType to see through wrapping")
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	err := errors.GitError("git commit failed", cause)

	if !stderrors.Is(err, cause) {
		t.Error("Expected errors.Is to find the cause")
	}
}

func TestWithContext(t *testing.T) {
	err := errors.GitError("command failed", nil).
		WithContext("repo", "/work/repo").
		WithContext("args", "diff --staged")

	if err.Context["repo"] != "/work/repo" {
		t.Errorf("Expected repo context, got %v", err.Context["repo"])
	}
	if err.Context["args"] != "diff --staged" {
		t.Errorf("Expected args context, got %v", err.Context["args"])
	}
}
