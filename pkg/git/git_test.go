package git_test

import (
	"context"
	"strings"
	"testing"

	"github.com/devnarrate/devnarrate/pkg/errors"
	"github.com/devnarrate/devnarrate/pkg/git"
)

// fakeExecutor returns canned output per git subcommand and records
// invocations.
type fakeExecutor struct {
	outputs map[string]string
	errs    map[string]error
	calls   [][]string
}

func (f *fakeExecutor) ExecuteWithOutput(_ context.Context, _ string, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	key := strings.Join(args, " ")
	if err, ok := f.errs[key]; ok {
		return "", err
	}
	return f.outputs[key], nil
}

// TestDiffArguments verifies staged selects the index diff.
func TestDiffArguments(t *testing.T) {
	tests := []struct {
		name   string
		staged bool
		want   string
	}{
		{"staged", true, "diff --staged"},
		{"working tree", false, "diff HEAD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{outputs: map[string]string{tt.want: "some diff"}}
			client := git.NewClientWithExecutor(exec)

			out, err := client.Diff(context.Background(), "/repo", tt.staged)
			if err != nil {
				t.Fatalf("Diff returned error: %v", err)
			}
			if out != "some diff" {
				t.Errorf("Expected canned diff output, got %q", out)
			}
			if got := strings.Join(exec.calls[0], " "); got != tt.want {
				t.Errorf("Expected git args %q, got %q", tt.want, got)
			}
		})
	}
}

const porcelainOutput = "M  staged_mod.py\n" +
	"A  staged_new.py\n" +
	" M unstaged_mod.py\n" +
	"D  staged_del.py\n" +
	"R  renamed.py\n" +
	"?? untracked.py\n"

// TestStatusStagedOnly verifies untracked and unstaged-only files are
// skipped when only staged changes matter.
func TestStatusStagedOnly(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]string{"status --porcelain": porcelainOutput}}
	client := git.NewClientWithExecutor(exec)

	entries, err := client.Status(context.Background(), "/repo", true)
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}

	want := map[string]string{
		"staged_mod.py": "modified",
		"staged_new.py": "added",
		"staged_del.py": "deleted",
		"renamed.py":    "renamed",
	}
	if len(entries) != len(want) {
		t.Fatalf("Expected %d entries, got %d: %+v", len(want), len(entries), entries)
	}
	for _, e := range entries {
		if want[e.Path] != e.Status {
			t.Errorf("Expected %s -> %s, got %s", e.Path, want[e.Path], e.Status)
		}
	}
}

// TestStatusAllChanges verifies the unstaged column is used when the
// staged one is empty, and untracked files are included.
func TestStatusAllChanges(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]string{"status --porcelain": porcelainOutput}}
	client := git.NewClientWithExecutor(exec)

	entries, err := client.Status(context.Background(), "/repo", false)
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if len(entries) != 6 {
		t.Fatalf("Expected 6 entries, got %d", len(entries))
	}

	byPath := make(map[string]string)
	for _, e := range entries {
		byPath[e.Path] = e.Status
	}
	if byPath["unstaged_mod.py"] != "modified" {
		t.Errorf("Expected unstaged column fallback to modified, got %q", byPath["unstaged_mod.py"])
	}
	if byPath["untracked.py"] != "untracked" {
		t.Errorf("Expected untracked status, got %q", byPath["untracked.py"])
	}
}

// TestStatusEmptyOutput verifies no entries for a clean tree.
func TestStatusEmptyOutput(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]string{"status --porcelain": ""}}
	client := git.NewClientWithExecutor(exec)

	entries, err := client.Status(context.Background(), "/repo", true)
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

// TestCommit verifies the confirmation carries the short hash.
func TestCommit(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]string{
		"commit -m add feature": "[main abc1234] add feature\n 1 file changed\n",
		"rev-parse HEAD":        "abc1234def5678900000000000000000000000000\n",
	}}
	client := git.NewClientWithExecutor(exec)

	out, err := client.Commit(context.Background(), "/repo", "add feature")
	if err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if !strings.HasPrefix(out, "Successfully committed as abc1234") {
		t.Errorf("Expected short-hash confirmation, got %q", out)
	}
}

// TestCommitEmptyMessage verifies the validation guard.
func TestCommitEmptyMessage(t *testing.T) {
	client := git.NewClientWithExecutor(&fakeExecutor{})

	_, err := client.Commit(context.Background(), "/repo", "   ")
	if err == nil {
		t.Fatal("Expected an error for empty message")
	}
	if !errors.IsType(err, errors.ErrValidation) {
		t.Errorf("Expected a validation error, got %v", err)
	}
}

// TestCurrentBranch trims the trailing newline.
func TestCurrentBranch(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]string{"rev-parse --abbrev-ref HEAD": "feature/pagination\n"}}
	client := git.NewClientWithExecutor(exec)

	branch, err := client.CurrentBranch(context.Background(), "/repo")
	if err != nil {
		t.Fatalf("CurrentBranch returned error: %v", err)
	}
	if branch != "feature/pagination" {
		t.Errorf("Expected feature/pagination, got %q", branch)
	}
}

// TestRemoteURLMissing verifies a missing remote is not an error.
func TestRemoteURLMissing(t *testing.T) {
	exec := &fakeExecutor{errs: map[string]error{
		"remote get-url origin": errors.GitError("git remote get-url origin", nil),
	}}
	client := git.NewClientWithExecutor(exec)

	url, err := client.RemoteURL(context.Background(), "/repo", "origin")
	if err != nil {
		t.Fatalf("Expected missing remote to be tolerated, got error: %v", err)
	}
	if url != "" {
		t.Errorf("Expected empty URL, got %q", url)
	}
}
