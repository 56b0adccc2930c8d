package diff_test

import (
	"strings"
	"testing"

	"github.com/devnarrate/devnarrate/pkg/diff"
)

const diffNewFile = `diff --git a/hello.py b/hello.py
new file mode 100644
index 0000000..e69de29
--- /dev/null
+++ b/hello.py
@@ -0,0 +1,5 @@
+"""Hello module."""
+
+
+def greet(name):
+    return f"Hello, {name}!"
`

const diffModifiedFile = `diff --git a/app.py b/app.py
index abc1234..def5678 100644
--- a/app.py
+++ b/app.py
@@ -1,3 +1,5 @@
 import os
+import sys
+# Added for path resolution

 def main():
`

const diffDeletedFile = `diff --git a/old.py b/old.py
deleted file mode 100644
index abc1234..0000000
--- a/old.py
+++ /dev/null
@@ -1,3 +0,0 @@
-def legacy():
-    pass
-
`

const diffRenamedFile = `diff --git a/old_name.py b/new_name.py
similarity index 90%
rename from old_name.py
rename to new_name.py
index abc1234..def5678 100644
--- a/old_name.py
+++ b/new_name.py
@@ -1,2 +1,2 @@
-legacy_value = 1
+renamed_value = 1
`

const diffMultiFile = `diff --git a/auth/login.py b/auth/login.py
new file mode 100644
index 0000000..abc1234
--- /dev/null
+++ b/auth/login.py
@@ -0,0 +1,6 @@
+"""JWT authentication handler."""
+
+# Implements RFC 7519 JWT standard
+def validate_token(token):
+    """Validate and decode a JWT token."""
+    pass
diff --git a/config.py b/config.py
index abc1234..def5678 100644
--- a/config.py
+++ b/config.py
@@ -1 +1,4 @@
 DB_HOST = "localhost"
+# Auth configuration
+JWT_SECRET = "changeme"
+JWT_EXPIRY = 3600
`

const diffBinaryFile = `diff --git a/logo.png b/logo.png
new file mode 100644
index 0000000..abc1234
Binary files /dev/null and b/logo.png differ
`

// TestParseStatsStatus tests status derivation from file section markers.
func TestParseStatsStatus(t *testing.T) {
	tests := []struct {
		name         string
		diff         string
		path         string
		status       diff.FileStatus
		linesAdded   int
		linesRemoved int
	}{
		{"new file", diffNewFile, "hello.py", diff.StatusAdded, 5, 0},
		{"modified file", diffModifiedFile, "app.py", diff.StatusModified, 2, 0},
		{"deleted file", diffDeletedFile, "old.py", diff.StatusDeleted, 0, 3},
		{"renamed file", diffRenamedFile, "new_name.py", diff.StatusRenamed, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := diff.ParseStats(tt.diff)
			if len(result) != 1 {
				t.Fatalf("Expected 1 changed file, got %d", len(result))
			}
			f := result[0]
			if f.Path != tt.path {
				t.Errorf("Expected path %q, got %q", tt.path, f.Path)
			}
			if f.Status != tt.status {
				t.Errorf("Expected status %q, got %q", tt.status, f.Status)
			}
			if f.LinesAdded != tt.linesAdded {
				t.Errorf("Expected %d lines added, got %d", tt.linesAdded, f.LinesAdded)
			}
			if f.LinesRemoved != tt.linesRemoved {
				t.Errorf("Expected %d lines removed, got %d", tt.linesRemoved, f.LinesRemoved)
			}
		})
	}
}

// TestParseStatsMultiFile verifies every file header appears exactly once.
func TestParseStatsMultiFile(t *testing.T) {
	result := diff.ParseStats(diffMultiFile)
	if len(result) != 2 {
		t.Fatalf("Expected 2 changed files, got %d", len(result))
	}

	seen := make(map[string]int)
	for _, f := range result {
		seen[f.Path]++
	}
	for _, path := range []string{"auth/login.py", "config.py"} {
		if seen[path] != 1 {
			t.Errorf("Expected path %q exactly once, got %d", path, seen[path])
		}
	}
}

// TestParseStatsEmptyAndMalformed verifies tolerant degradation.
func TestParseStatsEmptyAndMalformed(t *testing.T) {
	tests := []struct {
		name string
		diff string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\n  "},
		{"garbage", "this is not a diff\nnot even close\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := diff.ParseStats(tt.diff); len(result) != 0 {
				t.Errorf("Expected empty result, got %d entries", len(result))
			}
		})
	}
}

// TestParseStatsBinaryFile verifies binary sections get stats but no lines.
func TestParseStatsBinaryFile(t *testing.T) {
	result := diff.ParseStats(diffBinaryFile)
	if len(result) != 1 {
		t.Fatalf("Expected 1 changed file, got %d", len(result))
	}
	f := result[0]
	if f.Path != "logo.png" || f.Status != diff.StatusAdded {
		t.Errorf("Expected added logo.png, got %s %s", f.Status, f.Path)
	}
	if f.LinesAdded != 0 || f.LinesRemoved != 0 {
		t.Errorf("Expected zero line counts for binary file, got +%d -%d", f.LinesAdded, f.LinesRemoved)
	}

	if additions := diff.AddedLines(diffBinaryFile); len(additions) != 0 {
		t.Errorf("Expected no added lines for binary file, got %d files", len(additions))
	}
}

// TestParseStatsLineCountProperty checks the counting invariant: added
// lines equal the "+" lines excluding "+++" headers, symmetrically for
// removed lines.
func TestParseStatsLineCountProperty(t *testing.T) {
	for _, d := range []string{diffNewFile, diffModifiedFile, diffDeletedFile, diffMultiFile, diffRenamedFile} {
		wantAdded, wantRemoved := 0, 0
		for _, line := range strings.Split(d, "\n") {
			if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
				wantAdded++
			}
			if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
				wantRemoved++
			}
		}

		gotAdded, gotRemoved := 0, 0
		for _, f := range diff.ParseStats(d) {
			gotAdded += f.LinesAdded
			gotRemoved += f.LinesRemoved
		}
		if gotAdded != wantAdded || gotRemoved != wantRemoved {
			t.Errorf("Line count mismatch: got +%d -%d, want +%d -%d", gotAdded, gotRemoved, wantAdded, wantRemoved)
		}
	}
}

// TestAddedLinesNumbering checks the hunk-header based target line
// counter: context lines advance it, added lines take the pre-increment
// value, removed lines leave it alone.
func TestAddedLinesNumbering(t *testing.T) {
	d := `diff --git a/app.py b/app.py
index abc1234..def5678 100644
--- a/app.py
+++ b/app.py
@@ -10,3 +10,5 @@
 print("hello")
+new_line_1()
+new_line_2()
`
	additions := diff.AddedLines(d)
	if len(additions) != 1 {
		t.Fatalf("Expected 1 file, got %d", len(additions))
	}
	lines := additions[0].Lines
	if len(lines) != 2 {
		t.Fatalf("Expected 2 added lines, got %d", len(lines))
	}
	if lines[0].Line != 11 || lines[1].Line != 12 {
		t.Errorf("Expected line numbers [11 12], got [%d %d]", lines[0].Line, lines[1].Line)
	}
	if lines[0].Content != "new_line_1()" {
		t.Errorf("Expected content %q, got %q", "new_line_1()", lines[0].Content)
	}
}

// TestAddedLinesRemovedDoNotAdvance mixes removed lines into a hunk.
func TestAddedLinesRemovedDoNotAdvance(t *testing.T) {
	d := `diff --git a/app.py b/app.py
--- a/app.py
+++ b/app.py
@@ -5,4 +5,4 @@
 keep_one()
-old_code()
+new_code()
 keep_two()
`
	additions := diff.AddedLines(d)
	if len(additions) != 1 || len(additions[0].Lines) != 1 {
		t.Fatalf("Expected 1 added line, got %+v", additions)
	}
	// context at 5, removed line skipped, added line lands on 6
	if got := additions[0].Lines[0].Line; got != 6 {
		t.Errorf("Expected added line at 6, got %d", got)
	}
}

// TestAddedLinesMultipleHunks verifies each hunk resets the counter to
// its own header value.
func TestAddedLinesMultipleHunks(t *testing.T) {
	d := `diff --git a/app.py b/app.py
--- a/app.py
+++ b/app.py
@@ -1,2 +1,3 @@
 import os
+import sys
@@ -40,2 +41,3 @@
 def main():
+    setup()
`
	additions := diff.AddedLines(d)
	if len(additions) != 1 {
		t.Fatalf("Expected 1 file, got %d", len(additions))
	}
	lines := additions[0].Lines
	if len(lines) != 2 {
		t.Fatalf("Expected 2 added lines, got %d", len(lines))
	}
	if lines[0].Line != 2 {
		t.Errorf("Expected first hunk added line at 2, got %d", lines[0].Line)
	}
	if lines[1].Line != 42 {
		t.Errorf("Expected second hunk added line at 42, got %d", lines[1].Line)
	}
}

// TestAddedLinesDeletedFileExcluded verifies /dev/null targets yield no
// added-line entries even though their hunks contain "-" lines.
func TestAddedLinesDeletedFileExcluded(t *testing.T) {
	if additions := diff.AddedLines(diffDeletedFile); len(additions) != 0 {
		t.Errorf("Expected no additions for deleted file, got %d", len(additions))
	}
}

// TestAddedLinesOrderAndMonotonicity checks appearance order of files
// and strictly increasing line numbers within each file.
func TestAddedLinesOrderAndMonotonicity(t *testing.T) {
	additions := diff.AddedLines(diffMultiFile)
	if len(additions) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(additions))
	}
	if additions[0].Path != "auth/login.py" || additions[1].Path != "config.py" {
		t.Errorf("Expected diff order [auth/login.py config.py], got [%s %s]",
			additions[0].Path, additions[1].Path)
	}

	for _, fa := range additions {
		prev := 0
		for _, l := range fa.Lines {
			if l.Line <= prev {
				t.Errorf("%s: line numbers not strictly increasing: %d after %d", fa.Path, l.Line, prev)
			}
			prev = l.Line
		}
	}
}

// TestParseStatsHeaderOnlySection covers diffs without a "diff --git"
// line, as produced by plain `diff -u`.
func TestParseStatsHeaderOnlySection(t *testing.T) {
	d := `--- a/notes.txt
+++ b/notes.txt
@@ -1,1 +1,2 @@
 first
+second
`
	result := diff.ParseStats(d)
	if len(result) != 1 {
		t.Fatalf("Expected 1 changed file, got %d", len(result))
	}
	if result[0].Path != "notes.txt" || result[0].Status != diff.StatusModified {
		t.Errorf("Expected modified notes.txt, got %s %s", result[0].Status, result[0].Path)
	}
	if result[0].LinesAdded != 1 {
		t.Errorf("Expected 1 line added, got %d", result[0].LinesAdded)
	}
}
