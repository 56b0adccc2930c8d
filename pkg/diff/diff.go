// Package diff parses unified diff text into per-file change statistics
// and per-file added-line streams. Parsing is tolerant: malformed or
// empty input yields empty results, never an error, so callers can feed
// it arbitrary `git diff` output without guarding.
package diff

import (
	"regexp"
	"strconv"
	"strings"
)

// FileStatus classifies how a file was changed.
type FileStatus string

const (
	StatusAdded    FileStatus = "added"
	StatusModified FileStatus = "modified"
	StatusDeleted  FileStatus = "deleted"
	StatusRenamed  FileStatus = "renamed"
)

// ChangedFile holds per-file change statistics parsed from a diff.
type ChangedFile struct {
	Path         string     `json:"path"`
	Status       FileStatus `json:"status"`
	LinesAdded   int        `json:"lines_added"`
	LinesRemoved int        `json:"lines_removed"`
}

// AddedLine is one added line together with its 1-indexed position in
// the post-change version of the file.
type AddedLine struct {
	Line    int    `json:"line"`
	Content string `json:"content"`
}

// FileAdditions is the ordered added-line stream for one file.
type FileAdditions struct {
	Path  string      `json:"path"`
	Lines []AddedLine `json:"lines"`
}

// hunkHeaderRegex matches @@ -oldStart[,oldCount] +newStart[,newCount] @@
var hunkHeaderRegex = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

// fileSection is one file's portion of a unified diff.
type fileSection struct {
	path    string
	status  FileStatus
	deleted bool // target is /dev/null
	hunks   [][]string
}

// ParseStats parses a unified diff into per-file change statistics.
// Empty, whitespace-only, or unparseable input yields an empty slice.
func ParseStats(diffText string) []ChangedFile {
	sections := parseSections(diffText)
	stats := make([]ChangedFile, 0, len(sections))
	for _, sec := range sections {
		added, removed := 0, 0
		for _, hunk := range sec.hunks {
			for _, line := range hunk[1:] {
				switch {
				case strings.HasPrefix(line, "+"):
					added++
				case strings.HasPrefix(line, "-"):
					removed++
				}
			}
		}
		stats = append(stats, ChangedFile{
			Path:         sec.path,
			Status:       sec.status,
			LinesAdded:   added,
			LinesRemoved: removed,
		})
	}
	return stats
}

// AddedLines extracts the added lines of each file, ordered by
// appearance in the diff. The line counter restarts at each hunk
// header's target start and advances on context and added lines only.
// Files whose target is /dev/null are excluded: there is no resulting
// file to attribute their lines to.
func AddedLines(diffText string) []FileAdditions {
	sections := parseSections(diffText)
	var result []FileAdditions
	for _, sec := range sections {
		if sec.deleted {
			continue
		}
		var lines []AddedLine
		for _, hunk := range sec.hunks {
			m := hunkHeaderRegex.FindStringSubmatch(hunk[0])
			if m == nil {
				continue
			}
			target, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			for _, line := range hunk[1:] {
				switch {
				case strings.HasPrefix(line, "+"):
					lines = append(lines, AddedLine{Line: target, Content: line[1:]})
					target++
				case strings.HasPrefix(line, "-"):
					// removed line, target side unaffected
				case strings.HasPrefix(line, `\`):
					// "\ No newline at end of file" marker, not a line
				default:
					target++
				}
			}
		}
		if len(lines) > 0 {
			result = append(result, FileAdditions{Path: sec.path, Lines: lines})
		}
	}
	return result
}

// parseSections splits diff text into per-file sections with status and
// hunk blocks. Sections without a recognizable file header are dropped.
func parseSections(diffText string) []fileSection {
	if strings.TrimSpace(diffText) == "" {
		return nil
	}

	var (
		sections []fileSection
		cur      *fileSection
		curHunk  []string
		inHunk   bool

		newFile, deletedFile, renamed bool
		oldPath, newPath              string
	)

	flushHunk := func() {
		if inHunk && cur != nil && len(curHunk) > 0 {
			cur.hunks = append(cur.hunks, curHunk)
		}
		curHunk = nil
		inHunk = false
	}

	flushSection := func() {
		flushHunk()
		if cur == nil {
			return
		}
		path := newPath
		if path == "" || newPath == "/dev/null" {
			path = oldPath
		}
		switch {
		case renamed:
			cur.status = StatusRenamed
		case newFile || oldPath == "/dev/null":
			cur.status = StatusAdded
		case deletedFile || newPath == "/dev/null":
			cur.status = StatusDeleted
		default:
			cur.status = StatusModified
		}
		cur.deleted = cur.status == StatusDeleted
		cur.path = path
		if cur.path != "" && cur.path != "/dev/null" {
			sections = append(sections, *cur)
		}
		cur = nil
		newFile, deletedFile, renamed = false, false, false
		oldPath, newPath = "", ""
	}

	for _, line := range strings.Split(diffText, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			flushSection()
			cur = &fileSection{}
			if a, b, ok := parseGitHeader(line); ok {
				oldPath, newPath = a, b
			}
		case strings.HasPrefix(line, "new file mode"):
			newFile = true
		case strings.HasPrefix(line, "deleted file mode"):
			deletedFile = true
		case strings.HasPrefix(line, "rename from "):
			renamed = true
		case strings.HasPrefix(line, "rename to "):
			renamed = true
			if cur != nil {
				newPath = strings.TrimPrefix(line, "rename to ")
			}
		case strings.HasPrefix(line, "--- "):
			if cur == nil {
				// header-only diffs (no "diff --git" line) still parse
				cur = &fileSection{}
			}
			if !inHunk {
				oldPath = stripPathPrefix(strings.TrimPrefix(line, "--- "))
			} else {
				curHunk = append(curHunk, line)
			}
		case strings.HasPrefix(line, "+++ "):
			if cur != nil && !inHunk {
				p := stripPathPrefix(strings.TrimPrefix(line, "+++ "))
				newPath = p
			} else if inHunk {
				curHunk = append(curHunk, line)
			}
		case hunkHeaderRegex.MatchString(line):
			if cur == nil {
				continue
			}
			flushHunk()
			curHunk = []string{line}
			inHunk = true
		default:
			if inHunk {
				curHunk = append(curHunk, line)
			}
		}
	}
	flushSection()
	return sections
}

// parseGitHeader extracts the a/ and b/ paths from a "diff --git" line.
func parseGitHeader(line string) (a, b string, ok bool) {
	rest := strings.TrimPrefix(line, "diff --git ")
	parts := strings.SplitN(rest, " b/", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimPrefix(parts[0], "a/"), parts[1], true
}

// stripPathPrefix removes the a/ or b/ prefix git places on header
// paths and trims any trailing tab-separated metadata. /dev/null is
// passed through untouched so callers can detect creations/deletions.
func stripPathPrefix(p string) string {
	if i := strings.IndexByte(p, '\t'); i >= 0 {
		p = p[:i]
	}
	if p == "/dev/null" {
		return p
	}
	if strings.HasPrefix(p, "a/") || strings.HasPrefix(p, "b/") {
		return p[2:]
	}
	return p
}
