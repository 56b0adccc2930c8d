// Package analyze composes the diff parser and clue extractor into the
// structured change report a narration tool returns. The raw diff is
// not part of the report; callers transmit it separately, usually
// paginated.
package analyze

import (
	"github.com/devnarrate/devnarrate/pkg/clues"
	"github.com/devnarrate/devnarrate/pkg/diff"
)

// FileEntry is a caller-supplied status record for a file that does
// not appear in the diff, such as an untracked file.
type FileEntry struct {
	Path   string `json:"path"`
	Status string `json:"status"`
}

// Summary aggregates per-file statistics across a change set.
type Summary struct {
	TotalFiles        int `json:"total_files"`
	FilesAdded        int `json:"files_added"`
	FilesModified     int `json:"files_modified"`
	FilesDeleted      int `json:"files_deleted"`
	FilesRenamed      int `json:"files_renamed"`
	TotalLinesAdded   int `json:"total_lines_added"`
	TotalLinesRemoved int `json:"total_lines_removed"`
}

// Report is the full analysis payload: aggregate summary, per-file
// changes, and per-file context clues. Every field serializes to plain
// JSON, since the report crosses the tool boundary as serialized data.
type Report struct {
	Summary      Summary             `json:"summary"`
	Changes      []diff.ChangedFile  `json:"changes"`
	ContextClues []clues.ContextClue `json:"context_clues"`
}

// Changes analyzes a diff and merges in externally known file entries.
// Entries whose path is already covered by the diff are ignored; the
// rest are appended as added files with zero line deltas (a diff
// carries no line counts for untracked files). Line totals therefore
// aggregate diff-derived entries only.
func Changes(diffText string, external []FileEntry) Report {
	stats := diff.ParseStats(diffText)

	summary := Summary{}
	diffPaths := make(map[string]struct{}, len(stats))
	for _, f := range stats {
		diffPaths[f.Path] = struct{}{}
		summary.TotalLinesAdded += f.LinesAdded
		summary.TotalLinesRemoved += f.LinesRemoved
		switch f.Status {
		case diff.StatusAdded:
			summary.FilesAdded++
		case diff.StatusModified:
			summary.FilesModified++
		case diff.StatusDeleted:
			summary.FilesDeleted++
		case diff.StatusRenamed:
			summary.FilesRenamed++
		}
	}

	changes := make([]diff.ChangedFile, 0, len(stats)+len(external))
	changes = append(changes, stats...)
	for _, e := range external {
		if _, ok := diffPaths[e.Path]; ok {
			continue
		}
		diffPaths[e.Path] = struct{}{}
		summary.FilesAdded++
		changes = append(changes, diff.ChangedFile{
			Path:   e.Path,
			Status: diff.StatusAdded,
		})
	}
	summary.TotalFiles = len(changes)

	return Report{
		Summary:      summary,
		Changes:      changes,
		ContextClues: clues.ExtractAll(diff.AddedLines(diffText)),
	}
}
