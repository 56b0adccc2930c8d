// Package clues extracts comments and docstrings from the added lines
// of a diff. The extraction is heuristic, not a language front end: a
// small set of grammars (single-line comment, triple-quote block,
// star-comment block) is tried per line, and noisy candidates
// (directives, shebangs, trivial fragments) are filtered out. The
// surviving text gives a reviewing LLM material to infer intent from.
package clues

import (
	"regexp"
	"strings"

	"github.com/devnarrate/devnarrate/pkg/diff"
)

// ContextClue holds the comments and docstrings extracted from one
// file's added lines, in source order.
type ContextClue struct {
	File       string   `json:"file"`
	Comments   []string `json:"comments"`
	Docstrings []string `json:"docstrings"`
}

// Single-line comments: # text, // text, -- text (SQL/Lua/Haskell).
var commentRegex = regexp.MustCompile(`^\s*(?:#|//|--)\s*(.+)`)

// Docstring opening markers.
var (
	tripleQuoteOpenRegex = regexp.MustCompile(`^\s*("""|''')\s*(.*)`)
	starBlockOpenRegex   = regexp.MustCompile(`^\s*/\*\*\s*(.*)`)
)

// minClueLength is the trimmed length a candidate must exceed to
// survive filtering.
const minClueLength = 3

// noiseTerms are tool-directive substrings that disqualify a comment.
var noiseTerms = []string{"pragma", "noqa", "type: ignore"}

// Extract scans a file's added lines for comments and docstrings.
// The second return value is false when filtering removed every
// candidate, meaning the file contributes no clue.
func Extract(path string, lines []diff.AddedLine) (ContextClue, bool) {
	clue := ContextClue{File: path}

	i := 0
	for i < len(lines) {
		text := lines[i].Content

		if m := tripleQuoteOpenRegex.FindStringSubmatch(text); m != nil {
			if doc, ok := singleLineDocstring(text, m[1]); ok {
				if doc != "" {
					clue.Docstrings = append(clue.Docstrings, doc)
				}
				i++
				continue
			}
			doc, next := accumulateBlock(lines, i+1, m[2], closesTripleQuote, trimFragment)
			if doc != "" {
				clue.Docstrings = append(clue.Docstrings, doc)
			}
			i = next
			continue
		}

		if m := starBlockOpenRegex.FindStringSubmatch(text); m != nil {
			doc, next := accumulateBlock(lines, i+1, m[1], closesStarBlock, trimStarFragment)
			if doc != "" {
				clue.Docstrings = append(clue.Docstrings, doc)
			}
			i = next
			continue
		}

		if m := commentRegex.FindStringSubmatch(text); m != nil {
			if c := strings.TrimSpace(m[1]); keepComment(c) {
				clue.Comments = append(clue.Comments, c)
			}
		}
		i++
	}

	if len(clue.Comments) == 0 && len(clue.Docstrings) == 0 {
		return ContextClue{}, false
	}
	return clue, true
}

// keepComment filters single-line comment candidates: trivially short
// text, shebang-like lines, and tool directives are noise.
func keepComment(c string) bool {
	if len(c) <= minClueLength || strings.HasPrefix(c, "!") {
		return false
	}
	lower := strings.ToLower(c)
	for _, term := range noiseTerms {
		if strings.Contains(lower, term) {
			return false
		}
	}
	return true
}

// singleLineDocstring handles docstrings that open and close on the
// same line, detected by two or more occurrences of the opening
// marker. The text strictly between the first and last occurrence is
// the content.
func singleLineDocstring(line, marker string) (string, bool) {
	if strings.Count(line, marker) < 2 {
		return "", false
	}
	first := strings.Index(line, marker) + len(marker)
	last := strings.LastIndex(line, marker)
	text := strings.TrimSpace(line[first:last])
	if len(text) <= minClueLength {
		return "", true
	}
	return text, true
}

// closer reports whether a line terminates a block, and the content
// preceding the terminator.
type closer func(line string) (before string, ok bool)

func closesTripleQuote(line string) (string, bool) {
	idx := -1
	for _, marker := range []string{`"""`, "'''"} {
		if j := strings.Index(line, marker); j >= 0 && (idx < 0 || j < idx) {
			idx = j
		}
	}
	if idx < 0 {
		return "", false
	}
	return line[:idx], true
}

func closesStarBlock(line string) (string, bool) {
	idx := strings.Index(line, "*/")
	if idx < 0 {
		return "", false
	}
	return line[:idx], true
}

func trimFragment(s string) string {
	return strings.TrimSpace(s)
}

// trimStarFragment strips the leading "* " decoration of star-comment
// interior lines.
func trimStarFragment(s string) string {
	return strings.TrimLeft(strings.TrimSpace(s), "* ")
}

// accumulateBlock gathers block content from an opening-line remainder
// through the closing marker, or through end of input when the block is
// never closed. It returns the joined text and the index of the first
// line after the block, so callers never re-examine consumed lines.
func accumulateBlock(lines []diff.AddedLine, start int, opening string, closes closer, trim func(string) string) (string, int) {
	fragments := []string{strings.TrimSpace(opening)}
	i := start
	for i < len(lines) {
		if before, ok := closes(lines[i].Content); ok {
			fragments = append(fragments, trim(before))
			i++
			break
		}
		fragments = append(fragments, trim(lines[i].Content))
		i++
	}

	var parts []string
	for _, f := range fragments {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}
	text := strings.Join(parts, " ")
	if len(strings.TrimSpace(text)) <= minClueLength {
		return "", i
	}
	return text, i
}

// ExtractAll runs Extract over every file's added-line stream, keeping
// input order and dropping files whose candidates were all filtered.
func ExtractAll(additions []diff.FileAdditions) []ContextClue {
	clues := make([]ContextClue, 0, len(additions))
	for _, fa := range additions {
		if clue, ok := Extract(fa.Path, fa.Lines); ok {
			clues = append(clues, clue)
		}
	}
	return clues
}
