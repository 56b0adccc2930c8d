// Copyright 2026 The devnarrate authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package secrets scans the added lines of a diff for credentials that
// are about to be committed. Detection itself sits behind the narrow
// Scanner interface; this package only attributes findings to target
// line numbers, redacts the matched values, deduplicates per location,
// and caps the report so tool responses stay small. Removed lines are
// never scanned: secrets already in history are not this tool's
// concern for the current commit.
package secrets

import (
	"fmt"
	"strings"

	"github.com/devnarrate/devnarrate/pkg/diff"
)

// MaxFindings caps how many findings a report carries.
const MaxFindings = 20

// Finding is one raw detector hit. Line is 1-indexed into the slice of
// lines given to Scan, not into the original file.
type Finding struct {
	Line   int
	Type   string
	Secret string
}

// Scanner detects secrets in a block of lines. The path is provided so
// implementations can vary behavior by file type.
type Scanner interface {
	Scan(path string, lines []string) ([]Finding, error)
}

// ReportedFinding is one deduplicated, redacted finding attributed to
// its position in the post-change file.
type ReportedFinding struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	Type         string `json:"type"`
	MatchPreview string `json:"match_preview"`
}

// Result is the aggregate scan outcome for one diff.
type Result struct {
	Status        string            `json:"status"`
	Findings      []ReportedFinding `json:"findings"`
	TotalFindings int               `json:"total_findings"`
	Message       string            `json:"message"`
}

// ScanDiff scans every added line of diffText with s. Findings are
// remapped from scan positions to target line numbers, deduplicated by
// (file, line), since multiple detectors often flag the same value, and
// capped at maxFindings (MaxFindings when maxFindings <= 0).
func ScanDiff(diffText string, s Scanner, maxFindings int) Result {
	if maxFindings <= 0 {
		maxFindings = MaxFindings
	}

	if strings.TrimSpace(diffText) == "" {
		return cleanResult("No changes to scan.")
	}

	additions := diff.AddedLines(diffText)
	if len(additions) == 0 {
		return cleanResult("No added lines to scan.")
	}

	var all []ReportedFinding
	seen := make(map[string]struct{})

	for _, fa := range additions {
		lines := make([]string, len(fa.Lines))
		for i, l := range fa.Lines {
			lines[i] = l.Content
		}

		findings, err := s.Scan(fa.Path, lines)
		if err != nil {
			// A detector failure on one file must not sink the scan.
			continue
		}

		for _, f := range findings {
			realLine := f.Line
			if f.Line >= 1 && f.Line <= len(fa.Lines) {
				realLine = fa.Lines[f.Line-1].Line
			}
			key := fmt.Sprintf("%s:%d", fa.Path, realLine)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			all = append(all, ReportedFinding{
				File:         fa.Path,
				Line:         realLine,
				Type:         f.Type,
				MatchPreview: Redact(f.Secret, 4),
			})
		}
	}

	total := len(all)
	if total == 0 {
		return cleanResult("No secrets detected in staged changes.")
	}

	capped := all
	if total > maxFindings {
		capped = all[:maxFindings]
	}

	plural := ""
	if total > 1 {
		plural = "s"
	}
	message := fmt.Sprintf("%d potential secret%s detected in staged changes. Review before committing.", total, plural)
	if total > maxFindings {
		message += fmt.Sprintf(" (showing first %d of %d)", maxFindings, total)
	}

	return Result{
		Status:        "warnings_found",
		Findings:      capped,
		TotalFindings: total,
		Message:       message,
	}
}

// Redact hides a secret value, keeping only the first showChars
// characters as an identification hint.
func Redact(value string, showChars int) string {
	if value == "" || len(value) <= showChars {
		return "****"
	}
	return value[:showChars] + "...XXXX"
}

func cleanResult(message string) Result {
	return Result{
		Status:   "clean",
		Findings: []ReportedFinding{},
		Message:  message,
	}
}
