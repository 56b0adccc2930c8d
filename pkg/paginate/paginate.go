// Copyright 2026 The devnarrate authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package paginate splits large diff text into token-bounded chunks
// with resumable cursors, so responses stay under the host message
// limit while preserving line boundaries. Pagination is stateless:
// the cursor carries all resumption state, and identical inputs
// always produce identical output.
package paginate

import (
	"math"
	"strconv"
	"strings"

	"github.com/devnarrate/devnarrate/pkg/tokens"
)

// DefaultBudget is the conventional per-chunk token budget, chosen to
// stay comfortably under a 25,000-token hard response limit.
const DefaultBudget = 20000

// ChunkInfo describes one pagination result.
type ChunkInfo struct {
	StartLine       int     `json:"start_line"`
	EndLine         int     `json:"end_line"`
	TotalLines      int     `json:"total_lines"`
	ChunkTokens     int     `json:"chunk_tokens"`
	TotalTokens     int     `json:"total_tokens"`
	ChunkPercentage float64 `json:"chunk_percentage"`
}

// Page is one bounded chunk of a diff plus its resumption cursor.
// NextCursor is empty when the final line has been consumed.
type Page struct {
	Chunk      string    `json:"diff_chunk"`
	NextCursor string    `json:"next_cursor,omitempty"`
	Info       ChunkInfo `json:"chunk_info"`
}

// Paginate returns the chunk of diffText starting at the line offset
// encoded in cursor, greedily filling up to budget tokens. The whole
// provisional chunk is re-measured after each appended line; a line
// that would push the chunk over budget is left for the next page,
// except when the chunk is still empty; then that single line is
// emitted alone to guarantee forward progress. An absent or
// unparseable cursor means offset zero.
func Paginate(diffText, cursor string, budget int) Page {
	if diffText == "" {
		return Page{}
	}

	lines := strings.Split(diffText, "\n")
	totalLines := len(lines)
	totalTokens := tokens.Count(diffText)

	startLine := parseCursor(cursor)

	var chunkLines []string
	chunkText := ""
	endLine := startLine

	for i := startLine; i < totalLines; i++ {
		test := chunkText + lines[i] + "\n"
		if tokens.Count(test) > budget && len(chunkLines) > 0 {
			break
		}
		chunkLines = append(chunkLines, lines[i])
		chunkText = test
		endLine = i + 1
	}

	nextCursor := ""
	if endLine < totalLines {
		nextCursor = strconv.Itoa(endLine)
	}

	chunkTokens := tokens.Count(chunkText)
	percentage := 100.0
	if totalTokens > 0 {
		percentage = math.Round(float64(chunkTokens)/float64(totalTokens)*1000) / 10
	}

	return Page{
		Chunk:      strings.Join(chunkLines, "\n"),
		NextCursor: nextCursor,
		Info: ChunkInfo{
			StartLine:       startLine,
			EndLine:         endLine,
			TotalLines:      totalLines,
			ChunkTokens:     chunkTokens,
			TotalTokens:     totalTokens,
			ChunkPercentage: percentage,
		},
	}
}

// parseCursor decodes a cursor into a line offset. Anything that is
// not a non-negative integer resolves to zero rather than failing:
// cursors come from callers we do not control.
func parseCursor(cursor string) int {
	if cursor == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(cursor))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
