// Package sourcemap provides utilities for mapping between byte offsets
// (the CST's native coordinate system) and line/column positions (what
// diagnostics, SARIF, and terminal snippets actually need to show).
package sourcemap

import (
	"bytes"
	"strings"
)

// SourceMap gives efficient line-based access to a source file. Line and
// column numbers are 0-based, matching LSP conventions.
type SourceMap struct {
	source []byte
	lines  []string
	// lineOffsets[i] is the byte offset where line i starts in source.
	lineOffsets []int
}

// New builds a SourceMap from file content. Lines are split on "\n"; a
// trailing "\r" is trimmed from each line so CRLF files report the same
// column positions as LF files.
func New(source []byte) *SourceMap {
	raw := bytes.Split(source, []byte{'\n'})
	lines := make([]string, len(raw))
	lineOffsets := make([]int, len(raw))

	offset := 0
	for i, line := range raw {
		lineOffsets[i] = offset
		lines[i] = strings.TrimSuffix(string(line), "\r")
		offset += len(line) + 1
	}

	return &SourceMap{source: source, lines: lines, lineOffsets: lineOffsets}
}

// Source returns the raw source content.
func (sm *SourceMap) Source() []byte { return sm.source }

// Lines returns all lines (without line endings).
func (sm *SourceMap) Lines() []string { return sm.lines }

// LineCount returns the total number of lines.
func (sm *SourceMap) LineCount() int { return len(sm.lines) }

// Line returns the text of line (0-based), or "" if out of range.
func (sm *SourceMap) Line(line int) string {
	if line < 0 || line >= len(sm.lines) {
		return ""
	}
	return sm.lines[line]
}

// LineOffset returns the byte offset where line (0-based) starts, or -1 if
// out of range.
func (sm *SourceMap) LineOffset(line int) int {
	if line < 0 || line >= len(sm.lineOffsets) {
		return -1
	}
	return sm.lineOffsets[line]
}

// Position converts a byte offset into a 0-based (line, column) pair. Column
// is counted in bytes from the start of the line, not runes — consistent
// with how the CST reports offsets.
func (sm *SourceMap) Position(offset int) (line, col int) {
	// Binary search for the last lineOffset <= offset.
	lo, hi := 0, len(sm.lineOffsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if sm.lineOffsets[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, offset - sm.lineOffsets[lo]
}

// Snippet extracts lines [startLine, endLine] (0-based, inclusive) joined by
// newlines. Out-of-range bounds are clamped; an empty result is returned if
// the range is invalid after clamping.
func (sm *SourceMap) Snippet(startLine, endLine int) string {
	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(sm.lines) {
		endLine = len(sm.lines) - 1
	}
	if startLine > endLine || startLine >= len(sm.lines) {
		return ""
	}
	return strings.Join(sm.lines[startLine:endLine+1], "\n")
}

// SnippetAround extracts context lines around line (0-based), clamped to
// available lines.
func (sm *SourceMap) SnippetAround(line, before, after int) string {
	return sm.Snippet(line-before, line+after)
}
