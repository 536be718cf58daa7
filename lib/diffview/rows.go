// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package diffview

import (
	"strings"

	"github.com/bureau-foundation/tuikit/lib/tui"
)

// Mode selects the diff layout.
type Mode int

const (
	// Unified shows one row per line with +/- markers.
	Unified Mode = iota
	// SideBySide shows old lines on the left and new lines on the
	// right, pairing deletions with the additions that replace them.
	SideBySide
)

// String returns the label shown in the status bar.
func (mode Mode) String() string {
	if mode == SideBySide {
		return "Side-by-Side"
	}
	return "Unified"
}

// noLine marks an empty side of a side-by-side row.
const noLine = -1

// row is one rendered row. A header row shows the hunk header. In
// unified mode left and right hold the same line index; side-by-side
// rows hold an index per side, noLine when that side is empty.
type row struct {
	hunk   int
	header bool
	left   int
	right  int
}

// firstLine is the lowest line index the row shows, or noLine for a
// header.
func (r row) firstLine() int {
	switch {
	case r.header:
		return noLine
	case r.left == noLine:
		return r.right
	case r.right == noLine:
		return r.left
	default:
		return min(r.left, r.right)
	}
}

// buildRows lays the diff out as rows: per hunk one header followed by
// its lines (unified) or line pairs (side-by-side).
func buildRows(diff Diff, mode Mode) []row {
	var rows []row
	for hunkIndex, hunk := range diff.Hunks {
		rows = append(rows, row{hunk: hunkIndex, header: true, left: noLine, right: noLine})
		if mode == Unified {
			for lineIndex := range hunk.Lines {
				rows = append(rows, row{hunk: hunkIndex, left: lineIndex, right: lineIndex})
			}
			continue
		}
		rows = append(rows, pairLines(hunkIndex, hunk.Lines)...)
	}
	return rows
}

// pairLines zips each run of deletions with the run of additions that
// follows it. Context lines sit on both sides.
func pairLines(hunkIndex int, lines []Line) []row {
	var rows []row
	var deletions, additions []int
	flush := func() {
		for index := range max(len(deletions), len(additions)) {
			paired := row{hunk: hunkIndex, left: noLine, right: noLine}
			if index < len(deletions) {
				paired.left = deletions[index]
			}
			if index < len(additions) {
				paired.right = additions[index]
			}
			rows = append(rows, paired)
		}
		deletions, additions = deletions[:0], additions[:0]
	}
	for lineIndex, line := range lines {
		switch line.Kind {
		case Deletion:
			if len(additions) > 0 {
				flush()
			}
			deletions = append(deletions, lineIndex)
		case Addition:
			additions = append(additions, lineIndex)
		default:
			flush()
			rows = append(rows, row{hunk: hunkIndex, left: lineIndex, right: lineIndex})
		}
	}
	flush()
	return rows
}

// displayText prepares line content for a terminal row: tabs become
// four spaces and control characters are dropped.
func displayText(content string) string {
	return tui.CleanForDisplay(strings.ReplaceAll(content, "\t", "    "))
}
