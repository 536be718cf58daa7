// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package diffview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// LineKind classifies a line inside a hunk.
type LineKind int

const (
	Context LineKind = iota
	Addition
	Deletion
)

// String returns the unified diff prefix of the kind.
func (kind LineKind) String() string {
	switch kind {
	case Addition:
		return "+"
	case Deletion:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a hunk. Line numbers are 1-based; zero means the
// line does not exist on that side (additions have no old number,
// deletions no new number).
type Line struct {
	Kind      LineKind
	Content   string
	OldNumber int
	NewNumber int
}

// Hunk is a contiguous block of changes with its surrounding context.
type Hunk struct {
	Header   string
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Additions counts the added lines of the hunk.
func (hunk Hunk) Additions() int {
	return hunk.count(Addition)
}

// Deletions counts the removed lines of the hunk.
func (hunk Hunk) Deletions() int {
	return hunk.count(Deletion)
}

func (hunk Hunk) count(kind LineKind) int {
	total := 0
	for _, line := range hunk.Lines {
		if line.Kind == kind {
			total++
		}
	}
	return total
}

// Diff is a parsed unified diff of one file pair.
type Diff struct {
	OldPath string
	NewPath string
	Hunks   []Hunk
}

// Additions counts added lines across every hunk.
func (diff Diff) Additions() int {
	total := 0
	for _, hunk := range diff.Hunks {
		total += hunk.Additions()
	}
	return total
}

// Deletions counts removed lines across every hunk.
func (diff Diff) Deletions() int {
	total := 0
	for _, hunk := range diff.Hunks {
		total += hunk.Deletions()
	}
	return total
}

// Empty reports whether the diff has no hunks.
func (diff Diff) Empty() bool {
	return len(diff.Hunks) == 0
}

// Parse reads unified diff text. Only the first "---"/"+++" header
// pair sets the paths; "a/" and "b/" prefixes and trailing timestamps
// are removed. Inside a hunk the header counts decide where the hunk
// ends, so content lines that happen to start with "--- " or "+++ "
// stay content. "\ No newline at end of file" markers are skipped and
// anything that is not part of a hunk ("diff --git", "index ...") is
// ignored. Parse never fails: malformed hunk headers are dropped along
// with the lines that follow them.
func Parse(text string) Diff {
	var diff Diff
	var current *Hunk
	oldRemaining, newRemaining := 0, 0
	oldNumber, newNumber := 0, 0
	seenOld, seenNew := false, false

	appendLine := func(kind LineKind, content string) {
		line := Line{Kind: kind, Content: content}
		switch kind {
		case Context:
			line.OldNumber, line.NewNumber = oldNumber, newNumber
			oldNumber++
			newNumber++
			oldRemaining--
			newRemaining--
		case Addition:
			line.NewNumber = newNumber
			newNumber++
			newRemaining--
		case Deletion:
			line.OldNumber = oldNumber
			oldNumber++
			oldRemaining--
		}
		current.Lines = append(current.Lines, line)
	}

	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		if strings.HasPrefix(raw, `\`) {
			continue
		}

		if current != nil && (oldRemaining > 0 || newRemaining > 0) {
			switch {
			case raw == "" || raw[0] == ' ':
				appendLine(Context, trimPrefix(raw))
				continue
			case raw[0] == '+':
				appendLine(Addition, raw[1:])
				continue
			case raw[0] == '-':
				appendLine(Deletion, raw[1:])
				continue
			}
			// Anything else ends a hunk whose counts were too large.
		}

		switch {
		case strings.HasPrefix(raw, "--- "):
			if !seenOld {
				diff.OldPath = cleanPath(raw[4:], "a/")
				seenOld = true
			}
			current = nil
		case strings.HasPrefix(raw, "+++ "):
			if !seenNew {
				diff.NewPath = cleanPath(raw[4:], "b/")
				seenNew = true
			}
			current = nil
		case strings.HasPrefix(raw, "@@"):
			hunk, ok := parseHunkHeader(raw)
			if !ok {
				current = nil
				continue
			}
			diff.Hunks = append(diff.Hunks, hunk)
			current = &diff.Hunks[len(diff.Hunks)-1]
			oldRemaining, newRemaining = hunk.OldCount, hunk.NewCount
			oldNumber, newNumber = hunk.OldStart, hunk.NewStart
		}
	}
	return diff
}

func trimPrefix(raw string) string {
	if raw == "" {
		return ""
	}
	return raw[1:]
}

func cleanPath(path, prefix string) string {
	if index := strings.IndexByte(path, '\t'); index >= 0 {
		path = path[:index]
	}
	path = strings.TrimSpace(path)
	return strings.TrimPrefix(path, prefix)
}

// parseHunkHeader reads "@@ -a,b +c,d @@ optional section". A missing
// count means 1.
func parseHunkHeader(header string) (Hunk, bool) {
	body := strings.TrimPrefix(header, "@@")
	body, _, found := strings.Cut(body, "@@")
	if !found {
		return Hunk{}, false
	}
	fields := strings.Fields(body)
	if len(fields) != 2 || !strings.HasPrefix(fields[0], "-") || !strings.HasPrefix(fields[1], "+") {
		return Hunk{}, false
	}
	oldStart, oldCount, ok := parseRange(fields[0][1:])
	if !ok {
		return Hunk{}, false
	}
	newStart, newCount, ok := parseRange(fields[1][1:])
	if !ok {
		return Hunk{}, false
	}
	return Hunk{
		Header:   header,
		OldStart: oldStart,
		OldCount: oldCount,
		NewStart: newStart,
		NewCount: newCount,
	}, true
}

func parseRange(text string) (start, count int, ok bool) {
	startText, countText, hasCount := strings.Cut(text, ",")
	start, err := strconv.Atoi(startText)
	if err != nil || start < 0 {
		return 0, 0, false
	}
	if !hasCount {
		return start, 1, true
	}
	count, err = strconv.Atoi(countText)
	if err != nil || count < 0 {
		return 0, 0, false
	}
	return start, count, true
}

// FromTexts diffs two texts line by line and parses the result.
// contextLines is the number of unchanged lines kept around each
// change. Identical texts produce an empty diff.
func FromTexts(oldName, newName, oldText, newText string, contextLines int) (Diff, error) {
	unified := difflib.UnifiedDiff{
		A:        splitText(oldText),
		B:        splitText(newText),
		FromFile: oldName,
		ToFile:   newName,
		Context:  max(contextLines, 0),
	}
	text, err := difflib.GetUnifiedDiffString(unified)
	if err != nil {
		return Diff{}, fmt.Errorf("diffing %s and %s: %w", oldName, newName, err)
	}
	diff := Parse(text)
	diff.OldPath, diff.NewPath = oldName, newName
	return diff, nil
}

// splitText splits text into newline-terminated lines. A final newline
// does not start an extra empty line.
func splitText(text string) []string {
	if text == "" {
		return nil
	}
	return difflib.SplitLines(strings.TrimSuffix(text, "\n"))
}
