// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package diffview

import (
	"testing"

	"pgregory.net/rapid"
)

const sampleDiff = `diff --git a/file.txt b/file.txt
index 83db48f..bf269f4 100644
--- a/file.txt
+++ b/file.txt
@@ -1,4 +1,5 @@
 context line 1
-removed line
+added line
+another added
 context line 2
 context line 3
@@ -10,3 +11,3 @@ func tail()
 ctx
-old
+new
 tail
`

func TestParsePathsAndHunks(t *testing.T) {
	diff := Parse(sampleDiff)
	if diff.OldPath != "file.txt" || diff.NewPath != "file.txt" {
		t.Errorf("expected paths file.txt/file.txt, got %q/%q", diff.OldPath, diff.NewPath)
	}
	if len(diff.Hunks) != 2 {
		t.Fatalf("expected 2 hunks, got %d", len(diff.Hunks))
	}
	first := diff.Hunks[0]
	if first.OldStart != 1 || first.OldCount != 4 || first.NewStart != 1 || first.NewCount != 5 {
		t.Errorf("expected range -1,4 +1,5, got -%d,%d +%d,%d",
			first.OldStart, first.OldCount, first.NewStart, first.NewCount)
	}
	if len(first.Lines) != 6 {
		t.Errorf("expected 6 lines in the first hunk, got %d", len(first.Lines))
	}
	second := diff.Hunks[1]
	if second.Header != "@@ -10,3 +11,3 @@ func tail()" {
		t.Errorf("expected the full header line, got %q", second.Header)
	}
	if diff.Additions() != 3 || diff.Deletions() != 2 {
		t.Errorf("expected +3 -2, got +%d -%d", diff.Additions(), diff.Deletions())
	}
	if first.Additions() != 2 || first.Deletions() != 1 {
		t.Errorf("expected first hunk +2 -1, got +%d -%d", first.Additions(), first.Deletions())
	}
	if diff.Empty() {
		t.Error("expected a non-empty diff")
	}
}

func TestParseLineNumbers(t *testing.T) {
	diff := Parse(sampleDiff)
	expected := []Line{
		{Kind: Context, Content: "context line 1", OldNumber: 1, NewNumber: 1},
		{Kind: Deletion, Content: "removed line", OldNumber: 2},
		{Kind: Addition, Content: "added line", NewNumber: 2},
		{Kind: Addition, Content: "another added", NewNumber: 3},
		{Kind: Context, Content: "context line 2", OldNumber: 3, NewNumber: 4},
		{Kind: Context, Content: "context line 3", OldNumber: 4, NewNumber: 5},
	}
	for index, want := range expected {
		if got := diff.Hunks[0].Lines[index]; got != want {
			t.Errorf("line %d: expected %+v, got %+v", index, want, got)
		}
	}

	second := diff.Hunks[1].Lines
	if second[1].OldNumber != 11 || second[2].NewNumber != 12 {
		t.Errorf("expected old 11 and new 12, got %d and %d", second[1].OldNumber, second[2].NewNumber)
	}
	if second[3].OldNumber != 12 || second[3].NewNumber != 13 {
		t.Errorf("expected tail at 12/13, got %d/%d", second[3].OldNumber, second[3].NewNumber)
	}
}

func TestParseHeaderLookalikesInsideHunk(t *testing.T) {
	diff := Parse("--- a/x\n+++ b/x\n@@ -1,2 +1,2 @@\n---- dashes\n++++ plus\n x\n")
	lines := diff.Hunks[0].Lines
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0].Kind != Deletion || lines[0].Content != "--- dashes" {
		t.Errorf("expected deletion of %q, got %+v", "--- dashes", lines[0])
	}
	if lines[1].Kind != Addition || lines[1].Content != "+++ plus" {
		t.Errorf("expected addition of %q, got %+v", "+++ plus", lines[1])
	}
	if diff.OldPath != "x" || diff.NewPath != "x" {
		t.Errorf("expected paths to stay x, got %q/%q", diff.OldPath, diff.NewPath)
	}
}

func TestParseNoNewlineMarker(t *testing.T) {
	diff := Parse("@@ -1 +1 @@\n-a\n\\ No newline at end of file\n+b\n\\ No newline at end of file\n")
	hunk := diff.Hunks[0]
	if hunk.OldCount != 1 || hunk.NewCount != 1 {
		t.Errorf("expected missing counts to default to 1, got %d and %d", hunk.OldCount, hunk.NewCount)
	}
	if len(hunk.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(hunk.Lines))
	}
	if hunk.Lines[0].Content != "a" || hunk.Lines[1].Content != "b" {
		t.Errorf("expected a and b, got %q and %q", hunk.Lines[0].Content, hunk.Lines[1].Content)
	}
}

func TestParseTimestampsAndEmptyContext(t *testing.T) {
	diff := Parse("--- old.txt\t2024-01-01 10:00:00\n+++ new.txt\t2024-01-02 10:00:00\n@@ -1,3 +1,3 @@\n a\n\n-b\n+c\n")
	if diff.OldPath != "old.txt" || diff.NewPath != "new.txt" {
		t.Errorf("expected old.txt/new.txt, got %q/%q", diff.OldPath, diff.NewPath)
	}
	lines := diff.Hunks[0].Lines
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[1].Kind != Context || lines[1].Content != "" {
		t.Errorf("expected a bare empty line to be empty context, got %+v", lines[1])
	}
}

func TestParseMalformed(t *testing.T) {
	for _, text := range []string{"", "just text", "@@ bogus @@\n+x\n", "@@ -a,1 +1 @@\n+x\n"} {
		if diff := Parse(text); !diff.Empty() {
			t.Errorf("expected no hunks for %q, got %d", text, len(diff.Hunks))
		}
	}
}

func TestFromTexts(t *testing.T) {
	diff, err := FromTexts("old", "new", "a\nb\nc\n", "a\nB\nc\n", 3)
	if err != nil {
		t.Fatalf("FromTexts: %v", err)
	}
	if diff.OldPath != "old" || diff.NewPath != "new" {
		t.Errorf("expected old/new, got %q/%q", diff.OldPath, diff.NewPath)
	}
	if len(diff.Hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(diff.Hunks))
	}
	var kinds []LineKind
	var contents []string
	for _, line := range diff.Hunks[0].Lines {
		kinds = append(kinds, line.Kind)
		contents = append(contents, line.Content)
	}
	expectedKinds := []LineKind{Context, Deletion, Addition, Context}
	expectedContents := []string{"a", "b", "B", "c"}
	if len(kinds) != len(expectedKinds) {
		t.Fatalf("expected %d lines, got %d (%q)", len(expectedKinds), len(kinds), contents)
	}
	for index := range expectedKinds {
		if kinds[index] != expectedKinds[index] || contents[index] != expectedContents[index] {
			t.Errorf("line %d: expected %s%s, got %s%s", index,
				expectedKinds[index], expectedContents[index], kinds[index], contents[index])
		}
	}
}

func TestFromTextsIdenticalAndNewFile(t *testing.T) {
	same, err := FromTexts("a", "b", "x\ny\n", "x\ny\n", 3)
	if err != nil {
		t.Fatalf("FromTexts: %v", err)
	}
	if !same.Empty() {
		t.Errorf("expected identical texts to produce no hunks, got %d", len(same.Hunks))
	}

	created, err := FromTexts("/dev/null", "x.txt", "", "hello\n", 3)
	if err != nil {
		t.Fatalf("FromTexts: %v", err)
	}
	if created.Additions() != 1 || created.Deletions() != 0 {
		t.Errorf("expected +1 -0, got +%d -%d", created.Additions(), created.Deletions())
	}
	if line := created.Hunks[0].Lines[0]; line.NewNumber != 1 || line.Content != "hello" {
		t.Errorf("expected hello at new line 1, got %+v", line)
	}
}

func TestPairLines(t *testing.T) {
	lines := []Line{
		{Kind: Addition}, {Kind: Deletion}, {Kind: Deletion}, {Kind: Addition}, {Kind: Context},
	}
	rows := pairLines(0, lines)
	expected := [][2]int{{noLine, 0}, {1, 3}, {2, noLine}, {4, 4}}
	if len(rows) != len(expected) {
		t.Fatalf("expected %d rows, got %d", len(expected), len(rows))
	}
	for index, want := range expected {
		if rows[index].left != want[0] || rows[index].right != want[1] {
			t.Errorf("row %d: expected %v, got [%d %d]", index, want, rows[index].left, rows[index].right)
		}
	}
}

// Every line of a hunk appears on exactly one side-by-side row side
// (context on both), and the sides keep the hunk's order.
func TestPairLinesCoverEveryLine(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		kinds := rapid.SliceOf(rapid.SampledFrom([]LineKind{Context, Addition, Deletion})).Draw(t, "kinds")
		lines := make([]Line, len(kinds))
		for index, kind := range kinds {
			lines[index] = Line{Kind: kind}
		}

		seen := make(map[int]int)
		lastLeft, lastRight := -1, -1
		for _, r := range pairLines(0, lines) {
			if r.left == noLine && r.right == noLine {
				t.Fatalf("row with both sides empty")
			}
			if r.left != noLine {
				if lines[r.left].Kind == Addition {
					t.Fatalf("addition %d on the old side", r.left)
				}
				if r.left <= lastLeft {
					t.Fatalf("left side out of order: %d after %d", r.left, lastLeft)
				}
				lastLeft = r.left
				seen[r.left]++
			}
			if r.right != noLine {
				if lines[r.right].Kind == Deletion {
					t.Fatalf("deletion %d on the new side", r.right)
				}
				if r.right <= lastRight {
					t.Fatalf("right side out of order: %d after %d", r.right, lastRight)
				}
				lastRight = r.right
				if r.right != r.left {
					seen[r.right]++
				}
			}
		}
		for index := range lines {
			if seen[index] != 1 {
				t.Fatalf("line %d shown %d times", index, seen[index])
			}
		}
	})
}

func TestBuildRowsCounts(t *testing.T) {
	diff := Parse(sampleDiff)
	if rows := buildRows(diff, Unified); len(rows) != 12 {
		t.Errorf("expected 12 unified rows, got %d", len(rows))
	}
	if rows := buildRows(diff, SideBySide); len(rows) != 10 {
		t.Errorf("expected 10 side-by-side rows, got %d", len(rows))
	}
}

func TestHighlighter(t *testing.T) {
	if newHighlighter("notes.unknown-extension", "monokai") != nil {
		t.Error("expected no highlighter for an unknown file type")
	}
	if newHighlighter("main.go", "") != nil {
		t.Error("expected no highlighter without a syntax theme")
	}
	highlight := newHighlighter("main.go", "monokai")
	if highlight == nil {
		t.Fatal("expected a Go highlighter")
	}
	coloured, ok := highlight.line("x := 1")
	if !ok {
		t.Fatal("expected highlighting to succeed")
	}
	if coloured == "x := 1" {
		t.Error("expected escape sequences in highlighted output")
	}
	if stripped := stripANSI(coloured); stripped != "x := 1" {
		t.Errorf("expected the text to survive highlighting, got %q", stripped)
	}
}
