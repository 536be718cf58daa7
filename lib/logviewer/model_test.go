// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logviewer

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/tuikit/lib/clock"
	"github.com/bureau-foundation/tuikit/lib/logsource"
	"github.com/bureau-foundation/tuikit/lib/tui"
)

func numberedLines(count int) []string {
	lines := make([]string, count)
	for index := range lines {
		lines[index] = fmt.Sprintf("Line %d", index)
	}
	return lines
}

// testViewer builds a focused viewer whose content area is
// contentHeight rows (plus one status row).
func testViewer(lines []string, contentHeight int) Model {
	model := New(lines)
	model.SetSize(80, contentHeight+1)
	model.Focus()
	return model
}

func send(model Model, message tea.Msg) (Model, tea.Cmd) {
	return model.Update(message)
}

func keyRunes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func TestNewViewer(t *testing.T) {
	model := testViewer([]string{"Line 1", "Line 2"}, 10)
	if len(model.Lines()) != 2 {
		t.Errorf("expected 2 lines, got %d", len(model.Lines()))
	}
	if model.Pager().Offset != 0 || model.ScrollX() != 0 {
		t.Error("expected a new viewer to start at the top-left")
	}

	empty := testViewer(nil, 10)
	if len(empty.Lines()) != 0 {
		t.Errorf("expected no lines, got %d", len(empty.Lines()))
	}
	if status := empty.StatusText(); status != "Line 0/0 (0%)" {
		t.Errorf("expected empty status, got %q", status)
	}
}

func TestLineScrolling(t *testing.T) {
	model := testViewer(numberedLines(3), 10)

	model, _ = send(model, keyRunes("j"))
	if model.Pager().Offset != 1 {
		t.Errorf("expected offset 1, got %d", model.Pager().Offset)
	}
	model, _ = send(model, keyRunes("k"))
	model, _ = send(model, keyRunes("k"))
	if model.Pager().Offset != 0 {
		t.Errorf("expected up to saturate at 0, got %d", model.Pager().Offset)
	}
}

func TestPageNavigation(t *testing.T) {
	model := testViewer(numberedLines(100), 10)

	model, _ = send(model, tea.KeyMsg{Type: tea.KeyPgDown})
	if model.Pager().Offset != 10 {
		t.Errorf("expected 10 after one page down, got %d", model.Pager().Offset)
	}
	model, _ = send(model, tea.KeyMsg{Type: tea.KeyPgDown})
	if model.Pager().Offset != 20 {
		t.Errorf("expected 20 after two pages down, got %d", model.Pager().Offset)
	}
	model, _ = send(model, tea.KeyMsg{Type: tea.KeyPgUp})
	if model.Pager().Offset != 10 {
		t.Errorf("expected 10 after page up, got %d", model.Pager().Offset)
	}
}

func TestTopBottomAndGoToLine(t *testing.T) {
	model := testViewer(numberedLines(50), 10)

	model, _ = send(model, keyRunes("G"))
	if model.Pager().Offset != 40 {
		t.Errorf("expected bottom offset 40, got %d", model.Pager().Offset)
	}
	model, _ = send(model, keyRunes("g"))
	if model.Pager().Offset != 0 {
		t.Errorf("expected top offset 0, got %d", model.Pager().Offset)
	}

	model.GoToLine(25)
	if model.Pager().Offset != 25 {
		t.Errorf("expected offset 25, got %d", model.Pager().Offset)
	}
	model.GoToLine(100)
	if model.Pager().Offset != 49 {
		t.Errorf("expected GoToLine past the end to clamp to 49, got %d", model.Pager().Offset)
	}
}

func TestHorizontalScroll(t *testing.T) {
	model := testViewer([]string{strings.Repeat("x", 60)}, 5)
	model.SetLineNumbers(false, 0)
	model.SetSize(40, 6)

	model, _ = send(model, tea.KeyMsg{Type: tea.KeyRight})
	if model.ScrollX() != 4 {
		t.Errorf("expected 4, got %d", model.ScrollX())
	}
	model, _ = send(model, tea.KeyMsg{Type: tea.KeyRight})
	if model.ScrollX() != 8 {
		t.Errorf("expected 8, got %d", model.ScrollX())
	}
	model, _ = send(model, tea.KeyMsg{Type: tea.KeyLeft})
	if model.ScrollX() != 4 {
		t.Errorf("expected 4, got %d", model.ScrollX())
	}
	model, _ = send(model, tea.KeyMsg{Type: tea.KeyLeft})
	model, _ = send(model, tea.KeyMsg{Type: tea.KeyLeft})
	if model.ScrollX() != 0 {
		t.Errorf("expected left to saturate at 0, got %d", model.ScrollX())
	}

	// The 60-column line in a 40-column view stops at 20.
	for range 10 {
		model, _ = send(model, tea.KeyMsg{Type: tea.KeyRight})
	}
	if model.ScrollX() != 20 {
		t.Errorf("expected right to stop at 20, got %d", model.ScrollX())
	}
	if !strings.Contains(model.StatusText(), "Col: 21") {
		t.Errorf("expected column in status, got %q", model.StatusText())
	}
}

func TestSetContentResets(t *testing.T) {
	model := testViewer(append([]string{"Old test content"}, numberedLines(30)...), 10)
	model.Search("test")
	model.GoToLine(20)

	model.SetContent([]string{"New content"})
	if model.Lines()[0] != "New content" {
		t.Errorf("expected new content, got %q", model.Lines()[0])
	}
	if model.Pager().Offset != 0 {
		t.Errorf("expected scroll reset, got %d", model.Pager().Offset)
	}
	if model.MatchCount() != 0 || strings.Contains(model.StatusText(), "Match") {
		t.Error("expected search cleared by SetContent")
	}
}

func TestSearchMatchesLines(t *testing.T) {
	model := testViewer([]string{
		"First line",
		"Second line with error",
		"Third line",
		"Another error here",
	}, 10)

	model.Search("error")
	if model.MatchCount() != 2 {
		t.Fatalf("expected 2 matches, got %d", model.MatchCount())
	}
	if line, _ := model.CurrentMatch(); line != 1 {
		t.Errorf("expected first match on line 1, got %d", line)
	}
	if model.Pager().Offset != 1 {
		t.Errorf("expected view to jump to line 1, got %d", model.Pager().Offset)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	model := testViewer([]string{"ERROR message", "error again", "No match"}, 10)
	model.Search("error")
	if model.MatchCount() != 2 {
		t.Errorf("expected 2 matches, got %d", model.MatchCount())
	}
}

func TestSearchCountsEachLineOnce(t *testing.T) {
	model := testViewer([]string{"error error error", "fine"}, 10)
	model.Search("error")
	if model.MatchCount() != 1 {
		t.Errorf("expected one matching line, got %d", model.MatchCount())
	}
}

func TestSearchEmptyQueryAndNoMatches(t *testing.T) {
	model := testViewer([]string{"Line 1", "Line 2"}, 10)
	model.Search("")
	if model.MatchCount() != 0 {
		t.Errorf("expected no matches for an empty query, got %d", model.MatchCount())
	}

	model.Search("xyz")
	model.NextMatch()
	model.PrevMatch()
	if model.Pager().Offset != 0 {
		t.Errorf("expected n/N without matches to do nothing, got %d", model.Pager().Offset)
	}
	if !strings.Contains(model.StatusText(), "No matches") {
		t.Errorf("expected No matches in status, got %q", model.StatusText())
	}
}

func TestNextPrevMatchWraps(t *testing.T) {
	model := testViewer([]string{"Line 1", "Match here", "Line 3", "Match here too"}, 10)
	model.Search("match")

	model, _ = send(model, keyRunes("n"))
	if line, _ := model.CurrentMatch(); line != 3 {
		t.Errorf("expected match on line 3, got %d", line)
	}
	model, _ = send(model, keyRunes("n"))
	if line, _ := model.CurrentMatch(); line != 1 {
		t.Errorf("expected n to wrap to line 1, got %d", line)
	}
	model, _ = send(model, keyRunes("N"))
	if line, _ := model.CurrentMatch(); line != 3 {
		t.Errorf("expected N to wrap to line 3, got %d", line)
	}
	if !strings.Contains(model.StatusText(), "Match 2/2") {
		t.Errorf("expected Match 2/2 in status, got %q", model.StatusText())
	}
}

func TestSearchKeysUpdateLive(t *testing.T) {
	lines := numberedLines(30)
	lines[17] = "something failed here"
	model := testViewer(lines, 10)

	model, _ = send(model, keyRunes("/"))
	if !model.Searching() {
		t.Fatal("expected / to focus the search input")
	}
	for _, character := range "fail" {
		model, _ = send(model, keyRunes(string(character)))
	}
	if model.MatchCount() != 1 || model.Pager().Offset != 17 {
		t.Errorf("expected live search to jump to line 17, got %d matches at offset %d",
			model.MatchCount(), model.Pager().Offset)
	}
	if !strings.Contains(tui.StripANSI(model.View()), "Search: fail") {
		t.Error("expected the search bar while typing")
	}

	model, _ = send(model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.Searching() {
		t.Error("expected enter to leave the search input")
	}
	model, _ = send(model, keyRunes("g"))
	if model.Pager().Offset != 0 {
		t.Errorf("expected keys to scroll again after enter, got %d", model.Pager().Offset)
	}
	model, _ = send(model, keyRunes("n"))
	if model.Pager().Offset != 17 {
		t.Errorf("expected n to return to the match, got %d", model.Pager().Offset)
	}

	model, _ = send(model, tea.KeyMsg{Type: tea.KeyEsc})
	if model.MatchCount() != 0 {
		t.Error("expected esc to clear the search")
	}
}

func TestStatusText(t *testing.T) {
	model := testViewer(numberedLines(100), 10)
	if status := model.StatusText(); status != "Line 1/100 (1%)" {
		t.Errorf("expected Line 1/100 (1%%), got %q", status)
	}
	model.GoToLine(49)
	if status := model.StatusText(); status != "Line 50/100 (50%)" {
		t.Errorf("expected Line 50/100 (50%%), got %q", status)
	}
}

func TestForLine(t *testing.T) {
	style := DefaultStyle(tui.DefaultTheme)
	tests := []struct {
		line     string
		expected any
	}{
		{"[ERROR] Something failed", style.Error.GetForeground()},
		{"[WARN] Warning message", style.Warn.GetForeground()},
		{"[warn] retry failed", style.Error.GetForeground()},
		{"[DEBUG] Debug message", style.Debug.GetForeground()},
		{"[TRACE] Trace message", style.Trace.GetForeground()},
		{"✓ Task completed", style.Success.GetForeground()},
		{"✗ lint", style.Error.GetForeground()},
		{"Starting server", style.Start.GetForeground()},
		{"plain text", style.Content.GetForeground()},
	}
	for _, test := range tests {
		if got := style.ForLine(test.line).GetForeground(); got != test.expected {
			t.Errorf("%q: expected %v, got %v", test.line, test.expected, got)
		}
	}
}

func TestAppendFollowAndHeat(t *testing.T) {
	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	model := testViewer(numberedLines(20), 10)
	model.SetClock(fake)
	model.SetFollow(true)
	if model.Pager().Offset != 10 {
		t.Fatalf("expected follow to jump to the bottom (10), got %d", model.Pager().Offset)
	}

	cmd := model.Append("new 1", "new 2")
	if cmd == nil {
		t.Error("expected a heat tick command after append")
	}
	if model.Pager().Offset != 12 {
		t.Errorf("expected follow to keep the bottom in view (12), got %d", model.Pager().Offset)
	}
	if model.heat.Heat("21", fake.Now()) != 1 {
		t.Error("expected the appended line to be hot")
	}
	if again := model.Append("new 3"); again != nil {
		t.Error("expected no second tick while one is pending")
	}

	model, cmd = send(model, tui.HeatTickMsg{})
	if cmd == nil {
		t.Error("expected the tick to reschedule while lines glow")
	}
	fake.Advance(tui.HeatDecayDuration)
	model, cmd = send(model, tui.HeatTickMsg{})
	if cmd != nil {
		t.Error("expected ticking to stop once heat decayed")
	}
	if model.heatTicking {
		t.Error("expected heatTicking cleared")
	}

	model, _ = send(model, keyRunes("k"))
	if model.Following() {
		t.Error("expected scrolling up to leave follow mode")
	}
	model.Append("new 4")
	if model.Pager().AtBottom() {
		t.Error("expected append without follow to keep the position")
	}
}

func TestAppendKeepsCurrentMatch(t *testing.T) {
	model := testViewer([]string{"a error", "b", "c error"}, 10)
	model.Search("error")
	model.NextMatch()
	model.Append("d error")
	if model.MatchCount() != 3 {
		t.Errorf("expected 3 matches after append, got %d", model.MatchCount())
	}
	if line, _ := model.CurrentMatch(); line != 2 {
		t.Errorf("expected current match to stay on line 2, got %d", line)
	}
}

func TestLinesMessages(t *testing.T) {
	model := testViewer([]string{"one"}, 10)

	model, _ = send(model, logsource.LinesMsg{Lines: []string{"two", "three"}})
	if len(model.Lines()) != 3 {
		t.Errorf("expected 3 lines after append, got %d", len(model.Lines()))
	}

	model, _ = send(model, logsource.LinesMsg{Lines: []string{"fresh"}, Reset: true})
	if len(model.Lines()) != 1 || model.Lines()[0] != "fresh" {
		t.Errorf("expected reset content, got %v", model.Lines())
	}

	model, _ = send(model, logsource.LinesMsg{Err: errors.New("log rotated away")})
	if !strings.Contains(tui.StripANSI(model.View()), "log rotated away") {
		t.Error("expected the error in the status bar")
	}
}

func TestLogRecordMessage(t *testing.T) {
	model := testViewer(nil, 10)
	model, _ = send(model, tui.LogRecordMsg{
		Time:    time.Date(2026, 1, 1, 12, 30, 0, 0, time.UTC),
		Level:   slog.LevelWarn,
		Summary: "disk nearly full",
	})
	if len(model.Lines()) != 1 {
		t.Fatalf("expected one line, got %d", len(model.Lines()))
	}
	if !strings.Contains(model.Lines()[0], "[warn] disk nearly full") {
		t.Errorf("unexpected record line %q", model.Lines()[0])
	}
}

func TestCopyAndNotice(t *testing.T) {
	model := testViewer(numberedLines(5), 10)
	_, cmd := send(model, keyRunes("y"))
	if cmd == nil {
		t.Fatal("expected a clipboard command")
	}

	model, cmd = send(model, tui.ClipboardMsg{Method: "osc52", Bytes: 34})
	if cmd == nil {
		t.Error("expected a fade command")
	}
	if !strings.Contains(tui.StripANSI(model.View()), "copied 34 bytes (osc52)") {
		t.Error("expected the copy notice in the status bar")
	}
	model, _ = send(model, tui.ClipboardFadeMsg{})
	if strings.Contains(tui.StripANSI(model.View()), "copied") {
		t.Error("expected the notice to fade")
	}
}

func TestViewLayout(t *testing.T) {
	model := testViewer(numberedLines(3), 4)
	model.SetTitle("App")
	lines := strings.Split(tui.StripANSI(model.View()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines (title, 3 content, status), got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], " App") {
		t.Errorf("expected title, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "     1 Line 0") {
		t.Errorf("expected numbered first line, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[4], " Line 1/3") {
		t.Errorf("expected status bar, got %q", lines[4])
	}
}

func TestMouseWheelScrollsThreeLines(t *testing.T) {
	model := testViewer(numberedLines(50), 10)
	model, _ = send(model, tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	if model.Pager().Offset != 3 {
		t.Errorf("expected wheel down to scroll 3 lines, got %d", model.Pager().Offset)
	}
	model, _ = send(model, tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	if model.Pager().Offset != 0 {
		t.Errorf("expected wheel up to scroll back, got %d", model.Pager().Offset)
	}

	model, _ = send(model, tea.MouseMsg{X: 79, Y: 9, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if model.Pager().Offset != 40 {
		t.Errorf("expected scrollbar press at the bottom to show the last page, got %d", model.Pager().Offset)
	}
}
