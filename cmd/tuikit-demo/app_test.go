// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tuikit/lib/clock"
	"github.com/bureau-foundation/tuikit/lib/config"
	"github.com/bureau-foundation/tuikit/lib/diffview"
	"github.com/bureau-foundation/tuikit/lib/fileexplorer"
	"github.com/bureau-foundation/tuikit/lib/listpicker"
	"github.com/bureau-foundation/tuikit/lib/logsource"
	"github.com/bureau-foundation/tuikit/lib/selectmenu"
	"github.com/bureau-foundation/tuikit/lib/session"
	"github.com/bureau-foundation/tuikit/lib/testutil"
	"github.com/bureau-foundation/tuikit/lib/tui"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Explorer.Root = t.TempDir()
	cfg.Explorer.Watch = false
	cfg.LogViewer.Follow = false
	cfg.State.Disabled = true
	return cfg
}

func testApp(t *testing.T, cfg *config.Config, store *session.Store) *appModel {
	t.Helper()
	app, err := newApp(cfg, appOptions{
		Logger: slog.New(slog.DiscardHandler),
		Store:  store,
		Clock:  clock.Fake(epoch),
	})
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	t.Cleanup(app.Close)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return app
}

func keyRunes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func isQuit(command tea.Cmd) bool {
	if command == nil {
		return false
	}
	_, ok := command().(tea.QuitMsg)
	return ok
}

func TestTabSwitching(t *testing.T) {
	app := testApp(t, testConfig(t), nil)
	if app.current() != tabTree {
		t.Fatalf("expected to start on the tree tab, got %s", app.current())
	}
	if !app.tree.Focused() {
		t.Error("expected the tree to have focus")
	}

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if app.current() != tabList {
		t.Errorf("expected tab to move to List, got %s", app.current())
	}
	if app.tree.Focused() {
		t.Error("expected the tree to lose focus")
	}

	app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if app.current() != tabDiff {
		t.Errorf("expected shift+tab to wrap to Diff, got %s", app.current())
	}
}

func TestClickTabHeader(t *testing.T) {
	app := testApp(t, testConfig(t), nil)

	// " Tree " and " List " take columns 0-11; " Log " starts at 12.
	app.Update(tea.MouseMsg{X: 13, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if app.current() != tabLog {
		t.Errorf("expected a click on the Log header to switch tabs, got %s", app.current())
	}
	app.Update(tea.MouseMsg{X: 79, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if app.current() != tabLog {
		t.Errorf("expected a click past the headers to change nothing, got %s", app.current())
	}
}

func TestQuitUnlessCapturing(t *testing.T) {
	app := testApp(t, testConfig(t), nil)

	_, command := app.Update(keyRunes("q"))
	if !isQuit(command) {
		t.Error("expected q to quit on the tree tab")
	}

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app.Update(keyRunes("/"))
	if !app.list.Filtering() {
		t.Fatal("expected / to start filtering the list")
	}
	_, command = app.Update(keyRunes("q"))
	if isQuit(command) {
		t.Error("expected q to reach the filter while typing")
	}
	if app.list.Filter() != "q" {
		t.Errorf("expected the filter to be q, got %q", app.list.Filter())
	}

	_, command = app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(command) {
		t.Error("expected ctrl+c to quit even while typing")
	}
}

func TestHelpModal(t *testing.T) {
	app := testApp(t, testConfig(t), nil)

	app.Update(keyRunes("?"))
	if !app.showHelp {
		t.Fatal("expected ? to open the help modal")
	}
	if !strings.Contains(tui.StripANSI(app.View()), "Tree keys") {
		t.Error("expected the modal title in the view")
	}

	app.Update(keyRunes("j"))
	if !app.showHelp {
		t.Error("expected j to scroll the modal, not close it")
	}
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.showHelp {
		t.Error("expected esc to close the modal")
	}
}

func TestSelectChangesDiffLayout(t *testing.T) {
	app := testApp(t, testConfig(t), nil)
	if app.diff.Mode() != diffview.Unified {
		t.Fatalf("expected the configured unified layout, got %s", app.diff.Mode())
	}

	options := diffModeOptions()
	app.Update(selectmenu.ChangedMsg{Index: 1, Option: options[1]})
	if app.diff.Mode() != diffview.SideBySide {
		t.Errorf("expected side-by-side after the select change, got %s", app.diff.Mode())
	}
	if !strings.Contains(app.status, "Side-by-Side") {
		t.Errorf("expected the status to name the layout, got %q", app.status)
	}
}

func TestPickSetsSyntaxTheme(t *testing.T) {
	app := testApp(t, testConfig(t), nil)
	app.Update(listpicker.PickedMsg[string]{Index: 0, Item: "dracula"})
	if app.diff.Style().SyntaxTheme != "dracula" {
		t.Errorf("expected dracula, got %q", app.diff.Style().SyntaxTheme)
	}
}

func TestConfiguredDiffStyle(t *testing.T) {
	cfg := testConfig(t)
	cfg.Diff.Style = "high-contrast"
	app := testApp(t, cfg, nil)
	if got := app.diff.Style(); got.SyntaxTheme != "monokai" || got.Added.GetBackground() != lipgloss.Color("#003c00") {
		t.Errorf("expected high-contrast colours with the configured syntax theme, got %+v", got)
	}

	cfg = testConfig(t)
	cfg.Diff.Style = "monochrome"
	app = testApp(t, cfg, nil)
	if theme := app.diff.Style().SyntaxTheme; theme != "" {
		t.Errorf("expected monochrome to keep highlighting off, got %q", theme)
	}
}

func TestChosenFileOpensInLogTab(t *testing.T) {
	cfg := testConfig(t)
	path := testutil.WriteFile(t, cfg.Explorer.Root, "app.log", []byte("first\nsecond\nthird\n"))
	app := testApp(t, cfg, nil)

	app.Update(fileexplorer.ChosenMsg{Path: path})
	if app.current() != tabLog {
		t.Errorf("expected the log tab, got %s", app.current())
	}
	if got := app.log.Lines(); !slices.Equal(got, []string{"first", "second", "third"}) {
		t.Errorf("unexpected log lines %q", got)
	}
	if app.ownLog {
		t.Error("expected the file to replace the program's own log")
	}
}

func TestLinesFromReplacedFollowerAreDropped(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogViewer.Follow = true
	path := testutil.WriteFile(t, cfg.Explorer.Root, "app.log", []byte("first\n"))
	app := testApp(t, cfg, nil)

	app.Update(fileexplorer.ChosenMsg{Path: path})
	stale := app.follower
	if stale == nil {
		t.Fatal("expected the chosen file to be followed")
	}
	app.Update(fileexplorer.ChosenMsg{Path: path})
	if app.follower == nil || app.follower == stale {
		t.Fatal("expected reopening the file to start a new follower")
	}

	_, command := app.Update(logsource.LinesMsg{Path: path, Lines: []string{"late"}, Source: stale})
	if command != nil {
		t.Error("expected no new listener for a batch from the replaced follower")
	}
	if got := app.log.Lines(); !slices.Equal(got, []string{"first"}) {
		t.Errorf("expected the late batch dropped, got %q", got)
	}

	_, command = app.Update(logsource.LinesMsg{Path: path, Lines: []string{"second"}, Source: app.follower})
	if command == nil {
		t.Error("expected the current follower to be listened to again")
	}
	if got := app.log.Lines(); !slices.Equal(got, []string{"first", "second"}) {
		t.Errorf("expected the current batch appended, got %q", got)
	}
}

func TestChosenMissingFileReportsStatus(t *testing.T) {
	app := testApp(t, testConfig(t), nil)
	app.Update(fileexplorer.ChosenMsg{Path: "/nonexistent/file.log"})
	if app.current() != tabTree {
		t.Errorf("expected to stay on the tree tab, got %s", app.current())
	}
	if !strings.HasPrefix(app.status, "cannot open") {
		t.Errorf("expected an error status, got %q", app.status)
	}
}

func TestLogRecordsAppendAndSurfaceWarnings(t *testing.T) {
	app := testApp(t, testConfig(t), nil)

	app.Update(tui.LogRecordMsg{Time: epoch, Level: slog.LevelInfo, Summary: "started"})
	if app.record != nil {
		t.Error("expected info records to stay out of the status line")
	}
	app.Update(tui.LogRecordMsg{Time: epoch, Level: slog.LevelWarn, Summary: "disk almost full"})
	if len(app.log.Lines()) != 2 {
		t.Errorf("expected both records in the log tab, got %d lines", len(app.log.Lines()))
	}
	if !strings.Contains(tui.StripANSI(app.renderStatus()), "disk almost full") {
		t.Errorf("expected the warning in the status line, got %q", tui.StripANSI(app.renderStatus()))
	}

	app.Update(tui.LogRecordFadeMsg{})
	if app.record != nil {
		t.Error("expected the fade to clear the warning")
	}
}

func TestViewLayout(t *testing.T) {
	app := testApp(t, testConfig(t), nil)
	view := app.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 24 {
		t.Errorf("expected 24 lines, got %d", len(lines))
	}
	header := tui.StripANSI(lines[0])
	for _, name := range tabNames {
		if !strings.Contains(header, name) {
			t.Errorf("expected %s in the tab bar %q", name, header)
		}
	}
	if !strings.Contains(tui.StripANSI(lines[len(lines)-1]), "? help") {
		t.Errorf("expected key hints in the status line, got %q", lines[len(lines)-1])
	}
}

func TestSessionRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	cfg.State.Disabled = false
	notes := testutil.WriteFile(t, cfg.Explorer.Root, "notes.txt", []byte("x"))
	store, err := session.Open(t.TempDir())
	if err != nil {
		t.Fatalf("session.Open: %v", err)
	}

	first := testApp(t, cfg, store)
	first.tree.Toggle("lib")
	first.tree.SelectID("go.mod")
	if err := first.files.SetShowHidden(true); err != nil {
		t.Fatal(err)
	}
	if !first.files.SelectPath(notes) {
		t.Fatal("expected notes.txt to be selectable")
	}
	if err := first.SaveSession(); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	second := testApp(t, cfg, store)
	if got := second.tree.CollapsedIDs(); !slices.Equal(got, []string{"lib"}) {
		t.Errorf("expected lib collapsed after restore, got %v", got)
	}
	if id, _ := second.tree.SelectedID(); id != "go.mod" {
		t.Errorf("expected go.mod selected after restore, got %q", id)
	}
	if !second.files.ShowHidden() {
		t.Error("expected hidden files to stay shown after restore")
	}
	if entry, ok := second.files.Current(); !ok || entry.Name != "notes.txt" {
		t.Errorf("expected notes.txt selected after restore, got %+v", entry)
	}
}
