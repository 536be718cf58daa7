// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tuikit/lib/clock"
	"github.com/bureau-foundation/tuikit/lib/config"
	"github.com/bureau-foundation/tuikit/lib/diffview"
	"github.com/bureau-foundation/tuikit/lib/fileexplorer"
	"github.com/bureau-foundation/tuikit/lib/listpicker"
	"github.com/bureau-foundation/tuikit/lib/logsource"
	"github.com/bureau-foundation/tuikit/lib/logviewer"
	"github.com/bureau-foundation/tuikit/lib/selectmenu"
	"github.com/bureau-foundation/tuikit/lib/session"
	"github.com/bureau-foundation/tuikit/lib/tree"
	"github.com/bureau-foundation/tuikit/lib/treeview"
	"github.com/bureau-foundation/tuikit/lib/tui"
)

type tab int

const (
	tabTree tab = iota
	tabList
	tabLog
	tabSelect
	tabFiles
	tabDiff
)

var tabNames = [...]string{"Tree", "List", "Log", "Select", "Files", "Diff"}

func (t tab) String() string { return tabNames[t] }

// tabHelp is the markdown shown under the key bindings in the help
// modal.
var tabHelp = [...]string{
	"A collapsible tree. Collapsed nodes and the selection are **restored** on the next run.",
	"Pick a syntax theme for the diff tab. Type `/` to filter with fuzzy matching.",
	"Follows the configured log file, or shows this program's own log records. " +
		"Compressed files (`.gz`, `.zst`, `.lz4`) are decompressed but not followed.",
	"Choose the diff layout. Letters jump to the first option starting with them.",
	"Browse the file system. `enter` on a file opens it in the log tab.",
	"Unified or side-by-side diff with syntax highlighting. `]` and `[` move between hunks.",
}

const (
	tabBarHeight    = 1
	statusBarHeight = 1
)

// appOptions carries the runtime dependencies of the demo.
type appOptions struct {
	Logger *slog.Logger
	Store  *session.Store
	Clock  clock.Clock
}

// appModel is the root model: a tab bar, the focused widget, and a
// status line.
type appModel struct {
	config *config.Config
	theme  tui.Theme
	clock  clock.Clock
	logger *slog.Logger
	store  *session.Store

	focus *tui.FocusManager[tab]
	tabs  tui.ClickRegistry[tab]

	tree  treeview.Model[string]
	list  listpicker.Model[string]
	log   logviewer.Model
	menu  selectmenu.Model
	files fileexplorer.Model
	diff  diffview.Model

	treeView  string
	filesView string

	follower *logsource.Follower
	ownLog   bool
	watcher  *fileexplorer.Watcher

	help     tui.HelpModal
	showHelp bool

	status string
	record *tui.LogRecordMsg

	width  int
	height int
}

func newApp(cfg *config.Config, options appOptions) (*appModel, error) {
	theme, err := tui.DefaultTheme.Override(cfg.Theme)
	if err != nil {
		return nil, err
	}
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	app := &appModel{
		config: cfg,
		theme:  theme,
		clock:  options.Clock,
		logger: options.Logger,
		store:  options.Store,
		focus:  tui.NewFocusManager(tabTree, tabList, tabLog, tabSelect, tabFiles, tabDiff),
	}

	if err := app.buildTree(); err != nil {
		return nil, err
	}
	app.buildList()
	if err := app.buildLog(); err != nil {
		return nil, err
	}
	app.buildMenu()
	app.buildFiles()
	if err := app.buildDiff(); err != nil {
		return nil, err
	}

	app.restoreSession()
	app.applyFocus()
	return app, nil
}

func (app *appModel) buildTree() error {
	nodes := sampleTree()
	app.treeView = "tree:sample"
	if path := app.config.Tree.File; path != "" {
		loaded, err := loadTree(path)
		if err != nil {
			return err
		}
		nodes = loaded
		if absolute, err := filepath.Abs(path); err == nil {
			path = absolute
		}
		app.treeView = "tree:" + path
	}
	app.tree = treeview.New(nodes, func(node *tree.Node[string], _ bool) string {
		return node.Data
	})
	app.tree.SetTheme(app.theme)
	app.tree.SetStyle(treeview.StyleByName(app.config.Tree.Style, app.theme))
	app.tree.SetScrollbar(app.config.Tree.Scrollbar)
	return nil
}

func (app *appModel) buildList() {
	app.list = listpicker.New(syntaxThemes(), func(name string, _ int, _ bool) string {
		if name == app.config.Diff.SyntaxTheme {
			return name + " (configured)"
		}
		return name
	})
	app.list.SetTheme(app.theme)
	app.list.SetTitle("Syntax theme")
	app.list.SetFilterKey(func(name string) string { return name })
}

func (app *appModel) buildLog() error {
	app.log = logviewer.New(nil)
	app.log.SetTheme(app.theme)
	app.log.SetClock(app.clock)
	app.log.SetLineNumbers(app.config.LogViewer.LineNumbers, app.config.LogViewer.LineNumberWidth)
	app.log.SetHorizontalStep(app.config.LogViewer.HorizontalStep)
	if app.config.LogViewer.File == "" {
		app.ownLog = true
		app.log.SetTitle("tuikit-demo log")
		app.log.SetFollow(true)
		return nil
	}
	_, err := app.openLog(app.config.LogViewer.File)
	return err
}

func (app *appModel) buildMenu() {
	app.menu = selectmenu.New(diffModeOptions())
	app.menu.SetTheme(app.theme)
	if app.config.Select.Style == "arrow" {
		app.menu.SetStyle(selectmenu.ArrowStyle(app.theme))
	}
	app.menu.SetClock(app.clock)
	app.menu.SetLabel("Diff layout")
	app.menu.SetMaxVisible(app.config.Select.MaxVisible)
	if diffModeFromName(app.config.Diff.Mode) == diffview.SideBySide {
		app.menu.Select(1)
	} else {
		app.menu.Select(0)
	}
}

func (app *appModel) buildFiles() {
	root := app.config.Explorer.Root
	app.files = fileexplorer.New(root)
	app.files.SetTheme(app.theme)
	if app.config.Explorer.ShowHidden {
		if err := app.files.SetShowHidden(true); err != nil {
			app.logger.Warn("listing hidden files failed", "directory", root, "error", err)
		}
	}
	app.filesView = "files:" + app.files.Dir()
	if !app.config.Explorer.Watch {
		return
	}
	watcher, err := fileexplorer.NewWatcher(app.clock)
	if err != nil {
		app.logger.Warn("directory watching unavailable", "error", err)
		return
	}
	if err := app.files.SetWatcher(watcher); err != nil {
		app.logger.Warn("watching directory failed", "directory", app.files.Dir(), "error", err)
	}
	app.watcher = watcher
}

func (app *appModel) buildDiff() error {
	diff, err := loadDiff(app.config.Diff)
	if err != nil {
		return err
	}
	app.diff = diffview.New(diff)
	app.diff.SetTheme(app.theme)
	style := diffview.StyleByName(app.config.Diff.Style, app.theme)
	if app.config.Diff.Style != "monochrome" {
		style.SyntaxTheme = app.config.Diff.SyntaxTheme
	}
	app.diff.SetStyle(style)
	app.diff.SetMode(diffModeFromName(app.config.Diff.Mode))
	return nil
}

// openLog shows path in the log tab and, when following is enabled,
// starts tailing it. The returned command listens for the first batch.
func (app *appModel) openLog(path string) (tea.Cmd, error) {
	if !app.config.LogViewer.Follow || logsource.Compressed(path) {
		lines, err := logsource.ReadLines(path)
		if err != nil {
			return nil, err
		}
		app.stopFollowing()
		app.showFile(path, lines)
		app.log.SetFollow(false)
		return nil, nil
	}

	lines, offset, err := logsource.Snapshot(path)
	if err != nil {
		return nil, err
	}
	app.stopFollowing()
	app.showFile(path, lines)
	follower, err := logsource.Follow(logsource.FollowConfig{
		Path:   path,
		Offset: offset,
		Clock:  app.clock,
		Logger: app.logger,
	})
	if err != nil {
		app.log.SetFollow(false)
		return app.logAsync(slog.LevelWarn, "following log file failed", "path", path, "error", err), nil
	}
	app.follower = follower
	app.log.SetFollow(true)
	return logsource.Listen(follower), nil
}

// showFile replaces the program's own records with the file's lines.
func (app *appModel) showFile(path string, lines []string) {
	app.ownLog = false
	app.log.SetContent(lines)
	app.log.SetTitle(path)
}

// stopFollowing detaches the current follower. It is stopped in the
// background: its goroutine may be blocked logging into the program
// whose Update is running.
func (app *appModel) stopFollowing() {
	if app.follower != nil {
		go app.follower.Stop()
		app.follower = nil
	}
}

// logAsync returns a command that logs the record. Update and Init
// must not log directly: the TUI handler sends into the program they
// run in.
func (app *appModel) logAsync(level slog.Level, message string, args ...any) tea.Cmd {
	logger := app.logger
	return func() tea.Msg {
		logger.Log(context.Background(), level, message, args...)
		return nil
	}
}

// Close stops background watchers. Call after the program has exited.
func (app *appModel) Close() {
	if app.follower != nil {
		app.follower.Stop()
		app.follower = nil
	}
	if app.watcher != nil {
		app.watcher.Close()
	}
}

func (app *appModel) restoreSession() {
	if app.store == nil {
		return
	}
	if snapshot, ok, err := app.store.Load(app.treeView); err != nil {
		app.logger.Warn("loading tree state failed", "error", err)
	} else if ok {
		app.tree.SetCollapsed(snapshot.Collapsed)
		if snapshot.SelectedID != "" {
			app.tree.SelectID(snapshot.SelectedID)
		}
	}
	if snapshot, ok, err := app.store.Load(app.filesView); err != nil {
		app.logger.Warn("loading explorer state failed", "error", err)
	} else if ok {
		if snapshot.Hidden != app.files.ShowHidden() {
			if err := app.files.SetShowHidden(snapshot.Hidden); err != nil {
				app.logger.Warn("listing hidden files failed", "error", err)
			}
		}
		if snapshot.SelectedID != "" {
			app.files.SelectPath(snapshot.SelectedID)
		}
	}
}

// SaveSession writes the tree and explorer state. Does nothing when
// persistence is off.
func (app *appModel) SaveSession() error {
	if app.store == nil {
		return nil
	}
	treeSnapshot := session.Snapshot{
		Collapsed: app.tree.CollapsedIDs(),
		Cursor:    app.tree.Window().Cursor,
	}
	if id, ok := app.tree.SelectedID(); ok {
		treeSnapshot.SelectedID = id
	}
	filesSnapshot := session.Snapshot{
		Hidden: app.files.ShowHidden(),
		Cursor: app.files.Window().Cursor,
	}
	if entry, ok := app.files.Current(); ok && entry.Kind != fileexplorer.KindParent {
		filesSnapshot.SelectedID = entry.Path
	}
	return errors.Join(
		app.store.Save(app.treeView, treeSnapshot),
		app.store.Save(app.filesView, filesSnapshot),
	)
}

func (app *appModel) current() tab {
	current, _ := app.focus.Current()
	return current
}

// applyFocus gives keyboard focus to the current tab's widget only.
func (app *appModel) applyFocus() {
	app.tree.Blur()
	app.list.Blur()
	app.log.Blur()
	app.menu.Blur()
	app.files.Blur()
	app.diff.Blur()
	switch app.current() {
	case tabTree:
		app.tree.Focus()
	case tabList:
		app.list.Focus()
	case tabLog:
		app.log.Focus()
	case tabSelect:
		app.menu.Focus()
	case tabFiles:
		app.files.Focus()
	case tabDiff:
		app.diff.Focus()
	}
}

// capturing reports whether the current widget is taking text input,
// in which case tab, q and ? go to the widget.
func (app *appModel) capturing() bool {
	switch app.current() {
	case tabList:
		return app.list.Filtering()
	case tabLog:
		return app.log.Searching()
	case tabSelect:
		return app.menu.IsOpen()
	case tabFiles:
		return app.files.Searching()
	case tabDiff:
		return app.diff.Searching()
	}
	return false
}

func (app *appModel) bodyHeight() int {
	return max(app.height-tabBarHeight-statusBarHeight, 1)
}

// layout sizes every widget and re-registers the tab headers.
func (app *appModel) layout() {
	height := app.bodyHeight()
	app.tree.SetSize(app.width, height)
	app.list.SetSize(app.width, height)
	app.log.SetSize(app.width, height)
	app.menu.SetWidth(min(app.width, 40))
	app.files.SetSize(app.width, height)
	app.diff.SetSize(app.width, height)

	app.tabs.Clear()
	x := 0
	for index := range tabNames {
		width := tui.DisplayWidth(tabLabel(tab(index)))
		app.tabs.Register(tui.Rect{X: x, Y: 0, Width: width, Height: tabBarHeight}, tab(index))
		x += width
	}
}

func tabLabel(t tab) string {
	return " " + t.String() + " "
}

func (app *appModel) Init() tea.Cmd {
	var commands []tea.Cmd
	commands = append(commands, app.files.Init())
	if app.follower != nil {
		commands = append(commands, logsource.Listen(app.follower))
	}
	if app.ownLog {
		commands = append(commands, app.logAsync(slog.LevelInfo, "tuikit demo started", "tabs", len(tabNames)))
	}
	return tea.Batch(commands...)
}

func (app *appModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		app.width = message.Width
		app.height = message.Height
		app.layout()
		return app, nil

	case tea.KeyMsg:
		return app, app.handleKey(message)

	case tea.MouseMsg:
		return app, app.handleMouse(message)

	case logsource.LinesMsg:
		if app.follower == nil || message.Source != app.follower {
			return app, nil
		}
		var command tea.Cmd
		app.log, command = app.log.Update(message)
		return app, tea.Batch(command, logsource.Listen(app.follower))

	case tui.LogRecordMsg:
		var commands []tea.Cmd
		if app.ownLog {
			var command tea.Cmd
			app.log, command = app.log.Update(message)
			commands = append(commands, command)
		}
		if message.Level >= slog.LevelWarn {
			app.record = &message
			commands = append(commands, tui.ScheduleLogFade(app.clock))
		}
		return app, tea.Batch(commands...)

	case tui.LogRecordFadeMsg:
		app.record = nil
		return app, nil

	case tui.HeatTickMsg, tui.ClipboardMsg, tui.ClipboardFadeMsg:
		var command tea.Cmd
		app.log, command = app.log.Update(message)
		return app, command

	case fileexplorer.ChangedMsg:
		var command tea.Cmd
		app.files, command = app.files.Update(message)
		return app, command

	case fileexplorer.ChosenMsg:
		command, err := app.openLog(message.Path)
		if err != nil {
			app.status = "cannot open " + message.Path + ": " + err.Error()
			return app, app.logAsync(slog.LevelWarn, "opening file failed", "path", message.Path, "error", err)
		}
		app.status = "opened " + message.Path
		app.focus.Set(tabLog)
		app.applyFocus()
		return app, command

	case treeview.SelectionMsg:
		app.status = "selected " + message.ID
		return app, nil

	case treeview.ToggleMsg:
		verb := "expanded "
		if message.Collapsed {
			verb = "collapsed "
		}
		app.status = verb + message.ID
		return app, nil

	case listpicker.PickedMsg[string]:
		style := app.diff.Style()
		style.SyntaxTheme = message.Item
		app.diff.SetStyle(style)
		app.status = "diff syntax theme: " + message.Item
		return app, app.logAsync(slog.LevelInfo, "syntax theme changed", "theme", message.Item)

	case selectmenu.ChangedMsg:
		if message.Index < 0 {
			app.status = "diff layout cleared"
			return app, nil
		}
		app.diff.SetMode(diffModeFromName(message.Option.Value))
		app.status = "diff layout: " + message.Option.Label
		return app, nil
	}

	// Anything else (type-ahead timeouts and similar) belongs to the
	// focused widget.
	return app, app.updateCurrent(message)
}

func (app *appModel) handleKey(message tea.KeyMsg) tea.Cmd {
	if app.showHelp {
		app.showHelp = app.help.Update(message)
		return nil
	}
	if message.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if !app.capturing() {
		switch message.String() {
		case "q":
			return tea.Quit
		case "?":
			app.openHelp()
			return nil
		case "tab":
			app.focus.Next()
			app.applyFocus()
			return nil
		case "shift+tab":
			app.focus.Prev()
			app.applyFocus()
			return nil
		}
	}
	return app.updateCurrent(message)
}

func (app *appModel) openHelp() {
	current := app.current()
	app.help = tui.NewHelpModal(current.String()+" keys", app.theme, app.currentBindings(), tabHelp[current])
	app.showHelp = true
}

func (app *appModel) currentBindings() [][]key.Binding {
	switch app.current() {
	case tabTree:
		return app.tree.KeyMap().FullHelp()
	case tabList:
		return app.list.KeyMap().FullHelp()
	case tabLog:
		return app.log.KeyMap().FullHelp()
	case tabSelect:
		return app.menu.KeyMap().FullHelp()
	case tabFiles:
		return app.files.KeyMap().FullHelp()
	default:
		return app.diff.KeyMap().FullHelp()
	}
}

func (app *appModel) handleMouse(message tea.MouseMsg) tea.Cmd {
	if app.showHelp {
		switch message.Button {
		case tea.MouseButtonWheelUp:
			app.help.Scroll(-3)
		case tea.MouseButtonWheelDown:
			app.help.Scroll(3)
		}
		return nil
	}
	if message.Action == tea.MouseActionPress && message.Button == tea.MouseButtonLeft && message.Y < tabBarHeight {
		if clicked, ok := app.tabs.HandleClick(message.X, message.Y); ok {
			app.focus.Set(clicked)
			app.applyFocus()
		}
		return nil
	}
	message.Y -= tabBarHeight
	return app.updateCurrent(message)
}

// updateCurrent forwards a message to the focused widget.
func (app *appModel) updateCurrent(message tea.Msg) tea.Cmd {
	var command tea.Cmd
	switch app.current() {
	case tabTree:
		app.tree, command = app.tree.Update(message)
	case tabList:
		app.list, command = app.list.Update(message)
	case tabLog:
		app.log, command = app.log.Update(message)
	case tabSelect:
		app.menu, command = app.menu.Update(message)
	case tabFiles:
		app.files, command = app.files.Update(message)
	case tabDiff:
		app.diff, command = app.diff.Update(message)
	}
	return command
}

func (app *appModel) View() string {
	if app.width == 0 || app.height == 0 {
		return ""
	}
	body := lipgloss.NewStyle().
		Height(app.bodyHeight()).
		MaxHeight(app.bodyHeight()).
		Render(app.renderBody())
	view := strings.Join([]string{app.renderTabBar(), body, app.renderStatus()}, "\n")

	if app.current() == tabSelect {
		view = app.menu.Overlay(view, 0, tabBarHeight)
	}
	if app.showHelp {
		lines, x, y := app.help.Render(app.width, app.height)
		view = tui.SpliceOverlay(view, lines, x, y)
	}
	return view
}

func (app *appModel) renderTabBar() string {
	active := lipgloss.NewStyle().
		Foreground(app.theme.HeaderForeground).
		Background(app.theme.SelectedBackground).
		Bold(true)
	inactive := lipgloss.NewStyle().Foreground(app.theme.FaintText)

	var bar strings.Builder
	for index := range tabNames {
		label := tabLabel(tab(index))
		if app.focus.IsFocused(tab(index)) {
			bar.WriteString(active.Render(label))
		} else {
			bar.WriteString(inactive.Render(label))
		}
	}
	return tui.FitToWidth(bar.String(), app.width)
}

func (app *appModel) renderBody() string {
	switch app.current() {
	case tabTree:
		return app.tree.View()
	case tabList:
		return app.list.View()
	case tabLog:
		return app.log.View()
	case tabSelect:
		faint := lipgloss.NewStyle().Foreground(app.theme.FaintText)
		return app.menu.View() + "\n\n" +
			faint.Render(fmt.Sprintf(" The diff tab is showing the %s layout.", app.diff.Mode()))
	case tabFiles:
		return app.files.View()
	default:
		return app.diff.View()
	}
}

func (app *appModel) renderStatus() string {
	hints := lipgloss.NewStyle().Foreground(app.theme.HelpText).Render("? help  tab switch  q quit ")
	left := app.status
	style := lipgloss.NewStyle().Foreground(app.theme.NormalText)
	if app.record != nil {
		left = app.record.Summary
		style = style.Foreground(app.theme.LevelWarn)
		if app.record.Level >= slog.LevelError {
			style = style.Foreground(app.theme.LevelError)
		}
	}
	space := app.width - tui.DisplayWidth(hints)
	if space < 1 {
		return tui.FitToWidth(hints, app.width)
	}
	return tui.FitToWidth(" "+style.Render(tui.CleanForDisplay(left)), space) + hints
}
