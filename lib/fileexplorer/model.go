// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fileexplorer

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/tuikit/lib/tui"
	"github.com/bureau-foundation/tuikit/lib/viewport"
)

// ChosenMsg is emitted when enter is pressed on a file.
type ChosenMsg struct {
	Path string
}

// fixedColumns is the width of everything on a row except the name:
// cursor, checkbox, icon, separators, and the size column.
const fixedColumns = 22

// Model is the file explorer sub-model.
type Model struct {
	directory  string
	entries    []Entry
	visible    []tui.Ranked[Entry]
	window     viewport.Window
	marked     map[string]struct{}
	showHidden bool
	notice     string

	search tui.SearchInput
	slab   *util.Slab

	watcher *Watcher

	showHelp bool
	help     help.Model
	keys     KeyMap
	style    Style
	theme    tui.Theme

	width   int
	height  int
	focused bool
}

// New opens directory. A directory that cannot be read still yields a
// model; the error is shown in the title line.
func New(directory string) Model {
	model := Model{
		marked:   make(map[string]struct{}),
		search:   tui.SearchInput{Prompt: "/"},
		slab:     tui.NewFuzzySlab(),
		showHelp: true,
		help:     help.New(),
		keys:     DefaultKeyMap,
	}
	model.SetTheme(tui.DefaultTheme)
	if absolute, err := filepath.Abs(directory); err == nil {
		directory = absolute
	}
	model.directory = filepath.Clean(directory)
	if err := model.Reload(); err != nil {
		model.notice = err.Error()
	}
	return model
}

// Init starts listening to the watcher, if one is attached.
func (model Model) Init() tea.Cmd {
	if model.watcher == nil {
		return nil
	}
	return model.watcher.Listen()
}

// SetWatcher attaches a watcher and points it at the current
// directory. Call before Init.
func (model *Model) SetWatcher(watcher *Watcher) error {
	model.watcher = watcher
	return watcher.Watch(model.directory)
}

// SetTheme replaces the palette and rebuilds the default style.
func (model *Model) SetTheme(theme tui.Theme) {
	model.theme = theme
	model.style = DefaultStyle(theme)
	model.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.LevelSuccess)
	model.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.HelpText)
	model.help.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.BorderColor)
}

// SetStyle replaces the listing style.
func (model *Model) SetStyle(style Style) { model.style = style }

// SetKeyMap replaces the key bindings.
func (model *Model) SetKeyMap(keys KeyMap) { model.keys = keys }

// KeyMap returns the active key bindings.
func (model Model) KeyMap() KeyMap { return model.keys }

// SetShowHelp toggles the key-hint footer.
func (model *Model) SetShowHelp(show bool) {
	model.showHelp = show
	model.layout()
}

// SetSize sets the rendered width and height.
func (model *Model) SetSize(width, height int) {
	model.width = width
	model.height = height
	model.help.Width = width
	model.layout()
}

// Focus enables keyboard handling.
func (model *Model) Focus() { model.focused = true }

// Blur disables keyboard handling.
func (model *Model) Blur() { model.focused = false }

// Dir returns the directory being shown.
func (model Model) Dir() string { return model.directory }

// Entries returns the full listing of the current directory.
func (model Model) Entries() []Entry { return model.entries }

// Visible returns the rows after filtering, in display order.
func (model Model) Visible() []tui.Ranked[Entry] { return model.visible }

// Window returns the cursor and scroll state.
func (model Model) Window() viewport.Window { return model.window }

// Current returns the entry under the cursor.
func (model Model) Current() (Entry, bool) {
	if model.window.Empty() {
		return Entry{}, false
	}
	return model.visible[model.window.Cursor].Item, true
}

// ShowHidden reports whether dot-files are listed.
func (model Model) ShowHidden() bool { return model.showHidden }

// SetShowHidden shows or hides dot-files and reloads.
func (model *Model) SetShowHidden(show bool) error {
	model.showHidden = show
	return model.Reload()
}

// Reload re-reads the current directory, re-applies the filter, and
// keeps the cursor on the same name when it is still listed.
func (model *Model) Reload() error {
	entries, err := ReadEntries(model.directory, model.showHidden)
	if err != nil {
		return err
	}
	current, hadCurrent := model.Current()
	model.entries = entries
	model.refilter()
	if hadCurrent {
		model.selectName(current.Name)
	}
	return nil
}

// Enter shows directory. The filter is cleared and the cursor starts
// at the top. On error the current listing stays.
func (model *Model) Enter(directory string) error {
	directory = filepath.Clean(directory)
	entries, err := ReadEntries(directory, model.showHidden)
	if err != nil {
		return err
	}
	model.directory = directory
	model.entries = entries
	model.notice = ""
	model.search.Clear()
	model.refilter()
	model.window.First()
	model.layout()
	if model.watcher != nil {
		if err := model.watcher.Watch(directory); err != nil {
			model.notice = err.Error()
		}
	}
	return nil
}

// GoUp shows the parent directory with the cursor on the directory
// just left. Does nothing at the root.
func (model *Model) GoUp() error {
	parent := filepath.Dir(model.directory)
	if parent == model.directory {
		return nil
	}
	child := filepath.Base(model.directory)
	if err := model.Enter(parent); err != nil {
		return err
	}
	model.selectName(child)
	return nil
}

// SelectPath enters the directory containing path and puts the cursor
// on it. Returns false when path cannot be shown, leaving the listing
// unchanged.
func (model *Model) SelectPath(path string) bool {
	if absolute, err := filepath.Abs(path); err == nil {
		path = absolute
	}
	directory := filepath.Dir(path)
	if directory != model.directory {
		if err := model.Enter(directory); err != nil {
			return false
		}
	}
	return model.selectName(filepath.Base(path))
}

func (model *Model) selectName(name string) bool {
	for index, ranked := range model.visible {
		if ranked.Item.Name == name {
			return model.window.Select(index)
		}
	}
	return false
}

// Marked returns the marked file paths, sorted.
func (model Model) Marked() []string {
	paths := make([]string, 0, len(model.marked))
	for path := range model.marked {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

// IsMarked reports whether path is in the selection set.
func (model Model) IsMarked(path string) bool {
	_, ok := model.marked[path]
	return ok
}

// ToggleMark marks or unmarks the file under the cursor. Directories
// are ignored.
func (model *Model) ToggleMark() {
	entry, ok := model.Current()
	if !ok || !entry.Selectable() {
		return
	}
	if model.IsMarked(entry.Path) {
		delete(model.marked, entry.Path)
	} else {
		model.marked[entry.Path] = struct{}{}
	}
}

// MarkAll marks every file in the current directory.
func (model *Model) MarkAll() {
	for _, entry := range model.entries {
		if entry.Selectable() {
			model.marked[entry.Path] = struct{}{}
		}
	}
}

// MarkNone clears the selection set, including marks made in other
// directories.
func (model *Model) MarkNone() { clear(model.marked) }

// Filter returns the filter query.
func (model Model) Filter() string { return model.search.Value() }

// SetFilter replaces the filter query and moves to the best match.
func (model *Model) SetFilter(query string) {
	model.search.SetValue(query)
	model.refilter()
	model.window.First()
	model.layout()
}

// Searching reports whether the filter input has keyboard focus.
func (model Model) Searching() bool { return model.search.Active }

func (model *Model) refilter() {
	query := model.search.Value()
	model.visible = make([]tui.Ranked[Entry], 0, len(model.entries))
	if query == "" {
		for index, entry := range model.entries {
			model.visible = append(model.visible, tui.Ranked[Entry]{Item: entry, Index: index})
		}
	} else {
		model.visible = tui.RankFuzzy(model.entries, query, func(entry Entry) string {
			return entry.Name
		}, model.slab)
	}
	model.window.SetTotal(len(model.visible))
}

// headerLines is the title plus the filter bar when shown.
func (model Model) headerLines() int {
	if model.search.Active || model.search.Value() != "" {
		return 2
	}
	return 1
}

func (model Model) footerLines() int {
	if model.showHelp {
		return 1
	}
	return 0
}

func (model *Model) layout() {
	model.window.SetHeight(max(model.height-model.headerLines()-model.footerLines(), 0))
}

// open enters a directory or chooses a file. A symlink is entered when
// it resolves to a directory.
func (model *Model) open() tea.Cmd {
	entry, ok := model.Current()
	if !ok {
		return nil
	}
	directory := entry.IsDir()
	if entry.Kind == KindSymlink {
		if info, err := os.Stat(entry.Path); err == nil && info.IsDir() {
			directory = true
		}
	}
	if directory {
		var err error
		if entry.Kind == KindParent {
			err = model.GoUp()
		} else {
			err = model.Enter(entry.Path)
		}
		if err != nil {
			model.notice = err.Error()
		}
		return nil
	}
	return func() tea.Msg { return ChosenMsg{Path: entry.Path} }
}

// Update handles key, mouse, and watcher messages.
func (model Model) Update(message tea.Msg) (Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if !model.focused {
			return model, nil
		}
		if model.search.Active {
			model.handleSearchKey(message)
			return model, nil
		}
		return model, model.handleKey(message)

	case tea.MouseMsg:
		return model, model.handleMouse(message)

	case ChangedMsg:
		if message.Err != nil {
			model.notice = "watch: " + message.Err.Error()
		} else if message.Dir == model.directory {
			if err := model.Reload(); err != nil {
				model.notice = err.Error()
			}
		}
		if model.watcher != nil {
			return model, model.watcher.Listen()
		}
	}
	return model, nil
}

func (model *Model) handleKey(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Up):
		model.window.Prev()
	case key.Matches(message, model.keys.Down):
		model.window.Next()
	case key.Matches(message, model.keys.PageUp):
		model.window.PageUp()
	case key.Matches(message, model.keys.PageDown):
		model.window.PageDown()
	case key.Matches(message, model.keys.Home):
		model.window.First()
	case key.Matches(message, model.keys.End):
		model.window.Last()
	case key.Matches(message, model.keys.Open):
		return model.open()
	case key.Matches(message, model.keys.Parent):
		if err := model.GoUp(); err != nil {
			model.notice = err.Error()
		}
	case key.Matches(message, model.keys.Mark):
		model.ToggleMark()
	case key.Matches(message, model.keys.MarkAll):
		model.MarkAll()
	case key.Matches(message, model.keys.MarkNone):
		model.MarkNone()
	case key.Matches(message, model.keys.Hidden):
		if err := model.SetShowHidden(!model.showHidden); err != nil {
			model.notice = err.Error()
		}
	case key.Matches(message, model.keys.Search):
		model.search.Active = true
		model.layout()
	case key.Matches(message, model.keys.SearchExit):
		if model.search.Value() != "" {
			model.SetFilter("")
		}
	}
	return nil
}

// handleSearchKey edits the filter. Enter keeps the filter and returns
// to navigation; esc discards it.
func (model *Model) handleSearchKey(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyEsc:
		model.search.Clear()
	case tea.KeyEnter:
		model.search.Active = false
		model.layout()
		return
	case tea.KeyBackspace:
		if !model.search.HandleBackspace() {
			return
		}
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			model.search.HandleRune(character)
		}
	default:
		return
	}
	model.refilter()
	model.window.First()
	model.layout()
}

func (model *Model) handleMouse(message tea.MouseMsg) tea.Cmd {
	switch message.Button {
	case tea.MouseButtonWheelUp:
		model.window.Prev()
	case tea.MouseButtonWheelDown:
		model.window.Next()
	case tea.MouseButtonLeft:
		if message.Action != tea.MouseActionPress {
			return nil
		}
		index, ok := model.window.RowAt(message.Y - model.headerLines())
		if !ok {
			return nil
		}
		if index == model.window.Cursor {
			return model.open()
		}
		model.window.Select(index)
	}
	return nil
}

// View renders the title, filter bar, listing, and footer.
func (model Model) View() string {
	if model.width <= 0 || model.height <= 0 {
		return ""
	}
	blank := strings.Repeat(" ", model.width)

	title := model.directory
	if count := len(model.marked); count > 0 {
		title = fmt.Sprintf("%s (%d selected)", title, count)
	}
	titleLine := model.style.Title.Render(tui.TruncateToWidth(title, model.width))
	if model.notice != "" {
		titleLine = model.style.Error.Render(tui.TruncateToWidth(model.notice, model.width))
	}
	lines := []string{tui.FitToWidth(titleLine, model.width)}
	if bar := model.search.View(model.theme, model.width); bar != "" {
		lines = append(lines, bar)
	}

	var body []string
	if len(model.visible) == 0 && model.search.Value() != "" {
		body = append(body, tui.FitToWidth(model.style.Size.Render("No matches"), model.width))
	}
	start, end := model.window.Range()
	for index := start; index < end; index++ {
		body = append(body, model.renderRow(index))
	}
	for len(body) < model.window.Height {
		body = append(body, blank)
	}
	lines = append(lines, body[:min(len(body), model.window.Height)]...)

	if model.showHelp {
		lines = append(lines, tui.FitToWidth(model.help.ShortHelpView(model.keys.ShortHelp()), model.width))
	}
	return strings.Join(lines[:min(len(lines), model.height)], "\n")
}

func (model Model) renderRow(index int) string {
	entry := model.visible[index].Item
	isCursor := index == model.window.Cursor

	cursor := " "
	if isCursor {
		cursor = ">"
	}
	checkbox := "   "
	if entry.Selectable() {
		checkbox = model.style.Unchecked
		if model.IsMarked(entry.Path) {
			checkbox = model.style.Checked
		}
	}
	prefix := cursor + " " + checkbox + " " + tui.PadToWidth(model.style.icon(entry), 5) + " "

	nameWidth := max(model.width-fixedColumns, 1)
	name := tui.PadToWidth(tui.TruncateToWidth(entry.Name, nameWidth), nameWidth)

	size := ""
	if entry.Kind == KindFile {
		size = tui.FormatSize(entry.Size)
	}
	size = fmt.Sprintf("%10s", size)

	if isCursor {
		return tui.FitToWidth(model.style.Cursor.Render(prefix+name+size), model.width)
	}
	return tui.FitToWidth(prefix+model.style.nameStyle(entry).Render(name)+model.style.Size.Render(size), model.width)
}
