// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package listpicker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/tuikit/lib/tui"
	"github.com/bureau-foundation/tuikit/lib/viewport"
)

// RenderFunc produces the text of one row. index is the item's
// position in the unfiltered list.
type RenderFunc[T any] func(item T, index int, selected bool) string

// PickedMsg is emitted when the user confirms the item under the
// cursor.
type PickedMsg[T any] struct {
	Index int
	Item  T
}

// Model is the list picker sub-model.
type Model[T any] struct {
	items   []T
	visible []tui.Ranked[T]
	window  viewport.Window

	render    RenderFunc[T]
	filterKey func(T) string
	filter    tui.SearchInput
	slab      *util.Slab

	title    string
	showHelp bool
	help     help.Model
	keys     KeyMap
	style    Style
	theme    tui.Theme

	width   int
	height  int
	focused bool
}

// New creates a picker over items. The filter matches against the
// rendered row text unless [Model.SetFilterKey] says otherwise. A nil
// render formats items with fmt's %v verb.
func New[T any](items []T, render RenderFunc[T]) Model[T] {
	if render == nil {
		render = func(item T, _ int, _ bool) string { return fmt.Sprint(item) }
	}
	model := Model[T]{
		items:    items,
		render:   render,
		filter:   tui.SearchInput{Prompt: "/"},
		slab:     tui.NewFuzzySlab(),
		showHelp: true,
		help:     help.New(),
		keys:     DefaultKeyMap,
	}
	model.SetTheme(tui.DefaultTheme)
	model.refilter()
	return model
}

// SetTheme replaces the palette and rebuilds the default style.
func (model *Model[T]) SetTheme(theme tui.Theme) {
	model.theme = theme
	model.style = ArrowStyle(theme)
	model.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.LevelSuccess)
	model.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.HelpText)
	model.help.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.BorderColor)
}

// SetStyle replaces the row style.
func (model *Model[T]) SetStyle(style Style) {
	model.style = style
	model.layout()
}

// SetTitle sets the header line. An empty title hides the header.
func (model *Model[T]) SetTitle(title string) {
	model.title = title
	model.layout()
}

// SetShowHelp toggles the key-hint footer.
func (model *Model[T]) SetShowHelp(show bool) {
	model.showHelp = show
	model.layout()
}

// SetFilterKey sets the text the filter matches against.
func (model *Model[T]) SetFilterKey(filterKey func(T) string) {
	model.filterKey = filterKey
	model.refilter()
}

// SetKeyMap replaces the key bindings.
func (model *Model[T]) SetKeyMap(keys KeyMap) {
	model.keys = keys
}

// KeyMap returns the active key bindings.
func (model Model[T]) KeyMap() KeyMap {
	return model.keys
}

// SetSize sets the rendered width and height.
func (model *Model[T]) SetSize(width, height int) {
	model.width = width
	model.height = height
	model.help.Width = width
	model.layout()
}

// Focus enables keyboard handling.
func (model *Model[T]) Focus() { model.focused = true }

// Blur disables keyboard handling.
func (model *Model[T]) Blur() { model.focused = false }

// Items returns the unfiltered items.
func (model Model[T]) Items() []T {
	return model.items
}

// SetItems replaces the items, re-applies the filter, and clamps the
// cursor to the new visible count.
func (model *Model[T]) SetItems(items []T) {
	model.items = items
	model.refilter()
}

// Visible returns the rows currently shown, in display order.
func (model Model[T]) Visible() []tui.Ranked[T] {
	return model.visible
}

// Window returns the cursor and scroll state.
func (model Model[T]) Window() viewport.Window {
	return model.window
}

// Select moves the cursor to a visible row.
func (model *Model[T]) Select(index int) bool {
	return model.window.Select(index)
}

// Selected returns the item under the cursor and its index in the
// unfiltered list.
func (model Model[T]) Selected() (item T, index int, ok bool) {
	if model.window.Empty() {
		return item, -1, false
	}
	ranked := model.visible[model.window.Cursor]
	return ranked.Item, ranked.Index, true
}

// Filter returns the current filter query.
func (model Model[T]) Filter() string {
	return model.filter.Value()
}

// SetFilter replaces the filter query.
func (model *Model[T]) SetFilter(query string) {
	model.filter.SetValue(query)
	model.refilter()
	model.layout()
}

// Filtering reports whether the filter input has keyboard focus.
func (model Model[T]) Filtering() bool {
	return model.filter.Active
}

func (model *Model[T]) keyOf(item T, index int) string {
	if model.filterKey != nil {
		return model.filterKey(item)
	}
	return tui.StripANSI(model.render(item, index, false))
}

// refilter ranks the items against the filter and resizes the window
// over the result. The cursor is clamped, not moved to the top, so
// SetItems on an unfiltered list keeps the position.
func (model *Model[T]) refilter() {
	query := model.filter.Value()
	model.visible = make([]tui.Ranked[T], 0, len(model.items))
	if query == "" {
		for index, item := range model.items {
			model.visible = append(model.visible, tui.Ranked[T]{Item: item, Index: index})
		}
	} else {
		indexed := make([]int, len(model.items))
		for index := range indexed {
			indexed[index] = index
		}
		ranked := tui.RankFuzzy(indexed, query, func(index int) string {
			return model.keyOf(model.items[index], index)
		}, model.slab)
		for _, entry := range ranked {
			model.visible = append(model.visible, tui.Ranked[T]{
				Item:  model.items[entry.Item],
				Index: entry.Item,
				Match: entry.Match,
			})
		}
	}
	model.window.SetTotal(len(model.visible))
}

// headerLines is the number of rows above the list: the title plus a
// blank separator, and the filter bar when it is shown.
func (model Model[T]) headerLines() int {
	lines := 0
	if model.title != "" {
		lines += 2
	}
	if model.filter.Active || model.filter.Value() != "" {
		lines++
	}
	return lines
}

// footerLines is the blank separator plus the key-hint line.
func (model Model[T]) footerLines() int {
	if model.showHelp {
		return 2
	}
	return 0
}

// inner returns the content size inside the optional border.
func (model Model[T]) inner() (width, height int) {
	if model.style.Bordered {
		return max(model.width-2, 0), max(model.height-2, 0)
	}
	return model.width, model.height
}

// layout sizes the window to the rows left between header and footer.
func (model *Model[T]) layout() {
	_, height := model.inner()
	model.window.SetHeight(max(height-model.headerLines()-model.footerLines(), 0))
}

// Update handles key and mouse input.
func (model Model[T]) Update(message tea.Msg) (Model[T], tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if !model.focused {
			return model, nil
		}
		if model.filter.Active {
			model.handleFilterKey(message)
			return model, nil
		}
		return model, model.handleKey(message)

	case tea.MouseMsg:
		return model, model.handleMouse(message)
	}
	return model, nil
}

func (model *Model[T]) handleKey(message tea.KeyMsg) tea.Cmd {
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
	case key.Matches(message, model.keys.Pick):
		return model.pick()
	case key.Matches(message, model.keys.FilterActivate):
		model.filter.Active = true
		model.layout()
	case key.Matches(message, model.keys.FilterClear):
		if model.filter.Value() != "" {
			model.filter.Clear()
			model.refilter()
			model.layout()
		}
	}
	return nil
}

// handleFilterKey edits the filter query. Every edit re-ranks and
// moves the cursor to the best match; enter keeps the query and
// returns to navigation, esc discards it.
func (model *Model[T]) handleFilterKey(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyEsc:
		model.filter.Clear()
	case tea.KeyEnter:
		model.filter.Active = false
	case tea.KeyBackspace:
		if !model.filter.HandleBackspace() {
			return
		}
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			model.filter.HandleRune(character)
		}
	default:
		return
	}
	model.refilter()
	model.window.First()
	model.layout()
}

func (model *Model[T]) pick() tea.Cmd {
	item, index, ok := model.Selected()
	if !ok {
		return nil
	}
	return func() tea.Msg { return PickedMsg[T]{Index: index, Item: item} }
}

// handleMouse moves the cursor on the wheel and selects on click.
// Clicking the row already under the cursor picks it.
func (model *Model[T]) handleMouse(message tea.MouseMsg) tea.Cmd {
	switch message.Button {
	case tea.MouseButtonWheelUp:
		model.window.Prev()
	case tea.MouseButtonWheelDown:
		model.window.Next()
	case tea.MouseButtonLeft:
		if message.Action != tea.MouseActionPress {
			return nil
		}
		top := model.headerLines()
		if model.style.Bordered {
			top++
		}
		index, ok := model.window.RowAt(message.Y - top)
		if !ok {
			return nil
		}
		if index == model.window.Cursor {
			return model.pick()
		}
		model.window.Select(index)
	}
	return nil
}

// View renders title, filter bar, rows, and footer.
func (model Model[T]) View() string {
	innerWidth, innerHeight := model.inner()
	if innerWidth <= 0 || innerHeight <= 0 {
		return ""
	}
	blank := strings.Repeat(" ", innerWidth)

	var lines []string
	if model.title != "" {
		lines = append(lines, tui.FitToWidth(model.style.Title.Render(model.title), innerWidth), blank)
	}
	if bar := model.filter.View(model.theme, innerWidth); bar != "" {
		lines = append(lines, bar)
	}

	var body []string
	if len(model.visible) == 0 {
		placeholder := "No items"
		if model.filter.Value() != "" {
			placeholder = "No matches"
		}
		body = append(body, tui.FitToWidth(model.style.Empty.Render(placeholder), innerWidth))
	} else {
		start, end := model.window.Range()
		for index := start; index < end; index++ {
			body = append(body, tui.FitToWidth(model.renderRow(index), innerWidth))
		}
	}
	for len(body) < model.window.Height {
		body = append(body, blank)
	}
	lines = append(lines, body[:min(len(body), model.window.Height)]...)

	if model.showHelp {
		lines = append(lines, blank,
			tui.FitToWidth(model.help.ShortHelpView(model.keys.ShortHelp()), innerWidth))
	}
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}

	content := strings.Join(lines, "\n")
	if !model.style.Bordered {
		return content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.style.Border.GetForeground()).
		Render(content)
}

func (model Model[T]) renderRow(index int) string {
	ranked := model.visible[index]
	selected := index == model.window.Cursor
	indicator := model.style.IndicatorOff
	textStyle := model.style.Normal
	if selected {
		indicator = model.style.IndicatorOn
		textStyle = model.style.Selected
	}
	text := model.render(ranked.Item, ranked.Index, selected)
	return model.style.Indicator.Render(indicator) + textStyle.Render(text)
}
