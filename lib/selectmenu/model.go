// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package selectmenu

import (
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/tuikit/lib/clock"
	"github.com/bureau-foundation/tuikit/lib/tui"
)

// FieldHeight is the rendered height of the closed field.
const FieldHeight = 3

// TypeAheadTimeout is how long typed letters accumulate into one
// prefix before the next letter starts a new search.
const TypeAheadTimeout = time.Second

// DefaultPlaceholder is shown while nothing is selected.
const DefaultPlaceholder = "Please select an option"

// ChangedMsg is emitted when a choice is committed. Index is -1 when
// the selection was cleared.
type ChangedMsg struct {
	Index  int
	Option tui.DropdownOption
}

// Model is the select box sub-model.
type Model struct {
	dropdown   tui.DropdownOverlay
	maxVisible int
	open       bool
	enabled    bool

	label       string
	placeholder string

	typed   string
	typedAt time.Time
	clock   clock.Clock

	keys  KeyMap
	style Style
	theme tui.Theme

	width   int
	focused bool
}

// New creates a closed, enabled select box with nothing selected.
func New(options []tui.DropdownOption) Model {
	model := Model{
		dropdown:    tui.NewDropdownOverlay(options, -1, tui.DefaultDropdownHeight),
		maxVisible:  tui.DefaultDropdownHeight,
		enabled:     true,
		placeholder: DefaultPlaceholder,
		clock:       clock.Real(),
		keys:        DefaultKeyMap,
	}
	model.dropdown.AnchorY = FieldHeight
	model.SetTheme(tui.DefaultTheme)
	return model
}

// SetTheme replaces the palette and rebuilds the default style.
func (model *Model) SetTheme(theme tui.Theme) {
	model.theme = theme
	model.style = DefaultStyle(theme)
}

// SetStyle replaces the field style.
func (model *Model) SetStyle(style Style) { model.style = style }

// SetKeyMap replaces the key bindings.
func (model *Model) SetKeyMap(keys KeyMap) { model.keys = keys }

// KeyMap returns the active key bindings.
func (model Model) KeyMap() KeyMap { return model.keys }

// SetClock replaces the time source used for type-ahead.
func (model *Model) SetClock(source clock.Clock) { model.clock = source }

// SetLabel sets the title drawn in the field's top border.
func (model *Model) SetLabel(label string) { model.label = label }

// SetPlaceholder sets the text shown while nothing is selected.
func (model *Model) SetPlaceholder(placeholder string) { model.placeholder = placeholder }

// SetWidth sets the field width. The height is always [FieldHeight].
func (model *Model) SetWidth(width int) { model.width = width }

// Focus enables keyboard handling.
func (model *Model) Focus() { model.focused = true }

// Blur disables keyboard handling and closes the dropdown.
func (model *Model) Blur() {
	model.focused = false
	model.open = false
}

// Focused reports whether the field has keyboard focus.
func (model Model) Focused() bool { return model.focused }

// SetEnabled enables or disables the field. A disabled field ignores
// input and cannot open.
func (model *Model) SetEnabled(enabled bool) {
	model.enabled = enabled
	if !enabled {
		model.open = false
	}
}

// Enabled reports whether the field accepts input.
func (model Model) Enabled() bool { return model.enabled }

// SetMaxVisible sets how many options show before the dropdown
// scrolls. Values below one fall back to the default.
func (model *Model) SetMaxVisible(maxVisible int) {
	if maxVisible <= 0 {
		maxVisible = tui.DefaultDropdownHeight
	}
	model.maxVisible = maxVisible
	model.dropdown.Window.SetHeight(min(len(model.dropdown.Options), maxVisible))
}

// Options returns the option list.
func (model Model) Options() []tui.DropdownOption { return model.dropdown.Options }

// SetOptions replaces the options. A selection past the end moves to
// the last option, or to none when the list is empty; the highlight is
// clamped the same way.
func (model *Model) SetOptions(options []tui.DropdownOption) {
	model.dropdown.Options = options
	if model.dropdown.Selected >= len(options) {
		model.dropdown.Selected = len(options) - 1
	}
	model.dropdown.Window.SetTotal(len(options))
	model.dropdown.Window.SetHeight(min(len(options), model.maxVisible))
}

// Selected returns the committed index, or -1.
func (model Model) Selected() int { return model.dropdown.Selected }

// SelectedOption returns the committed option.
func (model Model) SelectedOption() (tui.DropdownOption, bool) {
	if model.dropdown.Selected < 0 {
		return tui.DropdownOption{}, false
	}
	return model.dropdown.Options[model.dropdown.Selected], true
}

// Highlighted returns the index under the dropdown highlight.
func (model Model) Highlighted() int { return model.dropdown.Highlighted() }

// IsOpen reports whether the dropdown is showing.
func (model Model) IsOpen() bool { return model.open }

// Open shows the dropdown with the highlight on the committed choice.
// Does nothing when disabled.
func (model *Model) Open() {
	if !model.enabled {
		return
	}
	model.open = true
	model.typed = ""
	if model.dropdown.Selected >= 0 {
		model.dropdown.Window.Select(model.dropdown.Selected)
	}
}

// Close hides the dropdown without changing the selection.
func (model *Model) Close() { model.open = false }

// Toggle opens a closed dropdown and closes an open one.
func (model *Model) Toggle() {
	if model.open {
		model.Close()
		return
	}
	model.Open()
}

// HighlightNext moves the highlight down, stopping at the last option.
func (model *Model) HighlightNext() { model.dropdown.MoveDown() }

// HighlightPrev moves the highlight up, stopping at the first option.
func (model *Model) HighlightPrev() { model.dropdown.MoveUp() }

// HighlightFirst moves the highlight to the first option.
func (model *Model) HighlightFirst() { model.dropdown.Window.First() }

// HighlightLast moves the highlight to the last option.
func (model *Model) HighlightLast() { model.dropdown.Window.Last() }

// SelectHighlighted commits the highlighted option and closes. Returns
// false, still closing, when there are no options.
func (model *Model) SelectHighlighted() bool {
	model.open = false
	if model.dropdown.Window.Empty() {
		return false
	}
	model.dropdown.Selected = model.dropdown.Highlighted()
	return true
}

// Select commits index and closes. An index out of range changes
// nothing and returns false.
func (model *Model) Select(index int) bool {
	if index < 0 || index >= len(model.dropdown.Options) {
		return false
	}
	model.dropdown.Selected = index
	model.dropdown.Window.Select(index)
	model.open = false
	return true
}

// ClearSelection removes the committed choice.
func (model *Model) ClearSelection() { model.dropdown.Selected = -1 }

func (model Model) changed() tea.Cmd {
	message := ChangedMsg{Index: -1}
	if option, ok := model.SelectedOption(); ok {
		message = ChangedMsg{Index: model.dropdown.Selected, Option: option}
	}
	return func() tea.Msg { return message }
}

// Update handles key and mouse input.
func (model Model) Update(message tea.Msg) (Model, tea.Cmd) {
	if !model.enabled {
		return model, nil
	}
	switch message := message.(type) {
	case tea.KeyMsg:
		if !model.focused {
			return model, nil
		}
		if model.open {
			return model, model.handleOpenKey(message)
		}
		return model, model.handleClosedKey(message)

	case tea.MouseMsg:
		return model, model.handleMouse(message)
	}
	return model, nil
}

func (model *Model) handleClosedKey(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Open):
		model.Open()
	case key.Matches(message, model.keys.Clear):
		if model.dropdown.Selected >= 0 {
			model.ClearSelection()
			return model.changed()
		}
	}
	return nil
}

func (model *Model) handleOpenKey(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Close):
		model.Close()
	case key.Matches(message, model.keys.Choose):
		if model.SelectHighlighted() {
			return model.changed()
		}
	case key.Matches(message, model.keys.Up):
		model.HighlightPrev()
	case key.Matches(message, model.keys.Down):
		model.HighlightNext()
	case key.Matches(message, model.keys.PageUp):
		model.dropdown.Window.PageUp()
	case key.Matches(message, model.keys.PageDown):
		model.dropdown.Window.PageDown()
	case key.Matches(message, model.keys.Home):
		model.HighlightFirst()
	case key.Matches(message, model.keys.End):
		model.HighlightLast()
	case message.Type == tea.KeyRunes:
		for _, character := range message.Runes {
			model.typeAhead(character)
		}
	}
	return nil
}

// typeAhead extends the typed prefix and highlights the next option
// whose label starts with it. A single letter searches after the
// highlight so repeated presses cycle through options sharing an
// initial; a longer prefix may stay on the current option. When the
// prefix matches nothing it restarts from the new letter alone.
func (model *Model) typeAhead(character rune) {
	if !unicode.IsPrint(character) {
		return
	}
	now := model.clock.Now()
	if now.Sub(model.typedAt) > TypeAheadTimeout {
		model.typed = ""
	}
	model.typedAt = now
	model.typed += string(unicode.ToLower(character))

	if model.highlightPrefix(model.typed) || len([]rune(model.typed)) == 1 {
		return
	}
	model.typed = string(unicode.ToLower(character))
	model.highlightPrefix(model.typed)
}

func (model *Model) highlightPrefix(prefix string) bool {
	options := model.dropdown.Options
	if len(options) == 0 {
		return false
	}
	start := model.dropdown.Highlighted()
	if len([]rune(prefix)) == 1 {
		start++
	}
	for offset := range len(options) {
		index := (start + offset) % len(options)
		label := strings.ToLower(tui.StripANSI(options[index].Label))
		if strings.HasPrefix(label, prefix) {
			model.dropdown.Window.Select(index)
			return true
		}
	}
	return false
}

// fieldRect is the closed field in widget coordinates.
func (model Model) fieldRect() tui.Rect {
	return tui.Rect{Width: model.width, Height: FieldHeight}
}

// handleMouse toggles on a field click, commits on an option click,
// and closes on a click anywhere else while open.
func (model *Model) handleMouse(message tea.MouseMsg) tea.Cmd {
	switch message.Button {
	case tea.MouseButtonWheelUp:
		if model.open {
			model.HighlightPrev()
		}
	case tea.MouseButtonWheelDown:
		if model.open {
			model.HighlightNext()
		}
	case tea.MouseButtonLeft:
		if message.Action != tea.MouseActionPress {
			return nil
		}
		if !model.open {
			if model.fieldRect().Contains(message.X, message.Y) {
				model.Open()
			}
			return nil
		}
		if index, ok := model.dropdown.OptionAt(message.X, message.Y); ok {
			model.Select(index)
			return model.changed()
		}
		model.Close()
	}
	return nil
}

// View renders the closed field. The dropdown is drawn by [Model.Overlay].
func (model Model) View() string {
	if model.width < 4 {
		return ""
	}
	borderColor := model.style.UnfocusedBorder
	switch {
	case !model.enabled:
		borderColor = model.style.DisabledBorder
	case model.focused:
		borderColor = model.style.FocusedBorder
	}
	border := lipgloss.NewStyle().Foreground(borderColor)
	innerWidth := model.width - 2

	title := ""
	if model.label != "" {
		title = " " + model.style.Label.Render(model.label) + " "
		if tui.DisplayWidth(title) > innerWidth-1 {
			title = ansi.Truncate(title, innerWidth-1, "")
		}
	}
	rule := strings.Repeat("─", max(innerWidth-1-tui.DisplayWidth(title), 0))
	top := border.Render("╭─") + title + border.Render(rule+"╮")

	text := model.style.Placeholder.Render(model.placeholder)
	if option, ok := model.SelectedOption(); ok {
		text = model.style.Text.Render(option.Label)
	}
	indicator := " " + model.style.Indicator + " "
	text = tui.FitToWidth(" "+text, innerWidth-tui.DisplayWidth(indicator))

	lines := []string{
		top,
		border.Render("│") + text + border.Render(indicator) + border.Render("│"),
		border.Render("╰" + strings.Repeat("─", innerWidth) + "╯"),
	}
	return strings.Join(lines, "\n")
}

// Overlay draws the open dropdown onto view, where the field's
// top-left corner sits at (originX, originY) in view. Returns view
// unchanged while closed.
func (model Model) Overlay(view string, originX, originY int) string {
	if !model.open || len(model.dropdown.Options) == 0 {
		return view
	}
	return tui.SpliceOverlay(view, model.dropdown.Render(model.theme),
		originX+model.dropdown.AnchorX, originY+model.dropdown.AnchorY)
}
