// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logviewer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/tuikit/lib/clock"
	"github.com/bureau-foundation/tuikit/lib/logsource"
	"github.com/bureau-foundation/tuikit/lib/tui"
	"github.com/bureau-foundation/tuikit/lib/viewport"
)

// DefaultLineNumberWidth is the gutter width for line numbers.
const DefaultLineNumberWidth = 6

// Model is the log viewer sub-model.
type Model struct {
	lines     []string
	widest    int
	pager     viewport.Pager
	scrollX   viewport.Horizontal
	search    tui.SearchState
	following bool

	heat        *tui.HeatTracker
	heatTicking bool
	clock       clock.Clock

	title           string
	showLineNumbers bool
	lineNumberWidth int
	notice          string

	keys  KeyMap
	style Style
	theme tui.Theme

	width          int
	height         int
	focused        bool
	draggingScroll bool
}

// New creates a log viewer over lines.
func New(lines []string) Model {
	model := Model{
		scrollX:         viewport.NewHorizontal(viewport.DefaultHorizontalStep),
		search:          tui.SearchState{Input: tui.SearchInput{Prompt: "Search: "}},
		heat:            tui.NewHeatTracker(),
		clock:           clock.Real(),
		showLineNumbers: true,
		lineNumberWidth: DefaultLineNumberWidth,
		keys:            DefaultKeyMap,
	}
	model.SetTheme(tui.DefaultTheme)
	model.SetContent(lines)
	return model
}

// SetTheme replaces the palette and rebuilds the style.
func (model *Model) SetTheme(theme tui.Theme) {
	model.theme = theme
	model.style = DefaultStyle(theme)
}

// SetClock replaces the time source used for heat decay.
func (model *Model) SetClock(source clock.Clock) {
	model.clock = source
}

// SetTitle sets a header line above the content. Empty hides it.
func (model *Model) SetTitle(title string) {
	model.title = title
	model.layout()
}

// SetLineNumbers shows or hides the line number gutter. A width of
// zero or less keeps the current width.
func (model *Model) SetLineNumbers(show bool, width int) {
	model.showLineNumbers = show
	if width > 0 {
		model.lineNumberWidth = width
	}
	model.layout()
}

// SetHorizontalStep sets how many columns left/right scroll.
func (model *Model) SetHorizontalStep(step int) {
	if step > 0 {
		model.scrollX.Step = step
	}
}

// SetFollow turns follow mode on or off. Turning it on jumps to the
// bottom.
func (model *Model) SetFollow(follow bool) {
	model.following = follow
	if follow {
		model.pager.Bottom()
	}
}

// Following reports whether the view is pinned to the newest line.
func (model Model) Following() bool {
	return model.following
}

// SetKeyMap replaces the key bindings.
func (model *Model) SetKeyMap(keys KeyMap) {
	model.keys = keys
}

// KeyMap returns the active key bindings.
func (model Model) KeyMap() KeyMap {
	return model.keys
}

// SetSize sets the rendered width and height.
func (model *Model) SetSize(width, height int) {
	model.width = width
	model.height = height
	model.layout()
}

// Focus enables keyboard handling.
func (model *Model) Focus() { model.focused = true }

// Blur disables keyboard handling.
func (model *Model) Blur() { model.focused = false }

// Lines returns the content.
func (model Model) Lines() []string {
	return model.lines
}

// Pager returns the vertical scroll state.
func (model Model) Pager() viewport.Pager {
	return model.pager
}

// ScrollX returns the horizontal scroll offset.
func (model Model) ScrollX() int {
	return model.scrollX.Offset
}

// SetContent replaces every line, scrolls to the top, and clears the
// search and any heat.
func (model *Model) SetContent(lines []string) {
	model.lines = make([]string, 0, len(lines))
	model.widest = 0
	for _, line := range lines {
		model.push(line)
	}
	model.pager.Offset = 0
	model.pager.SetTotal(len(model.lines))
	model.scrollX.Reset()
	model.search.Reset()
	model.heat.Reset()
	model.layout()
	if model.following {
		model.pager.Bottom()
	}
}

// Append adds lines at the end. In follow mode the view moves to the
// bottom. The returned command drives the heat glow on the new lines.
func (model *Model) Append(lines ...string) tea.Cmd {
	if len(lines) == 0 {
		return nil
	}
	now := model.clock.Now()
	for _, line := range lines {
		model.heat.Ignite(strconv.Itoa(len(model.lines)), tui.HeatPut, now)
		model.push(line)
	}
	model.pager.SetTotal(len(model.lines))
	model.boundHorizontal()
	if model.search.Input.Value() != "" {
		model.refreshMatches(false)
	}
	if model.following {
		model.pager.Bottom()
	}
	return model.startHeatTick()
}

func (model *Model) push(line string) {
	line = tui.CleanForDisplay(line)
	model.lines = append(model.lines, line)
	model.widest = max(model.widest, ansi.StringWidth(line))
}

func (model *Model) startHeatTick() tea.Cmd {
	if model.heatTicking {
		return nil
	}
	model.heatTicking = true
	return tui.ScheduleHeatTick(model.clock)
}

// GoToLine places a 0-based line at the top of the view.
func (model *Model) GoToLine(line int) {
	model.following = false
	model.pager.GoTo(line)
}

// Search replaces the query, jumping to the first matching line.
func (model *Model) Search(query string) {
	model.search.Input.SetValue(query)
	model.refreshMatches(true)
}

// Searching reports whether the search input has keyboard focus.
func (model Model) Searching() bool { return model.search.Input.Active }

// MatchCount returns the number of matching lines.
func (model Model) MatchCount() int {
	return model.search.MatchCount()
}

// CurrentMatch returns the line of the current match.
func (model Model) CurrentMatch() (line int, ok bool) {
	match, ok := model.search.Current()
	return match.Line, ok
}

// NextMatch moves to the following matching line, wrapping.
func (model *Model) NextMatch() {
	if match, ok := model.search.Next(); ok {
		model.jumpTo(match)
	}
}

// PrevMatch moves to the preceding matching line, wrapping.
func (model *Model) PrevMatch() {
	if match, ok := model.search.Prev(); ok {
		model.jumpTo(match)
	}
}

// refreshMatches recomputes the matching lines for the current query.
// Each line counts once, at its first occurrence. With jump the view
// moves to the first match; otherwise the current match is kept when
// it still exists.
func (model *Model) refreshMatches(jump bool) {
	previous, hadPrevious := model.search.Current()

	var matches []tui.TextMatch
	lastLine := -1
	for _, match := range tui.FindMatches(model.lines, model.search.Input.Value()) {
		if match.Line != lastLine {
			matches = append(matches, match)
			lastLine = match.Line
		}
	}
	model.search.SetMatches(matches)

	if jump {
		if first, ok := model.search.Current(); ok {
			model.jumpTo(first)
		}
		return
	}
	if hadPrevious {
		for index, match := range matches {
			if match == previous {
				model.search.Select(index)
				break
			}
		}
	}
}

// jumpTo puts a match's line at the top of the view and scrolls
// horizontally when its column is off screen.
func (model *Model) jumpTo(match tui.TextMatch) {
	model.following = false
	model.pager.GoTo(match.Line)
	visible := model.textWidth()
	if visible <= 0 {
		return
	}
	if match.Column < model.scrollX.Offset || match.Column >= model.scrollX.Offset+visible {
		model.scrollX.Offset = max(match.Column-visible/2, 0)
		model.boundHorizontal()
	}
}

// contentHeight is the number of rows left for lines after the title,
// search bar, and status bar.
func (model Model) contentHeight() int {
	height := model.height - 1
	if model.title != "" {
		height--
	}
	if model.search.Input.Active {
		height--
	}
	return max(height, 0)
}

func (model Model) scrollbarVisible() bool {
	return model.width > 1 && model.pager.Total > model.pager.Height
}

func (model Model) gutterWidth() int {
	if !model.showLineNumbers {
		return 0
	}
	return model.lineNumberWidth + 1
}

// textWidth is the number of columns available to line content.
func (model Model) textWidth() int {
	width := model.width - model.gutterWidth()
	if model.scrollbarVisible() {
		width--
	}
	return max(width, 0)
}

func (model *Model) layout() {
	model.pager.Height = model.contentHeight()
	model.pager.SetTotal(len(model.lines))
	if model.following {
		model.pager.Bottom()
	}
	model.boundHorizontal()
}

func (model *Model) boundHorizontal() {
	model.scrollX.Bound(model.widest, model.textWidth())
}

// Update handles keys, mouse, content batches, log records, heat
// ticks, and clipboard results.
func (model Model) Update(message tea.Msg) (Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if !model.focused {
			return model, nil
		}
		if model.search.Input.Active {
			model.handleSearchKey(message)
			return model, nil
		}
		return model, model.handleKey(message)

	case tea.MouseMsg:
		model.handleMouse(message)

	case logsource.LinesMsg:
		if message.Err != nil {
			model.notice = message.Err.Error()
			return model, nil
		}
		if message.Reset {
			model.SetContent(message.Lines)
			return model, nil
		}
		return model, model.Append(message.Lines...)

	case tui.LogRecordMsg:
		return model, model.Append(message.Line())

	case tui.HeatTickMsg:
		if model.heat.HasHot(model.clock.Now()) {
			return model, tui.ScheduleHeatTick(model.clock)
		}
		model.heatTicking = false

	case tui.ClipboardMsg:
		if message.Err != nil {
			model.notice = "copy failed: " + message.Err.Error()
		} else {
			model.notice = fmt.Sprintf("copied %d bytes (%s)", message.Bytes, message.Method)
		}
		return model, tui.ScheduleClipboardFade(model.clock)

	case tui.ClipboardFadeMsg:
		model.notice = ""
	}
	return model, nil
}

func (model *Model) handleKey(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Up):
		model.following = false
		model.pager.LineUp()
	case key.Matches(message, model.keys.Down):
		model.pager.LineDown()
	case key.Matches(message, model.keys.Left):
		model.scrollX.Left()
	case key.Matches(message, model.keys.Right):
		model.scrollX.Right()
	case key.Matches(message, model.keys.PageUp):
		model.following = false
		model.pager.PageUp()
	case key.Matches(message, model.keys.PageDown):
		model.pager.PageDown()
	case key.Matches(message, model.keys.Top):
		model.following = false
		model.pager.Top()
	case key.Matches(message, model.keys.Bottom):
		model.pager.Bottom()
	case key.Matches(message, model.keys.Search):
		model.search.Reset()
		model.search.Input.Active = true
		model.layout()
	case key.Matches(message, model.keys.SearchNext):
		model.NextMatch()
	case key.Matches(message, model.keys.SearchPrevious):
		model.PrevMatch()
	case key.Matches(message, model.keys.SearchClear):
		model.search.Reset()
	case key.Matches(message, model.keys.Follow):
		model.SetFollow(!model.following)
	case key.Matches(message, model.keys.Copy):
		return tui.CopyToClipboard(model.visibleText())
	}
	return nil
}

// handleSearchKey edits the query with live matching. Enter keeps the
// matches and returns to scrolling; esc also leaves the input but
// keeps the query so n/N still work.
func (model *Model) handleSearchKey(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyEnter, tea.KeyEsc:
		model.search.Input.Active = false
		model.layout()
	case tea.KeyBackspace:
		if model.search.Input.HandleBackspace() {
			model.refreshMatches(true)
		}
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			model.search.Input.HandleRune(character)
		}
		model.refreshMatches(true)
	}
}

func (model *Model) handleMouse(message tea.MouseMsg) {
	top := 0
	if model.title != "" {
		top = 1
	}
	if model.draggingScroll {
		switch message.Action {
		case tea.MouseActionRelease:
			model.draggingScroll = false
		case tea.MouseActionMotion:
			model.pager.ScrollTo(message.Y-top, model.pager.Height)
		}
		return
	}

	switch message.Button {
	case tea.MouseButtonWheelUp:
		model.following = false
		for range 3 {
			model.pager.LineUp()
		}
	case tea.MouseButtonWheelDown:
		for range 3 {
			model.pager.LineDown()
		}
	case tea.MouseButtonLeft:
		if message.Action != tea.MouseActionPress {
			return
		}
		y := message.Y - top
		if model.scrollbarVisible() && message.X == model.width-1 && y >= 0 && y < model.pager.Height {
			model.following = false
			model.draggingScroll = true
			model.pager.ScrollTo(y, model.pager.Height)
		}
	}
}

// visibleText is the plain text of the lines on screen.
func (model Model) visibleText() string {
	start, end := model.pager.Range()
	return strings.Join(model.lines[start:end], "\n")
}

// View renders the title, content with gutter and scrollbar, the
// search bar while typing, and the status bar.
func (model Model) View() string {
	if model.width <= 0 || model.height <= 0 {
		return ""
	}

	var sections []string
	if model.title != "" {
		sections = append(sections, tui.FitToWidth(model.style.Title.Render(" "+model.title), model.width))
	}

	content := model.renderContent()
	if model.scrollbarVisible() {
		content = tui.JoinScrollbar(content, model.theme, model.pager.Height,
			model.pager.Total, model.pager.Height, model.pager.Offset, model.focused)
	}
	if model.pager.Height > 0 {
		sections = append(sections, content)
	}

	if model.search.Input.Active {
		sections = append(sections, model.search.Input.View(model.theme, model.width))
	}
	sections = append(sections, model.renderStatus())
	return strings.Join(sections, "\n")
}

func (model Model) renderContent() string {
	textWidth := model.textWidth()
	rowWidth := textWidth + model.gutterWidth()
	now := model.clock.Now()
	query := model.search.Input.Value()
	current, hasCurrent := model.search.Current()

	matchLines := make(map[int]struct{}, model.search.MatchCount())
	for _, match := range model.search.Matches() {
		matchLines[match.Line] = struct{}{}
	}

	start, end := model.pager.Range()
	rows := make([]string, 0, model.pager.Height)
	for index := start; index < end; index++ {
		var builder strings.Builder
		if model.showLineNumbers {
			builder.WriteString(model.style.LineNumber.Render(
				fmt.Sprintf("%*d ", model.lineNumberWidth, index+1)))
		}

		visible := ansi.Cut(model.lines[index], model.scrollX.Offset, model.scrollX.Offset+textWidth)
		base := model.style.ForLine(model.lines[index])
		if _, isMatch := matchLines[index]; isMatch {
			currentColumn := -1
			if hasCurrent && current.Line == index {
				currentColumn = current.Column - model.scrollX.Offset
			}
			builder.WriteString(tui.HighlightText(visible, query, currentColumn,
				base, model.style.Match, model.style.CurrentMatch))
		} else {
			builder.WriteString(base.Render(visible))
		}

		row := tui.FitToWidth(builder.String(), rowWidth)
		if accent, hot := model.heat.Accent(model.theme, strconv.Itoa(index), now); hot {
			row = lipgloss.NewStyle().
				Background(accent).
				Width(rowWidth).
				MaxWidth(rowWidth).
				Render(row)
		}
		rows = append(rows, row)
	}

	blank := strings.Repeat(" ", rowWidth)
	for len(rows) < model.pager.Height {
		rows = append(rows, blank)
	}
	return strings.Join(rows, "\n")
}

// StatusText returns the position summary shown in the status bar:
//
//	Line 12/340 (3%) | Col: 9 | Match 2/5
func (model Model) StatusText() string {
	line := 0
	if model.pager.Total > 0 {
		line = model.pager.Offset + 1
	}
	var builder strings.Builder
	fmt.Fprintf(&builder, "Line %d/%d (%d%%)", line, model.pager.Total, model.pager.Percent())
	if model.scrollX.Offset > 0 {
		fmt.Fprintf(&builder, " | Col: %d", model.scrollX.Offset+1)
	}
	if count := model.search.MatchCount(); count > 0 {
		fmt.Fprintf(&builder, " | Match %d/%d", model.search.CurrentIndex()+1, count)
	} else if model.search.Input.Value() != "" {
		builder.WriteString(" | No matches")
	}
	if model.following {
		builder.WriteString(" | FOLLOW")
	}
	return builder.String()
}

func (model Model) renderStatus() string {
	var builder strings.Builder
	builder.WriteString(model.style.StatusBar.Render(" " + model.StatusText()))
	if model.notice != "" {
		builder.WriteString(model.style.StatusBar.Render(" | " + model.notice))
	}
	for _, binding := range model.keys.ShortHelp() {
		help := binding.Help()
		builder.WriteString(model.style.StatusBar.Render(" | "))
		builder.WriteString(model.style.StatusKey.Render(help.Key))
		builder.WriteString(model.style.StatusBar.Render(": " + help.Desc))
	}
	line := tui.FitToWidth(builder.String(), model.width)
	return model.style.StatusBar.Width(model.width).MaxWidth(model.width).Render(line)
}
