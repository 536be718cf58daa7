// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package diffview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/tuikit/lib/tui"
	"github.com/bureau-foundation/tuikit/lib/viewport"
)

// minNumberWidth is the narrowest line number column.
const minNumberWidth = 3

// Model is the diff viewer sub-model.
type Model struct {
	diff   Diff
	mode   Mode
	rows   []row
	widest int

	pager   viewport.Pager
	scrollX viewport.Horizontal
	search  tui.SearchState
	// rightMatches marks rows whose match is on the new (right) side.
	rightMatches map[int]bool

	highlight       *highlighter
	title           string
	showLineNumbers bool
	numberWidth     int

	keys  KeyMap
	style Style
	theme tui.Theme

	width          int
	height         int
	focused        bool
	draggingScroll bool
}

// New creates a diff viewer in unified mode.
func New(diff Diff) Model {
	model := Model{
		scrollX:         viewport.NewHorizontal(viewport.DefaultHorizontalStep),
		search:          tui.SearchState{Input: tui.SearchInput{Prompt: "Search: "}},
		showLineNumbers: true,
		keys:            DefaultKeyMap,
	}
	model.SetTheme(tui.DefaultTheme)
	model.SetDiff(diff)
	return model
}

// SetTheme replaces the palette and rebuilds the style.
func (model *Model) SetTheme(theme tui.Theme) {
	model.theme = theme
	model.SetStyle(DefaultStyle(theme))
}

// SetStyle replaces the colours, including the syntax theme.
func (model *Model) SetStyle(style Style) {
	model.style = style
	model.highlight = newHighlighter(model.diff.NewPath, style.SyntaxTheme)
}

// Style returns the current colours.
func (model Model) Style() Style { return model.style }

// SetKeyMap replaces the key bindings.
func (model *Model) SetKeyMap(keys KeyMap) {
	model.keys = keys
}

// KeyMap returns the active key bindings.
func (model Model) KeyMap() KeyMap {
	return model.keys
}

// SetTitle sets a header line above the diff. Empty hides it.
func (model *Model) SetTitle(title string) {
	model.title = title
	model.layout()
}

// SetLineNumbers shows or hides the old/new line number columns.
func (model *Model) SetLineNumbers(show bool) {
	model.showLineNumbers = show
	model.layout()
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

// Diff returns the displayed diff.
func (model Model) Diff() Diff {
	return model.diff
}

// Mode returns the active layout.
func (model Model) Mode() Mode {
	return model.mode
}

// Pager returns the vertical scroll state. Offset is the top row.
func (model Model) Pager() viewport.Pager {
	return model.pager
}

// ScrollX returns the horizontal scroll offset.
func (model Model) ScrollX() int {
	return model.scrollX.Offset
}

// RowCount returns the number of rows in the active layout.
func (model Model) RowCount() int {
	return len(model.rows)
}

// SetDiff replaces the diff, scrolls to the top, and clears the
// search.
func (model *Model) SetDiff(diff Diff) {
	model.diff = diff
	model.highlight = newHighlighter(diff.NewPath, model.style.SyntaxTheme)
	model.numberWidth = minNumberWidth
	model.widest = 0
	for _, hunk := range diff.Hunks {
		last := max(hunk.OldStart+hunk.OldCount, hunk.NewStart+hunk.NewCount)
		model.numberWidth = max(model.numberWidth, len(strconv.Itoa(last)))
		for _, line := range hunk.Lines {
			model.widest = max(model.widest, ansi.StringWidth(displayText(line.Content)))
		}
	}
	model.rows = buildRows(diff, model.mode)
	model.pager.Offset = 0
	model.scrollX.Reset()
	model.search.Reset()
	model.rightMatches = nil
	model.layout()
}

// SetMode switches the layout, keeping the top row's line in view.
func (model *Model) SetMode(mode Mode) {
	if mode == model.mode {
		return
	}
	hunk, line := -1, noLine
	if model.pager.Offset < len(model.rows) {
		top := model.rows[model.pager.Offset]
		hunk, line = top.hunk, top.firstLine()
	}

	model.mode = mode
	model.rows = buildRows(model.diff, mode)
	model.layout()
	if hunk >= 0 {
		model.pager.GoTo(model.rowOf(hunk, line))
	}
	if model.search.Input.Value() != "" {
		model.refreshMatches(false)
	}
}

// ToggleMode switches between unified and side-by-side.
func (model *Model) ToggleMode() {
	if model.mode == Unified {
		model.SetMode(SideBySide)
	} else {
		model.SetMode(Unified)
	}
}

// rowOf finds the row showing line of hunk; noLine finds the header.
func (model Model) rowOf(hunk, line int) int {
	for index, candidate := range model.rows {
		if candidate.hunk != hunk {
			continue
		}
		if line == noLine && candidate.header {
			return index
		}
		if !candidate.header && (candidate.left == line || candidate.right == line) {
			return index
		}
	}
	return 0
}

// CurrentHunk returns the index of the hunk containing the top row.
// ok is false for an empty diff.
func (model Model) CurrentHunk() (int, bool) {
	if len(model.rows) == 0 {
		return 0, false
	}
	return model.rows[viewport.Clamp(model.pager.Offset, len(model.rows))].hunk, true
}

// JumpToHunk puts the header of hunk index at the top. Out of range
// indexes are ignored.
func (model *Model) JumpToHunk(index int) {
	if index < 0 || index >= len(model.diff.Hunks) {
		return
	}
	model.pager.GoTo(model.rowOf(index, noLine))
}

// NextHunk moves to the following hunk header, staying on the last
// hunk.
func (model *Model) NextHunk() {
	current, ok := model.CurrentHunk()
	if !ok {
		return
	}
	if current+1 < len(model.diff.Hunks) {
		model.JumpToHunk(current + 1)
	}
}

// PrevHunk moves to the header of the hunk in view, or to the
// previous hunk when that header is already at the top. It stays on
// the first hunk.
func (model *Model) PrevHunk() {
	current, ok := model.CurrentHunk()
	if !ok {
		return
	}
	if model.rows[model.pager.Offset].header && current > 0 {
		current--
	}
	model.JumpToHunk(current)
}

// isChange reports whether a row shows an added or removed line.
func (model Model) isChange(r row) bool {
	if r.header {
		return false
	}
	lines := model.diff.Hunks[r.hunk].Lines
	return (r.left != noLine && lines[r.left].Kind != Context) ||
		(r.right != noLine && lines[r.right].Kind != Context)
}

// NextChange moves to the first changed row below the top row,
// wrapping to the first change.
func (model *Model) NextChange() {
	first := -1
	for index, candidate := range model.rows {
		if !model.isChange(candidate) {
			continue
		}
		if index > model.pager.Offset {
			model.pager.GoTo(index)
			return
		}
		if first < 0 {
			first = index
		}
	}
	if first >= 0 {
		model.pager.GoTo(first)
	}
}

// PrevChange moves to the last changed row above the top row,
// wrapping to the last change.
func (model *Model) PrevChange() {
	last := -1
	for index := len(model.rows) - 1; index >= 0; index-- {
		if !model.isChange(model.rows[index]) {
			continue
		}
		if index < model.pager.Offset {
			model.pager.GoTo(index)
			return
		}
		if last < 0 {
			last = index
		}
	}
	if last >= 0 {
		model.pager.GoTo(last)
	}
}

// Search replaces the query, jumping to the first matching row.
func (model *Model) Search(query string) {
	model.search.Input.SetValue(query)
	model.refreshMatches(true)
}

// Searching reports whether the search input has keyboard focus.
func (model Model) Searching() bool { return model.search.Input.Active }

// MatchCount returns the number of matching rows.
func (model Model) MatchCount() int {
	return model.search.MatchCount()
}

// CurrentMatch returns the row of the current match.
func (model Model) CurrentMatch() (row int, ok bool) {
	match, ok := model.search.Current()
	return match.Line, ok
}

// NextMatch moves to the following matching row, wrapping.
func (model *Model) NextMatch() {
	if match, ok := model.search.Next(); ok {
		model.jumpTo(match)
	}
}

// PrevMatch moves to the preceding matching row, wrapping.
func (model *Model) PrevMatch() {
	if match, ok := model.search.Prev(); ok {
		model.jumpTo(match)
	}
}

// sideTexts returns the searchable text of a row's left and right
// sides. Headers and unified rows only have a left side.
func (model Model) sideTexts(r row) (left, right string) {
	hunk := model.diff.Hunks[r.hunk]
	if r.header {
		return hunk.Header, ""
	}
	if r.left != noLine {
		left = displayText(hunk.Lines[r.left].Content)
	}
	if model.mode == SideBySide && r.right != noLine && r.right != r.left {
		right = displayText(hunk.Lines[r.right].Content)
	}
	return left, right
}

// refreshMatches finds the rows containing the query, counting each
// row once at its first occurrence (left side first). With jump the
// view moves to the first match; otherwise the current match is kept
// when it still exists.
func (model *Model) refreshMatches(jump bool) {
	previous, hadPrevious := model.search.Current()
	query := model.search.Input.Value()

	lefts := make([]string, len(model.rows))
	rights := make([]string, len(model.rows))
	for index, candidate := range model.rows {
		lefts[index], rights[index] = model.sideTexts(candidate)
	}
	firstLeft := firstColumns(tui.FindMatches(lefts, query))
	firstRight := firstColumns(tui.FindMatches(rights, query))

	var matches []tui.TextMatch
	model.rightMatches = make(map[int]bool)
	for index := range model.rows {
		if column, ok := firstLeft[index]; ok {
			matches = append(matches, tui.TextMatch{Line: index, Column: column})
		} else if column, ok := firstRight[index]; ok {
			matches = append(matches, tui.TextMatch{Line: index, Column: column})
			model.rightMatches[index] = true
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

func firstColumns(matches []tui.TextMatch) map[int]int {
	first := make(map[int]int, len(matches))
	for _, match := range matches {
		if _, seen := first[match.Line]; !seen {
			first[match.Line] = match.Column
		}
	}
	return first
}

// jumpTo puts a match's row at the top of the view and scrolls
// horizontally when its column is off screen.
func (model *Model) jumpTo(match tui.TextMatch) {
	model.pager.GoTo(match.Line)
	if model.rows[match.Line].header {
		return
	}
	visible := model.codeWidth()
	if visible <= 0 {
		return
	}
	if match.Column < model.scrollX.Offset || match.Column >= model.scrollX.Offset+visible {
		model.scrollX.Offset = max(match.Column-visible/2, 0)
		model.boundHorizontal()
	}
}

// contentHeight is the number of rows left after the title, search
// bar, and status bar.
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

// rowWidth is the width of a content row, excluding the scrollbar.
func (model Model) rowWidth() int {
	width := model.width
	if model.scrollbarVisible() {
		width--
	}
	return max(width, 0)
}

// numberColumn is the width of one line number plus its trailing
// space, or zero with line numbers hidden.
func (model Model) numberColumn() int {
	if !model.showLineNumbers {
		return 0
	}
	return model.numberWidth + 1
}

// halfWidths splits a side-by-side row around its one-column
// separator.
func (model Model) halfWidths() (left, right int) {
	available := max(model.rowWidth()-1, 0)
	left = available / 2
	return left, available - left
}

// codeWidth is the number of columns available to line content after
// the gutter and the +/- marker.
func (model Model) codeWidth() int {
	if model.mode == SideBySide {
		left, right := model.halfWidths()
		return max(min(left, right)-model.numberColumn()-1, 0)
	}
	return max(model.rowWidth()-2*model.numberColumn()-1, 0)
}

func (model *Model) layout() {
	model.pager.Height = model.contentHeight()
	model.pager.SetTotal(len(model.rows))
	model.boundHorizontal()
}

func (model *Model) boundHorizontal() {
	model.scrollX.Bound(model.widest, model.codeWidth())
}

// Update handles keys and mouse.
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
		model.handleKey(message)

	case tea.MouseMsg:
		model.handleMouse(message)
	}
	return model, nil
}

func (model *Model) handleKey(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.pager.LineUp()
	case key.Matches(message, model.keys.Down):
		model.pager.LineDown()
	case key.Matches(message, model.keys.Left):
		model.scrollX.Left()
	case key.Matches(message, model.keys.Right):
		model.scrollX.Right()
	case key.Matches(message, model.keys.PageUp):
		model.pager.PageUp()
	case key.Matches(message, model.keys.PageDown):
		model.pager.PageDown()
	case key.Matches(message, model.keys.Top):
		model.pager.Top()
	case key.Matches(message, model.keys.Bottom):
		model.pager.Bottom()
	case key.Matches(message, model.keys.NextHunk):
		model.NextHunk()
	case key.Matches(message, model.keys.PreviousHunk):
		model.PrevHunk()
	case key.Matches(message, model.keys.Next):
		if model.search.MatchCount() > 0 {
			model.NextMatch()
		} else {
			model.NextChange()
		}
	case key.Matches(message, model.keys.Previous):
		if model.search.MatchCount() > 0 {
			model.PrevMatch()
		} else {
			model.PrevChange()
		}
	case key.Matches(message, model.keys.ToggleMode):
		model.ToggleMode()
	case key.Matches(message, model.keys.Search):
		model.search.Reset()
		model.search.Input.Active = true
		model.layout()
	case key.Matches(message, model.keys.SearchClear):
		model.search.Reset()
	}
}

// handleSearchKey edits the query with live matching. Enter and esc
// both leave the input and keep the matches.
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
		for range 3 {
			model.pager.LineUp()
		}
	case tea.MouseButtonWheelDown:
		for range 3 {
			model.pager.LineDown()
		}
	case tea.MouseButtonWheelLeft:
		model.scrollX.Left()
	case tea.MouseButtonWheelRight:
		model.scrollX.Right()
	case tea.MouseButtonLeft:
		if message.Action != tea.MouseActionPress {
			return
		}
		y := message.Y - top
		if model.scrollbarVisible() && message.X == model.width-1 && y >= 0 && y < model.pager.Height {
			model.draggingScroll = true
			model.pager.ScrollTo(y, model.pager.Height)
		}
	}
}

// View renders the title, the rows with scrollbar, the search bar
// while typing, and the status bar.
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
	width := model.rowWidth()
	blank := strings.Repeat(" ", width)
	if len(model.rows) == 0 {
		rows := make([]string, model.pager.Height)
		for index := range rows {
			rows[index] = blank
		}
		if len(rows) > 0 {
			rows[0] = tui.FitToWidth(model.style.Context.Render(" No differences"), width)
		}
		return strings.Join(rows, "\n")
	}

	matchRows := make(map[int]struct{}, model.search.MatchCount())
	for _, match := range model.search.Matches() {
		matchRows[match.Line] = struct{}{}
	}

	start, end := model.pager.Range()
	rows := make([]string, 0, model.pager.Height)
	for index := start; index < end; index++ {
		_, isMatch := matchRows[index]
		current := model.currentMatchOn(index)
		var rendered string
		switch {
		case model.rows[index].header:
			rendered = model.renderHeader(model.rows[index], width, isMatch, current)
		case model.mode == SideBySide:
			rendered = model.renderPair(model.rows[index], isMatch, current)
		default:
			rendered = model.renderUnified(model.rows[index], isMatch, current)
		}
		rows = append(rows, tui.FitToWidth(rendered, width))
	}
	for len(rows) < model.pager.Height {
		rows = append(rows, blank)
	}
	return strings.Join(rows, "\n")
}

// sideMatch is the current match column on one side of a row, -1
// when the current match is elsewhere.
type sideMatch struct {
	left  int
	right int
}

func (model Model) currentMatchOn(index int) sideMatch {
	column := model.search.CurrentColumnOn(index)
	if column < 0 {
		return sideMatch{left: -1, right: -1}
	}
	if model.rightMatches[index] {
		return sideMatch{left: -1, right: column}
	}
	return sideMatch{left: column, right: -1}
}

func (model Model) renderHeader(r row, width int, isMatch bool, current sideMatch) string {
	header := model.diff.Hunks[r.hunk].Header
	if isMatch {
		return tui.HighlightText(ansi.Truncate(header, width, ""), model.search.Input.Value(),
			current.left, model.style.HunkHeader, model.style.Match, model.style.CurrentMatch)
	}
	return model.style.HunkHeader.Render(ansi.Truncate(header, width, ""))
}

func (model Model) lineNumber(number int) string {
	if number == 0 {
		return strings.Repeat(" ", model.numberColumn())
	}
	return model.style.LineNumber.Render(fmt.Sprintf("%*d ", model.numberWidth, number))
}

func (model Model) renderUnified(r row, isMatch bool, current sideMatch) string {
	line := model.diff.Hunks[r.hunk].Lines[r.left]
	var builder strings.Builder
	if model.showLineNumbers {
		builder.WriteString(model.lineNumber(line.OldNumber))
		builder.WriteString(model.lineNumber(line.NewNumber))
	}
	builder.WriteString(model.style.ForKind(line.Kind).Render(line.Kind.String()))
	builder.WriteString(model.renderCode(line, model.codeWidth(), isMatch, current.left))
	return builder.String()
}

func (model Model) renderPair(r row, isMatch bool, current sideMatch) string {
	lines := model.diff.Hunks[r.hunk].Lines
	leftWidth, rightWidth := model.halfWidths()

	half := func(index, width int, old bool, currentColumn int) string {
		if index == noLine {
			return strings.Repeat(" ", width)
		}
		line := lines[index]
		var builder strings.Builder
		if model.showLineNumbers {
			number := line.NewNumber
			if old {
				number = line.OldNumber
			}
			builder.WriteString(model.lineNumber(number))
		}
		builder.WriteString(model.style.ForKind(line.Kind).Render(line.Kind.String()))
		codeWidth := max(width-model.numberColumn()-1, 0)
		builder.WriteString(model.renderCode(line, codeWidth, isMatch, currentColumn))
		return tui.FitToWidth(builder.String(), width)
	}

	return half(r.left, leftWidth, true, current.left) +
		model.style.Separator.Render("│") +
		half(r.right, rightWidth, false, current.right)
}

// renderCode renders the visible slice of a line's content. Rows with
// search matches are drawn plain with the matches highlighted; context
// lines get syntax colours; changed lines take their diff colour.
func (model Model) renderCode(line Line, width int, isMatch bool, currentColumn int) string {
	if width <= 0 {
		return ""
	}
	text := displayText(line.Content)
	offset := model.scrollX.Offset
	base := model.style.ForKind(line.Kind)
	if isMatch {
		if currentColumn >= 0 {
			currentColumn -= offset
		}
		return tui.HighlightText(ansi.Cut(text, offset, offset+width), model.search.Input.Value(),
			currentColumn, base, model.style.Match, model.style.CurrentMatch)
	}
	if line.Kind == Context {
		if highlighted, ok := model.highlight.line(text); ok {
			return ansi.Cut(highlighted, offset, offset+width)
		}
	}
	return base.Render(ansi.Cut(text, offset, offset+width))
}

// StatusText returns the position summary shown in the status bar:
//
//	Unified | Line 12/340 (3%) | Hunk 2/4 | +10 -3 | Col: 9 | Match 2/5
func (model Model) StatusText() string {
	line := 0
	if model.pager.Total > 0 {
		line = model.pager.Offset + 1
	}
	var builder strings.Builder
	fmt.Fprintf(&builder, "%s | Line %d/%d (%d%%)", model.mode, line, model.pager.Total, model.pager.Percent())
	if hunk, ok := model.CurrentHunk(); ok {
		fmt.Fprintf(&builder, " | Hunk %d/%d", hunk+1, len(model.diff.Hunks))
	}
	fmt.Fprintf(&builder, " | +%d -%d", model.diff.Additions(), model.diff.Deletions())
	if model.scrollX.Offset > 0 {
		fmt.Fprintf(&builder, " | Col: %d", model.scrollX.Offset+1)
	}
	if count := model.search.MatchCount(); count > 0 {
		fmt.Fprintf(&builder, " | Match %d/%d", model.search.CurrentIndex()+1, count)
	} else if model.search.Input.Value() != "" {
		builder.WriteString(" | No matches")
	}
	return builder.String()
}

func (model Model) renderStatus() string {
	var builder strings.Builder
	builder.WriteString(model.style.StatusBar.Render(" " + model.StatusText()))
	for _, binding := range model.keys.ShortHelp() {
		help := binding.Help()
		builder.WriteString(model.style.StatusBar.Render(" | "))
		builder.WriteString(model.style.StatusKey.Render(help.Key))
		builder.WriteString(model.style.StatusBar.Render(": " + help.Desc))
	}
	line := tui.FitToWidth(builder.String(), model.width)
	return model.style.StatusBar.Width(model.width).MaxWidth(model.width).Render(line)
}
