// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package treeview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tuikit/lib/tree"
	"github.com/bureau-foundation/tuikit/lib/tui"
	"github.com/bureau-foundation/tuikit/lib/viewport"
)

// RenderFunc produces the label for a node. selected is true for the
// row under the cursor.
type RenderFunc[T any] func(node *tree.Node[T], selected bool) string

// SelectionMsg is emitted when the cursor lands on a different node.
type SelectionMsg struct {
	ID string
}

// ToggleMsg is emitted when a node is collapsed or expanded by the
// user.
type ToggleMsg struct {
	ID        string
	Collapsed bool
}

// Model is the tree view sub-model.
type Model[T any] struct {
	nodes     []tree.Node[T]
	collapsed *tree.CollapsedSet
	window    viewport.Window

	render RenderFunc[T]
	style  Style
	theme  tui.Theme
	keys   KeyMap

	width   int
	height  int
	focused bool

	showScrollbar  bool
	draggingScroll bool
}

// New creates a tree view over nodes with every node expanded. A nil
// render function labels nodes by ID.
func New[T any](nodes []tree.Node[T], render RenderFunc[T]) Model[T] {
	if render == nil {
		render = func(node *tree.Node[T], _ bool) string { return node.ID }
	}
	model := Model[T]{
		nodes:         nodes,
		collapsed:     tree.NewCollapsedSet(),
		render:        render,
		theme:         tui.DefaultTheme,
		style:         DefaultStyle(tui.DefaultTheme),
		keys:          DefaultKeyMap,
		showScrollbar: true,
	}
	model.window = viewport.NewWindow(len(model.Rows()), 0)
	return model
}

// SetTheme replaces the colour palette and rebuilds the default style.
func (model *Model[T]) SetTheme(theme tui.Theme) {
	model.theme = theme
	model.style = DefaultStyle(theme)
}

// SetStyle replaces the row style.
func (model *Model[T]) SetStyle(style Style) {
	model.style = style
}

// SetKeyMap replaces the key bindings.
func (model *Model[T]) SetKeyMap(keys KeyMap) {
	model.keys = keys
}

// KeyMap returns the active key bindings.
func (model Model[T]) KeyMap() KeyMap {
	return model.keys
}

// SetScrollbar controls whether a scrollbar column is drawn when the
// rows overflow the viewport.
func (model *Model[T]) SetScrollbar(show bool) {
	model.showScrollbar = show
}

// SetSize sets the rendered width and height.
func (model *Model[T]) SetSize(width, height int) {
	model.width = width
	model.height = height
	model.window.SetHeight(height)
}

// Focus enables keyboard handling.
func (model *Model[T]) Focus() { model.focused = true }

// Blur disables keyboard handling.
func (model *Model[T]) Blur() { model.focused = false }

// Focused reports whether the model handles keys.
func (model Model[T]) Focused() bool { return model.focused }

// Rows flattens the forest under the current collapse state.
func (model Model[T]) Rows() []tree.Row[T] {
	return tree.Flatten(model.nodes, model.collapsed)
}

// Window returns the cursor and scroll state.
func (model Model[T]) Window() viewport.Window {
	return model.window
}

// SelectedID returns the ID of the node under the cursor.
func (model Model[T]) SelectedID() (string, bool) {
	node := model.SelectedNode()
	if node == nil {
		return "", false
	}
	return node.ID, true
}

// SelectedNode returns the node under the cursor, or nil when the
// tree is empty.
func (model Model[T]) SelectedNode() *tree.Node[T] {
	rows := model.Rows()
	if model.window.Empty() || model.window.Cursor >= len(rows) {
		return nil
	}
	return rows[model.window.Cursor].Node
}

// SelectID moves the cursor to the node with the given ID, expanding
// its ancestors when it is hidden. Returns false when no node has that
// ID.
func (model *Model[T]) SelectID(id string) bool {
	path := tree.Path(model.nodes, id)
	if path == nil {
		return false
	}
	for _, ancestor := range path[:len(path)-1] {
		model.collapsed.Expand(ancestor)
	}
	rows := model.Rows()
	model.window.SetTotal(len(rows))
	return model.window.Select(tree.IndexOf(rows, id))
}

// CollapsedIDs returns the collapsed node IDs in sorted order.
func (model Model[T]) CollapsedIDs() []string {
	return model.collapsed.IDs()
}

// SetCollapsed replaces the collapse state. The cursor stays on the
// selected node, or moves to its nearest visible ancestor.
func (model *Model[T]) SetCollapsed(ids []string) {
	anchor := model.anchor()
	model.collapsed = tree.NewCollapsedSet(ids...)
	model.reselect(anchor)
}

// SetNodes replaces the forest. Collapse state is kept by ID and the
// cursor follows the selected node across the rebuild.
func (model *Model[T]) SetNodes(nodes []tree.Node[T]) {
	anchor := model.anchor()
	model.nodes = nodes
	model.reselect(anchor)
}

// Toggle flips the collapse state of the node with the given ID.
// Leaves have nothing to collapse and are ignored.
func (model *Model[T]) Toggle(id string) {
	node := tree.Find(model.nodes, id)
	if node == nil || !node.HasChildren() {
		return
	}
	anchor := model.anchor()
	model.collapsed.Toggle(id)
	model.reselect(anchor)
}

// ExpandAll expands every node.
func (model *Model[T]) ExpandAll() {
	anchor := model.anchor()
	tree.ExpandAll(model.collapsed)
	model.reselect(anchor)
}

// CollapseAll collapses every node that has children.
func (model *Model[T]) CollapseAll() {
	anchor := model.anchor()
	tree.CollapseAll(model.collapsed, model.nodes)
	model.reselect(anchor)
}

// anchor returns the selected node's ID followed by its ancestors,
// nearest first. reselect uses it to keep the cursor in place when the
// visible rows change.
func (model Model[T]) anchor() []string {
	id, ok := model.SelectedID()
	if !ok {
		return nil
	}
	path := tree.Path(model.nodes, id)
	anchor := make([]string, 0, len(path))
	for index := len(path) - 1; index >= 0; index-- {
		anchor = append(anchor, path[index])
	}
	return anchor
}

// reselect recomputes the row count and moves the cursor to the first
// visible ID of anchor. With no visible anchor the cursor keeps its
// index, clamped to the new row count.
func (model *Model[T]) reselect(anchor []string) {
	rows := model.Rows()
	model.window.SetTotal(len(rows))
	for _, id := range anchor {
		if index := tree.IndexOf(rows, id); index >= 0 {
			model.window.Select(index)
			return
		}
	}
}

// Update handles key and mouse input. Keys are ignored while the
// model is blurred.
func (model Model[T]) Update(message tea.Msg) (Model[T], tea.Cmd) {
	before, _ := model.SelectedID()

	var toggled tea.Cmd
	switch message := message.(type) {
	case tea.KeyMsg:
		if !model.focused {
			return model, nil
		}
		toggled = model.handleKey(message)
	case tea.MouseMsg:
		toggled = model.handleMouse(message)
	default:
		return model, nil
	}

	after, ok := model.SelectedID()
	if ok && after != before {
		return model, tea.Batch(toggled, func() tea.Msg { return SelectionMsg{ID: after} })
	}
	return model, toggled
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
	case key.Matches(message, model.keys.Left):
		return model.collapseOrParent()
	case key.Matches(message, model.keys.Right):
		return model.expandOrChild()
	case key.Matches(message, model.keys.Toggle):
		return model.toggleSelected()
	case key.Matches(message, model.keys.ExpandAll):
		model.ExpandAll()
	case key.Matches(message, model.keys.CollapseAll):
		model.CollapseAll()
	}
	return nil
}

// collapseOrParent collapses an expanded parent, otherwise moves the
// cursor to the parent row.
func (model *Model[T]) collapseOrParent() tea.Cmd {
	rows := model.Rows()
	if model.window.Empty() {
		return nil
	}
	row := rows[model.window.Cursor]
	if row.HasChildren() && !model.collapsed.IsCollapsed(row.ID()) {
		return model.toggleSelected()
	}
	if parent := tree.ParentIndex(rows, model.window.Cursor); parent >= 0 {
		model.window.Select(parent)
	}
	return nil
}

// expandOrChild expands a collapsed parent, otherwise moves the cursor
// onto the first child of an expanded one.
func (model *Model[T]) expandOrChild() tea.Cmd {
	rows := model.Rows()
	if model.window.Empty() {
		return nil
	}
	row := rows[model.window.Cursor]
	if !row.HasChildren() {
		return nil
	}
	if model.collapsed.IsCollapsed(row.ID()) {
		return model.toggleSelected()
	}
	model.window.Next()
	return nil
}

func (model *Model[T]) toggleSelected() tea.Cmd {
	node := model.SelectedNode()
	if node == nil || !node.HasChildren() {
		return nil
	}
	id := node.ID
	model.Toggle(id)
	collapsed := model.collapsed.IsCollapsed(id)
	return func() tea.Msg { return ToggleMsg{ID: id, Collapsed: collapsed} }
}

// handleMouse scrolls on the wheel, selects on click, toggles a parent
// when it is clicked while already selected, and drags the viewport
// from the scrollbar column.
func (model *Model[T]) handleMouse(message tea.MouseMsg) tea.Cmd {
	if model.draggingScroll {
		switch message.Action {
		case tea.MouseActionRelease:
			model.draggingScroll = false
		case tea.MouseActionMotion:
			model.window.ScrollTo(message.Y, model.height)
		}
		return nil
	}

	switch message.Button {
	case tea.MouseButtonWheelUp:
		model.window.Prev()

	case tea.MouseButtonWheelDown:
		model.window.Next()

	case tea.MouseButtonLeft:
		if message.Action != tea.MouseActionPress {
			return nil
		}
		if model.scrollbarVisible() && message.X == model.width-1 {
			model.draggingScroll = true
			model.window.ScrollTo(message.Y, model.height)
			return nil
		}
		index, ok := model.window.RowAt(message.Y)
		if !ok {
			return nil
		}
		if index == model.window.Cursor {
			return model.toggleSelected()
		}
		model.window.Select(index)
	}
	return nil
}

func (model Model[T]) scrollbarVisible() bool {
	return model.showScrollbar && model.width > 1 && model.window.Total > model.window.Height
}

// View renders the visible rows, padded to the model's height.
func (model Model[T]) View() string {
	if model.width <= 0 || model.height <= 0 {
		return ""
	}
	contentWidth := model.width
	if model.scrollbarVisible() {
		contentWidth--
	}

	rows := model.Rows()
	start, end := model.window.Range()
	lines := make([]string, 0, model.height)
	for index := start; index < end && index < len(rows); index++ {
		selected := index == model.window.Cursor
		lines = append(lines, tui.FitToWidth(model.renderRow(rows[index], selected), contentWidth))
	}
	blank := strings.Repeat(" ", contentWidth)
	for len(lines) < model.height {
		lines = append(lines, blank)
	}
	content := strings.Join(lines, "\n")

	if !model.scrollbarVisible() {
		return content
	}
	return tui.JoinScrollbar(content, model.theme, model.height,
		model.window.Total, model.window.Height, model.window.Scroll, model.focused)
}

func (model Model[T]) renderRow(row tree.Row[T], selected bool) string {
	textStyle := model.style.Normal
	cursor := model.style.CursorNormal
	if selected {
		textStyle = model.style.Selected
		cursor = model.style.CursorSelected
	}

	var builder strings.Builder
	builder.WriteString(textStyle.Render(cursor))

	for _, ancestorIsLast := range row.ParentIsLast {
		glyph := model.style.Vertical
		if ancestorIsLast {
			glyph = model.style.Space
		}
		builder.WriteString(renderGlyph(model.style.Connector, glyph))
	}
	if row.Depth > 0 {
		glyph := model.style.Branch
		if row.IsLast {
			glyph = model.style.Last
		}
		builder.WriteString(renderGlyph(model.style.Connector, glyph))
	}

	if row.HasChildren() {
		icon := model.style.ExpandedIcon
		if model.collapsed.IsCollapsed(row.ID()) {
			icon = model.style.CollapsedIcon
		}
		builder.WriteString(model.style.Icon.Render(icon))
	}

	builder.WriteString(textStyle.Render(model.render(row.Node, selected)))
	return builder.String()
}

// renderGlyph styles a connector, leaving pure whitespace unstyled so
// blank indentation carries no escape sequences.
func renderGlyph(style lipgloss.Style, glyph string) string {
	if strings.TrimSpace(glyph) == "" {
		return glyph
	}
	return style.Render(glyph)
}
