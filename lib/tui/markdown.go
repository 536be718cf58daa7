// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func sharedMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(goldmark.WithExtensions(
			extension.GFM,
			extension.DefinitionList,
		))
	})
	return markdownParser
}

// RenderMarkdown renders markdown as styled terminal text wrapped to
// width columns. Paragraph line breaks reflow; headings, lists, block
// quotes, rules and fenced code (syntax highlighted with chroma) keep
// their structure. Raw HTML is dropped.
func RenderMarkdown(input string, theme Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := sharedMarkdownParser().Parser().Parse(text.NewReader(source))

	// Output always lands in a bubbletea view, so force ANSI256 rather
	// than trusting detection (which yields no colour without a TTY).
	// SetColorProfile is needed because the renderer otherwise
	// re-detects the profile from the environment.
	styles := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	styles.SetColorProfile(termenv.ANSI256)

	writer := &markdownWriter{
		source: source,
		theme:  theme,
		width:  width,
		styles: styles,
	}
	_ = ast.Walk(document, writer.visit)
	return strings.TrimRight(strings.Join(writer.lines, "\n"), "\n ")
}

// markdownWriter walks the goldmark AST directly. Inline content of a
// block accumulates in inline and is wrapped as a unit when the block
// closes, which goldmark's streaming renderer interface cannot
// express.
type markdownWriter struct {
	source []byte
	theme  Theme
	width  int
	styles *lipgloss.Renderer

	lines  []string
	inline strings.Builder

	// indent is the prefix applied to every emitted line; bullet, when
	// set, replaces it for the next line only.
	indent []string
	bullet string

	bold, italic, strike int

	lists []markdownList
}

type markdownList struct {
	ordered bool
	next    int
	tight   bool
}

func (writer *markdownWriter) style() lipgloss.Style {
	return writer.styles.NewStyle()
}

func (writer *markdownWriter) prefix() string {
	return strings.Join(writer.indent, "")
}

// emit appends content line by line, applying the indent prefix.
func (writer *markdownWriter) emit(content string) {
	for _, line := range strings.Split(content, "\n") {
		prefix := writer.prefix()
		if writer.bullet != "" {
			prefix, writer.bullet = writer.bullet, ""
		}
		writer.lines = append(writer.lines, prefix+line)
	}
}

// blank ends the current block with an empty line unless one is
// already there.
func (writer *markdownWriter) blank() {
	if len(writer.lines) == 0 || writer.lines[len(writer.lines)-1] == "" {
		return
	}
	if len(writer.lists) > 0 && writer.lists[len(writer.lists)-1].tight {
		return
	}
	writer.lines = append(writer.lines, "")
}

// flush wraps the accumulated inline content to the width left after
// the indent and emits it.
func (writer *markdownWriter) flush() {
	content := writer.inline.String()
	writer.inline.Reset()
	if content == "" {
		return
	}
	available := writer.width - ansi.StringWidth(writer.prefix())
	if available < 10 {
		available = 10
	}
	writer.emit(ansi.Wrap(content, available, " "))
}

func (writer *markdownWriter) inlineStyle() lipgloss.Style {
	style := writer.style().Foreground(writer.theme.NormalText)
	if writer.bold > 0 {
		style = style.Bold(true)
	}
	if writer.italic > 0 {
		style = style.Italic(true)
	}
	if writer.strike > 0 {
		style = style.Strikethrough(true)
	}
	return style
}

// childText concatenates the raw text of a node's inline children.
func (writer *markdownWriter) childText(node ast.Node) string {
	var builder strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			builder.Write(typed.Segment.Value(writer.source))
		case *ast.String:
			builder.Write(typed.Value)
		default:
			builder.WriteString(writer.childText(child))
		}
	}
	return builder.String()
}

func (writer *markdownWriter) blockLines(node ast.Node) string {
	var builder strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		builder.Write(segment.Value(writer.source))
	}
	return strings.TrimRight(builder.String(), "\n")
}

func (writer *markdownWriter) highlight(code, language string) string {
	if language != "" {
		var builder strings.Builder
		if err := quick.Highlight(&builder, code, language, "terminal256", "monokai"); err == nil {
			return strings.TrimRight(builder.String(), "\n")
		}
	}
	return writer.style().Foreground(writer.theme.FaintText).Render(code)
}

func (writer *markdownWriter) visit(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch typed := node.(type) {
	case *ast.Heading:
		if entering {
			style := writer.style().Bold(true).Foreground(writer.theme.HeaderForeground)
			if typed.Level == 1 {
				style = style.Underline(true)
			}
			writer.inline.WriteString(style.Render(writer.childText(typed)))
			writer.flush()
			writer.blank()
			return ast.WalkSkipChildren, nil
		}

	case *ast.Paragraph:
		if !entering {
			writer.flush()
			writer.blank()
		}

	case *ast.TextBlock:
		if !entering {
			writer.flush()
		}

	case *ast.Text:
		if entering {
			writer.inline.WriteString(writer.inlineStyle().Render(string(typed.Segment.Value(writer.source))))
			switch {
			case typed.HardLineBreak():
				writer.inline.WriteString("\n")
			case typed.SoftLineBreak():
				writer.inline.WriteString(" ")
			}
		}

	case *ast.String:
		if entering {
			writer.inline.WriteString(writer.inlineStyle().Render(string(typed.Value)))
		}

	case *ast.Emphasis:
		delta := 1
		if !entering {
			delta = -1
		}
		if typed.Level >= 2 {
			writer.bold += delta
		} else {
			writer.italic += delta
		}

	case *extast.Strikethrough:
		if entering {
			writer.strike++
		} else {
			writer.strike--
		}

	case *ast.CodeSpan:
		if entering {
			code := writer.childText(typed)
			writer.inline.WriteString(writer.style().Foreground(writer.theme.FocusAccent).Render(code))
			return ast.WalkSkipChildren, nil
		}

	case *ast.Link:
		if entering {
			label := writer.childText(typed)
			if label == "" {
				label = string(typed.Destination)
			}
			writer.inline.WriteString(writer.style().Foreground(writer.theme.LinkForeground).Underline(true).Render(label))
			return ast.WalkSkipChildren, nil
		}

	case *ast.AutoLink:
		if entering {
			writer.inline.WriteString(writer.style().Foreground(writer.theme.LinkForeground).Underline(true).
				Render(string(typed.URL(writer.source))))
		}

	case *ast.Image:
		if entering {
			writer.inline.WriteString(writer.style().Foreground(writer.theme.FaintText).
				Render("[image: " + writer.childText(typed) + "]"))
			return ast.WalkSkipChildren, nil
		}

	case *ast.FencedCodeBlock:
		if entering {
			language := string(typed.Language(writer.source))
			writer.indent = append(writer.indent, "  ")
			writer.emit(writer.highlight(writer.blockLines(typed), language))
			writer.indent = writer.indent[:len(writer.indent)-1]
			writer.blank()
			return ast.WalkSkipChildren, nil
		}

	case *ast.CodeBlock:
		if entering {
			writer.indent = append(writer.indent, "  ")
			writer.emit(writer.highlight(writer.blockLines(typed), ""))
			writer.indent = writer.indent[:len(writer.indent)-1]
			writer.blank()
			return ast.WalkSkipChildren, nil
		}

	case *ast.Blockquote:
		if entering {
			writer.indent = append(writer.indent, writer.style().Foreground(writer.theme.BorderColor).Render("│ "))
		} else {
			writer.indent = writer.indent[:len(writer.indent)-1]
			writer.blank()
		}

	case *ast.List:
		if entering {
			writer.lists = append(writer.lists, markdownList{
				ordered: typed.IsOrdered(),
				next:    typed.Start,
				tight:   typed.IsTight,
			})
		} else {
			writer.lists = writer.lists[:len(writer.lists)-1]
			writer.blank()
		}

	case *ast.ListItem:
		if entering {
			list := &writer.lists[len(writer.lists)-1]
			marker := "• "
			if list.ordered {
				marker = fmt.Sprintf("%d. ", list.next)
				list.next++
			}
			writer.bullet = writer.prefix() + writer.style().Foreground(writer.theme.FaintText).Render(marker)
			writer.indent = append(writer.indent, strings.Repeat(" ", ansi.StringWidth(marker)))
		} else {
			writer.indent = writer.indent[:len(writer.indent)-1]
		}

	case *ast.ThematicBreak:
		if entering {
			rule := strings.Repeat("─", max(writer.width-ansi.StringWidth(writer.prefix()), 1))
			writer.emit(writer.style().Foreground(writer.theme.BorderColor).Render(rule))
			writer.blank()
		}

	case *ast.HTMLBlock, *ast.RawHTML:
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}
