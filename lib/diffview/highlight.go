// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package diffview

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlighter colours single lines of code with chroma. Lines are
// tokenised independently, so constructs spanning lines (block
// comments, multi-line strings) only colour the line that opens them.
type highlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
}

// newHighlighter picks a lexer from the file name. It returns nil when
// no lexer matches or theme is empty.
func newHighlighter(path, theme string) *highlighter {
	if path == "" || theme == "" || path == "/dev/null" {
		return nil
	}
	lexer := lexers.Match(path)
	if lexer == nil {
		return nil
	}
	return &highlighter{
		lexer:     chroma.Coalesce(lexer),
		style:     styles.Get(theme),
		formatter: formatters.Get("terminal256"),
	}
}

// line returns content with ANSI colour escapes. ok is false when
// chroma fails, and the caller falls back to plain styling.
func (highlight *highlighter) line(content string) (string, bool) {
	if highlight == nil {
		return "", false
	}
	iterator, err := highlight.lexer.Tokenise(nil, content)
	if err != nil {
		return "", false
	}
	var builder strings.Builder
	if err := highlight.formatter.Format(&builder, highlight.style, iterator); err != nil {
		return "", false
	}
	return strings.ReplaceAll(builder.String(), "\n", ""), true
}
