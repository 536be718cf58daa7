// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/tuikit/lib/clock"
)

// ClipboardMsg reports the outcome of a copy. Method is "system" when
// the platform clipboard accepted the text and "osc52" when it was
// sent to the terminal instead. Err is set when both failed.
type ClipboardMsg struct {
	Method string
	Bytes  int
	Err    error
}

// ClipboardFadeMsg is delivered after [ClipboardFadeDelay] so the
// widget can clear its "Copied" notice.
type ClipboardFadeMsg struct{}

// ClipboardFadeDelay is how long a copy notice stays visible.
const ClipboardFadeDelay = 2 * time.Second

// writeSystemClipboard is swapped out in tests.
var writeSystemClipboard = clipboard.WriteAll

// openTerminal opens the controlling terminal for OSC 52 output.
var openTerminal = func() (io.WriteCloser, error) {
	return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
}

// CopyToClipboard copies text to the system clipboard, falling back to
// an OSC 52 escape written to the controlling terminal when no
// clipboard utility is available (SSH sessions, minimal containers).
// The command yields a [ClipboardMsg]; the widget showing the notice
// follows up with [ScheduleClipboardFade].
func CopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copyText(text)
	}
}

// ScheduleClipboardFade returns the command that delivers
// [ClipboardFadeMsg] after [ClipboardFadeDelay] on source.
func ScheduleClipboardFade(source clock.Clock) tea.Cmd {
	return clock.Tick(source, ClipboardFadeDelay, func(time.Time) tea.Msg {
		return ClipboardFadeMsg{}
	})
}

func copyText(text string) ClipboardMsg {
	systemErr := writeSystemClipboard(text)
	if systemErr == nil {
		return ClipboardMsg{Method: "system", Bytes: len(text)}
	}

	tty, err := openTerminal()
	if err != nil {
		return ClipboardMsg{Err: fmt.Errorf("system clipboard: %v; terminal: %w", systemErr, err)}
	}
	defer tty.Close()

	if err := writeOSC52(tty, text, insideTmux()); err != nil {
		return ClipboardMsg{Err: fmt.Errorf("writing OSC 52: %w", err)}
	}
	return ClipboardMsg{Method: "osc52", Bytes: len(text)}
}

// writeOSC52 emits the clipboard escape. BEL terminates the OSC since
// it passes through SSH and multiplexers intact. Inside tmux the
// sequence is also wrapped in a DCS passthrough, for configurations
// with allow-passthrough; the direct form covers set-clipboard.
func writeOSC52(writer io.Writer, text string, tmux bool) error {
	osc52 := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\x07"
	if tmux {
		if _, err := fmt.Fprintf(writer, "\x1bPtmux;\x1b%s\x1b\\", osc52); err != nil {
			return err
		}
	}
	_, err := io.WriteString(writer, osc52)
	return err
}

func insideTmux() bool {
	term := os.Getenv("TERM")
	return os.Getenv("TMUX") != "" ||
		strings.HasPrefix(term, "tmux") ||
		strings.HasPrefix(term, "screen")
}
