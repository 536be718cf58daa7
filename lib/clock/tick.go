// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Tick is tea.Tick on an injectable clock: the returned command blocks
// until d has elapsed on source and then yields fn of the fire time.
func Tick(source Clock, d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return fn(<-source.After(d))
	}
}
