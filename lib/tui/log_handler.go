// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/tuikit/lib/clock"
)

// LogRecordMsg carries a slog record into the bubbletea program.
type LogRecordMsg struct {
	// Time is the record's timestamp.
	Time time.Time

	// Level is the slog level, used for colouring.
	Level slog.Level

	// Summary is the one-line rendering: "message (key=value, ...)".
	Summary string

	// Structured is the full record as JSON, for clipboard copy.
	Structured string
}

// Line renders the record the way the log viewer displays it:
// timestamp, bracketed level, summary.
func (message LogRecordMsg) Line() string {
	return fmt.Sprintf("%s [%s] %s",
		message.Time.Format("15:04:05"),
		strings.ToLower(message.Level.String()),
		message.Summary)
}

// LogRecordFadeMsg is delivered after [LogRecordFadeDelay] so a status
// bar showing a record can restore its normal content.
type LogRecordFadeMsg struct{}

// LogRecordFadeDelay is how long a record stays in a status bar.
const LogRecordFadeDelay = 5 * time.Second

// ScheduleLogFade returns the command that delivers LogRecordFadeMsg
// after [LogRecordFadeDelay] on source.
func ScheduleLogFade(source clock.Clock) tea.Cmd {
	return clock.Tick(source, LogRecordFadeDelay, func(time.Time) tea.Msg {
		return LogRecordFadeMsg{}
	})
}

// messageSender is the part of *tea.Program the handler needs.
type messageSender interface {
	Send(message tea.Msg)
}

// TUILogHandler is a slog.Handler that delivers records at or above
// its level into a running bubbletea program as [LogRecordMsg].
// Writing to stderr while the alternate screen is active would corrupt
// the display; this handler is what background goroutines log through
// instead.
//
// Create the handler before the program, then call SetProgram once the
// program exists. Records arriving earlier are dropped. Handlers
// derived through WithAttrs and WithGroup share the program pointer,
// so one SetProgram call reaches all of them.
type TUILogHandler struct {
	level   slog.Leveler
	program *atomic.Pointer[messageSender]
	attrs   []slog.Attr
	groups  []string
}

// NewTUILogHandler creates a handler for records at or above level.
func NewTUILogHandler(level slog.Leveler) *TUILogHandler {
	return &TUILogHandler{
		level:   level,
		program: &atomic.Pointer[messageSender]{},
	}
}

// SetProgram connects the handler to a program. Safe to call from any
// goroutine.
func (handler *TUILogHandler) SetProgram(program *tea.Program) {
	handler.setSender(program)
}

func (handler *TUILogHandler) setSender(sender messageSender) {
	handler.program.Store(&sender)
}

// Enabled implements slog.Handler.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level.Level()
}

// Handle implements slog.Handler.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	sender := handler.program.Load()
	if sender == nil {
		return nil
	}

	attrs := handler.collectAttrs(record)
	parts := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		parts = append(parts, attr.Key+"="+attr.Value.String())
	}
	summary := record.Message
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}

	(*sender).Send(LogRecordMsg{
		Time:       record.Time,
		Level:      record.Level,
		Summary:    summary,
		Structured: structuredJSON(record, attrs),
	})
	return nil
}

// collectAttrs returns handler attrs followed by record attrs, with
// group names folded into dotted keys.
func (handler *TUILogHandler) collectAttrs(record slog.Record) []slog.Attr {
	attrs := slices.Clone(handler.attrs)
	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}
	record.Attrs(func(attr slog.Attr) bool {
		attr.Key = prefix + attr.Key
		attrs = append(attrs, attr)
		return true
	})
	return attrs
}

// WithAttrs implements slog.Handler.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}
	derived := handler.derive()
	for _, attr := range attrs {
		attr.Key = prefix + attr.Key
		derived.attrs = append(derived.attrs, attr)
	}
	return derived
}

// WithGroup implements slog.Handler.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	derived := handler.derive()
	if name != "" {
		derived.groups = append(derived.groups, name)
	}
	return derived
}

func (handler *TUILogHandler) derive() *TUILogHandler {
	return &TUILogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   slices.Clone(handler.attrs),
		groups:  slices.Clone(handler.groups),
	}
}

func structuredJSON(record slog.Record, attrs []slog.Attr) string {
	fields := map[string]any{
		"time":  record.Time.Format(time.RFC3339),
		"level": record.Level.String(),
		"msg":   record.Message,
	}
	for _, attr := range attrs {
		fields[attr.Key] = attr.Value.String()
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Sprintf(`{"msg":%q,"error":"marshal failed"}`, record.Message)
	}
	return string(data)
}
