// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/bureau-foundation/tuikit/lib/config"
	"github.com/bureau-foundation/tuikit/lib/tui"
)

// stderrHandler returns the handler used before the alternate screen
// starts: human-readable text on a terminal, JSON otherwise.
func stderrHandler(file *os.File, level slog.Level) slog.Handler {
	options := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(file.Fd())) {
		return slog.NewTextHandler(file, options)
	}
	return slog.NewJSONHandler(file, options)
}

// programLogging routes records into the running program, and
// optionally into a JSON file for post-mortem debugging.
type programLogging struct {
	Logger *slog.Logger

	tuiHandler *tui.TUILogHandler
	closeFile  func()
}

func newProgramLogging(cfg config.LogConfig) (*programLogging, error) {
	logging := &programLogging{
		tuiHandler: tui.NewTUILogHandler(cfg.SlogLevel()),
		closeFile:  func() {},
	}
	if cfg.Output == "" {
		logging.Logger = slog.New(logging.tuiHandler)
		return logging, nil
	}
	fileHandler, closeFile, err := openFileLogHandler(cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file %s: %w", cfg.Output, err)
	}
	logging.closeFile = closeFile
	logging.Logger = slog.New(fanoutHandler{logging.tuiHandler, fileHandler})
	return logging, nil
}

// Attach starts delivering records to program.
func (logging *programLogging) Attach(program *tea.Program) {
	logging.tuiHandler.SetProgram(program)
}

// Close closes the log file, if any.
func (logging *programLogging) Close() {
	logging.closeFile()
}

// openFileLogHandler creates a slog.JSONHandler that writes to the
// given file path. Returns the handler, a cleanup function to close
// the file, and any error. The file is created or truncated.
func openFileLogHandler(path string) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return handler, func() { file.Close() }, nil
}

// fanoutHandler is a slog.Handler that sends each record to multiple
// underlying handlers. A record is enabled if any sub-handler is
// enabled for that level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
