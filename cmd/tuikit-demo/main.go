// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// tuikit-demo is an interactive showcase of the tuikit widgets: a
// collapsible tree, a filterable list, a log viewer that follows a
// file, a select box, a file explorer, and a diff viewer, each on its
// own tab.
//
// Configuration comes from a YAML or JSONC file named by --config or
// TUIKIT_CONFIG. Without one the built-in defaults and sample content
// are used. Per-view state (collapsed tree nodes, the selected file)
// is saved under the state directory on exit and restored on the next
// run.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tuikit/lib/codec"
	"github.com/bureau-foundation/tuikit/lib/config"
	"github.com/bureau-foundation/tuikit/lib/session"
	"github.com/bureau-foundation/tuikit/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

// usageError reports bad command-line input with exit status 2.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }
func (e usageError) ExitCode() int { return 2 }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

func run() error {
	var configPath string
	var logOutput string
	var dumpState string
	var showVersion bool

	flagSet := pflag.NewFlagSet("tuikit-demo", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to a YAML or JSONC config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (in addition to the log tab)")
	flagSet.StringVar(&dumpState, "dump-state", "", "print the saved session snapshot of a view in CBOR diagnostic notation and exit")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return usageError{err: err}
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if showVersion {
		fmt.Printf("tuikit-demo %s\n", version.Full())
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return usagef("unexpected argument: %s", args[0])
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if logOutput != "" {
		cfg.Log.Output = logOutput
	}

	logger := slog.New(stderrHandler(os.Stderr, cfg.Log.SlogLevel()))
	slog.SetDefault(logger)

	if dumpState != "" {
		return dumpSnapshot(cfg, dumpState)
	}

	var store *session.Store
	if !cfg.State.Disabled {
		store, err = session.Open(cfg.State.Directory)
		if err != nil {
			// The demo still works without persistence.
			logger.Warn("session state unavailable", "directory", cfg.State.Directory, "error", err)
		}
	}

	logging, err := newProgramLogging(cfg.Log)
	if err != nil {
		return err
	}
	defer logging.Close()

	app, err := newApp(cfg, appOptions{
		Logger: logging.Logger,
		Store:  store,
	})
	if err != nil {
		return err
	}
	defer app.Close()

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())
	logging.Attach(program)

	final, err := program.Run()
	if err != nil {
		return err
	}
	if finished, ok := final.(*appModel); ok {
		if err := finished.SaveSession(); err != nil {
			logger.Warn("saving session failed", "error", err)
		}
	}
	return nil
}

// loadConfig loads --config, then TUIKIT_CONFIG, then falls back to the
// defaults, and validates the result.
func loadConfig(configPath string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case configPath != "":
		cfg, err = config.LoadFile(configPath)
	default:
		cfg, err = config.Load()
		if errors.Is(err, config.ErrNoConfig) {
			cfg, err = config.Expanded(), nil
		}
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	return cfg, nil
}

// dumpSnapshot prints the stored snapshot of view.
func dumpSnapshot(cfg *config.Config, view string) error {
	if cfg.State.Disabled {
		return usagef("--dump-state needs state persistence, but state.disabled is set")
	}
	store, err := session.Open(cfg.State.Directory)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(store.Path(view))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no saved state for view %q", view)
		}
		return err
	}
	diagnostic, err := codec.Diagnose(data)
	if err != nil {
		return fmt.Errorf("decoding snapshot of %q: %w", view, err)
	}
	fmt.Println(diagnostic)
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `tuikit demo: an interactive tour of the tuikit widgets.

Tabs are switched with tab / shift+tab or by clicking their names.
Press ? on any tab for its key bindings.

Usage:
  tuikit-demo [flags]

Examples:
  # Run with the built-in sample content
  tuikit-demo

  # Follow a log file and browse /var/log
  TUIKIT_CONFIG=demo.yaml tuikit-demo

  # Inspect what was saved for the tree view
  tuikit-demo --dump-state tree:sample

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
