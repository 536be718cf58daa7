// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/tuikit/lib/tui"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "TUIKIT_CONFIG"

// ErrNoConfig is returned by [Load] when TUIKIT_CONFIG is not set.
var ErrNoConfig = errors.New(EnvironmentVariable + " environment variable not set")

// Config is the configuration of the demo program and the widgets it
// hosts.
type Config struct {
	// Theme overrides palette colours by field name (see
	// tui.ThemeKeys), for example {"focus_accent": "#ff8800"}.
	Theme map[string]string `yaml:"theme" json:"theme"`

	Tree      TreeConfig      `yaml:"tree" json:"tree"`
	LogViewer LogViewerConfig `yaml:"log_viewer" json:"log_viewer"`
	Explorer  ExplorerConfig  `yaml:"explorer" json:"explorer"`
	Select    SelectConfig    `yaml:"select" json:"select"`
	Diff      DiffConfig      `yaml:"diff" json:"diff"`
	State     StateConfig     `yaml:"state" json:"state"`
	Log       LogConfig       `yaml:"log" json:"log"`
}

// TreeConfig configures the tree view.
type TreeConfig struct {
	// Style is "default" (branch connectors) or "minimal" (indent
	// only).
	Style string `yaml:"style" json:"style"`

	// Scrollbar shows a scrollbar when rows overflow.
	Scrollbar bool `yaml:"scrollbar" json:"scrollbar"`

	// File is a YAML or JSONC tree to display instead of the built-in
	// sample.
	File string `yaml:"file" json:"file"`
}

// LogViewerConfig configures the log viewer.
type LogViewerConfig struct {
	// File is followed and shown in the log tab. Empty shows the
	// program's own log records.
	File string `yaml:"file" json:"file"`

	LineNumbers     bool `yaml:"line_numbers" json:"line_numbers"`
	LineNumberWidth int  `yaml:"line_number_width" json:"line_number_width"`
	Follow          bool `yaml:"follow" json:"follow"`
	HorizontalStep  int  `yaml:"horizontal_step" json:"horizontal_step"`
}

// ExplorerConfig configures the file explorer.
type ExplorerConfig struct {
	// Root is the starting directory.
	Root string `yaml:"root" json:"root"`

	ShowHidden bool `yaml:"show_hidden" json:"show_hidden"`

	// Watch reloads the listing when the directory changes.
	Watch bool `yaml:"watch" json:"watch"`
}

// SelectConfig configures the select menu.
type SelectConfig struct {
	// MaxVisible is the number of options the open dropdown shows.
	MaxVisible int `yaml:"max_visible" json:"max_visible"`

	// Style is "default" (▼ indicator) or "arrow" (⌄ indicator).
	Style string `yaml:"style" json:"style"`
}

// DiffConfig configures the diff viewer.
type DiffConfig struct {
	// Patch is a unified diff file to show. When empty and both Old
	// and New are set, the diff is computed from those files.
	Patch string `yaml:"patch" json:"patch"`
	Old   string `yaml:"old" json:"old"`
	New   string `yaml:"new" json:"new"`

	// Mode is "unified" or "side-by-side".
	Mode string `yaml:"mode" json:"mode"`

	// Style is "default", "high-contrast" or "monochrome". The
	// monochrome style turns syntax highlighting off.
	Style string `yaml:"style" json:"style"`

	// Context is the number of unchanged lines around each change
	// when computing a diff from Old and New.
	Context int `yaml:"context" json:"context"`

	// SyntaxTheme names the chroma style for code. Empty disables
	// syntax highlighting.
	SyntaxTheme string `yaml:"syntax_theme" json:"syntax_theme"`
}

// StateConfig configures session persistence.
type StateConfig struct {
	// Directory holds session snapshots.
	Directory string `yaml:"directory" json:"directory"`

	// Disabled turns session persistence off.
	Disabled bool `yaml:"disabled" json:"disabled"`
}

// LogConfig configures the program's own logging.
type LogConfig struct {
	// Level is debug, info, warn, or error.
	Level string `yaml:"level" json:"level"`

	// Output is a file that receives JSON log records in addition to
	// the in-UI log. Empty disables file logging.
	Output string `yaml:"output" json:"output"`
}

// Default returns the default configuration. Loaded files are merged
// over it, so every field has a sensible value even when the file only
// sets a few.
func Default() *Config {
	return &Config{
		Theme: map[string]string{},
		Tree: TreeConfig{
			Style:     "default",
			Scrollbar: true,
		},
		LogViewer: LogViewerConfig{
			LineNumbers:     true,
			LineNumberWidth: 6,
			Follow:          true,
			HorizontalStep:  4,
		},
		Explorer: ExplorerConfig{
			Root:  ".",
			Watch: true,
		},
		Select: SelectConfig{
			MaxVisible: 8,
			Style:      "default",
		},
		Diff: DiffConfig{
			Mode:        "unified",
			Style:       "default",
			Context:     3,
			SyntaxTheme: "monokai",
		},
		State: StateConfig{
			Directory: "${XDG_STATE_HOME:-${HOME}/.local/state}/tuikit",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by TUIKIT_CONFIG. It
// returns [ErrNoConfig] when the variable is unset; there is no file
// discovery.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, ErrNoConfig
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path over [Default]. Files ending
// in .json or .jsonc are read as JSON with comments and trailing
// commas; anything else is YAML. ${VAR} and ${VAR:-default} patterns
// in path fields are expanded afterwards.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	return cfg, nil
}

// Expanded returns [Default] with its path variables expanded, for
// running without a config file.
func Expanded() *Config {
	cfg := Default()
	cfg.expandVariables()
	return cfg
}

// loadFile decodes one configuration file, merging into the current
// config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := Decode(path, data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// Decode unmarshals data into target, choosing JSONC for .json and
// .jsonc names and YAML otherwise. The demo uses it for tree files as
// well as configuration.
func Decode(name string, data []byte, target any) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".jsonc":
		return json.Unmarshal(jsonc.ToJSON(data), target)
	default:
		return yaml.Unmarshal(data, target)
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// paths.
func (c *Config) expandVariables() {
	c.Tree.File = expandVars(c.Tree.File)
	c.LogViewer.File = expandVars(c.LogViewer.File)
	c.Explorer.Root = expandVars(c.Explorer.Root)
	c.Diff.Patch = expandVars(c.Diff.Patch)
	c.Diff.Old = expandVars(c.Diff.Old)
	c.Diff.New = expandVars(c.Diff.New)
	c.State.Directory = expandVars(c.State.Directory)
	c.Log.Output = expandVars(c.Log.Output)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-((?:[^{}]|\$\{[^}]*\})*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns from the
// environment. A default may itself contain ${VAR} patterns.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return expandVars(parts[2])
		}
		return ""
	})
}

var (
	treeStyles   = []string{"default", "minimal"}
	selectStyles = []string{"default", "arrow"}
	diffModes    = []string{"unified", "side-by-side"}
	diffStyles   = []string{"default", "high-contrast", "monochrome"}
	logLevels    = []string{"debug", "info", "warn", "error"}
)

// Validate checks the configuration, reporting every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if _, err := tui.DefaultTheme.Override(c.Theme); err != nil {
		errs = append(errs, fmt.Errorf("theme: %w", err))
	}
	if !slices.Contains(treeStyles, c.Tree.Style) {
		errs = append(errs, fmt.Errorf("tree.style must be one of: %v", treeStyles))
	}
	if c.LogViewer.LineNumberWidth < 1 || c.LogViewer.LineNumberWidth > 12 {
		errs = append(errs, fmt.Errorf("log_viewer.line_number_width must be between 1 and 12, got %d",
			c.LogViewer.LineNumberWidth))
	}
	if c.LogViewer.HorizontalStep < 1 {
		errs = append(errs, fmt.Errorf("log_viewer.horizontal_step must be positive, got %d",
			c.LogViewer.HorizontalStep))
	}
	if c.Explorer.Root == "" {
		errs = append(errs, errors.New("explorer.root is required"))
	}
	if c.Select.MaxVisible < 1 {
		errs = append(errs, fmt.Errorf("select.max_visible must be positive, got %d", c.Select.MaxVisible))
	}
	if !slices.Contains(selectStyles, c.Select.Style) {
		errs = append(errs, fmt.Errorf("select.style must be one of: %v", selectStyles))
	}
	if !slices.Contains(diffModes, c.Diff.Mode) {
		errs = append(errs, fmt.Errorf("diff.mode must be one of: %v", diffModes))
	}
	if !slices.Contains(diffStyles, c.Diff.Style) {
		errs = append(errs, fmt.Errorf("diff.style must be one of: %v", diffStyles))
	}
	if c.Diff.Context < 0 {
		errs = append(errs, fmt.Errorf("diff.context must not be negative, got %d", c.Diff.Context))
	}
	if (c.Diff.Old == "") != (c.Diff.New == "") {
		errs = append(errs, errors.New("diff.old and diff.new must be set together"))
	}
	if !c.State.Disabled && c.State.Directory == "" {
		errs = append(errs, errors.New("state.directory is required unless state.disabled is set"))
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", logLevels))
	}

	return errors.Join(errs...)
}

// SlogLevel converts the configured level name. Unknown names map to
// info; [Config.Validate] reports them.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
