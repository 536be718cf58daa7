// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the tuikit demo
// and the widgets it hosts.
//
// Configuration is loaded from a single file specified by either the
// TUIKIT_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search; without a file the program runs on
// [Default]. Files ending in .json or .jsonc are JSON with comments
// (tidwall/jsonc); anything else is YAML.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded, and defaults may
// nest further patterns. No environment variables override config
// values.
//
// [Config.Validate] reports every problem at once through errors.Join,
// including unknown or malformed theme colour overrides.
//
// Key exports:
//
//   - [Config] -- sections theme, tree, log_viewer, explorer, select,
//     diff, state, and log
//   - [Default] -- returns a Config with every field set
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Decode] -- YAML or JSONC by file name, shared with tree files
package config
