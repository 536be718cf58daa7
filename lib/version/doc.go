// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for tuikit
// binaries.
//
// Four package-level variables can be injected at build time via
// -ldflags -X:
//
//	go build -ldflags "-X github.com/bureau-foundation/tuikit/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// When GitCommit is not injected, the VCS settings the go tool embeds
// in the binary (vcs.revision, vcs.modified, vcs.time) are used
// instead.
//
//   - [Info] -- "0.1.0-dev (abc1234, 2026-02-10T...)" for --version
//   - [Full] -- Info plus Go version and GOOS/GOARCH
package version
