// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
)

// WriteFile writes content to name under root, creating parent
// directories, and returns the full path. Fails the test on error.
//
//	path := testutil.WriteFile(t, root, "logs/app.log", []byte("started\n"))
func WriteFile(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, root, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating parent of %s: %v", name, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// Mkdir creates the directory name under root (and its parents) and
// returns the full path. Fails the test on error.
func Mkdir(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, root, name string) string {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("creating directory %s: %v", name, err)
	}
	return path
}
