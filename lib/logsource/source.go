// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logsource

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// maxLineBytes bounds a single line. Longer lines fail the read rather
// than growing the buffer without limit.
const maxLineBytes = 4 << 20

// LinesMsg is one batch of lines from a file.
//
// Reset means the file was truncated or replaced and Lines is its new
// content from the start. Err reports a read failure; Lines is empty
// when Err is set. Source is the follower that produced the batch, so
// a consumer can drop late batches from a follower it replaced.
type LinesMsg struct {
	Path   string
	Lines  []string
	Reset  bool
	Err    error
	Source *Follower
}

// Compressed reports whether Open will decompress path.
func Compressed(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".zst", ".lz4":
		return true
	}
	return false
}

// Open opens path for reading, decompressing by extension.
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gzipReader, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("opening gzip stream %s: %w", path, err)
		}
		return &layeredReader{Reader: gzipReader, closers: []io.Closer{gzipReader, file}}, nil
	case ".zst":
		decoder, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("opening zstd stream %s: %w", path, err)
		}
		return &layeredReader{Reader: decoder, closers: []io.Closer{decoder.IOReadCloser(), file}}, nil
	case ".lz4":
		reader = lz4.NewReader(file)
	default:
		return file, nil
	}
	return &layeredReader{Reader: reader, closers: []io.Closer{file}}, nil
}

// layeredReader closes a decompressor and the file beneath it.
type layeredReader struct {
	io.Reader
	closers []io.Closer
}

func (reader *layeredReader) Close() error {
	var errs []error
	for _, closer := range reader.closers {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}

// ReadLines returns every line of path with line terminators removed.
// CRLF endings are accepted. An unterminated last line is included.
func ReadLines(path string) ([]string, error) {
	reader, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	lines, _, err := scanLines(reader)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

// Snapshot reads the complete lines of path and returns the byte
// offset just past the last newline, which is where a [Follow] should
// resume. An unterminated last line is left out: the follower buffers
// it and delivers it whole once it ends. Compressed files cannot be
// followed, so their last line is always included and the offset is
// the compressed size.
func Snapshot(path string) ([]string, int64, error) {
	reader, err := Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer reader.Close()

	counter := &countingReader{reader: reader}
	lines, tail, err := scanLines(counter)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", path, err)
	}

	if Compressed(path) {
		info, err := os.Stat(path)
		if err != nil {
			return nil, 0, err
		}
		return lines, info.Size(), nil
	}
	if tail > 0 {
		lines = lines[:len(lines)-1]
	}
	return lines, counter.count - int64(tail), nil
}

// scanLines splits reader into lines. tail is the byte length of an
// unterminated last line, or 0 when the input ends with a newline.
func scanLines(reader io.Reader) (lines []string, tail int, err error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	scanner.Split(func(data []byte, atEOF bool) (int, []byte, error) {
		advance, token, err := bufio.ScanLines(data, atEOF)
		if atEOF && advance > 0 && data[advance-1] != '\n' {
			tail = advance
		}
		return advance, token, err
	})
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	return lines, tail, scanner.Err()
}

type countingReader struct {
	reader io.Reader
	count  int64
}

func (counter *countingReader) Read(buffer []byte) (int, error) {
	n, err := counter.reader.Read(buffer)
	counter.count += int64(n)
	return n, err
}
