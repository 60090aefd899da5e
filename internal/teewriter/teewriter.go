// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teewriter

import (
	"strings"
	"sync"
)

// LineFunc receives one completed line, without its trailing newline.
type LineFunc func(line string) error

// LineTeeWriter collects written text and reports every completed line
// to a LineFunc. It is safe for concurrent use.
type LineTeeWriter struct {
	onLine  LineFunc
	partial strings.Builder // text after the last reported line
	mu      sync.Mutex
}

// New creates a LineTeeWriter reporting lines to onLine.
func New(onLine LineFunc) *LineTeeWriter {
	return &LineTeeWriter{onLine: onLine}
}

// Write implements io.Writer. Every newline in p completes a line.
// It always consumes all of p and returns the first LineFunc error.
func (lt *LineTeeWriter) Write(p []byte) (int, error) {
	return lt.WriteString(string(p))
}

// WriteString writes s, see Write.
func (lt *LineTeeWriter) WriteString(s string) (int, error) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	var firstErr error

	data := s

	for {
		idx := strings.IndexByte(data, '\n')
		if idx < 0 {
			lt.partial.WriteString(data)
			return len(s), firstErr
		}

		lt.partial.WriteString(data[:idx])

		if err := lt.emitLocked(); err != nil && firstErr == nil {
			firstErr = err
		}

		data = data[idx+1:]
	}
}

// Line appends s to the pending text and reports the result as a single line.
// Newlines inside s do not split it.
func (lt *LineTeeWriter) Line(s string) error {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	lt.partial.WriteString(s)

	return lt.emitLocked()
}

// Flush reports the pending text, if any, as a complete line.
func (lt *LineTeeWriter) Flush() error {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	if lt.partial.Len() == 0 {
		return nil
	}

	return lt.emitLocked()
}

// Reset discards the pending text without reporting it.
func (lt *LineTeeWriter) Reset() {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	lt.partial.Reset()
}

func (lt *LineTeeWriter) emitLocked() error {
	line := lt.partial.String()
	lt.partial.Reset()

	if lt.onLine == nil {
		return nil
	}

	return lt.onLine(line)
}
