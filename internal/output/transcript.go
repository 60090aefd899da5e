// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

const (
	// FilePrefix is the name prefix of transcript files.
	FilePrefix = "console_log_"
	// sevenFiveFive is the mode for the transcript directory.
	sevenFiveFive = 0o755
)

var (
	// ErrTranscriptClosed is returned when appending to a closed transcript.
	ErrTranscriptClosed = errors.New("transcript is closed")
	// ErrTranscriptCreate is returned when the transcript file cannot be created.
	ErrTranscriptCreate = errors.New("failed to create transcript")
)

// FsFactory returns the filesystem transcripts are written to.
// Tests replace it with an in-memory filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// State is the lifecycle state of a transcript.
type State int

// Transcript states.
const (
	StateOpen State = iota
	StateClosed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Transcript is an append-only, line per record log.
type Transcript interface {
	Append(line string) error
	Close() error
	Remove() error
	Name() string
	State() State
}

// LogDir returns the transcript directory for an application root.
func LogDir(appRoot string) string {
	return filepath.Join(appRoot, "var", "log", "tmp")
}

var _ Transcript = (*FileTranscript)(nil)

// FileTranscript writes records to a uniquely named file.
type FileTranscript struct {
	mu    sync.Mutex
	fs    afero.Fs
	file  afero.File
	name  string
	state State
}

// NewFileTranscript creates dir if needed and opens a new console_log_* file in it.
func NewFileTranscript(fs afero.Fs, dir string) (*FileTranscript, error) {
	if err := fs.MkdirAll(dir, sevenFiveFive); err != nil {
		return nil, errors.Join(ErrTranscriptCreate, err)
	}

	f, err := afero.TempFile(fs, dir, FilePrefix)
	if err != nil {
		return nil, errors.Join(ErrTranscriptCreate, err)
	}

	return &FileTranscript{
		fs:   fs,
		file: f,
		name: f.Name(),
	}, nil
}

// Append writes line and a newline as one record.
func (t *FileTranscript) Append(line string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateClosed {
		return ErrTranscriptClosed
	}

	if _, err := io.WriteString(t.file, line+"\n"); err != nil {
		return fmt.Errorf("failed to append to transcript %s: %w", t.name, err)
	}

	return nil
}

// Close closes the file. It is safe to call more than once.
func (t *FileTranscript) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.closeLocked()
}

func (t *FileTranscript) closeLocked() error {
	if t.state == StateClosed {
		return nil
	}

	t.state = StateClosed

	if err := t.file.Close(); err != nil {
		return fmt.Errorf("failed to close transcript %s: %w", t.name, err)
	}

	return nil
}

// Remove closes and deletes the file. Name returns "" afterwards.
func (t *FileTranscript) Remove() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	closeErr := t.closeLocked()

	if t.name == "" {
		return closeErr
	}

	name := t.name
	t.name = ""

	if err := t.fs.Remove(name); err != nil {
		return errors.Join(closeErr, fmt.Errorf("failed to remove transcript %s: %w", name, err))
	}

	return closeErr
}

// Name returns the file name, or "" once removed.
func (t *FileTranscript) Name() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.name
}

// State returns the lifecycle state.
func (t *FileTranscript) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state
}

var _ Transcript = (*discardTranscript)(nil)

type discardTranscript struct {
	mu    sync.Mutex
	state State
}

func (d *discardTranscript) Append(string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateClosed {
		return ErrTranscriptClosed
	}

	return nil
}

func (d *discardTranscript) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state = StateClosed

	return nil
}

func (d *discardTranscript) Remove() error { return d.Close() }

func (d *discardTranscript) Name() string { return "" }

func (d *discardTranscript) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.state
}
