// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/matt-FFFFFF/adminkit/internal/console"
	"github.com/matt-FFFFFF/adminkit/internal/teewriter"
)

// Output tees console writes into a transcript and keeps the list of logged errors.
type Output struct {
	sink       console.Sink
	transcript Transcript
	tee        *teewriter.LineTeeWriter
	logger     *slog.Logger

	mu     sync.Mutex
	errors []string
	logErr error
}

// Option configures an Output.
type Option func(*Output)

// WithLogger sets the diagnostics logger used to report transcript failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *Output) {
		o.logger = l
	}
}

// New creates an Output writing to sink and transcript.
// A nil transcript discards records.
func New(sink console.Sink, transcript Transcript, opts ...Option) *Output {
	if transcript == nil {
		transcript = &discardTranscript{}
	}

	o := &Output{
		sink:       sink,
		transcript: transcript,
		logger:     slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(o)
	}

	o.tee = teewriter.New(o.record)

	return o
}

// NewFile creates an Output whose transcript is a new file under LogDir(appRoot).
func NewFile(sink console.Sink, appRoot string, opts ...Option) (*Output, error) {
	t, err := NewFileTranscript(FsFactory(), LogDir(appRoot))
	if err != nil {
		return nil, err
	}

	return New(sink, t, opts...), nil
}

func (o *Output) record(line string) error {
	err := o.transcript.Append(console.StripTags(line))
	if err == nil {
		return nil
	}

	o.mu.Lock()
	first := o.logErr == nil
	if first {
		o.logErr = err
	}
	o.mu.Unlock()

	if first {
		o.logger.Debug("transcript append failed", "error", err, "closed", errors.Is(err, ErrTranscriptClosed))
	}

	return err
}

func stringify(msg any) string {
	if s, ok := msg.(string); ok {
		return s
	}

	return fmt.Sprintf("%#v", msg)
}

// Write writes msg without a newline.
func (o *Output) Write(msg any) {
	o.WriteNewline(msg, false, console.OutputNormal)
}

// Writeln writes msg followed by a newline.
func (o *Output) Writeln(msg any) {
	o.WriteNewline(msg, true, console.OutputNormal)
}

// WritelnType writes msg and a newline with an explicit output type.
func (o *Output) WritelnType(msg any, typ console.OutputType) {
	o.WriteNewline(msg, true, typ)
}

// WriteNewline writes msg with an explicit output type.
// Records reach the transcript regardless of the console verbosity.
// With newline set, the pending text and msg become one record even when
// msg spans several lines.
func (o *Output) WriteNewline(msg any, newline bool, typ console.OutputType) {
	text := stringify(msg)

	if newline {
		_ = o.tee.Line(text)
	} else {
		_, _ = o.tee.WriteString(text)
	}

	o.sink.Write(text, newline, typ)
}

// Writer returns an io.Writer whose writes go through Write.
func (o *Output) Writer() io.Writer {
	return writerFunc(func(p []byte) (int, error) {
		o.Write(string(p))
		return len(p), nil
	})
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

// Verbosity returns the console verbosity.
func (o *Output) Verbosity() console.Verbosity { return o.sink.Verbosity() }

// SetVerbosity sets the console verbosity.
func (o *Output) SetVerbosity(v console.Verbosity) { o.sink.SetVerbosity(v) }

// IsDecorated reports whether the console renders colour.
func (o *Output) IsDecorated() bool { return o.sink.IsDecorated() }

// SetDecorated turns console colour on or off.
func (o *Output) SetDecorated(decorated bool) { o.sink.SetDecorated(decorated) }

// Formatter returns the console formatter.
func (o *Output) Formatter() console.Formatter { return o.sink.Formatter() }

// SetFormatter replaces the console formatter.
func (o *Output) SetFormatter(f console.Formatter) { o.sink.SetFormatter(f) }

// IsQuiet reports whether the console is quiet.
func (o *Output) IsQuiet() bool { return o.sink.IsQuiet() }

// IsVerbose reports whether the console is at least verbose.
func (o *Output) IsVerbose() bool { return o.sink.IsVerbose() }

// IsVeryVerbose reports whether the console is at least very verbose.
func (o *Output) IsVeryVerbose() bool { return o.sink.IsVeryVerbose() }

// IsDebug reports whether the console is at debug verbosity.
func (o *Output) IsDebug() bool { return o.sink.IsDebug() }

// LogSuccess writes an info-styled line.
func (o *Output) LogSuccess(msg string) {
	o.Writeln("<info>" + msg + "</info>")
}

// LogError remembers msg and writes an error-styled line.
func (o *Output) LogError(msg string) {
	o.mu.Lock()
	o.errors = append(o.errors, msg)
	o.mu.Unlock()

	o.Writeln("<error>Error: " + msg + "</error>")
}

// LogInfo writes a plain line.
func (o *Output) LogInfo(msg string) {
	o.Writeln(msg)
}

// LogNotice writes a notice-styled line.
func (o *Output) LogNotice(msg string) {
	o.Writeln("<notice>" + msg + "</notice>")
}

// LogEmpty writes an empty line.
func (o *Output) LogEmpty() {
	o.LogInfo("")
}

// HasError reports whether LogError was called.
func (o *Output) HasError() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.errors) > 0
}

// Errors returns the logged error messages in call order.
func (o *Output) Errors() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return slices.Clone(o.errors)
}

// FileName returns the transcript name, "" if there is none.
func (o *Output) FileName() string {
	return o.transcript.Name()
}

// TranscriptState returns the transcript lifecycle state.
func (o *Output) TranscriptState() State {
	return o.transcript.State()
}

// Err returns the first transcript failure, if any.
func (o *Output) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.logErr
}

// Close records a pending partial line and closes the transcript, keeping the file.
// Console output keeps working afterwards.
func (o *Output) Close() error {
	flushErr := o.tee.Flush()

	return errors.Join(flushErr, o.transcript.Close())
}

// DestroyLog closes the transcript and deletes its file.
func (o *Output) DestroyLog() error {
	o.tee.Reset()

	return o.transcript.Remove()
}
