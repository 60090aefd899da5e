// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package console

import (
	"io"
	"sync"

	"github.com/matt-FFFFFF/adminkit/internal/color"
)

// Verbosity is the amount of output a sink lets through.
type Verbosity int

// Verbosity levels, lowest first.
const (
	VerbosityQuiet       Verbosity = 16
	VerbosityNormal      Verbosity = 32
	VerbosityVerbose     Verbosity = 64
	VerbosityVeryVerbose Verbosity = 128
	VerbosityDebug       Verbosity = 256
)

// OutputType selects how markup in a message is treated.
// A verbosity can be OR-ed in with At to only print the message at that level or above.
type OutputType int

// Output types.
const (
	OutputNormal OutputType = 1 // render markup
	OutputRaw    OutputType = 2 // print as is
	OutputPlain  OutputType = 4 // strip markup

	outputTypeMask = OutputNormal | OutputRaw | OutputPlain
)

// At returns t restricted to sinks whose verbosity is at least v.
func (t OutputType) At(v Verbosity) OutputType {
	return t | OutputType(v)
}

func (t OutputType) split() (OutputType, Verbosity) {
	typ := t & outputTypeMask
	if typ == 0 {
		typ = OutputNormal
	}

	v := Verbosity(t &^ outputTypeMask)
	if v == 0 {
		v = VerbosityNormal
	}

	return typ, v
}

// Sink is a console capable of styled, verbosity-aware output.
type Sink interface {
	Write(text string, newline bool, typ OutputType)
	Writeln(text string, typ OutputType)
	Verbosity() Verbosity
	SetVerbosity(v Verbosity)
	IsDecorated() bool
	SetDecorated(decorated bool)
	Formatter() Formatter
	SetFormatter(f Formatter)
	IsQuiet() bool
	IsVerbose() bool
	IsVeryVerbose() bool
	IsDebug() bool
}

var _ Sink = (*StreamSink)(nil)

// StreamSink is a Sink writing to an io.Writer.
type StreamSink struct {
	mu        sync.Mutex
	w         io.Writer
	verbosity Verbosity
	formatter Formatter
}

// NewStreamSink creates a sink on w with normal verbosity.
// Decoration follows color.Enabled().
func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{
		w:         w,
		verbosity: VerbosityNormal,
		formatter: NewMarkupFormatter(color.Enabled()),
	}
}

// Write prints text, rendering it according to typ.
// Write errors are ignored: a console that cannot be written to has nowhere to report them.
func (s *StreamSink) Write(text string, newline bool, typ OutputType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kind, level := typ.split()
	if level > s.verbosity {
		return
	}

	switch kind {
	case OutputRaw:
	case OutputPlain:
		text = stripWith(s.formatter, text)
	default:
		text = s.formatter.Format(text)
	}

	if newline {
		text += "\n"
	}

	_, _ = io.WriteString(s.w, text)
}

func stripWith(f Formatter, text string) string {
	if mf, ok := f.(*MarkupFormatter); ok {
		return mf.Strip(text)
	}

	return StripTags(text)
}

// Writeln prints text followed by a newline.
func (s *StreamSink) Writeln(text string, typ OutputType) {
	s.Write(text, true, typ)
}

// Verbosity returns the current verbosity.
func (s *StreamSink) Verbosity() Verbosity {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.verbosity
}

// SetVerbosity sets the verbosity.
func (s *StreamSink) SetVerbosity(v Verbosity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.verbosity = v
}

// IsDecorated reports whether markup is rendered as colour.
func (s *StreamSink) IsDecorated() bool {
	return s.Formatter().IsDecorated()
}

// SetDecorated turns colour on or off.
func (s *StreamSink) SetDecorated(decorated bool) {
	s.Formatter().SetDecorated(decorated)
}

// Formatter returns the formatter.
func (s *StreamSink) Formatter() Formatter {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.formatter
}

// SetFormatter replaces the formatter.
func (s *StreamSink) SetFormatter(f Formatter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.formatter = f
}

// IsQuiet reports whether the sink is quiet.
func (s *StreamSink) IsQuiet() bool { return s.Verbosity() == VerbosityQuiet }

// IsVerbose reports whether the sink is at least verbose.
func (s *StreamSink) IsVerbose() bool { return s.Verbosity() >= VerbosityVerbose }

// IsVeryVerbose reports whether the sink is at least very verbose.
func (s *StreamSink) IsVeryVerbose() bool { return s.Verbosity() >= VerbosityVeryVerbose }

// IsDebug reports whether the sink is at debug verbosity.
func (s *StreamSink) IsDebug() bool { return s.Verbosity() >= VerbosityDebug }

// VerbosityFromFlags maps the usual -q and -v/-vv/-vvv flags to a Verbosity.
func VerbosityFromFlags(quiet bool, verbose int) Verbosity {
	switch {
	case quiet:
		return VerbosityQuiet
	case verbose >= 3:
		return VerbosityDebug
	case verbose == 2:
		return VerbosityVeryVerbose
	case verbose == 1:
		return VerbosityVerbose
	default:
		return VerbosityNormal
	}
}
