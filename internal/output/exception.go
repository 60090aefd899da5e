// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	pkgerrors "github.com/pkg/errors"
)

// Coder is implemented by errors that carry a numeric code.
type Coder interface {
	Code() int
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// LogException writes err as two error lines, kind/message/code and file/line,
// followed by the nested messages when err aggregates several errors.
func (o *Output) LogException(err error) {
	if err == nil {
		return
	}

	file, line := Location(err)
	nested := Nested(err)

	o.Writeln(fmt.Sprintf("<error>%s - %s (Code: %d)</error>", Kind(err), Headline(err), Code(err)))
	o.Writeln(fmt.Sprintf("<error>File: %s / Line: %d</error>", file, line))

	if len(nested) == 0 {
		return
	}

	o.Writeln("")
	o.Writeln("The following errors occured:")

	for _, e := range nested {
		o.Writeln("- " + e.Error())
	}

	o.Writeln("")
}

// Headline returns a single line describing err. Aggregates are summarised by
// their size, other messages are cut at the first newline.
func Headline(err error) string {
	if n := len(Nested(err)); n > 0 {
		if n == 1 {
			return "1 error occurred"
		}

		return fmt.Sprintf("%d errors occurred", n)
	}

	msg, _, _ := strings.Cut(err.Error(), "\n")

	return msg
}

// Kind returns the Go type of err. Stack-only wrappers from github.com/pkg/errors
// are looked through so the kind names the error that was actually raised.
func Kind(err error) string {
	for {
		if _, ok := err.(stackTracer); !ok {
			break
		}

		inner := errors.Unwrap(err)
		if inner == nil || inner.Error() != err.Error() {
			break
		}

		err = inner
	}

	return fmt.Sprintf("%T", err)
}

// Code returns the code of the first Coder in err's chain, or 0.
func Code(err error) int {
	var c Coder
	if errors.As(err, &c) {
		return c.Code()
	}

	return 0
}

// Location returns the file and line where err was created, when err carries a
// github.com/pkg/errors stack trace. Otherwise it returns "unknown" and 0.
func Location(err error) (string, int) {
	var st stackTracer
	if !errors.As(err, &st) {
		return "unknown", 0
	}

	trace := st.StackTrace()
	if len(trace) == 0 {
		return "unknown", 0
	}

	frame := trace[0]

	// %+s renders "function\n\tpath/to/file.go".
	file := fmt.Sprintf("%+s", frame)
	if i := strings.LastIndex(file, "\n\t"); i >= 0 {
		file = file[i+2:]
	}

	line, convErr := strconv.Atoi(fmt.Sprintf("%d", frame))
	if convErr != nil {
		return file, 0
	}

	return file, line
}

// Nested returns the errors aggregated by err: the members of a
// *multierror.Error, or the result of an Unwrap() []error method (errors.Join).
// It returns nil for ordinary errors.
func Nested(err error) []error {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		return merr.WrappedErrors()
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}

	return nil
}
