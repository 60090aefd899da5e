// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/term"
)

// Code represents an ANSI SGR parameter.
type Code int

// Environment variables consulted by colour detection.
const (
	// NoColor disables colour output when set to any value.
	NoColor = "NO_COLOR"
	// ForceColor enables colour output even when stdout is not a terminal.
	ForceColor = "FORCE_COLOR"
	// Term set to "dumb" disables colour output.
	Term = "TERM"
)

const (
	csi      = "\033["
	sgrEnd   = "m"
	resetSeq = csi + "0" + sgrEnd
)

// Attributes.
const (
	Reset Code = iota
	Bold
	Faint
	Italic
	Underline
)

// Foreground colours.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Bright foreground colours.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

// Background colours.
const (
	BgBlack Code = iota + 40
	BgRed
	BgGreen
	BgYellow
	BgBlue
	BgMagenta
	BgCyan
	BgWhite
)

var enabled atomic.Bool

func init() {
	enabled.Store(detect(os.Getenv, os.Stdout))
}

// Wrap surrounds str with the sequence for codes and a reset.
// It does not look at Enabled; the caller decides whether to decorate.
func Wrap(str string, codes ...Code) string {
	if len(codes) == 0 {
		return str
	}

	var sb strings.Builder

	sb.Grow(len(str) + len(csi) + 3*len(codes) + len(resetSeq))
	writeSequence(&sb, codes)
	sb.WriteString(str)
	sb.WriteString(resetSeq)

	return sb.String()
}

func writeSequence(sb *strings.Builder, codes []Code) {
	sb.WriteString(csi)

	for i, code := range codes {
		if i > 0 {
			sb.WriteByte(';')
		}

		sb.WriteString(strconv.Itoa(int(code)))
	}

	sb.WriteString(sgrEnd)
}

// Enabled reports whether new consoles should render colour.
// NO_COLOR always wins, then TERM=dumb, then FORCE_COLOR, then whether stdout is a terminal.
func Enabled() bool {
	return enabled.Load()
}

// SetEnabled overrides the detected setting, e.g. for --no-color.
func SetEnabled(v bool) {
	enabled.Store(v)
}

// detect decides colour support from the environment and the output file.
func detect(getenv func(string) string, out *os.File) bool {
	if getenv(NoColor) != "" {
		return false
	}

	if getenv(Term) == "dumb" {
		return false
	}

	if getenv(ForceColor) != "" {
		return true
	}

	return out != nil && term.IsTerminal(int(out.Fd()))
}
