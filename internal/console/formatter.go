// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package console

import (
	"regexp"
	"strings"
	"sync"

	"github.com/matt-FFFFFF/adminkit/internal/color"
)

// Style names understood by the default formatter.
const (
	StyleInfo     = "info"
	StyleComment  = "comment"
	StyleError    = "error"
	StyleNotice   = "notice"
	StyleQuestion = "question"
)

var tagPattern = regexp.MustCompile(`<(/?)([a-z][a-z0-9_-]*)?>`)

// DefaultStyles returns a fresh copy of the built-in styles.
func DefaultStyles() map[string][]color.Code {
	return map[string][]color.Code{
		StyleInfo:     {color.FgGreen},
		StyleComment:  {color.FgYellow},
		StyleError:    {color.FgWhite, color.BgRed},
		StyleNotice:   {color.FgCyan},
		StyleQuestion: {color.FgBlack, color.BgCyan},
	}
}

// Formatter turns markup into what a sink prints.
type Formatter interface {
	Format(message string) string
	SetDecorated(decorated bool)
	IsDecorated() bool
	SetStyle(name string, codes ...color.Code)
	HasStyle(name string) bool
}

var _ Formatter = (*MarkupFormatter)(nil)

// MarkupFormatter renders <style>...</style> tags as ANSI colour sequences.
// Tags nest; "</>" closes the innermost open tag.
type MarkupFormatter struct {
	mu        sync.RWMutex
	styles    map[string][]color.Code
	decorated bool
}

// NewMarkupFormatter creates a formatter with the default styles.
func NewMarkupFormatter(decorated bool) *MarkupFormatter {
	return &MarkupFormatter{
		styles:    DefaultStyles(),
		decorated: decorated,
	}
}

// Format renders message. When the formatter is not decorated known tags are removed.
func (f *MarkupFormatter) Format(message string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return render(message, f.styles, f.decorated)
}

// Strip removes known tags regardless of decoration.
func (f *MarkupFormatter) Strip(message string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return render(message, f.styles, false)
}

// SetDecorated turns colour rendering on or off.
func (f *MarkupFormatter) SetDecorated(decorated bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.decorated = decorated
}

// IsDecorated reports whether colour rendering is on.
func (f *MarkupFormatter) IsDecorated() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.decorated
}

// SetStyle registers or replaces a style.
func (f *MarkupFormatter) SetStyle(name string, codes ...color.Code) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.styles[name] = codes
}

// HasStyle reports whether a style is registered.
func (f *MarkupFormatter) HasStyle(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	_, ok := f.styles[name]

	return ok
}

// StripTags removes the default style tags from message.
func StripTags(message string) string {
	return render(message, defaultStyles, false)
}

var defaultStyles = DefaultStyles()

func render(message string, styles map[string][]color.Code, decorated bool) string {
	if !strings.Contains(message, "<") {
		return message
	}

	var (
		out   strings.Builder
		stack [][]color.Code
		last  int
	)

	write := func(text string) {
		if text == "" {
			return
		}

		if decorated && len(stack) > 0 {
			out.WriteString(color.Wrap(text, stack[len(stack)-1]...))
			return
		}

		out.WriteString(text)
	}

	for _, m := range tagPattern.FindAllStringSubmatchIndex(message, -1) {
		closing := m[3] > m[2]
		name := ""

		if m[4] >= 0 {
			name = message[m[4]:m[5]]
		}

		codes, known := styles[name]

		switch {
		case closing && (name == "" || known) && len(stack) > 0:
			write(message[last:m[0]])
			stack = stack[:len(stack)-1]
		case !closing && known:
			write(message[last:m[0]])
			stack = append(stack, codes)
		default:
			continue
		}

		last = m[1]
	}

	write(message[last:])

	return out.String()
}
