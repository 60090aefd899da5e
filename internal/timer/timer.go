// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package timer provides a registry of named stopwatches.
//
// Each context name maps to one start/end pair. Reading the duration of a running
// timer stops it. Durations are rendered as localized seconds below a minute and as
// HH:MM:SS above.
package timer

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultContext is the context name used when callers have no better name.
const DefaultContext = "base"

// Thresholds used when formatting durations.
const (
	Minute = time.Minute
	Hour   = time.Hour
	Day    = 24 * time.Hour
)

// ErrNoSuchTimer is returned when a context was never started.
var ErrNoSuchTimer = errors.New("no such timer")

type entry struct {
	startedAt time.Time
	endedAt   time.Time // zero while running
}

// Registry holds the named timers. The zero value is not usable, use New.
type Registry struct {
	mu        sync.Mutex
	entries   map[string]*entry
	now       func() time.Time
	printer   *message.Printer
	unit      string
	clockWrap bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// WithLocale sets the locale used for the decimal and thousands separators.
func WithLocale(tag language.Tag) Option {
	return func(r *Registry) {
		r.printer = message.NewPrinter(tag)
	}
}

// WithUnit sets the label appended to durations below a minute.
func WithUnit(unit string) Option {
	return func(r *Registry) {
		r.unit = unit
	}
}

// WithClockWrap makes clock-style output wrap at 24 hours, as a wall clock would.
func WithClockWrap() Option {
	return func(r *Registry) {
		r.clockWrap = true
	}
}

// New creates a Registry. Defaults are German separators ("5,00 seconds") and no wrap.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]*entry),
		now:     time.Now,
		printer: message.NewPrinter(language.German),
		unit:    "seconds",
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Start records now as the start of name and clears its end.
// Starting an existing context overwrites it.
func (r *Registry) Start(name string) time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.entries[name] = &entry{startedAt: now}

	return now
}

// End records now as the end of name. Calling it again moves the end.
func (r *Registry) End(name string) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[name]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrNoSuchTimer, name)
	}

	e.endedAt = r.now()

	return e.endedAt, nil
}

// IsRunning reports whether name has been started and not ended.
func (r *Registry) IsRunning(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[name]

	return ok && e.endedAt.IsZero()
}

// Forget removes the timers whose names start with prefix.
func (r *Registry) Forget(prefix string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name := range r.entries {
		if strings.HasPrefix(name, prefix) {
			delete(r.entries, name)
		}
	}
}

// Duration returns the elapsed time of name. A running timer is ended first.
func (r *Registry) Duration(name string) (time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNoSuchTimer, name)
	}

	if e.endedAt.IsZero() {
		e.endedAt = r.now()
	}

	d := e.endedAt.Sub(e.startedAt)
	if d < 0 {
		d = -d
	}

	return d, nil
}

// Output formats the duration of name, see Format.
func (r *Registry) Output(name string) (string, error) {
	d, err := r.Duration(name)
	if err != nil {
		return "", err
	}

	return r.Format(d), nil
}

// MustOutput is Output for contexts the caller started itself.
// An unknown context yields "n/a".
func (r *Registry) MustOutput(name string) string {
	s, err := r.Output(name)
	if err != nil {
		return "n/a"
	}

	return s
}

// Format renders d the way Output does.
func (r *Registry) Format(d time.Duration) string {
	if d > Minute {
		return r.clock(d)
	}

	return r.printer.Sprintf("%.2f %s", d.Seconds(), r.unit)
}

func (r *Registry) clock(d time.Duration) string {
	total := int64(d / time.Second)
	hours := total / 3600

	if r.clockWrap {
		hours %= 24
	}

	return fmt.Sprintf("%02d:%02d:%02d", hours, (total/60)%60, total%60)
}
