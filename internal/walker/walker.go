// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package walker

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/matt-FFFFFF/adminkit/internal/ctxlog"
	"github.com/matt-FFFFFF/adminkit/internal/progress"
	"github.com/matt-FFFFFF/adminkit/internal/timer"
)

// Now returns the current time. It seeds walk keys and event timestamps.
var Now = time.Now

// seq disambiguates walks started within the same nanosecond.
var seq atomic.Uint64

// Printer is the output a walk writes to. *output.Output implements it.
type Printer interface {
	Write(msg any)
	Writeln(msg any)
	LogException(err error)
	LogError(msg string)
}

// Callback processes one item and returns the text shown on its progress line.
// A returned error marks the item as failed; the walk continues.
type Callback[T any] func(ctx context.Context, item T) (string, error)

// Summary counts what a walk did.
type Summary struct {
	Total    int           // Items visited
	Failed   int           // Items whose callback failed or panicked
	Pages    int           // Pages loaded, 0 for a slice
	Duration time.Duration // Sum of the flat walk durations
}

func (s *Summary) add(o Summary) {
	s.Total += o.Total
	s.Failed += o.Failed
	s.Duration += o.Duration
}

// Walker runs walks against one output and one timer registry.
type Walker struct {
	out      Printer
	timers   *timer.Registry
	reporter progress.Reporter
}

// Option configures a Walker.
type Option func(*Walker)

// WithReporter sends progress events to r.
func WithReporter(r progress.Reporter) Option {
	return func(w *Walker) {
		if r != nil {
			w.reporter = r
		}
	}
}

// New creates a Walker. Durations are measured and formatted with timers.
func New(out Printer, timers *timer.Registry, opts ...Option) *Walker {
	w := &Walker{
		out:      out,
		timers:   timers,
		reporter: progress.NewNullReporter(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// page identifies the page of a multi-page walk, the zero value for flat walks.
type page struct {
	number int
	last   int
}

func (p page) prefix() string {
	if p.last == 0 {
		return ""
	}

	return fmt.Sprintf("Page %d of %d -> ", p.number, p.last)
}

// Walk calls fn for every item of src in order, printing a progress line per item
// and a closing summary line per flat walk.
// Item failures are printed, counted in the Summary and do not stop the walk.
// The returned error is a *PageError when a page cannot be retrieved, or wraps
// ErrWalkCancelled when ctx is done between items or pages.
func Walk[T any](ctx context.Context, w *Walker, src Source[T], fn Callback[T]) (Summary, error) {
	if src.multiPage() {
		return walkPages(ctx, w, src.pager, fn)
	}

	items := src.items

	if src.pager != nil {
		if err := src.pager.Load(ctx); err != nil {
			perr := &PageError{Page: src.pager.CurrentPage(), LastPage: src.pager.LastPageNumber(), Err: err}
			w.report(progress.Event{Type: progress.EventAborted, Err: perr})

			return Summary{}, perr
		}

		items = src.pager.Items()
	}

	sum, err := walkFlat(ctx, w, items, page{}, fn)
	if src.pager != nil {
		sum.Pages = 1
	}

	return sum, err
}

func walkPages[T any](ctx context.Context, w *Walker, p Pager[T], fn Callback[T]) (Summary, error) {
	var sum Summary

	last := p.LastPageNumber()
	logger := ctxlog.Logger(ctx).With("lastPage", last)

	first := max(p.CurrentPage(), 1)

	for number := first; number <= last; number++ {
		if err := ctx.Err(); err != nil {
			cerr := fmt.Errorf("%w before page %d of %d: %w", ErrWalkCancelled, number, last, err)
			w.report(progress.Event{Type: progress.EventAborted, Page: number, LastPage: last, Err: cerr})

			return sum, cerr
		}

		p.Clear()
		p.SetCurrentPage(number)

		if err := p.Load(ctx); err != nil {
			return sum, w.pageFailed(ctx, number, last, err)
		}

		items := p.Items()
		if len(items) == 0 {
			return sum, w.pageFailed(ctx, number, last, ErrPageRetrieval)
		}

		sum.Pages++

		logger.Debug("page loaded", "page", number, "items", len(items))
		w.report(progress.Event{Type: progress.EventPageLoaded, Page: number, LastPage: last, Total: len(items)})

		pageSum, err := walkFlat(ctx, w, items, page{number: number, last: last}, fn)
		sum.add(pageSum)

		if err != nil {
			return sum, err
		}
	}

	return sum, nil
}

func (w *Walker) pageFailed(ctx context.Context, number, last int, err error) error {
	perr := &PageError{Page: number, LastPage: last, Err: err}

	ctxlog.Logger(ctx).Debug("page retrieval failed", "page", number, "lastPage", last, "error", err)
	w.report(progress.Event{Type: progress.EventAborted, Page: number, LastPage: last, Err: perr})

	return perr
}

func walkFlat[T any](ctx context.Context, w *Walker, items []T, pg page, fn Callback[T]) (Summary, error) {
	n := len(items)
	width := len(strconv.Itoa(n))

	key := nextKey(width, n)
	fullKey := key + ":full"
	rowKey := key + ":row"

	defer w.timers.Forget(key + ":")

	logger := ctxlog.Logger(ctx).With("walk", key)
	logger.Debug("walk started", "items", n, "page", pg.number)

	base := progress.Event{Walk: key, Total: n, Page: pg.number, LastPage: pg.last}

	w.timers.Start(fullKey)
	w.report(with(base, func(e *progress.Event) { e.Type = progress.EventStarted }))

	sum := Summary{}

	for i, item := range items {
		idx := i + 1

		if err := ctx.Err(); err != nil {
			cerr := fmt.Errorf("%w at item %d of %d: %w", ErrWalkCancelled, idx, n, err)

			logger.Debug("walk cancelled", "index", idx)
			w.report(with(base, func(e *progress.Event) {
				e.Type = progress.EventAborted
				e.Index = idx
				e.Err = cerr
			}))

			sum.Duration, _ = w.timers.Duration(fullKey)

			return sum, cerr
		}

		w.timers.Start(rowKey)
		w.out.Write(fmt.Sprintf("|- %0*d / %d -> ", width, idx, n))

		result, err := invoke(ctx, fn, item)
		rowDuration, _ := w.timers.Duration(rowKey)
		rowText := w.timers.Format(rowDuration)

		sum.Total++

		if err != nil {
			sum.Failed++

			w.out.LogException(err)
			w.out.LogError(fmt.Sprintf("%d / %d -> %s", idx, n, rowText))

			logger.Debug("item failed", "index", idx, "error", err)
			w.report(with(base, func(e *progress.Event) {
				e.Type = progress.EventItemFailed
				e.Index = idx
				e.Message = err.Error()
				e.Duration = rowDuration
				e.Err = err
			}))

			continue
		}

		result = pg.prefix() + result

		w.out.Writeln("<comment>" + result + "</comment> -> <info>" + rowText + "</info>")
		w.report(with(base, func(e *progress.Event) {
			e.Type = progress.EventItemCompleted
			e.Index = idx
			e.Message = result
			e.Duration = rowDuration
		}))
	}

	fullDuration, _ := w.timers.Duration(fullKey)
	sum.Duration = fullDuration

	w.out.Writeln("")
	w.out.Writeln("<comment>Progress Done!</comment> -> <info>" + w.timers.Format(fullDuration) + "</info>")

	logger.Debug("walk completed", "items", sum.Total, "failed", sum.Failed, "duration", fullDuration)
	w.report(with(base, func(e *progress.Event) {
		e.Type = progress.EventCompleted
		e.Duration = fullDuration
	}))

	return sum, nil
}

// invoke calls fn, turning a panic into an *ItemPanicError.
func invoke[T any](ctx context.Context, fn Callback[T], item T) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.Logger(ctx).Debug("item callback panicked", "panic", r)
			err = &ItemPanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	return fn(ctx, item)
}

// nextKey returns a timer key unique to this walk: <width>_<count>_<unixnano>_<seq>.
func nextKey(width, n int) string {
	return fmt.Sprintf("%d_%d_%d_%d", width, n, Now().UnixNano(), seq.Add(1))
}

func with(e progress.Event, set func(*progress.Event)) progress.Event {
	set(&e)

	return e
}

func (w *Walker) report(e progress.Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = Now()
	}

	w.reporter.Report(e)
}
