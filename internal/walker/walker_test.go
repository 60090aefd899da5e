// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package walker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/matt-FFFFFF/adminkit/internal/console"
	"github.com/matt-FFFFFF/adminkit/internal/output"
	"github.com/matt-FFFFFF/adminkit/internal/progress"
	"github.com/matt-FFFFFF/adminkit/internal/timer"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var frozen = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	out    *output.Output
	buf    *bytes.Buffer
	timers *timer.Registry
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	var buf bytes.Buffer

	sink := console.NewStreamSink(&buf)
	sink.SetDecorated(false)

	return fixture{
		out:    output.New(sink, nil),
		buf:    &buf,
		timers: timer.New(timer.WithClock(func() time.Time { return frozen })),
	}
}

func (f fixture) walker(opts ...Option) *Walker {
	return New(f.out, f.timers, opts...)
}

func (f fixture) lines() []string {
	return strings.Split(strings.TrimSuffix(f.buf.String(), "\n"), "\n")
}

// recorder is a callback that remembers the items it saw.
type recorder struct {
	seen []string
	fail map[string]error
}

func (r *recorder) call(_ context.Context, item string) (string, error) {
	r.seen = append(r.seen, item)
	if err, ok := r.fail[item]; ok {
		return "", err
	}

	return "done " + item, nil
}

// slicePager serves fixed pages. Pages are 1-based.
type slicePager struct {
	pages   [][]string
	current int
	loaded  []string
	loadErr map[int]error
	calls   []string
}

func newSlicePager(pages ...[]string) *slicePager {
	return &slicePager{pages: pages, current: 1}
}

func (p *slicePager) LastPageNumber() int { return len(p.pages) }

func (p *slicePager) CurrentPage() int { return p.current }

func (p *slicePager) SetCurrentPage(page int) {
	p.calls = append(p.calls, fmt.Sprintf("set %d", page))
	p.current = page
}

func (p *slicePager) Clear() {
	p.calls = append(p.calls, "clear")
	p.loaded = nil
}

func (p *slicePager) Load(context.Context) error {
	p.calls = append(p.calls, fmt.Sprintf("load %d", p.current))

	if err, ok := p.loadErr[p.current]; ok {
		return err
	}

	if p.current >= 1 && p.current <= len(p.pages) {
		p.loaded = p.pages[p.current-1]
	}

	return nil
}

func (p *slicePager) Items() []string { return p.loaded }

func TestWalk_Flat(t *testing.T) {
	f := newFixture(t)
	rec := &recorder{}

	sum, err := Walk(context.Background(), f.walker(), Slice([]string{"a", "b", "c"}), rec.call)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, rec.seen)
	assert.Equal(t, Summary{Total: 3}, sum)
	assert.Equal(t, []string{
		"|- 1 / 3 -> done a -> 0,00 seconds",
		"|- 2 / 3 -> done b -> 0,00 seconds",
		"|- 3 / 3 -> done c -> 0,00 seconds",
		"",
		"Progress Done! -> 0,00 seconds",
	}, f.lines())
	assert.False(t, f.out.HasError())
}

func TestWalk_IndexIsZeroPadded(t *testing.T) {
	f := newFixture(t)

	items := make([]int, 12)
	for i := range items {
		items[i] = i
	}

	_, err := Walk(context.Background(), f.walker(), Slice(items), func(_ context.Context, i int) (string, error) {
		return fmt.Sprint(i), nil
	})
	require.NoError(t, err)

	lines := f.lines()
	assert.Equal(t, "|- 01 / 12 -> 0 -> 0,00 seconds", lines[0])
	assert.Equal(t, "|- 12 / 12 -> 11 -> 0,00 seconds", lines[11])
}

func TestWalk_FailureContinues(t *testing.T) {
	f := newFixture(t)
	rec := &recorder{fail: map[string]error{"b": errors.New("sku missing")}}

	sum, err := Walk(context.Background(), f.walker(), Slice([]string{"a", "b", "c"}), rec.call)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, rec.seen)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, []string{"2 / 3 -> 0,00 seconds"}, f.out.Errors())
	assert.Equal(t, []string{
		"|- 1 / 3 -> done a -> 0,00 seconds",
		"|- 2 / 3 -> *errors.errorString - sku missing (Code: 0)",
		"File: unknown / Line: 0",
		"Error: 2 / 3 -> 0,00 seconds",
		"|- 3 / 3 -> done c -> 0,00 seconds",
		"",
		"Progress Done! -> 0,00 seconds",
	}, f.lines())
}

func TestWalk_PanicIsItemFailure(t *testing.T) {
	f := newFixture(t)

	var seen []int

	sum, err := Walk(context.Background(), f.walker(), Slice([]int{1, 2, 3}), func(_ context.Context, i int) (string, error) {
		seen = append(seen, i)
		if i == 2 {
			panic("nil order")
		}

		return "ok", nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, seen)
	assert.Equal(t, 1, sum.Failed)
	assert.Contains(t, f.buf.String(), "|- 2 / 3 -> *walker.ItemPanicError - item callback panic: nil order (Code: 0)\n")
	assert.Equal(t, []string{"2 / 3 -> 0,00 seconds"}, f.out.Errors())
}

func TestItemPanicError(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string", value: "x", want: "item callback panic: x"},
		{name: "error", value: cause, want: "item callback panic: boom"},
		{name: "other", value: 42, want: "item callback panic: 42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, (&ItemPanicError{Value: tt.value}).Error())
		})
	}

	require.ErrorIs(t, &ItemPanicError{Value: cause}, cause)
}

func TestWalk_EmptySlice(t *testing.T) {
	f := newFixture(t)
	rec := &recorder{}

	sum, err := Walk(context.Background(), f.walker(), Slice[string](nil), rec.call)
	require.NoError(t, err)

	assert.Empty(t, rec.seen)
	assert.Equal(t, Summary{}, sum)
	assert.Equal(t, "\nProgress Done! -> 0,00 seconds\n", f.buf.String())
}

func TestWalk_MultiPage(t *testing.T) {
	f := newFixture(t)
	rec := &recorder{}
	pager := newSlicePager([]string{"a", "b"}, []string{"c", "d"}, []string{"e"})

	sum, err := Walk(context.Background(), f.walker(), Paged[string](pager), rec.call)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, rec.seen)
	assert.Equal(t, 5, sum.Total)
	assert.Equal(t, 3, sum.Pages)
	assert.Equal(t, []string{
		"clear", "set 1", "load 1",
		"clear", "set 2", "load 2",
		"clear", "set 3", "load 3",
	}, pager.calls)
	assert.Equal(t, []string{
		"|- 1 / 2 -> Page 1 of 3 -> done a -> 0,00 seconds",
		"|- 2 / 2 -> Page 1 of 3 -> done b -> 0,00 seconds",
		"",
		"Progress Done! -> 0,00 seconds",
		"|- 1 / 2 -> Page 2 of 3 -> done c -> 0,00 seconds",
		"|- 2 / 2 -> Page 2 of 3 -> done d -> 0,00 seconds",
		"",
		"Progress Done! -> 0,00 seconds",
		"|- 1 / 1 -> Page 3 of 3 -> done e -> 0,00 seconds",
		"",
		"Progress Done! -> 0,00 seconds",
	}, f.lines())
}

func TestWalk_MultiPageFailureHasNoPagePrefix(t *testing.T) {
	f := newFixture(t)
	rec := &recorder{fail: map[string]error{"c": errors.New("bad")}}
	pager := newSlicePager([]string{"a"}, []string{"c"})

	sum, err := Walk(context.Background(), f.walker(), Paged[string](pager), rec.call)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Failed)
	assert.Contains(t, f.buf.String(), "|- 1 / 1 -> *errors.errorString - bad (Code: 0)\n")
	assert.Equal(t, []string{"1 / 1 -> 0,00 seconds"}, f.out.Errors())
}

func TestWalk_MultiPageStartsAtCurrentPage(t *testing.T) {
	f := newFixture(t)
	rec := &recorder{}
	pager := newSlicePager([]string{"a"}, []string{"b"}, []string{"c"})
	pager.current = 2

	sum, err := Walk(context.Background(), f.walker(), Paged[string](pager), rec.call)
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "c"}, rec.seen)
	assert.Equal(t, 2, sum.Pages)
}

func TestWalk_EmptyPageAborts(t *testing.T) {
	f := newFixture(t)
	rec := &recorder{}
	pager := newSlicePager([]string{"a", "b"}, nil, []string{"c"})

	sum, err := Walk(context.Background(), f.walker(), Paged[string](pager), rec.call)
	require.Error(t, err)

	var perr *PageError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Page)
	assert.Equal(t, 3, perr.LastPage)
	require.ErrorIs(t, err, ErrPageRetrieval)
	assert.Equal(t, "page 2 of 3: failed to retrieve page", err.Error())

	assert.Equal(t, []string{"a", "b"}, rec.seen)
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 1, sum.Pages)
	assert.NotContains(t, pager.calls, "load 3")
}

func TestWalk_PageLoadErrorAborts(t *testing.T) {
	f := newFixture(t)
	rec := &recorder{}
	cause := errors.New("connection reset")
	pager := newSlicePager([]string{"a"}, []string{"b"})
	pager.loadErr = map[int]error{1: cause}

	_, err := Walk(context.Background(), f.walker(), Paged[string](pager), rec.call)

	var perr *PageError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Page)
	require.ErrorIs(t, err, cause)
	assert.Empty(t, rec.seen)
	assert.Empty(t, f.buf.String())
}

func TestWalk_SinglePagePagerIsFlat(t *testing.T) {
	f := newFixture(t)
	rec := &recorder{}
	pager := newSlicePager([]string{"a", "b"})

	sum, err := Walk(context.Background(), f.walker(), Paged[string](pager), rec.call)
	require.NoError(t, err)

	assert.Equal(t, []string{"load 1"}, pager.calls)
	assert.Equal(t, []string{"a", "b"}, rec.seen)
	assert.Equal(t, 1, sum.Pages)
	assert.Equal(t, "|- 1 / 2 -> done a -> 0,00 seconds", f.lines()[0])
}

func TestWalk_SinglePageLoadError(t *testing.T) {
	f := newFixture(t)
	pager := newSlicePager([]string{"a"})
	pager.loadErr = map[int]error{1: errors.New("timeout")}

	_, err := Walk(context.Background(), f.walker(), Paged[string](pager), (&recorder{}).call)

	var perr *PageError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.LastPage)
}

func TestWalk_CancelBetweenItems(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	defer cancel()

	var seen []string

	sum, err := Walk(ctx, f.walker(), Slice([]string{"a", "b", "c"}), func(_ context.Context, item string) (string, error) {
		seen = append(seen, item)
		if item == "b" {
			cancel()
		}

		return "ok", nil
	})

	require.ErrorIs(t, err, ErrWalkCancelled)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a", "b"}, seen)
	assert.Equal(t, 2, sum.Total)
	assert.NotContains(t, f.buf.String(), "Progress Done!")
}

func TestWalk_CancelBetweenPages(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	defer cancel()

	pager := newSlicePager([]string{"a"}, []string{"b"})

	sum, err := Walk(ctx, f.walker(), Paged[string](pager), func(_ context.Context, item string) (string, error) {
		cancel()
		return item, nil
	})

	require.ErrorIs(t, err, ErrWalkCancelled)
	assert.Equal(t, 1, sum.Total)
	assert.NotContains(t, pager.calls, "load 2")
}

func TestWalk_TranscriptMatchesConsole(t *testing.T) {
	f := newFixture(t)

	var transcript []string

	out := output.New(console.NewStreamSink(f.buf), recordingTranscript(&transcript))
	out.SetDecorated(false)

	_, err := Walk(context.Background(), New(out, f.timers), Slice([]string{"a"}), (&recorder{}).call)
	require.NoError(t, err)

	assert.Equal(t, f.lines(), transcript)
}

func TestWalk_Events(t *testing.T) {
	defer goleak.VerifyNone(t)

	stubs := gostub.Stub(&Now, func() time.Time { return frozen })
	defer stubs.Reset()

	f := newFixture(t)
	reporter := progress.NewChannelReporter(context.Background(), 64)
	counter := &progress.Counter{}
	reporter.Listen(counter)

	rec := &recorder{fail: map[string]error{"b": errors.New("x")}}
	pager := newSlicePager([]string{"a", "b"}, []string{"c"})

	_, err := Walk(context.Background(), f.walker(WithReporter(reporter)), Paged[string](pager), rec.call)
	require.NoError(t, err)

	reporter.Close()

	assert.Equal(t, 2, counter.Completed())
	assert.Equal(t, 1, counter.Failed())
	assert.Equal(t, 2, counter.Pages())
	assert.False(t, counter.Aborted())
}

// eventLog keeps every delivered event. It is read only after the reporter is closed.
type eventLog struct {
	events []progress.Event
}

func (l *eventLog) OnEvent(e progress.Event) { l.events = append(l.events, e) }

func TestWalk_EventSequence(t *testing.T) {
	defer goleak.VerifyNone(t)

	stubs := gostub.Stub(&Now, func() time.Time { return frozen })
	defer stubs.Reset()

	f := newFixture(t)
	reporter := progress.NewChannelReporter(context.Background(), 64)
	log := &eventLog{}
	reporter.Listen(log)

	_, err := Walk(context.Background(), f.walker(WithReporter(reporter)), Slice([]string{"a", "b", "c"}), (&recorder{}).call)
	require.NoError(t, err)

	reporter.Close()

	events := log.events

	require.Len(t, events, 5)
	assert.Equal(t, progress.EventStarted, events[0].Type)
	assert.Equal(t, progress.EventCompleted, events[4].Type)

	keyPattern := regexp.MustCompile(fmt.Sprintf(`^1_3_%d_\d+$`, frozen.UnixNano()))

	for i, e := range events {
		assert.Regexp(t, keyPattern, e.Walk)
		assert.Equal(t, frozen, e.Timestamp)
		assert.Equal(t, 3, e.Total)

		if i > 0 && i < 4 {
			assert.Equal(t, progress.EventItemCompleted, e.Type)
			assert.Equal(t, i, e.Index)
		}
	}

	assert.False(t, f.timers.IsRunning(events[0].Walk+":full"))
	_, err = f.timers.Output(events[0].Walk + ":full")
	require.ErrorIs(t, err, timer.ErrNoSuchTimer, "walk timers are forgotten afterwards")
}

func TestNextKeyUnique(t *testing.T) {
	stubs := gostub.Stub(&Now, func() time.Time { return frozen })
	defer stubs.Reset()

	a := nextKey(1, 3)
	b := nextKey(1, 3)

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, fmt.Sprintf("1_3_%d_", frozen.UnixNano())))
}

type sliceTranscript struct {
	lines *[]string
	state output.State
}

func recordingTranscript(lines *[]string) *sliceTranscript {
	return &sliceTranscript{lines: lines}
}

func (s *sliceTranscript) Append(line string) error {
	*s.lines = append(*s.lines, line)
	return nil
}

func (s *sliceTranscript) Close() error {
	s.state = output.StateClosed
	return nil
}

func (s *sliceTranscript) Remove() error { return s.Close() }

func (s *sliceTranscript) Name() string { return "memory" }

func (s *sliceTranscript) State() output.State { return s.state }
