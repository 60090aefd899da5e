// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/peterh/liner"
)

var (
	// ErrPromptAborted is returned when the user aborts a prompt with Ctrl+C.
	ErrPromptAborted = errors.New("prompt aborted")
	// ErrNoAnswer is returned when the input ends before a question was answered.
	ErrNoAnswer = errors.New("no answer")
)

// Prompter asks a question and returns the raw answer.
// An empty answer means the default applies.
type Prompter interface {
	Ask(ctx context.Context, q Question) (string, error)
}

var _ Prompter = (*LinePrompter)(nil)

// LinePrompter prompts on the terminal with line editing.
type LinePrompter struct{}

// Ask implements Prompter.
func (LinePrompter) Ask(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	line := liner.NewLiner()
	defer func() {
		_ = line.Close()
	}()

	line.SetCtrlCAborts(true)

	answer, err := line.Prompt(q.Text())
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", fmt.Errorf("%w: %s", ErrPromptAborted, q.Key)
		}

		return "", fmt.Errorf("failed to read answer for %s: %w", q.Key, err)
	}

	return strings.TrimSpace(answer), nil
}

var _ Prompter = (*ReaderPrompter)(nil)

// ReaderPrompter reads one answer per line from r, for piped input and tests.
// Prompts and answers are echoed to w.
type ReaderPrompter struct {
	mu sync.Mutex
	r  *bufio.Reader
	w  io.Writer
}

// NewReaderPrompter creates a ReaderPrompter. w may be nil.
func NewReaderPrompter(r io.Reader, w io.Writer) *ReaderPrompter {
	if w == nil {
		w = io.Discard
	}

	return &ReaderPrompter{r: bufio.NewReader(r), w: w}
}

// Ask implements Prompter.
func (p *ReaderPrompter) Ask(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = io.WriteString(p.w, q.Text())

	answer, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && answer != "") {
		_, _ = io.WriteString(p.w, "\n")

		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: %s", ErrNoAnswer, q.Key)
		}

		return "", fmt.Errorf("failed to read answer for %s: %w", q.Key, err)
	}

	answer = strings.TrimRight(answer, "\r\n")
	_, _ = io.WriteString(p.w, answer+"\n")

	return strings.TrimSpace(answer), nil
}
