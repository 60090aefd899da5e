// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/matt-FFFFFF/adminkit/internal/config"
	"github.com/matt-FFFFFF/adminkit/internal/console"
	"github.com/matt-FFFFFF/adminkit/internal/ctxlog"
	"github.com/matt-FFFFFF/adminkit/internal/output"
	"github.com/matt-FFFFFF/adminkit/internal/progress"
	"github.com/matt-FFFFFF/adminkit/internal/timer"
	"github.com/matt-FFFFFF/adminkit/internal/walker"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Exit codes.
const (
	ExitSuccess = 0
	// ExitFailure is used when Execute returned an error.
	ExitFailure = 1
	// ExitItemErrors is used when Execute succeeded but errors were logged on the way.
	ExitItemErrors = 2
)

const (
	// FullCommandTimer times the command from banner to closing line.
	FullCommandTimer = "full_command"

	flagNoInteraction = "no-interaction"
	flagDiscardLog    = "discard-log"
	bannerLayout      = "02.01.2006 15:04"

	// eventBuffer is the capacity of the progress channel of one run.
	eventBuffer = 256
)

// ErrExecutePanic is wrapped by the error recorded when Execute panics.
var ErrExecutePanic = errors.New("command panicked")

// Now returns the time shown in the banner.
var Now = time.Now

// ExecuteFunc is the body of a command.
type ExecuteFunc func(ctx context.Context, run *Run) error

// Definition describes a command.
type Definition struct {
	Name        string
	Usage       string
	Description string
	Flags       []cli.Flag
	Questions   []Question
	Execute     ExecuteFunc
}

type settings struct {
	prompter  Prompter
	timerOpts []timer.Option
}

// Option configures the commands built by New.
type Option func(*settings)

// WithPrompter sets the prompter used for unanswered questions.
// By default a terminal gets a LinePrompter and anything else a ReaderPrompter.
func WithPrompter(p Prompter) Option {
	return func(s *settings) {
		s.prompter = p
	}
}

// WithTimerOptions adds options to the timer registry, after those from the config.
func WithTimerOptions(opts ...timer.Option) Option {
	return func(s *settings) {
		s.timerOpts = append(s.timerOpts, opts...)
	}
}

// New builds a cli.Command running def.
func New(def Definition, opts ...Option) *cli.Command {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}

	flags := slices.Clone(def.Flags)

	for _, q := range def.Questions {
		flags = append(flags, &cli.StringFlag{
			Name:  q.Key,
			Usage: q.Prompt,
		})
	}

	flags = append(flags,
		&cli.BoolFlag{
			Name:    flagNoInteraction,
			Aliases: []string{"n"},
			Usage:   "Do not ask any question, use the defaults",
		},
		&cli.BoolFlag{
			Name:  flagDiscardLog,
			Usage: "Delete the transcript when the command finishes",
		},
	)

	return &cli.Command{
		Name:        def.Name,
		Usage:       def.Usage,
		Description: def.Description,
		Flags:       flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, def, s)
		},
	}
}

func run(ctx context.Context, cmd *cli.Command, def Definition, s *settings) error {
	cfg := config.FromContext(ctx)
	root := cmd.Root()
	diag := ctxlog.Logger(ctx).With("command", def.Name)

	out, err := newOutput(ctx, cfg, root)
	if err != nil {
		return cli.Exit(fmt.Sprintf("%s: %s", def.Name, err), ExitFailure)
	}

	// At debug verbosity diagnostics go to the console and the transcript.
	if out.IsDebug() {
		ctx = ctxlog.New(ctx, slog.New(out.Handler()))
	}

	logger := ctxlog.Logger(ctx).With("command", def.Name)

	timers := timer.New(append(cfg.TimerOptions(), s.timerOpts...)...)
	timers.Start(FullCommandTimer)

	out.Writeln(fmt.Sprintf("Running %s (%s)", def.Name, Now().Format(bannerLayout)))
	out.Writeln("")

	logger.Debug("command initialized", "transcript", out.FileName())

	reporter := progress.NewChannelReporter(ctx, eventBuffer)
	counter := &progress.Counter{}
	reporter.Listen(counter)

	answers, err := ask(ctx, cmd, def.Questions, out, s)
	if err == nil {
		r := &Run{
			Output:  out,
			Timers:  timers,
			Command: cmd,
			answers: answers,
			walker:  walker.New(out, timers, walker.WithReporter(reporter)),
		}

		err = execute(ctx, def.Execute, r)
	}

	reporter.Close()

	if dropped := reporter.Dropped(); dropped > 0 {
		diag.Warn("progress events dropped, item counts are incomplete", "dropped", dropped)
	}

	if line := itemSummary(counter); line != "" {
		out.Writeln("")
		out.LogNotice(line)
	}

	if err != nil {
		logger.Debug("command failed", "error", err)
		out.LogException(err)
	} else {
		out.Writeln("")
		out.LogSuccess("All Done! -> Duration: " + timers.MustOutput(FullCommandTimer))
	}

	finish(cmd, out, diag)

	switch {
	case err != nil:
		return cli.Exit("", ExitFailure)
	case out.HasError():
		return cli.Exit("", ExitItemErrors)
	default:
		return nil
	}
}

// itemSummary describes what the walks of a run processed, "" when nothing was walked.
func itemSummary(c *progress.Counter) string {
	n := c.Completed() + c.Failed()
	if n == 0 {
		return ""
	}

	line := fmt.Sprintf("%d items, %d failed", n, c.Failed())

	if p := c.Pages(); p > 0 {
		line += fmt.Sprintf(", %d pages", p)
	}

	if c.Aborted() {
		line += ", aborted"
	}

	return line
}

func newOutput(ctx context.Context, cfg *config.Config, root *cli.Command) (*output.Output, error) {
	w := root.Writer
	if w == nil {
		w = os.Stdout
	}

	sink := console.NewStreamSink(w)
	sink.SetVerbosity(cfg.Verbosity)

	if cfg.Decorated != nil {
		sink.SetDecorated(*cfg.Decorated)
	}

	transcript, err := output.NewFileTranscript(output.FsFactory(), cfg.TranscriptDir())
	if err != nil {
		return nil, err
	}

	return output.New(sink, transcript, output.WithLogger(ctxlog.Logger(ctx))), nil
}

// ask resolves every question, from its flag, a prompt or its default.
func ask(ctx context.Context, cmd *cli.Command, questions []Question, out *output.Output, s *settings) (map[string]string, error) {
	answers := make(map[string]string, len(questions))
	pending := make([]Question, 0, len(questions))

	for _, q := range questions {
		if v := cmd.String(q.Key); v != "" {
			answers[q.Key] = v
			continue
		}

		pending = append(pending, q)
	}

	if len(pending) == 0 {
		return answers, nil
	}

	if cmd.Bool(flagNoInteraction) {
		for _, q := range pending {
			answers[q.Key] = q.Default
		}

		return answers, nil
	}

	prompter := s.prompter
	if prompter == nil {
		prompter = defaultPrompter(cmd.Root(), out)
	}

	out.LogInfo("Please fill in the following to continue...")

	for _, q := range pending {
		a, err := prompter.Ask(ctx, q)
		if err != nil {
			return nil, err
		}

		if a == "" {
			a = q.Default
		}

		answers[q.Key] = a
	}

	out.LogEmpty()

	return answers, nil
}

func defaultPrompter(root *cli.Command, out *output.Output) Prompter {
	r := root.Reader
	if r == nil {
		r = os.Stdin
	}

	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return LinePrompter{}
	}

	return NewReaderPrompter(r, out.Writer())
}

// execute calls fn once, turning a panic into an error.
func execute(ctx context.Context, fn ExecuteFunc, r *Run) (err error) {
	if fn == nil {
		return nil
	}

	defer func() {
		if v := recover(); v != nil {
			ctxlog.Logger(ctx).Error("command panicked", "panic", v)

			if e, ok := v.(error); ok {
				err = fmt.Errorf("%w: %w", ErrExecutePanic, e)
				return
			}

			err = fmt.Errorf("%w: %v", ErrExecutePanic, v)
		}
	}()

	return fn(ctx, r)
}

// finish closes the transcript, or deletes it when --discard-log is set.
// logger must not write to out, which is closed here.
func finish(cmd *cli.Command, out *output.Output, logger *slog.Logger) {
	name := out.FileName()

	if cmd.Bool(flagDiscardLog) {
		if err := out.DestroyLog(); err != nil {
			logger.Warn("failed to delete transcript", "file", name, "error", err)
		}

		return
	}

	out.WritelnType("<comment>Log: "+name+"</comment>", console.OutputNormal.At(console.VerbosityVerbose))

	if err := out.Close(); err != nil {
		logger.Warn("failed to close transcript", "file", name, "error", err)
		return
	}

	logger.Info("transcript written", "file", name)
}
