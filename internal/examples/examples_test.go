// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package examples

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matt-FFFFFF/adminkit/internal/command"
	"github.com/matt-FFFFFF/adminkit/internal/commandregistry"
	"github.com/matt-FFFFFF/adminkit/internal/config"
	"github.com/matt-FFFFFF/adminkit/internal/output"
	"github.com/matt-FFFFFF/adminkit/internal/timer"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// runDemo runs def non-interactively and returns the console output and exit code.
func runDemo(t *testing.T, def command.Definition, args ...string) (string, int) {
	t.Helper()

	stubs := gostub.Stub(&output.FsFactory, afero.NewMemMapFs)
	t.Cleanup(stubs.Reset)

	decorated := false
	cfg := config.Default()
	cfg.Decorated = &decorated
	ctx := config.NewContext(context.Background(), cfg)

	frozen := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer

	code := 0

	cmd := command.New(def, command.WithTimerOptions(timer.WithClock(func() time.Time { return frozen })))
	cmd.Writer = &buf
	cmd.ExitErrHandler = func(_ context.Context, _ *cli.Command, err error) {
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			code = ec.ExitCode()
		}
	}

	_ = cmd.Run(ctx, append([]string{def.Name, "--no-interaction"}, args...))

	return buf.String(), code
}

func TestRegister(t *testing.T) {
	r, err := commandregistry.New(Register)
	require.NoError(t, err)

	for _, name := range []string{"demo:walk", "demo:pages", "demo:files"} {
		_, ok := r.Get(name)
		assert.True(t, ok, name)
	}

	require.ErrorIs(t, Register(r), commandregistry.ErrDuplicateCommand)
}

func TestWalkDemo(t *testing.T) {
	out, code := runDemo(t, Walk(), "--count", "7", "--fail-every", "3")

	assert.Equal(t, command.ExitItemErrors, code)
	assert.Contains(t, out, "|- 1 / 7 -> item 1 processed -> 0,00 seconds\n")
	assert.Contains(t, out, "|- 3 / 7 -> *errors.fundamental - item 3 rejected (Code: 0)\n")
	assert.Contains(t, out, "examples.go / Line: ")
	assert.Contains(t, out, "Error: 6 / 7 -> 0,00 seconds\n")
	assert.Equal(t, 2, strings.Count(out, "Error: "))
	assert.Contains(t, out, "\n7 items, 2 failed\n")
	assert.Contains(t, out, "All Done! -> Duration: 0,00 seconds\n")
}

func TestWalkDemo_Defaults(t *testing.T) {
	out, code := runDemo(t, Walk())

	assert.Equal(t, command.ExitSuccess, code)
	assert.Contains(t, out, "|- 10 / 10 -> item 10 processed")
	assert.Contains(t, out, "|- 01 / 10 -> item 1 processed")
}

func TestWalkDemo_BadAnswer(t *testing.T) {
	out, code := runDemo(t, Walk(), "--count", "many")

	assert.Equal(t, command.ExitFailure, code)
	assert.Contains(t, out, `count: "many" is not a number`)
	assert.NotContains(t, out, "All Done!")
}

func TestPagesDemo(t *testing.T) {
	out, code := runDemo(t, Pages(), "--total", "5", "--page-size", "2")

	assert.Equal(t, command.ExitSuccess, code)
	assert.Contains(t, out, "|- 1 / 2 -> Page 1 of 3 -> SKU-00001 indexed -> 0,00 seconds\n")
	assert.Contains(t, out, "|- 1 / 1 -> Page 3 of 3 -> SKU-00005 indexed -> 0,00 seconds\n")
	assert.Equal(t, 3, strings.Count(out, "Progress Done!"))
	assert.Contains(t, out, "5 items on 3 pages\n")
	assert.Contains(t, out, "\n5 items, 0 failed, 3 pages\n\nAll Done!")
}

func TestPagesDemo_EmptyIsSinglePage(t *testing.T) {
	out, code := runDemo(t, Pages(), "--total", "0")

	assert.Equal(t, command.ExitSuccess, code)
	assert.Contains(t, out, "0 items on 1 pages\n")
}

func TestFilesDemo(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/b.csv", []byte("12345"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/data/a.csv", []byte("1"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/data/c.txt", []byte("ignored"), 0o644))

	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	out, code := runDemo(t, Files(), "--dir", "/data", "--pattern", "*.csv", "--page-size", "1")

	assert.Equal(t, command.ExitSuccess, code)
	assert.Contains(t, out, "|- 1 / 1 -> Page 1 of 2 -> /data/a.csv (1 bytes) -> 0,00 seconds\n")
	assert.Contains(t, out, "|- 1 / 1 -> Page 2 of 2 -> /data/b.csv (5 bytes) -> 0,00 seconds\n")
	assert.NotContains(t, out, "c.txt")
}

func TestFilesDemo_NoMatch(t *testing.T) {
	stubs := gostub.Stub(&FsFactory, afero.NewMemMapFs)
	defer stubs.Reset()

	out, code := runDemo(t, Files(), "--dir", "/nowhere")

	assert.Equal(t, command.ExitSuccess, code)
	assert.Contains(t, out, "No files matched\n")
}
