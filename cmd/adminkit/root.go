// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/matt-FFFFFF/adminkit"
	"github.com/matt-FFFFFF/adminkit/internal/color"
	"github.com/matt-FFFFFF/adminkit/internal/commandregistry"
	"github.com/matt-FFFFFF/adminkit/internal/config"
	"github.com/matt-FFFFFF/adminkit/internal/console"
	"github.com/matt-FFFFFF/adminkit/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

const (
	configFlag  = "config"
	appRootFlag = "app-root"
	noColorFlag = "no-color"
	verboseFlag = "verbose"
	quietFlag   = "quiet"
)

// newRootCmd returns the root command with one subcommand per registered definition.
func newRootCmd(reg commandregistry.Registry) *cli.Command {
	var verbosity int

	return &cli.Command{
		Name:  "adminkit",
		Usage: "adminkit demo:walk --count 20",
		Description: `adminkit runs administrative batch commands. Every command prints a
timestamped banner, asks for missing parameters, walks its items with one timed
progress line each and keeps a transcript of its console output under
<app-root>/var/log/tmp.`,
		Version:   fmt.Sprintf("%s (commit: %s)", adminkit.Version, adminkit.Commit),
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      configFlag,
				Aliases:   []string{"c"},
				Usage:     "Path to the YAML config file",
				TakesFile: true,
				Value:     config.DefaultFileName,
			},
			&cli.StringFlag{
				Name:      appRootFlag,
				Usage:     "Application root, transcripts go to <app-root>/var/log/tmp",
				TakesFile: true,
			},
			&cli.BoolFlag{
				Name:  noColorFlag,
				Usage: "Disable coloured output",
			},
			&cli.BoolFlag{
				Name:    verboseFlag,
				Aliases: []string{"v"},
				Usage:   "Increase verbosity, repeat for more (-vvv also enables debug diagnostics)",
				Config: cli.BoolConfig{
					Count: &verbosity,
				},
			},
			&cli.BoolFlag{
				Name:    quietFlag,
				Aliases: []string{"q"},
				Usage:   "Only print what cannot be suppressed",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := loadConfig(cmd, verbosity)
			if err != nil {
				return ctx, cli.Exit(err.Error(), 1)
			}

			if cfg.Verbosity >= console.VerbosityDebug {
				ctxlog.LevelVar.Set(slog.LevelDebug)
			}

			if cfg.Decorated != nil {
				color.SetEnabled(*cfg.Decorated)
			}

			ctxlog.Debug(ctx, "config loaded", "appRoot", cfg.AppRoot, "transcriptDir", cfg.TranscriptDir())

			return config.NewContext(ctx, cfg), nil
		},
		Commands:              reg.Commands(),
		EnableShellCompletion: true,
	}
}

// loadConfig resolves the config file, then applies the global flags over it.
func loadConfig(cmd *cli.Command, verbosity int) (*config.Config, error) {
	cfg, err := config.Load(cmd.String(configFlag), cmd.IsSet(configFlag))
	if err != nil {
		return nil, err
	}

	if v := cmd.String(appRootFlag); v != "" {
		cfg.AppRoot = v
	}

	if cmd.Bool(noColorFlag) {
		decorated := false
		cfg.Decorated = &decorated
	}

	cfg.Verbosity = console.VerbosityFromFlags(cmd.Bool(quietFlag), verbosity)

	return cfg, nil
}
