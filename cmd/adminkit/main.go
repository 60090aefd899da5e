// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the adminkit command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/adminkit/internal/commandregistry"
	"github.com/matt-FFFFFF/adminkit/internal/ctxlog"
	"github.com/matt-FFFFFF/adminkit/internal/examples"
	"github.com/matt-FFFFFF/adminkit/internal/signalbroker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	broker := signalbroker.New(ctx)
	defer broker.Stop()

	go broker.Watch(ctx, cancel, func(os.Signal) {
		fmt.Fprintln(os.Stderr, "Interrupt received. Send it again to stop after the current item.")
	})

	reg, err := commandregistry.New(
		examples.Register,
	)
	if err != nil {
		ctxlog.Logger(ctx).Error("command registration failed", "error", err)
		os.Exit(1)
	}

	// Exit codes from commands are handled by the cli framework.
	err = newRootCmd(reg).Run(ctx, os.Args)

	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}
}
