// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker turns OS termination signals into context cancellation.
// By default it listens for os.Interrupt, syscall.SIGINT, syscall.SIGTERM and syscall.SIGQUIT.
//
// The first signal only notifies, so a running walk can be left to finish its
// current item. The second signal cancels the context.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/matt-FFFFFF/adminkit/internal/ctxlog"
)

var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// Broker receives termination signals.
type Broker struct {
	ch   chan os.Signal
	once sync.Once
	stop func()
}

// New creates a broker that listens for sigs, or the termination signals when none are given.
func New(ctx context.Context, sigs ...os.Signal) *Broker {
	if len(sigs) == 0 {
		sigs = termSignals
	}

	ch := make(chan os.Signal, 1)

	ctxlog.Debug(ctx, "signalbroker", "detail", "creating signal broker", "signals", sigs)
	signal.Notify(ch, sigs...)

	return &Broker{
		ch:   ch,
		stop: func() { signal.Stop(ch) },
	}
}

// Stop stops signal delivery and ends Watch. It is safe to call more than once.
func (b *Broker) Stop() {
	b.once.Do(func() {
		b.stop()
		close(b.ch)
	})
}
