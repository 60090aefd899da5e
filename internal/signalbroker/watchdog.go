// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/adminkit/internal/ctxlog"
)

// Watch handles signals until ctx is done, the broker is stopped or a second
// signal arrives. notify, which may be nil, is called for the first signal.
// The second signal cancels the context through cancel.
func (b *Broker) Watch(ctx context.Context, cancel context.CancelFunc, notify func(os.Signal)) {
	received := 0

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-b.ch:
			if !ok {
				return
			}

			received++

			if received > 1 {
				ctxlog.Warn(ctx, "watchdog", "detail", "received second signal, cancelling", "signal", sig.String())
				cancel()

				return
			}

			ctxlog.Warn(ctx, "watchdog", "detail", "received first signal, waiting for another to cancel", "signal", sig.String())

			if notify != nil {
				notify(sig)
			}
		}
	}
}
