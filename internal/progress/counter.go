// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import "sync"

var _ Listener = (*Counter)(nil)

// Counter is a Listener that tallies item results and pages.
type Counter struct {
	mu        sync.Mutex
	completed int
	failed    int
	pages     int
	aborted   bool
}

// OnEvent implements Listener.
func (c *Counter) OnEvent(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch event.Type {
	case EventItemCompleted:
		c.completed++
	case EventItemFailed:
		c.failed++
	case EventPageLoaded:
		c.pages++
	case EventAborted:
		c.aborted = true
	}
}

// Completed returns the number of successful items.
func (c *Counter) Completed() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.completed
}

// Failed returns the number of failed items.
func (c *Counter) Failed() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.failed
}

// Pages returns the number of pages loaded.
func (c *Counter) Pages() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pages
}

// Aborted reports whether an EventAborted was seen.
func (c *Counter) Aborted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.aborted
}
