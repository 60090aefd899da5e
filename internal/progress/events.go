// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event is a single update from a walk.
type Event struct {
	Walk      string        // Timer key of the walk that emitted the event
	Type      EventType     // What happened
	Index     int           // 1-based item index within the current page
	Total     int           // Number of items in the current page
	Page      int           // Current page, 0 for flat walks
	LastPage  int           // Last page number, 0 for flat walks
	Message   string        // Callback result or error text
	Duration  time.Duration // Row duration for item events, full duration for Completed
	Err       error         // Failure cause for ItemFailed and Aborted
	Timestamp time.Time     // When the event occurred
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventStarted indicates a walk over a page of items has begun.
	EventStarted EventType = iota
	// EventItemCompleted indicates the callback returned a result.
	EventItemCompleted
	// EventItemFailed indicates the callback returned an error or panicked.
	EventItemFailed
	// EventPageLoaded indicates a page was retrieved from a pager.
	EventPageLoaded
	// EventCompleted indicates the walk finished.
	EventCompleted
	// EventAborted indicates the walk stopped on a fatal error.
	EventAborted
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventStarted:
		return "started"
	case EventItemCompleted:
		return "item-completed"
	case EventItemFailed:
		return "item-failed"
	case EventPageLoaded:
		return "page-loaded"
	case EventCompleted:
		return "completed"
	case EventAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Reporter is the interface for sending progress events.
type Reporter interface {
	// Report sends an event. Implementations must not block.
	Report(event Event)
	// Close signals that no more events will be sent and cleans up resources.
	Close()
}

// Listener receives progress events.
type Listener interface {
	// OnEvent is called for each delivered event, in order.
	OnEvent(event Event)
}

// NullReporter is a no-op Reporter.
type NullReporter struct{}

// Report does nothing.
func (nr *NullReporter) Report(Event) {}

// Close does nothing.
func (nr *NullReporter) Close() {}

// NewNullReporter creates a new NullReporter.
func NewNullReporter() Reporter {
	return &NullReporter{}
}
