// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package walker

import (
	"errors"
	"fmt"
)

// ErrPageRetrieval is wrapped by a PageError when a page loads without items.
var ErrPageRetrieval = errors.New("failed to retrieve page")

// ErrWalkCancelled is returned when the context is done before the walk finishes.
var ErrWalkCancelled = errors.New("walk cancelled")

// PageError is returned by Walk when a page cannot be retrieved.
// Items of later pages are not visited.
type PageError struct {
	Page     int
	LastPage int
	Err      error
}

// Error implements the error interface.
func (e *PageError) Error() string {
	return fmt.Sprintf("page %d of %d: %s", e.Page, e.LastPage, e.Err)
}

// Unwrap returns the underlying error.
func (e *PageError) Unwrap() error {
	return e.Err
}

// ItemPanicError is the failure recorded for an item whose callback panicked.
type ItemPanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface.
func (e *ItemPanicError) Error() string {
	prefix := "item callback panic:"

	switch x := e.Value.(type) {
	case string:
		return fmt.Sprintf("%s %s", prefix, x)
	case error:
		return fmt.Sprintf("%s %s", prefix, x.Error())
	default:
		return fmt.Sprintf("%s %v", prefix, x)
	}
}

// Unwrap returns the panic value when it is an error.
func (e *ItemPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}

	return nil
}
