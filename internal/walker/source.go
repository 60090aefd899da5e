// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package walker

import "context"

// Pager is a collection that is loaded one page at a time.
type Pager[T any] interface {
	// LastPageNumber returns the number of the last page, 1-based.
	LastPageNumber() int
	// CurrentPage returns the page the next Load retrieves.
	CurrentPage() int
	// SetCurrentPage selects the page the next Load retrieves.
	SetCurrentPage(page int)
	// Clear drops the loaded items.
	Clear()
	// Load retrieves the current page.
	Load(ctx context.Context) error
	// Items returns the items of the loaded page.
	Items() []T
}

// Source is the sequence a walk iterates over, either a slice or a Pager.
type Source[T any] struct {
	items []T
	pager Pager[T]
}

// Slice returns a Source over items, walked in order.
func Slice[T any](items []T) Source[T] {
	return Source[T]{items: items}
}

// Paged returns a Source over the pages of p.
func Paged[T any](p Pager[T]) Source[T] {
	return Source[T]{pager: p}
}

// multiPage reports whether the source needs the page by page driver.
func (s Source[T]) multiPage() bool {
	return s.pager != nil && s.pager.LastPageNumber() > 1
}
