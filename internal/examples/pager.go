// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package examples

import (
	"context"

	"github.com/matt-FFFFFF/adminkit/internal/walker"
)

var _ walker.Pager[int] = (*MemoryPager[int])(nil)

// MemoryPager pages over a slice held in memory.
type MemoryPager[T any] struct {
	items    []T
	pageSize int
	current  int
	loaded   []T
}

// NewMemoryPager creates a pager over items. A pageSize below 1 puts everything on one page.
func NewMemoryPager[T any](items []T, pageSize int) *MemoryPager[T] {
	if pageSize < 1 {
		pageSize = max(len(items), 1)
	}

	return &MemoryPager[T]{items: items, pageSize: pageSize, current: 1}
}

// LastPageNumber returns the number of pages, at least 1.
func (p *MemoryPager[T]) LastPageNumber() int {
	return max((len(p.items)+p.pageSize-1)/p.pageSize, 1)
}

// CurrentPage returns the page the next Load retrieves.
func (p *MemoryPager[T]) CurrentPage() int { return p.current }

// SetCurrentPage selects the page the next Load retrieves.
func (p *MemoryPager[T]) SetCurrentPage(page int) { p.current = page }

// Clear drops the loaded items.
func (p *MemoryPager[T]) Clear() { p.loaded = nil }

// Load retrieves the current page. A page past the end loads empty.
func (p *MemoryPager[T]) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := (p.current - 1) * p.pageSize
	if p.current < 1 || start >= len(p.items) {
		p.loaded = nil
		return nil
	}

	end := min(start+p.pageSize, len(p.items))
	p.loaded = p.items[start:end]

	return nil
}

// Items returns the loaded page.
func (p *MemoryPager[T]) Items() []T { return p.loaded }
