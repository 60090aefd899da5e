// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package examples

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPager_LastPageNumber(t *testing.T) {
	tests := []struct {
		name     string
		items    int
		pageSize int
		want     int
	}{
		{name: "empty", items: 0, pageSize: 10, want: 1},
		{name: "exact", items: 20, pageSize: 10, want: 2},
		{name: "remainder", items: 21, pageSize: 10, want: 3},
		{name: "no page size", items: 21, pageSize: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewMemoryPager(make([]int, tt.items), tt.pageSize)
			assert.Equal(t, tt.want, p.LastPageNumber())
		})
	}
}

func TestMemoryPager_Load(t *testing.T) {
	p := NewMemoryPager([]int{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, 1, p.CurrentPage())

	require.NoError(t, p.Load(context.Background()))
	assert.Equal(t, []int{1, 2}, p.Items())

	p.Clear()
	assert.Empty(t, p.Items())

	p.SetCurrentPage(3)
	require.NoError(t, p.Load(context.Background()))
	assert.Equal(t, []int{5}, p.Items())

	p.SetCurrentPage(4)
	require.NoError(t, p.Load(context.Background()))
	assert.Empty(t, p.Items())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, p.Load(ctx), context.Canceled)
}
