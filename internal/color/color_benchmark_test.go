// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"testing"
)

// progressLine is a typical item result as printed by a walk.
const progressLine = "Page 12 of 40 -> SKU-00421 indexed"

func BenchmarkWrap(b *testing.B) {
	benchmarks := []struct {
		name  string
		codes []Code
	}{
		{name: "single", codes: []Code{FgYellow}},
		{name: "error style", codes: []Code{FgWhite, BgRed}},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			for b.Loop() {
				Wrap(progressLine, bm.codes...)
			}
		})
	}
}
