// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"
	"maps"
	"strconv"

	"github.com/matt-FFFFFF/adminkit/internal/output"
	"github.com/matt-FFFFFF/adminkit/internal/timer"
	"github.com/matt-FFFFFF/adminkit/internal/walker"
	"github.com/urfave/cli/v3"
)

// Run is what Execute gets to work with.
type Run struct {
	Output  *output.Output
	Timers  *timer.Registry
	Command *cli.Command

	answers map[string]string
	walker  *walker.Walker
}

// Answer returns the answer to the question with key, "" if there is none.
func (r *Run) Answer(key string) string {
	return r.answers[key]
}

// AnswerInt returns the answer to the question with key as an int.
func (r *Run) AnswerInt(key string) (int, error) {
	v := r.answers[key]

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number: %w", key, v, err)
	}

	return n, nil
}

// Answers returns a copy of all answers by key.
func (r *Run) Answers() map[string]string {
	return maps.Clone(r.answers)
}

// Walker returns a walker printing to Output and timing with Timers.
func (r *Run) Walker() *walker.Walker {
	return r.walker
}
