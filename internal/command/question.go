// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package command

import (
	"strings"
)

// Question is asked before Execute unless its flag was given.
// The answer is stored under Key, which is also the flag name.
type Question struct {
	Key     string
	Prompt  string
	Default string
}

// Text returns the prompt shown to the user, "<prompt> [<default>] " when there is a default.
func (q Question) Text() string {
	if q.Default == "" {
		return q.Prompt
	}

	return strings.TrimSpace(q.Prompt) + " [" + q.Default + "] "
}
