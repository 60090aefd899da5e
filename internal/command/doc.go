// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package command turns a Definition into a urfave/cli command with a fixed
// lifecycle: a timestamped banner, questions answered from flags or prompts,
// a single call to Execute, and a closing line with the total duration. All
// console output is mirrored into a transcript file.
package command
