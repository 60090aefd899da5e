// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-aware logger for diagnostics.
// It uses the slog package for structured logging and supports different log levels.
//
// The level comes from the ADMINKIT_LOG_LEVEL environment variable and defaults to WARN.
// The default handler is a pretty console handler writing to stderr, so diagnostics
// never end up in a command's transcript.
package ctxlog
