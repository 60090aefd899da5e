// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// logLevelEnvVar selects the diagnostic log level, e.g. DEBUG or info+2.
const logLevelEnvVar = "ADMINKIT_LOG_LEVEL"

type loggerKey struct{}

// LevelVar is shared by the package loggers so the level can be changed at runtime,
// e.g. by the --verbose flag.
var LevelVar = &slog.LevelVar{}

// DefaultLogger writes human readable diagnostics to stderr.
// Stdout belongs to the command output and its transcript.
var DefaultLogger = slog.New(NewPrettyHandler(&slog.HandlerOptions{
	Level: LevelVar,
},
	WithAutoColour(),
	WithDestinationWriter(os.Stderr),
))

// JSONLogger writes diagnostics as JSON lines to stderr.
var JSONLogger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
	Level: LevelVar,
}))

func init() {
	LevelVar.Set(parseLevel(os.Getenv(logLevelEnvVar)))
}

// New returns a copy of ctx carrying logger.
// If logger is nil, DefaultLogger is used.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger from the context, or the default logger if not found.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// With returns a copy of ctx whose logger carries the given attributes.
func With(ctx context.Context, args ...any) context.Context {
	return New(ctx, Logger(ctx).With(args...))
}

// Info logs an info message with the given context.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Info(msg, args...)
}

// Debug logs a debug message with the given context.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Debug(msg, args...)
}

// Warn logs a warning message with the given context.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Warn(msg, args...)
}

// Error logs an error message with the given context.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Error(msg, args...)
}

// parseLevel accepts the slog level names in any case, with an optional offset
// such as "debug-2". Anything unparsable falls back to Warn.
func parseLevel(v string) slog.Level {
	var lvl slog.Level
	if v == "" || lvl.UnmarshalText([]byte(strings.TrimSpace(v))) != nil {
		return slog.LevelWarn
	}

	return lvl
}
