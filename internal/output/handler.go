// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import (
	"context"
	"log/slog"
	"strings"
)

// Handler returns an slog.Handler that prints records through the leveled helpers:
// errors via LogError, warnings via LogNotice, everything else via LogInfo.
// Attributes are appended as key=value.
func (o *Output) Handler() slog.Handler {
	return &handler{out: o}
}

type handler struct {
	out    *Output
	attrs  []slog.Attr
	groups []string
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	if level >= slog.LevelWarn {
		return true
	}

	if level < slog.LevelInfo {
		return h.out.IsDebug()
	}

	return !h.out.IsQuiet()
}

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	sb.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&sb, "", a)
	}

	prefix := ""
	if len(h.groups) > 0 {
		prefix = strings.Join(h.groups, ".") + "."
	}

	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, prefix, a)
		return true
	})

	msg := sb.String()

	switch {
	case r.Level >= slog.LevelError:
		h.out.LogError(msg)
	case r.Level >= slog.LevelWarn:
		h.out.LogNotice(msg)
	default:
		h.out.LogInfo(msg)
	}

	return nil
}

func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(sb, prefix+a.Key+".", ga)
		}

		return
	}

	sb.WriteString(" ")
	sb.WriteString(prefix)
	sb.WriteString(a.Key)
	sb.WriteString("=")
	sb.WriteString(a.Value.String())
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	prefix := ""

	if len(h.groups) > 0 {
		prefix = strings.Join(h.groups, ".") + "."
	}

	c.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		c.attrs = append(c.attrs, slog.Attr{Key: prefix + a.Key, Value: a.Value})
	}

	return &c
}

func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(append([]string(nil), h.groups...), name)

	return &c
}
