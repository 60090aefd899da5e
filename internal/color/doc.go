// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color holds ANSI SGR codes and wraps strings in them.
//
// Enabled is detected once at start-up from NO_COLOR, TERM, FORCE_COLOR and
// whether stdout is a terminal (golang.org/x/term). The --no-color flag and the
// decorated config setting override it with SetEnabled.
package color
