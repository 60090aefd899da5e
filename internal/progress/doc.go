// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress carries item level events from a walk to anything that
// wants to observe it without parsing console output, for example a test or a
// status line. Reporting never blocks the walk: events that cannot be
// delivered are dropped.
package progress
