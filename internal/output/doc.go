// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package output provides the dual-sink output used by admin commands.
//
// Everything written to an Output goes to a console.Sink and, one record per
// completed line, to a Transcript file under <app-root>/var/log/tmp/. The leveled
// helpers (LogSuccess, LogError, LogNotice, LogInfo, LogException) apply the
// console markup, and LogError additionally remembers the message so a caller
// can ask HasError after a bulk operation.
package output
