// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package examples holds demo commands that show the command template and the
// progress walker end to end.
package examples
