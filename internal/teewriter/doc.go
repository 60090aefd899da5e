// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package teewriter turns a stream of console writes into line records.
// Text without a terminator is held back until the line is completed, either by
// a newline written through io.Writer or by an explicit Line call, which lets a
// caller mirror console output into a line-per-record log.
package teewriter
