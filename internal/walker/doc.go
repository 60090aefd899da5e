// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package walker applies a callback to every item of a sequence and prints one
// timed progress line per item.
//
// A flat walk over three items looks like this:
//
//	|- 1 / 3 -> imported -> 0,01 seconds
//	|- 2 / 3 -> *errors.errorString - sku missing (Code: 0)
//	File: unknown / Line: 0
//	Error: 2 / 3 -> 0,00 seconds
//	|- 3 / 3 -> imported -> 0,02 seconds
//
//	Progress Done! -> 0,03 seconds
//
// A failing item is logged and counted, the walk carries on. Paged sources with
// more than one page are walked page by page, each page as its own flat walk
// with results prefixed "Page p of m -> ". A page that fails to load, or loads
// empty, stops the walk.
package walker
