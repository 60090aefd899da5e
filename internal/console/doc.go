// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package console is the terminal side of a command's output.
//
// A Sink writes text with optional newline, honours a verbosity level and renders
// a small markup language through its Formatter:
//
//	<info>green</info> <comment>yellow</comment> <error>white on red</error>
//	<notice>cyan</notice> <question>black on cyan</question>
//
// Tags without a registered style are printed literally. Undecorated sinks and
// OutputPlain writes strip the known tags.
package console
