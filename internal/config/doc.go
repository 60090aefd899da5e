// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the adminkit settings.
//
// Settings come from an optional YAML file, then the environment, then the
// global command line flags, later sources winning. The resolved Config travels
// to commands in the context.
package config
