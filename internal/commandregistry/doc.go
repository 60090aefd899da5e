// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandregistry collects command definitions by name and builds the
// cli commands for them.
package commandregistry
