// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/matt-FFFFFF/adminkit/internal/command"
	"github.com/urfave/cli/v3"
)

var (
	// ErrDuplicateCommand is returned when a name is registered twice.
	ErrDuplicateCommand = errors.New("duplicate command")
	// ErrInvalidDefinition is returned for a definition without a name or Execute.
	ErrInvalidDefinition = errors.New("invalid command definition")
)

// Registry holds command definitions keyed by name.
type Registry map[string]command.Definition

// RegistrationFunc adds one or more definitions to a registry.
type RegistrationFunc func(Registry) error

// New creates a registry and runs every registration function against it.
func New(fns ...RegistrationFunc) (Registry, error) {
	r := make(Registry, len(fns))

	var errs []error

	for _, fn := range fns {
		if err := fn(r); err != nil {
			errs = append(errs, err)
		}
	}

	return r, errors.Join(errs...)
}

// Register adds def under its name.
func (r Registry) Register(def command.Definition) error {
	if def.Name == "" || def.Execute == nil {
		return fmt.Errorf("%w: %q needs a name and an Execute function", ErrInvalidDefinition, def.Name)
	}

	if _, exists := r[def.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, def.Name)
	}

	r[def.Name] = def

	return nil
}

// Get returns the definition registered under name.
func (r Registry) Get(name string) (command.Definition, bool) {
	def, ok := r[name]
	return def, ok
}

// Commands builds a cli command for every definition, sorted by name.
func (r Registry) Commands(opts ...command.Option) []*cli.Command {
	names := slices.Sorted(maps.Keys(r))
	cmds := make([]*cli.Command, 0, len(names))

	for _, name := range names {
		cmds = append(cmds, command.New(r[name], opts...))
	}

	return cmds
}
