// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package plugin

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPluginDir is returned if the plugin directory does not exist or
	// is not a directory.
	ErrNoPluginDir = errors.New("no plugin directory")

	// ErrArity is returned for entry points that take anything else than
	// nothing or the boot configuration.
	ErrArity = errors.New("configure entry point must take 0 or 1 argument")

	// ErrPanic is returned if a unit panicked.
	ErrPanic = errors.New("unit panicked")

	// ErrInvalidUnit is returned for declarative units that cannot be run.
	ErrInvalidUnit = errors.New("invalid unit")

	// ErrUndefinedValue is returned if a declarative unit references a
	// config key that does not exist.
	ErrUndefinedValue = errors.New("undefined config value")
)

// UnitError wraps errors of a single unit.
type UnitError struct {
	Path string
	Err  error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *UnitError) Unwrap() error {
	return e.Err
}
