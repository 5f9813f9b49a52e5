// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package plugin

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aibor/genpack-init/bootconfig"
	"github.com/aibor/genpack-init/capability"
)

// DefaultDir is the directory units are loaded from.
const DefaultDir = "/usr/lib/genpack-init"

// Loader runs all units of a directory.
type Loader struct {
	// Openers by file extension. Files with other extensions are ignored.
	Openers map[string]Opener
}

// NewLoader creates a [Loader] for compiled Go plugins and declarative units.
// Declarative units call capabilities of the given registry.
func NewLoader(registry *capability.Registry) *Loader {
	declarative := &Declarative{Registry: registry}

	return &Loader{
		Openers: map[string]Opener{
			".so":   OpenGoPlugin,
			".yaml": declarative.Open,
			".yml":  declarative.Open,
		},
	}
}

// Run runs all units in the given directory.
//
// Every unit is attempted exactly once. Failing and panicking units are
// logged and recorded in the returned [Report]. An error is returned only if
// the directory cannot be read. It wraps [ErrNoPluginDir] if the directory is
// missing.
func (l *Loader) Run(dir string, cfg *bootconfig.Config) (Report, error) {
	units, err := Discover(dir, l.Openers)
	if err != nil {
		return nil, err
	}

	slog.Debug("Plugin units found",
		slog.String("dir", dir),
		slog.Int("count", len(units)),
	)

	report := make(Report, 0, len(units))

	for _, unit := range units {
		result := l.runUnit(unit, cfg)
		logResult(result)

		report = append(report, result)
	}

	slog.Info("Plugins done",
		slog.Int(string(StatusRan), report.Count(StatusRan)),
		slog.Int(string(StatusSkipped), report.Count(StatusSkipped)),
		slog.Int(string(StatusFailed), report.Count(StatusFailed)),
	)

	return report, nil
}

func (l *Loader) runUnit(unit Unit, cfg *bootconfig.Config) (result Result) {
	result.Unit = unit

	defer func() {
		rec := recover()
		if rec == nil {
			return
		}

		var err error
		if recoveredErr, ok := rec.(error); ok {
			err = fmt.Errorf("%w: %w", ErrPanic, recoveredErr)
		} else {
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}

		result.Status = StatusFailed
		result.Err = &UnitError{Path: unit.Path, Err: err}
	}()

	slog.Debug("Load unit", slog.String("unit", unit.Path))

	symbol, found, err := l.Openers[unit.Kind](unit.Path)

	switch {
	case errors.Is(err, ErrArity):
		result.Status = StatusSkipped
		result.Err = &UnitError{Path: unit.Path, Err: err}

		return result
	case err != nil:
		result.Status = StatusFailed
		result.Err = &UnitError{Path: unit.Path, Err: err}

		return result
	case !found:
		result.Status = StatusSkipped
		return result
	}

	entry, err := Classify(symbol)
	if err != nil {
		result.Status = StatusSkipped
		result.Err = &UnitError{Path: unit.Path, Err: err}

		return result
	}

	result.Kind = entry.Kind

	slog.Debug("Run unit",
		slog.String("unit", unit.Path),
		slog.String("kind", entry.Kind.String()),
	)

	if err := entry.Invoke(cfg); err != nil {
		result.Status = StatusFailed
		result.Err = &UnitError{Path: unit.Path, Err: err}

		return result
	}

	result.Status = StatusRan

	return result
}

func logResult(result Result) {
	unit := slog.String("unit", result.Unit.Path)

	switch {
	case result.Status == StatusRan:
		slog.Debug("Unit done", unit)
	case result.Err == nil:
		slog.Info("No configure entry point found, skipping", unit)
	default:
		slog.Error("Unit "+string(result.Status), unit, slog.Any("error", result.Err))
	}
}
