// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aibor/genpack-init/capability"
	"github.com/aibor/genpack-init/internal/coldplug"
	"github.com/aibor/genpack-init/internal/plugin"
)

// Func is a stage of the boot sequence.
type Func func(*State) error

// Options configure the boot sequence.
type Options struct {
	// ConfigFile is the boot configuration. If empty, it is looked up in
	// the default directories.
	ConfigFile string

	// PluginDir is the directory plugin units are loaded from.
	PluginDir string

	// LogFile is truncated and written in addition to stderr. Empty for
	// stderr only.
	LogFile string

	// DeviceRoot is the directory tree scanned by coldplug.
	DeviceRoot string

	// MockColdplug replaces coldplug by a no-op.
	MockColdplug bool

	// Debug enables debug logging regardless of the config.
	Debug bool

	// MountPoints are mounted in the init role before capabilities are
	// registered.
	MountPoints MountPoints

	// InitPaths are tried in order on hand-off.
	InitPaths []string

	// Registry the capabilities are registered in. Defaults to
	// [capability.Default].
	Registry *capability.Registry

	// Stderr is the log output in addition to the log file. Defaults to
	// [os.Stderr].
	Stderr io.Writer

	// AfterPlugins runs after all plugins. It may be nil.
	AfterPlugins Func
}

// DefaultInitPaths are the init programs tried on hand-off.
func DefaultInitPaths() []string {
	return []string{"/sbin/init", "/usr/bin/init"}
}

// InitOptions returns the options of the init role.
func InitOptions() Options {
	return Options{
		PluginDir:   plugin.DefaultDir,
		LogFile:     DefaultLogFile,
		MountPoints: EssentialMountPoints(),
		InitPaths:   DefaultInitPaths(),
	}
}

func (o Options) stderr() io.Writer {
	if o.Stderr == nil {
		return os.Stderr
	}

	return o.Stderr
}

func (o Options) registry() *capability.Registry {
	if o.Registry == nil {
		return capability.Default
	}

	return o.Registry
}

func (o Options) funcs() []Func {
	funcs := []Func{
		WithConfig(o.ConfigFile),
		WithLogging(o),
		WithMountPoints(o.MountPoints),
		WithCapabilities(o),
		WithPlugins(o.PluginDir),
	}

	if o.AfterPlugins != nil {
		funcs = append(funcs, o.AfterPlugins)
	}

	return funcs
}

// Boot runs the boot sequence in the given role.
//
// In [RoleInit] it never returns: after the stages ran, successful or not,
// control is handed to the first executable of [Options.InitPaths]. If none
// can be executed, the system is halted.
//
// In [RoleDebug] it returns 0 if all stages succeeded and 1 otherwise. Failing
// plugin units do not fail the sequence.
func Boot(role Role, opts Options) int {
	return boot(role, opts, defaultSystem())
}

func boot(role Role, opts Options, sys system) int {
	state := &State{
		Role:     role,
		Registry: opts.registry(),
		Coldplug: new(coldplug.State),
	}

	exitCode := 0

	if err := runFuncs(state, opts.funcs()); err != nil {
		slog.Error(err.Error())

		exitCode = 1
	}

	if role == RoleInit {
		handoff(opts.InitPaths, sys)
	}

	state.doCleanup()

	return exitCode
}

func runFuncs(state *State, funcs []Func) (err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}

		if recoveredErr, ok := rec.(error); ok {
			err = fmt.Errorf("%w: %w", ErrPanic, recoveredErr)
		} else {
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()

	for _, fn := range funcs {
		if err = fn(state); err != nil {
			return err
		}
	}

	return nil
}
