// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"fmt"
	"log/slog"

	"github.com/aibor/genpack-init/bootconfig"
	"github.com/aibor/genpack-init/internal/builtin"
	"github.com/aibor/genpack-init/internal/coldplug"
	"github.com/aibor/genpack-init/internal/fsutil"
	"github.com/aibor/genpack-init/internal/plugin"
	"github.com/aibor/genpack-init/internal/subprocess"
)

// WithConfig returns a [Func] that loads the boot configuration. A missing or
// malformed file results in an empty configuration.
func WithConfig(path string) Func {
	return func(state *State) error {
		if path == "" {
			path = bootconfig.Locate(bootconfig.DefaultDirs, bootconfig.FileName)
		}

		state.Config, state.configErr = bootconfig.Load(path)

		return nil
	}
}

// WithLogging returns a [Func] that sets up logging. The level is debug if
// forced or if "debug" is true in the default section of the config.
func WithLogging(opts Options) Func {
	return func(state *State) error {
		debug := opts.Debug ||
			state.Config.Bool(bootconfig.DefaultSection, "debug", false)

		previous := slog.Default()

		closer, err := SetupLogging(opts.LogFile, opts.stderr(), debug)
		state.Cleanup(func() error {
			slog.SetDefault(previous)
			return closer.Close()
		})

		if err != nil {
			slog.Warn("Logging to stderr only", slog.Any("error", err))
		}

		if debug {
			slog.Debug("Debug mode enabled")
		}

		slog.Debug("Boot sequence started", slog.String("role", state.Role.String()))

		if state.configErr != nil {
			slog.Warn("Proceeding with empty configuration",
				slog.Any("error", state.configErr))
		}

		return nil
	}
}

// WithCapabilities returns a [Func] that registers the native capabilities.
// Coldplug is mocked if requested.
func WithCapabilities(opts Options) Func {
	return func(state *State) error {
		runner := &subprocess.Runner{}

		var coldplugger builtin.Coldplugger

		if opts.MockColdplug {
			coldplugger = &coldplug.Mock{State: state.Coldplug}
		} else {
			resolver := coldplug.NewResolver(state.Coldplug, runner)
			if opts.DeviceRoot != "" {
				resolver.Root = opts.DeviceRoot
			}

			coldplugger = resolver
		}

		builtin.Register(state.Registry, builtin.Env{
			Runner:      runner,
			Coldplugger: coldplugger,
			Layers:      fsutil.DefaultLayers(),
		})

		return nil
	}
}

// WithPlugins returns a [Func] that runs all plugin units of the given
// directory.
func WithPlugins(dir string) Func {
	return func(state *State) error {
		loader := plugin.NewLoader(state.Registry)

		report, err := loader.Run(dir, state.Config)
		if err != nil {
			return fmt.Errorf("plugins: %w", err)
		}

		state.Report = report

		return nil
	}
}
