// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"io"
	"log/slog"

	"github.com/aibor/genpack-init/internal/shell"
	"github.com/aibor/genpack-init/sysinit"
)

// exitCodeUsage is returned for invalid flags, like the flag package does.
const exitCodeUsage = 2

// IO provides input and output details for the command.
type IO struct {
	Stdout io.Writer
	Stderr io.Writer

	// Environment overrides the process environment if not nil.
	Environment map[string]string
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return 0
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return exitCodeUsage
}

func withShell(output io.Writer) sysinit.Func {
	return func(state *sysinit.State) error {
		sh := &shell.Shell{
			Registry: state.Registry,
			Config:   state.Config,
			Output:   output,
		}

		return sh.Run(shell.DefaultHistoryFile())
	}
}

// Run is the main entry point for the CLI command. It runs the boot sequence
// in the debug role and returns its exit code.
func Run(args []string, cfg IO) int {
	defaults, err := loadEnv(cfg.Environment)
	if err != nil {
		slog.Error(err.Error())
		return exitCodeUsage
	}

	flags := newFlags(defaults, cfg.Stderr)

	if err := flags.ParseArgs(args); err != nil {
		return handleParseArgsError(err)
	}

	opts := flags.opts
	opts.Stderr = cfg.Stderr

	if flags.shell {
		opts.AfterPlugins = withShell(cfg.Stdout)
	}

	return sysinit.Boot(sysinit.RoleDebug, opts)
}
