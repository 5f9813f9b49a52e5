// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"log/slog"
	"os"

	"golang.org/x/sys/unix"
)

// system is the set of process terminating operations used on hand-off.
type system struct {
	// exec only returns on failure.
	exec  func(path string, argv, env []string) error
	sync  func()
	halt  func() error
	block func()
}

func defaultSystem() system {
	return system{
		exec:  execve,
		sync:  unix.Sync,
		halt:  halt,
		block: block,
	}
}

// handoff replaces the process with the first init program that can be
// executed. If none can, the file systems are synced and the system halted.
// It does not return, unless exec is replaced by one that returns nil.
func handoff(paths []string, sys system) {
	for _, path := range paths {
		slog.Info("Handing off", slog.String("init", path))

		err := sys.exec(path, []string{path}, os.Environ())
		if err == nil {
			return
		}

		slog.Error("Exec failed", slog.String("init", path), slog.Any("error", err))
	}

	slog.Error(ErrNoInit.Error() + ", halting")

	sys.sync()

	if err := sys.halt(); err != nil {
		slog.Error("Halt failed", slog.Any("error", err))
	}

	sys.block()
}
