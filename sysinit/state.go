// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"log/slog"
	"slices"

	"github.com/aibor/genpack-init/bootconfig"
	"github.com/aibor/genpack-init/capability"
	"github.com/aibor/genpack-init/internal/coldplug"
	"github.com/aibor/genpack-init/internal/plugin"
)

// CleanupFunc releases a resource acquired by a [Func].
type CleanupFunc func() error

// State is passed along the [Func]s of a boot sequence.
type State struct {
	Role Role

	// Config is the boot configuration. It is never nil once the config
	// stage ran.
	Config *bootconfig.Config

	// Registry the capabilities are registered in.
	Registry *capability.Registry

	// Coldplug is shared by all coldplug capability calls of this boot.
	Coldplug *coldplug.State

	// Report of the plugin run.
	Report plugin.Report

	// configErr is the error loading the config. It is logged once logging
	// is set up.
	configErr error

	cleanupFns []CleanupFunc
}

// Cleanup registers a function that is called when the sequence is done.
// Functions are called in reverse order of registration.
func (s *State) Cleanup(fn CleanupFunc) {
	s.cleanupFns = append(s.cleanupFns, fn)
}

func (s *State) doCleanup() {
	slices.Reverse(s.cleanupFns)

	for _, fn := range s.cleanupFns {
		if err := fn(); err != nil {
			slog.Error("Cleanup failed", slog.Any("error", err))
		}
	}

	s.cleanupFns = nil
}
