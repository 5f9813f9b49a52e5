// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package builtin

import (
	"github.com/aibor/genpack-init/internal/coldplug"
	"github.com/aibor/genpack-init/internal/disk"
	"github.com/aibor/genpack-init/internal/fsutil"
	"github.com/aibor/genpack-init/internal/platform"
	"github.com/aibor/genpack-init/internal/systemd"
)

// Runner runs external programs.
type Runner interface {
	Run(name string, args ...string) int
	Output(name string, args ...string) (int, []byte, error)
}

// Coldplugger loads the drivers of all present devices.
type Coldplugger interface {
	Coldplug() error
}

// Env holds the collaborators the capabilities act on.
type Env struct {
	Runner      Runner
	Coldplugger Coldplugger
	Layers      fsutil.Layers
	Probe       *platform.Probe

	// LoadModule loads a single kernel module file. Defaults to
	// [coldplug.LoadModuleFile].
	LoadModule func(path, params string) error

	// ReadBlockDevice defaults to [disk.ReadBlockDevice].
	ReadBlockDevice func(path string) (*disk.BlockDevice, error)

	// LinkUp defaults to [platform.SetLinkUp].
	LinkUp func(name string) error
}

func (e *Env) withDefaults() {
	if e.LoadModule == nil {
		e.LoadModule = coldplug.LoadModuleFile
	}

	if e.ReadBlockDevice == nil {
		e.ReadBlockDevice = disk.ReadBlockDevice
	}

	if e.LinkUp == nil {
		e.LinkUp = platform.SetLinkUp
	}

	if e.Probe == nil {
		e.Probe = platform.NewProbe()
	}
}

func (e *Env) diskTools() *disk.Tools {
	return &disk.Tools{Runner: e.Runner}
}

func (e *Env) fsTools() *fsutil.Tools {
	return &fsutil.Tools{Runner: e.Runner}
}

func (e *Env) systemd() *systemd.Manager {
	return &systemd.Manager{Runner: e.Runner}
}
