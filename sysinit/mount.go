// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
)

// FSType is a file system type.
type FSType string

// Special file system types.
const (
	FSTypeDevTmp FSType = "devtmpfs"
	FSTypeProc   FSType = "proc"
	FSTypeSys    FSType = "sysfs"

	defaultDirMode = 0o755
)

// MountOptions is a single mount point for a virtual system FS.
type MountOptions struct {
	FSType FSType

	// MayFail determines if the mount operation may fail. If set to true, a
	// mount error does not fail a [MountAll] operation.
	MayFail bool
}

// MountPoints is a collection of MountPoints.
type MountPoints map[string]MountOptions

// EssentialMountPoints returns the virtual file systems required for
// coldplug and module loading. They are usually mounted by the initramfs
// already. None of them is required, so plugins that do not need them still
// run.
func EssentialMountPoints() MountPoints {
	return MountPoints{
		"/dev":  {FSType: FSTypeDevTmp, MayFail: true},
		"/proc": {FSType: FSTypeProc, MayFail: true},
		"/sys":  {FSType: FSTypeSys, MayFail: true},
	}
}

// Mount mounts the system file system of [FSType] at the given path unless
// something is mounted there already.
//
// If path does not exist, it is created. An error is returned if this or the
// mount syscall fails.
func Mount(path string, fsType FSType) error {
	mounted, err := isMountPoint(path)
	if err != nil {
		return err
	}

	if mounted {
		slog.Debug("Already mounted", slog.String("path", path))
		return nil
	}

	if err := os.MkdirAll(path, defaultDirMode); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}

	if err := mount(path, "", string(fsType)); err != nil {
		return err
	}

	slog.Debug("Mounted", slog.String("path", path), slog.String("type", string(fsType)))

	return nil
}

// MountAll mounts the given set of system file systems.
//
// The mounts are executed in lexicographic order of the paths. If only
// optional mount points failed, it returns an [OptionalMountError] with all
// errors.
func MountAll(mountPoints MountPoints) error {
	var optionalErrs OptionalMountError

	for _, path := range slices.Sorted(maps.Keys(mountPoints)) {
		opts := mountPoints[path]
		if err := Mount(path, opts.FSType); err != nil {
			if !opts.MayFail {
				return err
			}

			optionalErrs = append(optionalErrs, err)
		}
	}

	if optionalErrs != nil {
		return optionalErrs
	}

	return nil
}

// WithMountPoints returns a [Func] that wraps [MountAll]. It runs in the init
// role only and logs optional mounts that failed.
func WithMountPoints(mountPoints MountPoints) Func {
	return func(state *State) error {
		if state.Role != RoleInit {
			return nil
		}

		err := MountAll(mountPoints)

		var optionalErrs OptionalMountError
		if errors.As(err, &optionalErrs) {
			for _, err := range optionalErrs {
				slog.Warn("Optional mount failed", slog.Any("error", err))
			}

			return nil
		}

		return err
	}
}
