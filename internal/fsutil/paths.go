// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Layers are the base directories of the appliance's file system layers.
type Layers struct {
	// Root is the root of the running system.
	Root string

	// Boot is where the boot partition is mounted.
	Boot string

	// RO is the read-only system image.
	RO string

	// RW is the writable overlay layer.
	RW string
}

// DefaultLayers returns the layers of a booted appliance.
func DefaultLayers() Layers {
	return Layers{
		Root: "/",
		Boot: "/run/initramfs/boot",
		RO:   "/run/initramfs/ro",
		RW:   "/run/initramfs/rw",
	}
}

// Join joins the given elements to the base directory. Absolute elements are
// treated as relative to the base, so Join("/run/initramfs/rw", "/etc")
// results in "/run/initramfs/rw/etc".
func Join(base string, elems ...string) string {
	parts := make([]string, 0, len(elems)+1)
	parts = append(parts, base)

	for _, elem := range elems {
		parts = append(parts, strings.TrimLeft(elem, string(filepath.Separator)))
	}

	return filepath.Join(parts...)
}

// EnsureDir creates the given directory and all missing parents.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}

	return nil
}
