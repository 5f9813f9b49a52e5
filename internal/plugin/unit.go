// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package plugin

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Unit is a single plugin file.
type Unit struct {
	// Path is the path of the unit file.
	Path string

	// Kind is the file extension, like ".so".
	Kind string
}

func (u Unit) String() string {
	return u.Path
}

// Opener opens a unit file and returns its entry point symbol. found is false
// if the unit does not provide an entry point.
type Opener func(path string) (symbol any, found bool, err error)

// Discover returns the units in the given directory in file name order.
//
// Only files with an extension in the given set of kinds are returned.
// Symbolic links are followed. Directories and other non-regular files are
// ignored.
func Discover(dir string, kinds map[string]Opener) ([]Unit, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoPluginDir, dir)
		}

		return nil, fmt.Errorf("stat plugin dir: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNoPluginDir, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read plugin dir: %w", err)
	}

	var units []Unit

	for _, entry := range entries {
		kind := filepath.Ext(entry.Name())
		if _, known := kinds[kind]; !known {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			slog.Debug("Ignore non-regular file", slog.String("path", path))
			continue
		}

		units = append(units, Unit{Path: path, Kind: kind})
	}

	return units, nil
}
