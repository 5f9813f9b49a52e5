// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

const (
	// InitPath is the archive path the kernel executes as first process.
	InitPath = "init"

	// UnitDir is the archive directory plugin units are put into.
	UnitDir = "usr/lib/genpack-init"

	initMode = 0o755
	unitMode = 0o644
)

type entry struct {
	source string
	mode   fs.FileMode
}

// Overlay collects files for an overlay archive.
//
// Create a new instance using [NewOverlay], add plugin units with
// [Overlay.AddUnits] and write it with [Overlay.WriteInto]. Parent
// directories are created implicitly.
type Overlay struct {
	files map[string]entry
}

// NewOverlay creates a new [Overlay] with "/init" copied from the given file
// path. The init file is optional, an empty path adds units only.
func NewOverlay(initFile string) (*Overlay, error) {
	overlay := &Overlay{files: make(map[string]entry)}

	if initFile != "" {
		if err := overlay.add(InitPath, initFile, initMode); err != nil {
			return nil, err
		}
	}

	return overlay, nil
}

// AddUnits adds the given files into [UnitDir] by their base name.
func (o *Overlay) AddUnits(paths ...string) error {
	for _, file := range paths {
		name := path.Join(UnitDir, filepath.Base(file))
		if err := o.add(name, file, unitMode); err != nil {
			return err
		}
	}

	return nil
}

// AddFile adds the file at source as archive path name.
func (o *Overlay) AddFile(name, source string, mode fs.FileMode) error {
	return o.add(name, source, mode)
}

func (o *Overlay) add(name, source string, mode fs.FileMode) error {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if name == "" || source == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidArgument)
	}

	if _, exists := o.files[name]; exists {
		return fmt.Errorf("add %s: %w", name, ErrFileExist)
	}

	abs, err := filepath.Abs(source)
	if err != nil {
		return fmt.Errorf("abs path for %s: %w", source, err)
	}

	o.files[name] = entry{source: abs, mode: mode}

	return nil
}

// Paths returns the sorted archive paths of all added files.
func (o *Overlay) Paths() []string {
	paths := make([]string, 0, len(o.files))
	for name := range o.files {
		paths = append(paths, name)
	}

	slices.Sort(paths)

	return paths
}

// WriteInto writes the [Overlay] as CPIO archive to the given writer.
func (o *Overlay) WriteInto(writer io.Writer) error {
	w := NewCPIOWriter(writer)

	if err := o.writeTo(w, os.DirFS("/")); err != nil {
		_ = w.Close()
		return err
	}

	return w.Close()
}

// writeTo writes directories and files in sorted order. Regular files are
// read from sourceFS.
func (o *Overlay) writeTo(w *CPIOWriter, sourceFS fs.FS) error {
	written := make(map[string]bool)

	for _, name := range o.Paths() {
		if err := writeParents(w, path.Dir(name), written); err != nil {
			return err
		}

		ent := o.files[name]

		// Cut leading / since fs.FS considers it invalid.
		source, err := sourceFS.Open(strings.TrimPrefix(ent.source, "/"))
		if err != nil {
			return fmt.Errorf("open %s: %w", ent.source, err)
		}

		err = w.WriteRegular(name, source, ent.mode)
		_ = source.Close()

		if err != nil {
			return err
		}

		slog.Debug("Added file to archive",
			slog.String("path", name),
			slog.String("source", ent.source),
		)
	}

	return nil
}

func writeParents(w *CPIOWriter, dir string, written map[string]bool) error {
	if dir == "." || written[dir] {
		return nil
	}

	if err := writeParents(w, path.Dir(dir), written); err != nil {
		return err
	}

	if err := w.WriteDirectory(dir); err != nil {
		return err
	}

	written[dir] = true

	return nil
}
