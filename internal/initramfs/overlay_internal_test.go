// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/cavaliergopher/cpio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type archiveEntry struct {
	name string
	mode cpio.FileMode
	body string
}

func readArchive(t *testing.T, data []byte) []archiveEntry {
	t.Helper()

	var entries []archiveEntry

	r := cpio.NewReader(bytes.NewReader(data))

	for {
		hdr, err := r.Next()
		if errors.Is(err, io.EOF) {
			return entries
		}

		require.NoError(t, err)

		body, err := io.ReadAll(r)
		require.NoError(t, err)

		entries = append(entries, archiveEntry{hdr.Name, hdr.Mode, string(body)})
	}
}

func TestOverlayWriteTo(t *testing.T) {
	sourceFS := fstest.MapFS{
		"src/genpack-init":   &fstest.MapFile{Data: []byte("ELF")},
		"src/10-net.yaml":    &fstest.MapFile{Data: []byte("configure: []")},
		"src/20-disk.so":     &fstest.MapFile{Data: []byte("SO")},
		"src/etc/extra.conf": &fstest.MapFile{Data: []byte("x=1")},
	}

	overlay, err := NewOverlay("/src/genpack-init")
	require.NoError(t, err)

	require.NoError(t, overlay.AddUnits("/src/20-disk.so", "/src/10-net.yaml"))
	require.NoError(t, overlay.AddFile("/etc/genpack-init/extra.conf", "/src/etc/extra.conf", 0o600))

	var archive bytes.Buffer

	w := NewCPIOWriter(&archive)
	require.NoError(t, overlay.writeTo(w, sourceFS))
	require.NoError(t, w.Close())

	expected := []archiveEntry{
		{"etc", cpio.TypeDir | 0o755, ""},
		{"etc/genpack-init", cpio.TypeDir | 0o755, ""},
		{"etc/genpack-init/extra.conf", cpio.TypeReg | 0o600, "x=1"},
		{"init", cpio.TypeReg | 0o755, "ELF"},
		{"usr", cpio.TypeDir | 0o755, ""},
		{"usr/lib", cpio.TypeDir | 0o755, ""},
		{"usr/lib/genpack-init", cpio.TypeDir | 0o755, ""},
		{"usr/lib/genpack-init/10-net.yaml", cpio.TypeReg | 0o644, "configure: []"},
		{"usr/lib/genpack-init/20-disk.so", cpio.TypeReg | 0o644, "SO"},
	}

	assert.Equal(t, expected, readArchive(t, archive.Bytes()))
}

func TestOverlayWriteToMissingSource(t *testing.T) {
	overlay, err := NewOverlay("/src/missing")
	require.NoError(t, err)

	var archive bytes.Buffer

	err = overlay.writeTo(NewCPIOWriter(&archive), fstest.MapFS{})
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOverlayAdd(t *testing.T) {
	tests := []struct {
		name        string
		initFile    string
		units       []string
		expected    []string
		expectedErr error
	}{
		{
			name:     "units only",
			units:    []string{"/a/b.yaml", "/c.so"},
			expected: []string{"usr/lib/genpack-init/b.yaml", "usr/lib/genpack-init/c.so"},
		},
		{
			name:     "init and unit",
			initFile: "/bin/genpack-init",
			units:    []string{"/a/b.yml"},
			expected: []string{"init", "usr/lib/genpack-init/b.yml"},
		},
		{
			name:        "duplicate unit name",
			units:       []string{"/a/b.yaml", "/c/b.yaml"},
			expectedErr: ErrFileExist,
		},
		{
			name:        "empty unit path",
			units:       []string{""},
			expectedErr: ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overlay, err := NewOverlay(tt.initFile)
			require.NoError(t, err)

			err = overlay.AddUnits(tt.units...)
			require.ErrorIs(t, err, tt.expectedErr)

			if tt.expectedErr != nil {
				return
			}

			assert.Equal(t, tt.expected, overlay.Paths())
		})
	}
}
