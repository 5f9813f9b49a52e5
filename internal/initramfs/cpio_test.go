// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs_test

import (
	"bytes"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/aibor/genpack-init/internal/initramfs"
	"github.com/cavaliergopher/cpio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPIOWriter(t *testing.T) {
	regularFileBody := make([]byte, 200)
	for idx := range regularFileBody {
		regularFileBody[idx] = byte(idx)
	}

	testFS := fstest.MapFS{
		"regular": &fstest.MapFile{Data: regularFileBody, Mode: 0o600},
		"dir":     &fstest.MapFile{Mode: fs.ModeDir},
	}

	tests := []struct {
		name         string
		run          func(w *initramfs.CPIOWriter) error
		expectedErr  error
		assertHeader func(t assert.TestingT, hdr *cpio.Header)
		expectedBody []byte
	}{
		{
			name: "write directory",
			run: func(w *initramfs.CPIOWriter) error {
				return w.WriteDirectory("usr")
			},
			assertHeader: func(t assert.TestingT, hdr *cpio.Header) {
				assert.Equal(t, "usr", hdr.Name, "name")
				assert.EqualValues(t, 0o755|cpio.TypeDir, hdr.Mode, "mode")
				assert.EqualValues(t, 0, hdr.Size, "size")
			},
		},
		{
			name: "write regular",
			run: func(w *initramfs.CPIOWriter) error {
				file, err := testFS.Open("regular")
				require.NoError(t, err)

				return w.WriteRegular("init", file, 0o755)
			},
			assertHeader: func(t assert.TestingT, hdr *cpio.Header) {
				assert.Equal(t, "init", hdr.Name, "name")
				assert.EqualValues(t, 0o755|cpio.TypeReg, hdr.Mode, "mode")
				assert.EqualValues(t, 200, hdr.Size, "size")
			},
			expectedBody: regularFileBody,
		},
		{
			name: "write regular source mode",
			run: func(w *initramfs.CPIOWriter) error {
				file, err := testFS.Open("regular")
				require.NoError(t, err)

				return w.WriteRegular("unit.yaml", file, 0)
			},
			assertHeader: func(t assert.TestingT, hdr *cpio.Header) {
				assert.EqualValues(t, 0o600|cpio.TypeReg, hdr.Mode, "mode")
			},
		},
		{
			name: "write regular invalid",
			run: func(w *initramfs.CPIOWriter) error {
				file, err := testFS.Open("dir")
				require.NoError(t, err)

				return w.WriteRegular("test", file, 0o755)
			},
			expectedErr: initramfs.ErrFileNotRegular,
		},
		{
			name: "write closed",
			run: func(w *initramfs.CPIOWriter) error {
				err := w.Close()
				require.NoError(t, err)

				return w.WriteDirectory("test")
			},
			expectedErr: cpio.ErrWriteAfterClose,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var archive bytes.Buffer

			w := initramfs.NewCPIOWriter(&archive)

			err := tt.run(w)
			require.ErrorIs(t, err, tt.expectedErr)

			if tt.assertHeader == nil {
				return
			}

			require.NoError(t, w.Close())

			r := cpio.NewReader(&archive)

			h, err := r.Next()
			require.NoError(t, err)

			tt.assertHeader(t, h)

			if tt.expectedBody == nil {
				return
			}

			body, err := io.ReadAll(r)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedBody, body)
		})
	}
}
