// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package coldplug

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModuleType(t *testing.T) {
	tests := []struct {
		fileName string
		expected moduleType
	}{
		{fileName: "", expected: moduleTypeUnknown},
		{fileName: "other.gz", expected: moduleTypeUnknown},
		{fileName: "zst.some", expected: moduleTypeUnknown},
		{fileName: "some_ko.gz", expected: moduleTypeUnknown},
		{fileName: "some.ko", expected: moduleTypePlain},
		{fileName: "some.ko.gz", expected: moduleTypeGZIP},
		{fileName: "some.ko.xz", expected: moduleTypeXZ},
		{fileName: "some.ko.zst", expected: moduleTypeZSTD},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseModuleType(tt.fileName))
		})
	}
}

func TestFinitFlagsFor(t *testing.T) {
	assert.Equal(t, finitFlags(0), finitFlagsFor(moduleTypeUnknown))
	assert.Equal(t, finitFlags(0), finitFlagsFor(moduleTypePlain))
	assert.Equal(t, finitFlagCompressedFile, finitFlagsFor(moduleTypeGZIP))
	assert.Equal(t, finitFlagCompressedFile, finitFlagsFor(moduleTypeXZ))
	assert.Equal(t, finitFlagCompressedFile, finitFlagsFor(moduleTypeZSTD))
}

func TestNewModuleReader(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		source := strings.NewReader("data")

		reader, err := newModuleReader(source, moduleTypePlain)
		require.NoError(t, err)
		assert.Same(t, source, reader)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := newModuleReader(strings.NewReader(""), moduleTypeXZ)
		require.ErrorIs(t, err, errors.ErrUnsupported)
	})

	t.Run("broken gzip", func(t *testing.T) {
		_, err := newModuleReader(strings.NewReader("not gzip"), moduleTypeGZIP)
		require.Error(t, err)
	})
}

func TestLoadModuleFile_Missing(t *testing.T) {
	err := LoadModuleFile(t.TempDir()+"/missing.ko", "")
	require.Error(t, err)
}
