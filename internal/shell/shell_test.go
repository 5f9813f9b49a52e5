// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package shell_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aibor/genpack-init/bootconfig"
	"github.com/aibor/genpack-init/capability"
	"github.com/aibor/genpack-init/internal/shell"
	"github.com/kballard/go-shellquote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShell(t *testing.T, calls *[][]string) (*shell.Shell, *bytes.Buffer) {
	t.Helper()

	cfg, err := bootconfig.Parse([]byte("debug = yes\n[network]\nhostname = box\n"))
	require.NoError(t, err)

	registry := new(capability.Registry)
	registry.Register(
		capability.Capability{
			Name:    "mount",
			Usage:   "<device> <mountpoint>",
			MinArgs: 2,
			MaxArgs: 2,
			Fn: func(args ...string) (string, error) {
				*calls = append(*calls, append([]string{"mount"}, args...))
				return "", nil
			},
		},
		capability.Capability{
			Name: "is_qemu",
			Fn: func(...string) (string, error) {
				return "true", nil
			},
		},
		capability.Capability{
			Name: "fail",
			Fn: func(...string) (string, error) {
				return "", assert.AnError
			},
		},
	)

	var output bytes.Buffer

	return &shell.Shell{Registry: registry, Config: cfg, Output: &output}, &output
}

func TestShell_Execute(t *testing.T) {
	tests := []struct {
		name          string
		line          string
		expectedCont  bool
		expectedCalls [][]string
		assertOutput  func(t *testing.T, output string)
	}{
		{
			name:         "empty",
			line:         "   ",
			expectedCont: true,
			assertOutput: func(t *testing.T, output string) {
				assert.Empty(t, output)
			},
		},
		{
			name:         "call",
			line:         "mount /dev/vda1 /mnt",
			expectedCont: true,
			expectedCalls: [][]string{
				{"mount", "/dev/vda1", "/mnt"},
			},
			assertOutput: func(t *testing.T, output string) {
				assert.Empty(t, output)
			},
		},
		{
			name:         "quoted arguments",
			line:         `mount "/dev/disk/by-label/my data" '/mnt/a b'`,
			expectedCont: true,
			expectedCalls: [][]string{
				{"mount", "/dev/disk/by-label/my data", "/mnt/a b"},
			},
		},
		{
			name:         "escaped arguments",
			line:         `mount /dev/disk/by-label/my\ data "/mnt/\"x\""`,
			expectedCont: true,
			expectedCalls: [][]string{
				{"mount", "/dev/disk/by-label/my data", `/mnt/"x"`},
			},
		},
		{
			name:         "result",
			line:         "is_qemu",
			expectedCont: true,
			assertOutput: func(t *testing.T, output string) {
				assert.Equal(t, "true\n", output)
			},
		},
		{
			name:         "error",
			line:         "fail",
			expectedCont: true,
			assertOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "Error: fail: "+assert.AnError.Error())
			},
		},
		{
			name:         "wrong arguments",
			line:         "mount /dev/vda1",
			expectedCont: true,
			assertOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "1 arguments given, 2 required")
			},
		},
		{
			name:         "unknown",
			line:         "format_everything",
			expectedCont: true,
			assertOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "Unknown command: format_everything")
			},
		},
		{
			name:         "unterminated quote",
			line:         `mount "/dev/vda1 /mnt`,
			expectedCont: true,
			assertOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "Error: "+shellquote.UnterminatedDoubleQuoteError.Error())
			},
		},
		{
			name:         "trailing backslash",
			line:         `mount /dev/vda1 /mnt\`,
			expectedCont: true,
			assertOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "Error: "+shellquote.UnterminatedEscapeError.Error())
			},
		},
		{
			name:         "help",
			line:         "help",
			expectedCont: true,
			assertOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "Commands:")
			},
		},
		{
			name:         "list",
			line:         "list",
			expectedCont: true,
			assertOutput: func(t *testing.T, output string) {
				lines := strings.Split(strings.TrimSpace(output), "\n")
				require.Len(t, lines, 3)
				assert.Contains(t, lines[0], "fail")
				assert.Contains(t, lines[2], "mount")
				assert.Contains(t, lines[2], "<device> <mountpoint>")
			},
		},
		{
			name:         "config",
			line:         "config",
			expectedCont: true,
			assertOutput: func(t *testing.T, output string) {
				assert.Equal(t, "[_default]\ndebug = yes\n[network]\nhostname = box\n", output)
			},
		},
		{
			name:         "config section",
			line:         "config network",
			expectedCont: true,
			assertOutput: func(t *testing.T, output string) {
				assert.Equal(t, "[network]\nhostname = box\n", output)
			},
		},
		{
			name: "quit",
			line: "quit",
		},
		{
			name: "exit",
			line: "exit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls [][]string

			sh, output := newShell(t, &calls)

			assert.Equal(t, tt.expectedCont, sh.Execute(tt.line))
			assert.Equal(t, tt.expectedCalls, calls)

			if tt.assertOutput != nil {
				tt.assertOutput(t, output.String())
			}
		})
	}
}
