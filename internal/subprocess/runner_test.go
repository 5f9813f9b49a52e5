// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package subprocess_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/aibor/genpack-init/internal/subprocess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Exec(t *testing.T) {
	tests := []struct {
		name             string
		command          string
		args             []string
		expectedExitCode int
		expectedStdout   string
		expectedStderr   string
		assertErr        require.ErrorAssertionFunc
	}{
		{
			name:             "success",
			command:          "true",
			expectedExitCode: 0,
			assertErr:        require.NoError,
		},
		{
			name:             "failure",
			command:          "false",
			expectedExitCode: 1,
			assertErr:        require.NoError,
		},
		{
			name:             "exit code",
			command:          "sh",
			args:             []string{"-c", "exit 42"},
			expectedExitCode: 42,
			assertErr:        require.NoError,
		},
		{
			name:             "killed by signal",
			command:          "sh",
			args:             []string{"-c", "kill -KILL $$"},
			expectedExitCode: -1,
			assertErr:        require.NoError,
		},
		{
			name:             "not found",
			command:          "/nonexistent/program",
			expectedExitCode: -1,
			assertErr:        require.Error,
		},
		{
			name:             "output",
			command:          "sh",
			args:             []string{"-c", "echo out; echo err >&2"},
			expectedExitCode: 0,
			expectedStdout:   "out\n",
			expectedStderr:   "err\n",
			assertErr:        require.NoError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			runner := subprocess.Runner{Stdout: &stdout, Stderr: &stderr}

			exitCode, err := runner.Exec(tt.command, tt.args...)
			tt.assertErr(t, err)

			assert.Equal(t, tt.expectedExitCode, exitCode)
			assert.Equal(t, tt.expectedStdout, stdout.String())
			assert.Equal(t, tt.expectedStderr, stderr.String())
		})
	}
}

func TestRunner_Run(t *testing.T) {
	var runner subprocess.Runner

	assert.Equal(t, 0, runner.Run("true"))
	assert.Equal(t, 3, runner.Run("sh", "-c", "exit 3"))
	assert.Equal(t, -1, runner.Run("/nonexistent/program"))
}

func TestRunner_Output(t *testing.T) {
	t.Run("captures stdout", func(t *testing.T) {
		var runner subprocess.Runner

		exitCode, output, err := runner.Output("echo", "a", "b")
		require.NoError(t, err)

		assert.Equal(t, 0, exitCode)
		assert.Equal(t, "a b\n", string(output))
	})

	t.Run("non-zero exit code", func(t *testing.T) {
		var runner subprocess.Runner

		exitCode, output, err := runner.Output("sh", "-c", "echo partial; echo oops >&2; exit 2")
		require.NoError(t, err)

		assert.Equal(t, 2, exitCode)
		assert.Equal(t, "partial\n", string(output))
	})

	t.Run("more than a pipe buffer", func(t *testing.T) {
		var runner subprocess.Runner

		script := "yes line | head -n 100000; yes err | head -n 20000 >&2"

		exitCode, output, err := runner.Output("sh", "-c", script)
		require.NoError(t, err)

		assert.Equal(t, 0, exitCode)
		assert.Equal(t, 100000, strings.Count(string(output), "line\n"))
	})

	t.Run("stderr logged at debug level", func(t *testing.T) {
		var logs bytes.Buffer

		previous := slog.Default()
		t.Cleanup(func() { slog.SetDefault(previous) })

		slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))

		var runner subprocess.Runner

		_, _, err := runner.Output("sh", "-c", "echo oops >&2")
		require.NoError(t, err)

		assert.Contains(t, logs.String(), "level=DEBUG msg=oops command=sh")
		assert.NotContains(t, logs.String(), "level=WARN")
	})

	t.Run("not found", func(t *testing.T) {
		var runner subprocess.Runner

		exitCode, output, err := runner.Output("/nonexistent/program")
		require.Error(t, err)

		assert.Equal(t, -1, exitCode)
		assert.Nil(t, output)
	})
}
