// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package subprocess

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/aibor/genpack-init/internal/exitcode"
	"golang.org/x/sync/errgroup"
)

// Runner runs external programs.
//
// The zero value is ready to use and lets the programs inherit the standard
// output and error streams of the current process.
type Runner struct {
	// Stdout receives the output of programs run with [Runner.Exec] and
	// [Runner.Run]. Defaults to [os.Stdout].
	Stdout io.Writer

	// Stderr receives the error output of programs run with [Runner.Exec] and
	// [Runner.Run]. Defaults to [os.Stderr].
	Stderr io.Writer
}

func (r *Runner) stdout() io.Writer {
	if r == nil || r.Stdout == nil {
		return os.Stdout
	}

	return r.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r == nil || r.Stderr == nil {
		return os.Stderr
	}

	return r.Stderr
}

// Exec runs the named program with the given arguments and waits for it to
// terminate.
//
// It returns the exit code of the program. If the program could not be
// started, the exit code is [exitcode.Abnormal] and an error is returned. If
// the program was terminated by a signal, the exit code is
// [exitcode.Abnormal] as well but no error is returned.
func (r *Runner) Exec(name string, args ...string) (int, error) {
	logStart(name, args)

	cmd := exec.Command(name, args...)
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()

	exitCode, err := exitCodeOf(cmd.Run())
	if err != nil {
		return exitCode, fmt.Errorf("run %s: %w", name, err)
	}

	logExit(name, exitCode)

	return exitCode, nil
}

// Run is like [Runner.Exec] but only returns the exit code. Errors are logged
// and reported as [exitcode.Abnormal].
func (r *Runner) Run(name string, args ...string) int {
	exitCode, err := r.Exec(name, args...)
	if err != nil {
		slog.Error("Failed to run command",
			slog.String("command", name),
			slog.Any("error", err),
		)
	}

	return exitCode
}

// Output runs the named program like [Runner.Exec] but captures its standard
// output and returns it.
//
// The standard error output of the program is logged line by line. Both
// streams are read completely before the program is waited for, so programs
// producing more output than fits into a pipe buffer do not block.
func (r *Runner) Output(name string, args ...string) (int, []byte, error) {
	logStart(name, args)

	cmd := exec.Command(name, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return exitcode.Abnormal, nil, fmt.Errorf("stdout pipe for %s: %w", name, err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return exitcode.Abnormal, nil, fmt.Errorf("stderr pipe for %s: %w", name, err)
	}

	if err := cmd.Start(); err != nil {
		return exitcode.Abnormal, nil, fmt.Errorf("start %s: %w", name, err)
	}

	var (
		output bytes.Buffer
		drain  errgroup.Group
	)

	drain.Go(func() error {
		if _, err := output.ReadFrom(stdout); err != nil {
			return fmt.Errorf("read stdout: %w", err)
		}

		return nil
	})

	drain.Go(func() error {
		return logLines(name, stderr)
	})

	drainErr := drain.Wait()

	exitCode, err := exitCodeOf(cmd.Wait())
	if err != nil {
		return exitCode, nil, fmt.Errorf("wait for %s: %w", name, err)
	}

	if drainErr != nil {
		return exitCode, nil, fmt.Errorf("%s: %w", name, drainErr)
	}

	logExit(name, exitCode)

	return exitCode, output.Bytes(), nil
}

func exitCodeOf(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ExitCode is -1 if the process was terminated by a signal, which
		// matches exitcode.Abnormal.
		return exitErr.ExitCode(), nil
	}

	return exitcode.Abnormal, err
}

func logLines(name string, reader io.Reader) error {
	lines := bufio.NewReader(reader)

	for {
		line, err := lines.ReadString('\n')

		line = strings.TrimRight(line, "\n")
		if line != "" {
			slog.Debug(line, slog.String("command", name))
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("read stderr: %w", err)
		}
	}
}

func logStart(name string, args []string) {
	slog.Debug("Running command",
		slog.String("command", name),
		slog.Any("args", args),
	)
}

func logExit(name string, exitCode int) {
	slog.Debug("Command exited",
		slog.String("command", name),
		slog.Int("exit_code", exitCode),
	)
}
